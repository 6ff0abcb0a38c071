package rate

import (
	"github.com/shopspring/decimal"

	"github.com/optakt/leverage/b"
)

// SupplyRate returns the supply APR earned by lenders: the borrow interest,
// scaled down by utilization, minus the protocol reserve share.
func SupplyRate(c Curve, utilization decimal.Decimal, borrowRate decimal.Decimal) decimal.Decimal {
	u := b.Max(utilization, b.D0)
	share := b.D1.Sub(c.ReserveFactor)
	return borrowRate.Mul(u).Mul(share)
}
