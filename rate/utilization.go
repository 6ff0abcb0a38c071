package rate

import (
	"github.com/shopspring/decimal"

	"github.com/optakt/leverage/b"
)

// Utilization computes debt / collateral. A market without collateral has a
// utilization of zero so the curve stays defined at genesis.
func Utilization(debt decimal.Decimal, collateral decimal.Decimal) decimal.Decimal {
	if collateral.Sign() <= 0 || debt.Sign() <= 0 {
		return b.D0
	}
	return b.Div(debt, collateral)
}
