package rate

import (
	"github.com/shopspring/decimal"
)

// Rates is the full set of rates of a market at one utilization.
type Rates struct {
	Utilization decimal.Decimal
	BorrowAPR   decimal.Decimal
	SupplyAPR   decimal.Decimal
	BorrowAPY   decimal.Decimal
	SupplyAPY   decimal.Decimal
}

// At evaluates the curve at the given utilization.
func At(c Curve, utilization decimal.Decimal) Rates {
	borrow := BorrowRate(c, utilization)
	supply := SupplyRate(c, utilization, borrow)
	return Rates{
		Utilization: utilization,
		BorrowAPR:   borrow,
		SupplyAPR:   supply,
		BorrowAPY:   APY(borrow),
		SupplyAPY:   APY(supply),
	}
}
