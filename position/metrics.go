package position

import (
	"github.com/shopspring/decimal"

	"github.com/optakt/leverage/b"
)

// Metrics summarizes the economics of a looped position over one year.
type Metrics struct {
	BorrowAmount            decimal.Decimal
	TotalPosition           decimal.Decimal
	LeveragedAPY            decimal.Decimal
	BaseAPY                 decimal.Decimal
	YieldSpread             decimal.Decimal
	EstimatedYearlyEarnings decimal.Decimal
}

// Compute derives the metrics of a position built from principal at the given
// leverage, earning collateralAPY on the whole position and paying debtAPY
// on the borrowed part.
func Compute(principal decimal.Decimal, leverage decimal.Decimal, collateralAPY decimal.Decimal, debtAPY decimal.Decimal) (Metrics, error) {

	err := check(principal, leverage)
	if err != nil {
		return Metrics{}, err
	}

	borrowed := leverage.Sub(b.D1)
	leveraged := leverage.Mul(collateralAPY).Sub(borrowed.Mul(debtAPY))
	spread := collateralAPY.Sub(debtAPY)

	m := Metrics{
		BorrowAmount:            principal.Mul(borrowed),
		TotalPosition:           principal.Mul(leverage),
		LeveragedAPY:            leveraged,
		BaseAPY:                 spread,
		YieldSpread:             spread,
		EstimatedYearlyEarnings: principal.Mul(leveraged),
	}

	return m, nil
}
