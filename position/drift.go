package position

import (
	"github.com/shopspring/decimal"

	"github.com/optakt/leverage/b"
)

// Direction in which the leverage of a position has to move.
type Direction uint8

const (
	Hold Direction = iota
	Increase
	Decrease
)

func (d Direction) String() string {
	switch d {
	case Increase:
		return "increase"
	case Decrease:
		return "decrease"
	default:
		return "hold"
	}
}

// DirectionOf compares two leverages.
func DirectionOf(current decimal.Decimal, target decimal.Decimal) Direction {
	switch current.Cmp(target) {
	case -1:
		return Increase
	case 1:
		return Decrease
	default:
		return Hold
	}
}

// Drift checks whether the live leverage of a position has moved out of the
// band of +/- ratio around its target leverage, and in which direction it
// has to be brought back.
func Drift(p Position, ratio decimal.Decimal) Direction {

	if p.Collateral.IsZero() && p.Debt.IsZero() {
		return Hold
	}

	current := p.CurrentLeverage()
	if current.IsZero() {
		return Decrease
	}

	lower := p.Leverage.Mul(b.D1.Sub(ratio))
	upper := p.Leverage.Mul(b.D1.Add(ratio))

	switch {

	case current.LessThan(lower):
		return Increase

	case current.GreaterThan(upper):
		return Decrease
	}

	return Hold
}
