package swap

import (
	"github.com/shopspring/decimal"

	"github.com/optakt/leverage/b"
)

// Normalized holds the display values derived from a quote.
type Normalized struct {
	// Available is false when there was no usable quote; every other field
	// is then zero.
	Available         bool
	PriceImpactPct    decimal.Decimal
	MinReceive        decimal.Decimal
	MinReceiveDisplay decimal.Decimal
}

// Normalize derives price impact and minimum receive from a quote. A missing
// quote is a normal state while the user is still typing, so it produces a
// neutral result rather than an error.
func Normalize(q *Quote, slippagePct decimal.Decimal) Normalized {

	if !q.Complete() {
		return Normalized{
			PriceImpactPct:    b.D0,
			MinReceive:        b.D0,
			MinReceiveDisplay: b.D0,
		}
	}

	impact := PriceImpact(q.AmountIn.Decimal, q.DecimalsIn, q.AmountOut.Decimal, q.DecimalsOut)
	min := MinReceive(q.AmountOut.Decimal, slippagePct)

	n := Normalized{
		Available:         true,
		PriceImpactPct:    impact,
		MinReceive:        min,
		MinReceiveDisplay: b.Shift(min, q.DecimalsOut),
	}

	return n
}
