package swap

import (
	"github.com/shopspring/decimal"

	"github.com/optakt/leverage/b"
)

// PriceImpact returns by how many percent the output deviates from the input
// once both are expressed in human units of their own asset. A zero input is
// no trade and has no impact.
func PriceImpact(amountIn decimal.Decimal, decimalsIn uint8, amountOut decimal.Decimal, decimalsOut uint8) decimal.Decimal {
	in := b.Shift(amountIn, decimalsIn)
	out := b.Shift(amountOut, decimalsOut)
	if in.IsZero() {
		return b.D0
	}
	return b.Div(out.Sub(in), in).Mul(b.D100)
}

// MinReceive applies the slippage tolerance, in percent, to a quoted output
// and floors the result to whole base units. Rounding down keeps the swap from
// reverting on an output it could never reach.
func MinReceive(amountOut decimal.Decimal, slippagePct decimal.Decimal) decimal.Decimal {
	slippage := b.Clamp(slippagePct, b.D0, b.D100)
	keep := b.D1.Sub(b.Div(slippage, b.D100))
	return b.Floor(amountOut.Mul(keep), 0)
}
