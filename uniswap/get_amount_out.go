package uniswap

import (
	"github.com/shopspring/decimal"

	"github.com/optakt/leverage/b"
)

// GetAmountOut adopted from Uniswap v2, with the fee in basis points:
// => https://github.com/Uniswap/v2-periphery/blob/master/contracts/libraries/UniswapV2Library.sol#L42-L49
func GetAmountOut(amountIn decimal.Decimal, reserveIn decimal.Decimal, reserveOut decimal.Decimal, feeBps uint32) decimal.Decimal {
	amountInWithFee := amountIn.Mul(b.D10000.Sub(decimal.NewFromInt(int64(feeBps))))
	numerator := amountInWithFee.Mul(reserveOut)
	denominator := reserveIn.Mul(b.D10000).Add(amountInWithFee)
	amountOut := b.Quo(numerator, denominator)
	return amountOut
}
