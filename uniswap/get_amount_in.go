package uniswap

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/optakt/leverage/b"
)

var ErrInsufficientLiquidity = errors.New("insufficient liquidity")

// GetAmountIn adopted from Uniswap v2, with the fee in basis points:
// => https://github.com/Uniswap/v2-periphery/blob/master/contracts/libraries/UniswapV2Library.sol#L52-L59
func GetAmountIn(amountOut decimal.Decimal, reserveIn decimal.Decimal, reserveOut decimal.Decimal, feeBps uint32) (decimal.Decimal, error) {
	if amountOut.GreaterThanOrEqual(reserveOut) {
		return decimal.Zero, ErrInsufficientLiquidity
	}
	numerator := reserveIn.Mul(amountOut).Mul(b.D10000)
	denominator := reserveOut.Sub(amountOut).Mul(b.D10000.Sub(decimal.NewFromInt(int64(feeBps))))
	amountIn := b.Quo(numerator, denominator).Add(b.D1)
	return amountIn, nil
}
