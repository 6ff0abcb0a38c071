package uniswap

import (
	"github.com/shopspring/decimal"

	"github.com/optakt/leverage/b"
)

// Quote adopted from Uniswap v2:
// => https://github.com/Uniswap/v2-periphery/blob/master/contracts/libraries/UniswapV2Library.sol#L35-L40
func Quote(amountA decimal.Decimal, reserveA decimal.Decimal, reserveB decimal.Decimal) decimal.Decimal {
	return b.Quo(amountA.Mul(reserveB), reserveA)
}
