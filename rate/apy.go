package rate

import (
	"github.com/shopspring/decimal"

	"github.com/optakt/leverage/aave"
	"github.com/optakt/leverage/b"
)

// APY converts an annual percentage rate into the annual yield with interest
// compounded every second, the way AAVE accrues its indexes. Borrow and supply
// rates both go through here so their spread stays consistent.
func APY(apr decimal.Decimal) decimal.Decimal {
	return aave.CompoundRate(apr, b.SPY)
}

// Display rounds a rate for output. Nothing downstream of Display should be
// fed back into a calculation.
func Display(x decimal.Decimal, places int32) decimal.Decimal {
	return b.Round(x, places)
}
