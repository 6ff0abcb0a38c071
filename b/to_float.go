package b

import (
	"github.com/shopspring/decimal"
)

// ToFloat converts a final value into a float. It must only be used at the
// output boundary, never in between calculations.
func ToFloat(d decimal.Decimal, decimals uint8) float64 {
	return Shift(d, decimals).InexactFloat64()
}
