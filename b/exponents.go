package b

import (
	"github.com/shopspring/decimal"
)

// Shift converts an amount given in the smallest unit of an asset into human
// units, e.g. 10^18 wei with 18 decimals becomes 1.
func Shift(amount decimal.Decimal, decimals uint8) decimal.Decimal {
	return amount.Shift(-int32(decimals))
}

// Unshift converts a human unit amount back into the smallest unit of an
// asset. The result may carry a fractional part; callers floor or ceil it
// depending on which side of a trade they sit.
func Unshift(amount decimal.Decimal, decimals uint8) decimal.Decimal {
	return amount.Shift(int32(decimals))
}

func E(exp uint8) decimal.Decimal {
	return D1.Shift(int32(exp))
}
