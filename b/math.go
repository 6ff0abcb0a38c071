package b

import (
	"github.com/shopspring/decimal"
)

// Div divides x by y keeping Precision fractional digits. Division by zero
// yields zero; use SafeDiv when a different fallback is needed.
func Div(x decimal.Decimal, y decimal.Decimal) decimal.Decimal {
	return SafeDiv(x, y, decimal.Zero)
}

func SafeDiv(x decimal.Decimal, y decimal.Decimal, fallback decimal.Decimal) decimal.Decimal {
	if y.IsZero() {
		return fallback
	}
	return x.DivRound(y, Precision)
}

func Min(x decimal.Decimal, y decimal.Decimal) decimal.Decimal {
	if x.Cmp(y) <= 0 {
		return x
	}
	return y
}

func Max(x decimal.Decimal, y decimal.Decimal) decimal.Decimal {
	if x.Cmp(y) >= 0 {
		return x
	}
	return y
}

func Clamp(x decimal.Decimal, lo decimal.Decimal, hi decimal.Decimal) decimal.Decimal {
	return Min(Max(x, lo), hi)
}

func Floor(x decimal.Decimal, places int32) decimal.Decimal {
	return x.RoundFloor(places)
}

func Ceil(x decimal.Decimal, places int32) decimal.Decimal {
	return x.RoundCeil(places)
}

// Round rounds half away from zero. This is the display rounding.
func Round(x decimal.Decimal, places int32) decimal.Decimal {
	return x.Round(places)
}

func Truncate(x decimal.Decimal, places int32) decimal.Decimal {
	return x.Truncate(places)
}

// Quo is the integer quotient of x by y, truncated toward zero, as done by
// on-chain integer division. Division by zero yields zero.
func Quo(x decimal.Decimal, y decimal.Decimal) decimal.Decimal {
	if y.IsZero() {
		return D0
	}
	q, _ := x.QuoRem(y, 0)
	return q
}
