package aave

import (
	"github.com/shopspring/decimal"

	"github.com/optakt/leverage/b"
)

// CalculateCompoundedInterest adopted from AAVE v2:
// => https://github.com/aave/protocol-v2/blob/master/contracts/protocol/libraries/math/MathUtils.sol#L32-L70
//
// It returns the growth factor of a balance accruing the annual rate for the
// given number of seconds, using the third order binomial approximation of
// (1 + rate/SPY)^seconds.
func CalculateCompoundedInterest(rate decimal.Decimal, exp decimal.Decimal) decimal.Decimal {

	if exp.IsZero() {
		return b.D1
	}

	em1 := exp.Sub(b.D1)
	em2 := exp.Sub(b.D2)
	if em2.IsNegative() {
		em2 = b.D0
	}

	rps := b.Div(rate, b.SPY)
	bp2 := rps.Mul(rps)
	bp3 := bp2.Mul(rps)

	t1 := exp.Mul(rps)
	t2 := b.Div(exp.Mul(em1).Mul(bp2), b.D2)
	t3 := b.Div(exp.Mul(em1).Mul(em2).Mul(bp3), b.D6)

	return b.D1.Add(t1).Add(t2).Add(t3)
}

// CompoundRate is the interest accrued over the given seconds, without the
// principal.
func CompoundRate(rate decimal.Decimal, seconds decimal.Decimal) decimal.Decimal {
	if seconds.IsZero() {
		return b.D0
	}
	return CalculateCompoundedInterest(rate, seconds).Sub(b.D1)
}
