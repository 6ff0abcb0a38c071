package rate

import (
	"github.com/shopspring/decimal"

	"github.com/optakt/leverage/b"
)

// BorrowRate returns the borrow APR of the curve at the given utilization.
//
// Up to the kink the rate grows linearly to Base + Slope1, past it the rate
// grows linearly from there by Slope2 across the remaining utilization.
func BorrowRate(c Curve, utilization decimal.Decimal) decimal.Decimal {

	u := b.Max(utilization, b.D0)
	kink := c.OptimalUtilization

	// A zero kink makes the first term vanish; any positive utilization is
	// then past the kink.
	if u.LessThanOrEqual(kink) {
		ratio := b.SafeDiv(u, kink, b.D0)
		return c.Base.Add(ratio.Mul(c.Slope1))
	}

	// A kink at one leaves no excess range; anything beyond it is flat.
	excess := b.SafeDiv(u.Sub(kink), b.D1.Sub(kink), b.D0)

	return c.Base.Add(c.Slope1).Add(excess.Mul(c.Slope2))
}
