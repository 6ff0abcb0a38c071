package rate

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/optakt/leverage/b"
)

var ErrInvalidCurve = errors.New("invalid interest rate curve")

// Curve holds the parameters of a kinked interest rate model. All values are
// fractions, so a 2% base rate is 0.02 and an 80% kink is 0.8.
type Curve struct {
	// Base is the borrow APR at zero utilization.
	Base decimal.Decimal `yaml:"base"`
	// OptimalUtilization is the kink where the slope switches from Slope1 to
	// Slope2.
	OptimalUtilization decimal.Decimal `yaml:"optimal_utilization"`
	// Slope1 is the APR added when utilization goes from zero to the kink.
	Slope1 decimal.Decimal `yaml:"slope_1"`
	// Slope2 is the APR added when utilization goes from the kink to one.
	Slope2 decimal.Decimal `yaml:"slope_2"`
	// ReserveFactor is the share of borrow interest kept by the protocol.
	ReserveFactor decimal.Decimal `yaml:"reserve_factor"`
}

// Validate checks that fractions sit in [0,1] and that no rate component is
// negative.
func (c Curve) Validate() error {
	if c.Base.IsNegative() || c.Slope1.IsNegative() || c.Slope2.IsNegative() {
		return fmt.Errorf("negative rate component: %w", ErrInvalidCurve)
	}
	if !within(c.OptimalUtilization, b.D0, b.D1) {
		return fmt.Errorf("optimal utilization %s outside [0,1]: %w", c.OptimalUtilization, ErrInvalidCurve)
	}
	if !within(c.ReserveFactor, b.D0, b.D1) {
		return fmt.Errorf("reserve factor %s outside [0,1]: %w", c.ReserveFactor, ErrInvalidCurve)
	}
	return nil
}

func within(x decimal.Decimal, lo decimal.Decimal, hi decimal.Decimal) bool {
	return x.GreaterThanOrEqual(lo) && x.LessThanOrEqual(hi)
}
