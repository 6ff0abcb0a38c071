package position

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/optakt/leverage/b"
)

// SafetyBuffer keeps the maximum offered leverage half a turn below the
// leverage at which the position would hit the maximum loan-to-value.
var SafetyBuffer = decimal.RequireFromString("0.5")

// MaxLeverage returns the highest leverage offered for a market with the
// given maximum loan-to-value.
func MaxLeverage(maxLTV decimal.Decimal) (decimal.Decimal, error) {
	if !maxLTV.IsPositive() {
		return b.D1, nil
	}
	if maxLTV.GreaterThanOrEqual(b.D1) {
		return decimal.Zero, fmt.Errorf("max LTV %s allows unbounded leverage: %w", maxLTV, ErrInvalidLTV)
	}
	theoretical := b.Div(b.D1, b.D1.Sub(maxLTV))
	return b.Max(b.D1, theoretical.Sub(SafetyBuffer)), nil
}
