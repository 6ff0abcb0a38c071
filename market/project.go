package market

import (
	"errors"
	"fmt"

	"github.com/optakt/leverage/b"
	"github.com/optakt/leverage/rate"
)

var ErrUnsupportedAction = errors.New("unsupported action")

// Project returns the rates the market would show after the intent executed.
// Withdrawals are not projected; they depend on liquidity and are checked
// separately.
func Project(s Snapshot, intent Intent) (rate.Rates, error) {

	if intent.Amount.IsNegative() {
		return rate.Rates{}, fmt.Errorf("negative %s amount %s: %w", intent.Kind, intent.Amount, b.ErrInvalidAmountFormat)
	}

	collateral := s.CollateralTotal
	debt := s.DebtTotal
	switch intent.Kind {
	case Deposit:
		collateral = collateral.Add(intent.Amount)
	case Borrow:
		debt = debt.Add(intent.Amount)
	default:
		return rate.Rates{}, fmt.Errorf("could not project %s: %w", intent.Kind, ErrUnsupportedAction)
	}

	return rate.At(s.Curve, rate.Utilization(debt, collateral)), nil
}

// Current returns the rates of the market as it stands.
func Current(s Snapshot) rate.Rates {
	return rate.At(s.Curve, s.Utilization())
}
