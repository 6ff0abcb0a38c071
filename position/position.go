package position

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/optakt/leverage/b"
)

var (
	ErrInvalidLeverage  = errors.New("invalid leverage")
	ErrInvalidPrincipal = errors.New("invalid principal")
	ErrInvalidLTV       = errors.New("invalid loan-to-value")
)

// Position is a looped position: the principal was deposited, debt was
// borrowed against it and swapped into more collateral. Collateral and debt
// are both valued in the collateral asset.
type Position struct {
	Principal  decimal.Decimal
	Leverage   decimal.Decimal
	Collateral decimal.Decimal
	Debt       decimal.Decimal
}

// New builds a position sitting exactly at its target leverage.
func New(principal decimal.Decimal, leverage decimal.Decimal) (Position, error) {
	err := check(principal, leverage)
	if err != nil {
		return Position{}, err
	}
	p := Position{
		Principal:  principal,
		Leverage:   leverage,
		Collateral: principal.Mul(leverage),
		Debt:       principal.Mul(leverage.Sub(b.D1)),
	}
	return p, nil
}

// InTarget tells whether collateral and debt match the principal at the
// target leverage, i.e. the position is not halfway through a rebalance.
func (p Position) InTarget() bool {
	collateral := p.Principal.Mul(p.Leverage)
	debt := p.Principal.Mul(p.Leverage.Sub(b.D1))
	return p.Collateral.Equal(collateral) && p.Debt.Equal(debt)
}

func (p Position) Equity() decimal.Decimal {
	return p.Collateral.Sub(p.Debt)
}

// CurrentLeverage is the live ratio of collateral to equity. An underwater
// position has no meaningful leverage and reports zero.
func (p Position) CurrentLeverage() decimal.Decimal {
	equity := p.Equity()
	if !equity.IsPositive() {
		return b.D0
	}
	return b.Div(p.Collateral, equity)
}

// CheckLeverage verifies that a requested leverage sits within [1, max].
func CheckLeverage(leverage decimal.Decimal, max decimal.Decimal) error {
	if leverage.LessThan(b.D1) {
		return fmt.Errorf("leverage %s below 1: %w", leverage, ErrInvalidLeverage)
	}
	if leverage.GreaterThan(max) {
		return fmt.Errorf("leverage %s above maximum %s: %w", leverage, max, ErrInvalidLeverage)
	}
	return nil
}

func check(principal decimal.Decimal, leverage decimal.Decimal) error {
	if principal.IsNegative() {
		return fmt.Errorf("negative principal %s: %w", principal, ErrInvalidPrincipal)
	}
	if leverage.LessThan(b.D1) {
		return fmt.Errorf("leverage %s below 1: %w", leverage, ErrInvalidLeverage)
	}
	return nil
}
