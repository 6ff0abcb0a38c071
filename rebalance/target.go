package rebalance

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/optakt/leverage/b"
	"github.com/optakt/leverage/position"
	"github.com/optakt/leverage/swap"
)

// Instruction is the swap needed to move a position to a new leverage.
type Instruction struct {
	Direction position.Direction
	Request   swap.Request
}

// Target translates a change of leverage into a directional swap request.
// Going up borrows debt worth the extra exposure and swaps it into
// collateral; going down sells that much collateral to repay debt. The price
// is the value of one collateral unit in debt units.
func Target(p position.Position, target decimal.Decimal, collateral Asset, debt Asset, price decimal.Decimal) (Instruction, error) {

	if target.LessThan(b.D1) {
		return Instruction{}, fmt.Errorf("target leverage %s below 1: %w", target, position.ErrInvalidLeverage)
	}
	if p.Principal.IsNegative() {
		return Instruction{}, fmt.Errorf("negative principal %s: %w", p.Principal, position.ErrInvalidPrincipal)
	}

	direction := position.DirectionOf(p.Leverage, target)
	exposure := p.Principal.Mul(target.Sub(p.Leverage).Abs())

	switch direction {

	case position.Increase:
		borrow := b.Floor(b.Unshift(exposure.Mul(price), debt.Decimals), 0)
		request := swap.Request{
			DenomIn:     debt.Denom,
			DenomOut:    collateral.Denom,
			DecimalsIn:  debt.Decimals,
			DecimalsOut: collateral.Decimals,
			Amount:      borrow,
		}
		return Instruction{Direction: direction, Request: request}, nil

	case position.Decrease:
		sell := b.Floor(b.Unshift(exposure, collateral.Decimals), 0)
		request := swap.Request{
			DenomIn:     collateral.Denom,
			DenomOut:    debt.Denom,
			DecimalsIn:  collateral.Decimals,
			DecimalsOut: debt.Decimals,
			Amount:      sell,
		}
		return Instruction{Direction: direction, Request: request}, nil
	}

	return Instruction{Direction: position.Hold}, nil
}
