package rebalance

import (
	"github.com/shopspring/decimal"

	"github.com/optakt/leverage/b"
	"github.com/optakt/leverage/position"
)

// Asset identifies one side of a looped position.
type Asset struct {
	Denom    string
	Decimals uint8
}

// Balances are the on-chain balances of a looped position, each in human
// units of its own asset.
type Balances struct {
	Collateral Asset
	Debt       Asset
	Supplied   decimal.Decimal
	Borrowed   decimal.Decimal
}

// FromPosition expresses a position valued in the collateral asset as asset
// balances, given the price of one collateral unit in debt units.
func FromPosition(p position.Position, collateral Asset, debt Asset, price decimal.Decimal) Balances {
	return Balances{
		Collateral: collateral,
		Debt:       debt,
		Supplied:   p.Collateral,
		Borrowed:   p.Debt.Mul(price),
	}
}

// Position values the balances in the collateral asset again.
func (bal Balances) Position(principal decimal.Decimal, target decimal.Decimal, price decimal.Decimal) position.Position {
	return position.Position{
		Principal:  principal,
		Leverage:   target,
		Collateral: bal.Supplied,
		Debt:       b.SafeDiv(bal.Borrowed, price, b.D0),
	}
}
