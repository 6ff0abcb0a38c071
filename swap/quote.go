package swap

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/optakt/leverage/b"
)

var ErrNoRoute = errors.New("no route available")

// Hop is one pool traversed by a route. Routes are opaque to the engine and
// only handed through to the transaction layer.
type Hop struct {
	PoolID   string `json:"pool_id"`
	DenomOut string `json:"denom_out"`
}

// Quote is a point in time estimate returned by a quoting service. Amounts
// are in base units of their own asset; either may be missing when the
// service could not price the trade.
type Quote struct {
	DenomIn     string
	DenomOut    string
	DecimalsIn  uint8
	DecimalsOut uint8
	AmountIn    decimal.NullDecimal
	AmountOut   decimal.NullDecimal
	Route       []Hop
}

func (q *Quote) Complete() bool {
	return q != nil && q.AmountIn.Valid && q.AmountOut.Valid
}

func (q *Quote) In() decimal.Decimal {
	if q == nil || !q.AmountIn.Valid {
		return b.D0
	}
	return b.Shift(q.AmountIn.Decimal, q.DecimalsIn)
}

func (q *Quote) Out() decimal.Decimal {
	if q == nil || !q.AmountOut.Valid {
		return b.D0
	}
	return b.Shift(q.AmountOut.Decimal, q.DecimalsOut)
}

func Amount(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NewNullDecimal(d)
}
