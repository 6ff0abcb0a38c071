package swap

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type Coin struct {
	Denom  string          `json:"denom"`
	Amount decimal.Decimal `json:"amount"`
}

// Action describes the swap the transaction layer has to build. The minimum
// receive is binding: the swap reverts below it.
type Action struct {
	CoinIn     Coin            `json:"coin_in"`
	DenomOut   string          `json:"denom_out"`
	Route      []Hop           `json:"route"`
	MinReceive decimal.Decimal `json:"min_receive"`
}

// NewAction builds the swap action for a quote at the given slippage.
func NewAction(q *Quote, slippagePct decimal.Decimal) (Action, error) {
	if !q.Complete() {
		return Action{}, fmt.Errorf("could not build swap action: %w", ErrNoRoute)
	}
	route := make([]Hop, len(q.Route))
	copy(route, q.Route)
	a := Action{
		CoinIn: Coin{
			Denom:  q.DenomIn,
			Amount: q.AmountIn.Decimal,
		},
		DenomOut:   q.DenomOut,
		Route:      route,
		MinReceive: MinReceive(q.AmountOut.Decimal, slippagePct),
	}
	return a, nil
}
