package rebalance

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/optakt/leverage/b"
	"github.com/optakt/leverage/position"
	"github.com/optakt/leverage/swap"
)

var ErrDirectionMismatch = errors.New("quote does not match rebalance direction")

// Plan is the outcome of a rebalance: the resulting balances, in human units,
// and the swap to execute. Action is nil when no route was quoted; the
// balances then stay where they were.
type Plan struct {
	Direction      position.Direction
	NewCollateral  decimal.Decimal
	NewDebt        decimal.Decimal
	PriceImpactPct decimal.Decimal
	MinReceive     decimal.Decimal
	Action         *swap.Action
}

// PlanIncrease plans borrowing more of the debt asset and swapping it into
// collateral. The swapped proceeds are supplied in a follow-up step, so only
// the debt side moves here; the caller reconciles collateral with the quoted
// output.
func PlanIncrease(bal Balances, q *swap.Quote, slippagePct decimal.Decimal) (Plan, error) {

	plan := Plan{
		Direction:      position.Increase,
		NewCollateral:  bal.Supplied,
		NewDebt:        bal.Borrowed,
		PriceImpactPct: b.D0,
		MinReceive:     b.D0,
	}

	if !q.Complete() {
		return plan, nil
	}

	quote, err := orient(q, bal.Debt, bal.Collateral)
	if err != nil {
		return Plan{}, err
	}

	plan.NewDebt = bal.Borrowed.Add(quote.In())

	return finish(plan, quote, slippagePct)
}

// PlanDecrease plans selling collateral into the debt asset and repaying debt
// with the proceeds. Collateral is left as is: the sold amount is withdrawn
// in the same step as the repayment and settled by the protocol.
func PlanDecrease(bal Balances, q *swap.Quote, slippagePct decimal.Decimal) (Plan, error) {

	plan := Plan{
		Direction:      position.Decrease,
		NewCollateral:  bal.Supplied,
		NewDebt:        bal.Borrowed,
		PriceImpactPct: b.D0,
		MinReceive:     b.D0,
	}

	if !q.Complete() {
		return plan, nil
	}

	quote, err := orient(q, bal.Collateral, bal.Debt)
	if err != nil {
		return Plan{}, err
	}

	// Proceeds beyond the outstanding debt are not debt anymore.
	plan.NewDebt = b.Max(bal.Borrowed.Sub(quote.Out()), b.D0)

	return finish(plan, quote, slippagePct)
}

// Rebalance dispatches on the direction of an instruction.
func Rebalance(bal Balances, direction position.Direction, q *swap.Quote, slippagePct decimal.Decimal) (Plan, error) {
	switch direction {
	case position.Increase:
		return PlanIncrease(bal, q, slippagePct)
	case position.Decrease:
		return PlanDecrease(bal, q, slippagePct)
	default:
		plan := Plan{
			Direction:      position.Hold,
			NewCollateral:  bal.Supplied,
			NewDebt:        bal.Borrowed,
			PriceImpactPct: b.D0,
			MinReceive:     b.D0,
		}
		return plan, nil
	}
}

// orient checks the quote goes from one asset to the other and stamps it with
// the decimals of the assets, which are authoritative over whatever the
// quoting service reported.
func orient(q *swap.Quote, from Asset, to Asset) (*swap.Quote, error) {
	if q.DenomIn != "" && q.DenomIn != from.Denom {
		return nil, fmt.Errorf("quote sells %s, expected %s: %w", q.DenomIn, from.Denom, ErrDirectionMismatch)
	}
	if q.DenomOut != "" && q.DenomOut != to.Denom {
		return nil, fmt.Errorf("quote buys %s, expected %s: %w", q.DenomOut, to.Denom, ErrDirectionMismatch)
	}
	oriented := *q
	oriented.DenomIn = from.Denom
	oriented.DenomOut = to.Denom
	oriented.DecimalsIn = from.Decimals
	oriented.DecimalsOut = to.Decimals
	return &oriented, nil
}

func finish(plan Plan, q *swap.Quote, slippagePct decimal.Decimal) (Plan, error) {
	normalized := swap.Normalize(q, slippagePct)
	action, err := swap.NewAction(q, slippagePct)
	if err != nil {
		return Plan{}, err
	}
	plan.PriceImpactPct = normalized.PriceImpactPct
	plan.MinReceive = normalized.MinReceive
	plan.Action = &action
	return plan, nil
}
