package uniswap

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/optakt/leverage/b"
	"github.com/optakt/leverage/swap"
)

// DefaultFeeBps is the 0.3% swap fee of Uniswap v2 pairs.
const DefaultFeeBps = 30

// Pool is a constant product pair. Reserves are in base units.
type Pool struct {
	ID        string
	Denom0    string
	Denom1    string
	Decimals0 uint8
	Decimals1 uint8
	Reserve0  decimal.Decimal
	Reserve1  decimal.Decimal
	FeeBps    uint32
}

func (p Pool) Has(denomIn string, denomOut string) bool {
	return (p.Denom0 == denomIn && p.Denom1 == denomOut) || (p.Denom1 == denomIn && p.Denom0 == denomOut)
}

// Reserves returns the reserves and decimals oriented for a trade selling
// denomIn.
func (p Pool) Reserves(denomIn string) (reserveIn decimal.Decimal, reserveOut decimal.Decimal, decimalsIn uint8, decimalsOut uint8) {
	if denomIn == p.Denom0 {
		return p.Reserve0, p.Reserve1, p.Decimals0, p.Decimals1
	}
	return p.Reserve1, p.Reserve0, p.Decimals1, p.Decimals0
}

// Price is the spot price of one human unit of denomIn in human units of the
// other asset.
func (p Pool) Price(denomIn string) decimal.Decimal {
	reserveIn, reserveOut, decimalsIn, decimalsOut := p.Reserves(denomIn)
	return b.Div(b.Shift(reserveOut, decimalsOut), b.Shift(reserveIn, decimalsIn))
}

type Router struct {
	pools []Pool
}

func NewRouter(pools ...Pool) *Router {
	r := Router{
		pools: pools,
	}
	return &r
}

func (r *Router) Pool(denomIn string, denomOut string) (Pool, bool) {
	for _, pool := range r.pools {
		if pool.Has(denomIn, denomOut) {
			return pool, true
		}
	}
	return Pool{}, false
}

func (r *Router) SwapQuote(ctx context.Context, req swap.Request) (*swap.Quote, error) {

	err := ctx.Err()
	if err != nil {
		return nil, err
	}

	pool, ok := r.Pool(req.DenomIn, req.DenomOut)
	if !ok {
		return nil, fmt.Errorf("could not find pool for %s/%s: %w", req.DenomIn, req.DenomOut, swap.ErrNoRoute)
	}

	reserveIn, reserveOut, decimalsIn, decimalsOut := pool.Reserves(req.DenomIn)
	if reserveIn.IsZero() || reserveOut.IsZero() {
		return nil, fmt.Errorf("pool %s is empty: %w", pool.ID, swap.ErrNoRoute)
	}

	amountOut := GetAmountOut(req.Amount, reserveIn, reserveOut, pool.FeeBps)

	q := swap.Quote{
		DenomIn:     req.DenomIn,
		DenomOut:    req.DenomOut,
		DecimalsIn:  decimalsIn,
		DecimalsOut: decimalsOut,
		AmountIn:    swap.Amount(req.Amount),
		AmountOut:   swap.Amount(amountOut),
		Route:       []swap.Hop{{PoolID: pool.ID, DenomOut: req.DenomOut}},
	}

	return &q, nil
}

// Nominal values amountIn of denomIn in base units of the other asset at the
// spot price, before fees and depth.
func (p Pool) Nominal(denomIn string, amountIn decimal.Decimal) decimal.Decimal {
	reserveIn, reserveOut, _, _ := p.Reserves(denomIn)
	return Quote(amountIn, reserveIn, reserveOut)
}

// AmountIn is how much of denomIn has to be sold to receive exactly amountOut
// of the other asset.
func (p Pool) AmountIn(denomIn string, amountOut decimal.Decimal) (decimal.Decimal, error) {
	reserveIn, reserveOut, _, _ := p.Reserves(denomIn)
	amountIn, err := GetAmountIn(amountOut, reserveIn, reserveOut, p.FeeBps)
	if err != nil {
		return decimal.Zero, fmt.Errorf("could not size %s sale in pool %s: %w", denomIn, p.ID, err)
	}
	return amountIn, nil
}

// PriceImpact measures a quote against the pool's spot price, so both sides
// are in units of the output asset.
func (p Pool) PriceImpact(q *swap.Quote) decimal.Decimal {
	if !q.Complete() {
		return b.D0
	}
	nominal := p.Nominal(q.DenomIn, q.AmountIn.Decimal)
	return swap.PriceImpact(nominal, q.DecimalsOut, q.AmountOut.Decimal, q.DecimalsOut)
}
