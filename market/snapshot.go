package market

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/optakt/leverage/b"
	"github.com/optakt/leverage/rate"
)

var ErrMarketNotFound = errors.New("market not found")

// Snapshot is the state of one money market at the time it was fetched.
// Totals are expressed in the smallest unit of the asset.
type Snapshot struct {
	Denom           string
	CollateralTotal decimal.Decimal
	DebtTotal       decimal.Decimal
	Curve           rate.Curve
	PriceUSD        decimal.Decimal
	Decimals        uint8
}

// Source supplies the latest snapshot known for a denom.
type Source interface {
	Snapshot(denom string) (Snapshot, error)
}

// Liquidity is the amount that can still leave the pool, in base units. It
// is never negative even when upstream totals are inconsistent.
func (s Snapshot) Liquidity() decimal.Decimal {
	return b.Max(s.CollateralTotal.Sub(s.DebtTotal), b.D0)
}

func (s Snapshot) Utilization() decimal.Decimal {
	return rate.Utilization(s.DebtTotal, s.CollateralTotal)
}

func (s Snapshot) ValueUSD(amount decimal.Decimal) decimal.Decimal {
	return b.Shift(amount, s.Decimals).Mul(s.PriceUSD)
}
