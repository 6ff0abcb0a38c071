package rebalance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optakt/leverage/b"
	"github.com/optakt/leverage/position"
	"github.com/optakt/leverage/swap"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var (
	wbtc = Asset{Denom: "wbtc", Decimals: 18}
	usdc = Asset{Denom: "uusdc", Decimals: 6}
)

func balances() Balances {
	return Balances{
		Collateral: wbtc,
		Debt:       usdc,
		Supplied:   dec("2"),
		Borrowed:   dec("60000"),
	}
}

func TestPlanIncrease(t *testing.T) {
	q := &swap.Quote{
		DenomIn:   "uusdc",
		DenomOut:  "wbtc",
		AmountIn:  swap.Amount(dec("30000000000")),
		AmountOut: swap.Amount(dec("500000000000000000")),
		Route:     []swap.Hop{{PoolID: "7", DenomOut: "wbtc"}},
	}

	plan, err := PlanIncrease(balances(), q, dec("1"))
	require.NoError(t, err)

	assert.Equal(t, position.Increase, plan.Direction)
	assert.True(t, plan.NewDebt.Equal(dec("90000")), "got %s", plan.NewDebt)
	assert.True(t, plan.NewCollateral.Equal(dec("2")))
	assert.True(t, plan.MinReceive.Equal(dec("495000000000000000")))
	require.NotNil(t, plan.Action)
	assert.Equal(t, "uusdc", plan.Action.CoinIn.Denom)
	assert.Equal(t, "wbtc", plan.Action.DenomOut)
	assert.True(t, plan.Action.MinReceive.Equal(plan.MinReceive))
}

func TestPlanDecrease(t *testing.T) {
	q := &swap.Quote{
		DenomIn:   "wbtc",
		DenomOut:  "uusdc",
		AmountIn:  swap.Amount(dec("500000000000000000")),
		AmountOut: swap.Amount(dec("29900000000")),
	}

	plan, err := PlanDecrease(balances(), q, dec("0.5"))
	require.NoError(t, err)

	assert.Equal(t, position.Decrease, plan.Direction)
	assert.True(t, plan.NewDebt.Equal(dec("30100")), "got %s", plan.NewDebt)
	assert.True(t, plan.NewCollateral.Equal(dec("2")))
	assert.True(t, plan.MinReceive.Equal(dec("29750500000")))
}

func TestPlanDecreaseRepaysAll(t *testing.T) {
	q := &swap.Quote{
		AmountIn:  swap.Amount(dec("3000000000000000000")),
		AmountOut: swap.Amount(dec("90000000000")),
	}
	plan, err := PlanDecrease(balances(), q, b.D0)
	require.NoError(t, err)
	assert.True(t, plan.NewDebt.IsZero())
	assert.True(t, plan.MinReceive.Equal(dec("90000000000")))
}

func TestPlanUsesAssetDecimals(t *testing.T) {
	same := Balances{
		Collateral: Asset{Denom: "stbtc", Decimals: 18},
		Debt:       Asset{Denom: "ubtc", Decimals: 6},
		Supplied:   dec("3"),
		Borrowed:   dec("2"),
	}

	// The quoting service got the decimals wrong; the assets decide.
	q := &swap.Quote{
		DenomIn:     "ubtc",
		DenomOut:    "stbtc",
		DecimalsIn:  18,
		DecimalsOut: 18,
		AmountIn:    swap.Amount(dec("1000000")),
		AmountOut:   swap.Amount(dec("1000000000000000000")),
	}

	plan, err := PlanIncrease(same, q, b.D0)
	require.NoError(t, err)
	assert.True(t, plan.PriceImpactPct.IsZero(), "got %s", plan.PriceImpactPct)
	assert.True(t, plan.NewDebt.Equal(dec("3")), "got %s", plan.NewDebt)
}

func TestPlanWithoutQuote(t *testing.T) {
	plan, err := PlanIncrease(balances(), nil, dec("1"))
	require.NoError(t, err)
	assert.Nil(t, plan.Action)
	assert.True(t, plan.NewDebt.Equal(dec("60000")))
	assert.True(t, plan.PriceImpactPct.IsZero())

	plan, err = PlanDecrease(balances(), &swap.Quote{AmountIn: swap.Amount(dec("1"))}, dec("1"))
	require.NoError(t, err)
	assert.Nil(t, plan.Action)
	assert.True(t, plan.NewDebt.Equal(dec("60000")))
}

func TestPlanZeroInput(t *testing.T) {
	q := &swap.Quote{AmountIn: swap.Amount(b.D0), AmountOut: swap.Amount(b.D0)}
	plan, err := PlanIncrease(balances(), q, dec("1"))
	require.NoError(t, err)
	assert.True(t, plan.PriceImpactPct.IsZero())
	assert.True(t, plan.NewDebt.Equal(dec("60000")))
}

func TestPlanDirectionMismatch(t *testing.T) {
	q := &swap.Quote{
		DenomIn:   "wbtc",
		DenomOut:  "uusdc",
		AmountIn:  swap.Amount(dec("1")),
		AmountOut: swap.Amount(dec("1")),
	}
	_, err := PlanIncrease(balances(), q, dec("1"))
	assert.ErrorIs(t, err, ErrDirectionMismatch)

	q.DenomIn, q.DenomOut = "uusdc", "wbtc"
	_, err = PlanDecrease(balances(), q, dec("1"))
	assert.ErrorIs(t, err, ErrDirectionMismatch)
}

func TestRebalance(t *testing.T) {
	q := &swap.Quote{AmountIn: swap.Amount(dec("1000000")), AmountOut: swap.Amount(dec("16000000000000"))}

	plan, err := Rebalance(balances(), position.Increase, q, dec("1"))
	require.NoError(t, err)
	assert.Equal(t, position.Increase, plan.Direction)

	plan, err = Rebalance(balances(), position.Hold, q, dec("1"))
	require.NoError(t, err)
	assert.Equal(t, position.Hold, plan.Direction)
	assert.Nil(t, plan.Action)
	assert.True(t, plan.NewDebt.Equal(dec("60000")))
}

func TestTarget(t *testing.T) {
	p, err := position.New(dec("1"), dec("2"))
	require.NoError(t, err)
	price := dec("60000")

	up, err := Target(p, dec("3"), wbtc, usdc, price)
	require.NoError(t, err)
	assert.Equal(t, position.Increase, up.Direction)
	assert.Equal(t, "uusdc", up.Request.DenomIn)
	assert.Equal(t, "wbtc", up.Request.DenomOut)
	assert.Equal(t, uint8(6), up.Request.DecimalsIn)
	assert.True(t, up.Request.Amount.Equal(dec("60000000000")), "got %s", up.Request.Amount)

	down, err := Target(p, dec("1.5"), wbtc, usdc, price)
	require.NoError(t, err)
	assert.Equal(t, position.Decrease, down.Direction)
	assert.Equal(t, "wbtc", down.Request.DenomIn)
	assert.True(t, down.Request.Amount.Equal(dec("500000000000000000")), "got %s", down.Request.Amount)

	hold, err := Target(p, dec("2"), wbtc, usdc, price)
	require.NoError(t, err)
	assert.Equal(t, position.Hold, hold.Direction)
	assert.True(t, hold.Request.Amount.IsZero())

	_, err = Target(p, dec("0.5"), wbtc, usdc, price)
	assert.ErrorIs(t, err, position.ErrInvalidLeverage)
}

func TestBalancesRoundTrip(t *testing.T) {
	p, err := position.New(dec("1"), dec("2"))
	require.NoError(t, err)
	price := dec("60000")

	bal := FromPosition(p, wbtc, usdc, price)
	assert.True(t, bal.Supplied.Equal(dec("2")))
	assert.True(t, bal.Borrowed.Equal(dec("60000")))

	back := bal.Position(p.Principal, p.Leverage, price)
	assert.True(t, back.InTarget())
}
