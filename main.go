package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"

	"github.com/optakt/leverage/b"
	"github.com/optakt/leverage/config"
	"github.com/optakt/leverage/market"
	"github.com/optakt/leverage/position"
	"github.com/optakt/leverage/quote"
	"github.com/optakt/leverage/rate"
	"github.com/optakt/leverage/rebalance"
	"github.com/optakt/leverage/station"
	"github.com/optakt/leverage/swap"
	"github.com/optakt/leverage/uniswap"
	"github.com/optakt/leverage/withdraw"
	"github.com/optakt/leverage/write"
)

const (
	success = 0
	failure = 1
)

func main() {
	os.Exit(run())
}

func run() int {

	var (
		configPath string
		logLevel   string

		markets    string
		collateral string
		debt       string

		principal string
		leverage  string
		target    string
		maxLTV    string
		slippage  string
		rehedge   string

		withdrawAmount string
		deposited      string

		influxURL   string
		influxToken string
	)

	pflag.StringVarP(&configPath, "config", "c", "", "path to YAML configuration file")
	pflag.StringVarP(&logLevel, "log-level", "l", config.Default.LogLevel, "log output level")

	pflag.StringVarP(&markets, "markets", "m", config.Default.Markets, "CSV file with market snapshots")
	pflag.StringVar(&collateral, "collateral", config.Default.Collateral, "denom of the collateral asset")
	pflag.StringVar(&debt, "debt", config.Default.Debt, "denom of the debt asset")

	pflag.StringVarP(&principal, "principal", "p", config.Default.Principal.String(), "principal in human units of the collateral asset")
	pflag.StringVar(&leverage, "leverage", config.Default.Leverage.String(), "current leverage of the position")
	pflag.StringVarP(&target, "target", "t", config.Default.Target.String(), "target leverage of the position")
	pflag.StringVar(&maxLTV, "max-ltv", config.Default.MaxLTV.String(), "maximum loan-to-value of the collateral market")
	pflag.StringVarP(&slippage, "slippage", "s", config.Default.Slippage.String(), "slippage tolerance in percent")
	pflag.StringVar(&rehedge, "rehedge-ratio", config.Default.Rehedge.String(), "leverage drift ratio at which we rebalance")

	pflag.StringVarP(&withdrawAmount, "withdraw", "w", "", "amount of collateral to withdraw, in human units")
	pflag.StringVar(&deposited, "deposited", "0", "collateral deposited by the user, in base units")

	pflag.StringVar(&influxURL, "influx-url", "", "InfluxDB server URL; points are only written when set")
	pflag.StringVar(&influxToken, "influx-token", "", "InfluxDB authentication token")

	pflag.Parse()

	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Error().Err(err).Str("config", configPath).Msg("could not load configuration")
		return failure
	}

	err = override(&cfg, map[string]string{
		"log-level":     logLevel,
		"markets":       markets,
		"collateral":    collateral,
		"debt":          debt,
		"principal":     principal,
		"leverage":      leverage,
		"target":        target,
		"max-ltv":       maxLTV,
		"slippage":      slippage,
		"rehedge-ratio": rehedge,
		"withdraw":      withdrawAmount,
		"deposited":     deposited,
		"influx-url":    influxURL,
		"influx-token":  influxToken,
	})
	if err != nil {
		log.Error().Err(err).Msg("invalid command line arguments")
		return failure
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Error().Err(err).Str("level", cfg.LogLevel).Msg("could not parse log level")
		return failure
	}
	log = log.Level(level)

	err = cfg.Validate()
	if err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		return failure
	}

	source, err := station.New(cfg.Markets)
	if err != nil {
		log.Error().Err(err).Str("markets", cfg.Markets).Msg("could not load markets")
		return failure
	}

	log.Info().Strs("denoms", source.Denoms()).Msg("markets loaded")

	var outbound api.WriteAPI
	if cfg.Influx.URL != "" {
		client := influxdb2.NewClient(cfg.Influx.URL, cfg.Influx.Token)
		defer client.Close()
		outbound = client.WriteAPI(cfg.Influx.Org, cfg.Influx.Bucket)
		defer outbound.Flush()
		go func() {
			for err := range outbound.Errors() {
				log.Warn().Err(err).Msg("could not write point")
			}
		}()
	}

	sim := simulator{
		log:      log,
		cfg:      cfg,
		source:   source,
		outbound: outbound,
		now:      time.Now().UTC(),
	}

	err = sim.run(context.Background())
	if err != nil {
		log.Error().Err(err).Msg("simulation failed")
		return failure
	}

	return success
}

// override applies the flags that were set explicitly on top of the file
// configuration.
func override(cfg *config.Config, values map[string]string) error {

	decimals := map[string]*decimal.Decimal{
		"principal":     &cfg.Principal,
		"leverage":      &cfg.Leverage,
		"target":        &cfg.Target,
		"max-ltv":       &cfg.MaxLTV,
		"slippage":      &cfg.Slippage,
		"rehedge-ratio": &cfg.Rehedge,
		"deposited":     &cfg.Deposited,
	}
	strings := map[string]*string{
		"log-level":    &cfg.LogLevel,
		"markets":      &cfg.Markets,
		"collateral":   &cfg.Collateral,
		"debt":         &cfg.Debt,
		"withdraw":     &cfg.Withdraw,
		"influx-url":   &cfg.Influx.URL,
		"influx-token": &cfg.Influx.Token,
	}

	for name, value := range values {
		if !pflag.CommandLine.Changed(name) {
			continue
		}
		if target, ok := strings[name]; ok {
			*target = value
			continue
		}
		d, err := b.FromString(value)
		if err != nil {
			return fmt.Errorf("could not parse --%s: %w", name, err)
		}
		*decimals[name] = d
	}

	return nil
}

type simulator struct {
	log      zerolog.Logger
	cfg      config.Config
	source   market.Source
	outbound api.WriteAPI
	now      time.Time
}

func (s *simulator) run(ctx context.Context) error {

	collateral, err := s.source.Snapshot(s.cfg.Collateral)
	if err != nil {
		return fmt.Errorf("could not get collateral market: %w", err)
	}
	debt, err := s.source.Snapshot(s.cfg.Debt)
	if err != nil {
		return fmt.Errorf("could not get debt market: %w", err)
	}

	limit, err := position.MaxLeverage(s.cfg.MaxLTV)
	if err != nil {
		return fmt.Errorf("could not compute maximum leverage: %w", err)
	}
	err = position.CheckLeverage(s.cfg.Target, limit)
	if err != nil {
		return fmt.Errorf("target leverage rejected: %w", err)
	}

	current, err := position.New(s.cfg.Principal, s.cfg.Leverage)
	if err != nil {
		return fmt.Errorf("could not build position: %w", err)
	}

	// The position adds its whole exposure to the collateral market and its
	// borrowed part to the debt market.
	price := b.Div(collateral.PriceUSD, debt.PriceUSD)
	metrics, err := s.project(collateral, debt, s.cfg.Target, price)
	if err != nil {
		return err
	}

	targeted, err := position.New(s.cfg.Principal, s.cfg.Target)
	if err != nil {
		return fmt.Errorf("could not build target position: %w", err)
	}

	s.log.Info().
		Str("max_leverage", limit.String()).
		Str("borrow", metrics.BorrowAmount.String()).
		Str("total", metrics.TotalPosition.String()).
		Str("leveraged_apy", s.percent(metrics.LeveragedAPY)).
		Str("spread", s.percent(metrics.YieldSpread)).
		Str("earnings", humanize.CommafWithDigits(metrics.EstimatedYearlyEarnings.InexactFloat64(), int(s.cfg.Places))).
		Msg("position projected")

	if s.outbound != nil {
		write.PositionPoint(s.now, collateral.Denom, targeted, metrics, s.outbound)
	}

	drift := position.Drift(current, s.cfg.Rehedge)
	if drift != position.Hold {
		s.log.Warn().Str("direction", drift.String()).Str("live_leverage", current.CurrentLeverage().String()).Msg("position drifted out of band")
	}

	err = s.rebalance(ctx, current, collateral, debt, price)
	if err != nil {
		return err
	}

	if s.cfg.Withdraw != "" {
		s.withdraw(collateral)
	}

	return nil
}

func (s *simulator) project(collateral market.Snapshot, debt market.Snapshot, leverage decimal.Decimal, price decimal.Decimal) (position.Metrics, error) {

	for _, snapshot := range []market.Snapshot{collateral, debt} {
		rates := market.Current(snapshot)
		s.log.Debug().
			Str("denom", snapshot.Denom).
			Str("utilization", s.percent(rates.Utilization)).
			Str("borrow_apy", s.percent(rates.BorrowAPY)).
			Str("supply_apy", s.percent(rates.SupplyAPY)).
			Str("liquidity", snapshot.Liquidity().String()).
			Msg("current market rates")
	}

	exposure := b.Floor(b.Unshift(s.cfg.Principal.Mul(leverage), collateral.Decimals), 0)
	borrowed := b.Floor(b.Unshift(s.cfg.Principal.Mul(leverage.Sub(b.D1)).Mul(price), debt.Decimals), 0)

	supplied, err := market.Project(collateral, market.Intent{Kind: market.Deposit, Amount: exposure})
	if err != nil {
		return position.Metrics{}, fmt.Errorf("could not project deposit: %w", err)
	}
	owed, err := market.Project(debt, market.Intent{Kind: market.Borrow, Amount: borrowed})
	if err != nil {
		return position.Metrics{}, fmt.Errorf("could not project borrow: %w", err)
	}

	s.log.Info().
		Str("denom", collateral.Denom).
		Str("utilization", s.percent(supplied.Utilization)).
		Str("supply_apy", s.percent(supplied.SupplyAPY)).
		Msg("deposit projected")
	s.log.Info().
		Str("denom", debt.Denom).
		Str("utilization", s.percent(owed.Utilization)).
		Str("borrow_apy", s.percent(owed.BorrowAPY)).
		Msg("borrow projected")

	if s.outbound != nil {
		write.ProjectionPoint(s.now, collateral, market.Deposit.String(), supplied, s.outbound)
		write.ProjectionPoint(s.now, debt, market.Borrow.String(), owed, s.outbound)
	}

	metrics, err := position.Compute(s.cfg.Principal, leverage, supplied.SupplyAPY, owed.BorrowAPY)
	if err != nil {
		return position.Metrics{}, fmt.Errorf("could not compute position: %w", err)
	}

	return metrics, nil
}

func (s *simulator) rebalance(ctx context.Context, current position.Position, collateral market.Snapshot, debt market.Snapshot, price decimal.Decimal) error {

	collateralAsset := rebalance.Asset{Denom: collateral.Denom, Decimals: collateral.Decimals}
	debtAsset := rebalance.Asset{Denom: debt.Denom, Decimals: debt.Decimals}

	instruction, err := rebalance.Target(current, s.cfg.Target, collateralAsset, debtAsset, price)
	if err != nil {
		return fmt.Errorf("could not translate leverage change: %w", err)
	}
	if instruction.Direction == position.Hold {
		s.log.Info().Msg("position already at target leverage")
		return nil
	}

	decimals := map[string]uint8{
		collateral.Denom: collateral.Decimals,
		debt.Denom:       debt.Decimals,
	}
	pools := make([]uniswap.Pool, 0, len(s.cfg.Pools))
	for _, pool := range s.cfg.Pools {
		fee := pool.FeeBps
		if fee == 0 {
			fee = uniswap.DefaultFeeBps
		}
		pools = append(pools, uniswap.Pool{
			ID:        pool.ID,
			Denom0:    pool.Denom0,
			Denom1:    pool.Denom1,
			Decimals0: decimals[pool.Denom0],
			Decimals1: decimals[pool.Denom1],
			Reserve0:  pool.Reserve0,
			Reserve1:  pool.Reserve1,
			FeeBps:    fee,
		})
	}

	router := uniswap.NewRouter(pools...)
	pool, routed := router.Pool(instruction.Request.DenomIn, instruction.Request.DenomOut)
	if routed {
		spot := pool.Price(collateral.Denom)
		deviation := b.SafeDiv(spot.Sub(price), price, b.D0).Mul(b.D100)
		if deviation.Abs().GreaterThan(s.cfg.Slippage) {
			s.log.Warn().
				Str("pool", pool.ID).
				Str("pool_price", spot.String()).
				Str("market_price", price.String()).
				Str("deviation", rate.Display(deviation, s.cfg.Places).String()+"%").
				Msg("pool price deviates from market price")
		}
	}

	// Selling collateral has to repay the debt share exactly, so the sale is
	// sized on the pool rather than at the market price.
	if routed && instruction.Direction == position.Decrease {
		repay := b.Floor(b.Unshift(b.Shift(instruction.Request.Amount, collateral.Decimals).Mul(price), debt.Decimals), 0)
		sell, err := pool.AmountIn(instruction.Request.DenomIn, repay)
		if err != nil {
			return fmt.Errorf("could not size collateral sale: %w", err)
		}
		instruction.Request.Amount = sell
	}

	boundary := quote.NewBoundary(s.log, router, s.cfg.Quote)
	stamped, err := boundary.Fetch(ctx, instruction.Request)
	if err != nil {
		return fmt.Errorf("could not fetch quote: %w", err)
	}
	if !stamped.Answers(instruction.Request) {
		return fmt.Errorf("quote answers %s/%s, not the pending request", stamped.Request.DenomIn, stamped.Request.DenomOut)
	}
	err = quote.CheckFresh(stamped, time.Now().UTC(), s.cfg.Quote.MaxAge)
	if err != nil {
		return fmt.Errorf("could not use quote: %w", err)
	}

	balances := rebalance.FromPosition(current, collateralAsset, debtAsset, price)
	plan, err := rebalance.Rebalance(balances, instruction.Direction, stamped.Quote, s.cfg.Slippage)
	if err != nil {
		return fmt.Errorf("could not plan rebalance: %w", err)
	}

	// The quote trades one asset for another, so its impact is taken against
	// the pool's spot price rather than unit for unit.
	if routed {
		plan.PriceImpactPct = pool.PriceImpact(stamped.Quote)
	}

	normalized := swap.Normalize(stamped.Quote, s.cfg.Slippage)
	if !normalized.Available {
		s.log.Warn().
			Str("denom_in", instruction.Request.DenomIn).
			Str("denom_out", instruction.Request.DenomOut).
			Msg("no route available")
	}

	settled := rebalance.Balances{
		Collateral: collateralAsset,
		Debt:       debtAsset,
		Supplied:   plan.NewCollateral,
		Borrowed:   plan.NewDebt,
	}.Position(current.Principal, s.cfg.Target, price)

	s.log.Info().
		Str("direction", plan.Direction.String()).
		Str("amount_in", instruction.Request.Amount.String()).
		Str("new_collateral", plan.NewCollateral.String()).
		Str("new_debt", plan.NewDebt.String()).
		Str("price_impact", rate.Display(plan.PriceImpactPct, s.cfg.Places).String()+"%").
		Str("min_receive", normalized.MinReceiveDisplay.String()).
		Str("leverage_after", settled.CurrentLeverage().StringFixed(s.cfg.Places)).
		Bool("routed", plan.Action != nil).
		Msg("rebalance planned")

	if s.outbound != nil {
		write.PlanPoint(s.now, balances, plan, s.outbound)
	}

	return nil
}

func (s *simulator) withdraw(collateral market.Snapshot) {

	result := withdraw.Validate(s.cfg.Withdraw, &collateral, s.cfg.Deposited)

	switch {

	case errors.Is(result.Err, b.ErrInvalidAmountFormat):
		s.log.Error().Err(result.Err).Str("amount", s.cfg.Withdraw).Msg("invalid withdrawal amount")

	case result.Err != nil:
		s.log.Error().Err(result.Err).Msg("could not validate withdrawal")

	case !result.Valid:
		s.log.Warn().
			Str("amount", s.cfg.Withdraw).
			Str("max", result.MaxWithdrawable.String()).
			Str("reason", result.Reason.String()).
			Msg("withdrawal rejected")

	default:
		s.log.Info().
			Str("amount", s.cfg.Withdraw).
			Str("max", result.MaxWithdrawable.String()).
			Msg("withdrawal accepted")
	}
}

func (s *simulator) percent(x decimal.Decimal) string {
	return rate.Display(x.Mul(b.D100), s.cfg.Places).String() + "%"
}
