package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/optakt/leverage/quote"
)

// Config holds everything the simulator needs besides the markets file.
type Config struct {
	Markets    string `yaml:"markets"`
	Collateral string `yaml:"collateral"`
	Debt       string `yaml:"debt"`

	Principal decimal.Decimal `yaml:"principal"`
	Leverage  decimal.Decimal `yaml:"leverage"`
	Target    decimal.Decimal `yaml:"target"`
	MaxLTV    decimal.Decimal `yaml:"max_ltv"`
	Slippage  decimal.Decimal `yaml:"slippage"`
	Rehedge   decimal.Decimal `yaml:"rehedge"`
	Places    int32           `yaml:"places"`

	Withdraw  string          `yaml:"withdraw"`
	Deposited decimal.Decimal `yaml:"deposited"`

	Pools  []Pool       `yaml:"pools"`
	Quote  quote.Config `yaml:"quote"`
	Influx Influx       `yaml:"influx"`

	LogLevel string `yaml:"log_level"`
}

// Pool is a constant product pair used to quote swaps. Reserves are in base
// units; decimals are taken from the markets of both denoms.
type Pool struct {
	ID       string          `yaml:"id"`
	Denom0   string          `yaml:"denom0"`
	Denom1   string          `yaml:"denom1"`
	Reserve0 decimal.Decimal `yaml:"reserve0"`
	Reserve1 decimal.Decimal `yaml:"reserve1"`
	FeeBps   uint32          `yaml:"fee_bps"`
}

// Influx is where simulation points are written. Points are only written
// when URL is set.
type Influx struct {
	URL    string `yaml:"url"`
	Token  string `yaml:"token"`
	Org    string `yaml:"org"`
	Bucket string `yaml:"bucket"`
}

var Default = Config{
	Markets:    "markets.csv",
	Collateral: "ubtc",
	Debt:       "uusdc",
	Principal:  decimal.NewFromInt(1),
	Leverage:   decimal.NewFromInt(1),
	Target:     decimal.NewFromInt(2),
	MaxLTV:     decimal.RequireFromString("0.8"),
	Slippage:   decimal.RequireFromString("0.5"),
	Rehedge:    decimal.RequireFromString("0.01"),
	Places:     4,
	Quote:      quote.DefaultConfig,
	Influx: Influx{
		Org:    "optakt",
		Bucket: "leverage",
	},
	LogLevel: "info",
}

// Load reads the configuration file at path on top of the defaults. An empty
// path returns the defaults.
func Load(path string) (Config, error) {

	cfg := Default
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("could not read config file: %w", err)
	}

	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("could not parse config file: %w", err)
	}

	err = cfg.Validate()
	if err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks values that would make every later step fail.
func (c Config) Validate() error {
	if c.Markets == "" {
		return fmt.Errorf("missing markets file")
	}
	if c.Collateral == "" || c.Debt == "" {
		return fmt.Errorf("missing collateral or debt denom")
	}
	if c.Collateral == c.Debt {
		return fmt.Errorf("collateral and debt are both %q", c.Collateral)
	}
	if c.Slippage.IsNegative() || c.Slippage.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("slippage %s outside [0,100]", c.Slippage)
	}
	if c.Rehedge.IsNegative() {
		return fmt.Errorf("negative rehedge ratio %s", c.Rehedge)
	}
	if c.Places < 0 {
		return fmt.Errorf("negative display places %d", c.Places)
	}
	for _, pool := range c.Pools {
		if pool.Denom0 == "" || pool.Denom1 == "" || pool.Denom0 == pool.Denom1 {
			return fmt.Errorf("pool %q needs two distinct denoms", pool.ID)
		}
		if pool.Reserve0.IsNegative() || pool.Reserve1.IsNegative() {
			return fmt.Errorf("pool %q has negative reserves", pool.ID)
		}
	}
	return nil
}
