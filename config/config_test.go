package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default.Markets, cfg.Markets)
	assert.True(t, cfg.Slippage.Equal(decimal.RequireFromString("0.5")))
	require.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	path := write(t, `
markets: testdata/markets.csv
collateral: stbtc
debt: ubtc
principal: 2.5
target: 3
slippage: 1
pools:
  - id: "1"
    denom0: stbtc
    denom1: ubtc
    reserve0: 1000000000000000000000
    reserve1: 1000000000
    fee_bps: 5
quote:
  quiet: 250ms
  retries: 5
influx:
  url: http://localhost:8086
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "stbtc", cfg.Collateral)
	assert.True(t, cfg.Principal.Equal(decimal.RequireFromString("2.5")))
	assert.True(t, cfg.Target.Equal(decimal.NewFromInt(3)))
	assert.True(t, cfg.Leverage.Equal(decimal.NewFromInt(1)), "unset values keep their default")
	require.Len(t, cfg.Pools, 1)
	assert.True(t, cfg.Pools[0].Reserve0.Equal(decimal.RequireFromString("1000000000000000000000")))
	assert.Equal(t, uint32(5), cfg.Pools[0].FeeBps)
	assert.Equal(t, 250*time.Millisecond, cfg.Quote.Quiet)
	assert.Equal(t, 5, cfg.Quote.Retries)
	assert.Equal(t, Default.Quote.MaxBackoff, cfg.Quote.MaxBackoff)
	assert.Equal(t, "http://localhost:8086", cfg.Influx.URL)
	assert.Equal(t, "leverage", cfg.Influx.Bucket)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(write(t, "principal: [1, 2"))
	assert.Error(t, err)

	_, err = Load(write(t, "principal: abc"))
	assert.Error(t, err)

	_, err = Load(write(t, "debt: ubtc"))
	assert.Error(t, err)

	_, err = Load(write(t, "slippage: 120"))
	assert.Error(t, err)

	_, err = Load(write(t, "pools:\n  - id: x\n    denom0: a\n    denom1: a\n"))
	assert.Error(t, err)
}
