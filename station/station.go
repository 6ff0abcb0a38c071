package station

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/optakt/leverage/market"
	"github.com/optakt/leverage/rate"
)

// Header lists the columns of a market file, in order.
var Header = []string{
	"denom",
	"collateral_total",
	"debt_total",
	"base",
	"optimal",
	"slope1",
	"slope2",
	"reserve_factor",
	"price_usd",
	"decimals",
}

// Station serves market snapshots loaded from a CSV file. Every lookup hands
// out a copy, so callers never share a snapshot.
type Station struct {
	markets map[string]market.Snapshot
}

func New(file string) (*Station, error) {

	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("could not read markets file: %w", err)
	}

	return Parse(data)
}

// Parse reads market snapshots from CSV data with a header row.
func Parse(data []byte) (*Station, error) {

	csvr := csv.NewReader(bytes.NewReader(data))
	csvr.FieldsPerRecord = len(Header)
	csvr.TrimLeadingSpace = true
	records, err := csvr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not read market records: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("markets file has no header")
	}

	markets := make(map[string]market.Snapshot, len(records))
	for i, record := range records[1:] {

		snapshot, err := parseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("could not parse market record %d: %w", i+1, err)
		}

		_, ok := markets[snapshot.Denom]
		if ok {
			return nil, fmt.Errorf("duplicate market %q", snapshot.Denom)
		}

		markets[snapshot.Denom] = snapshot
	}

	s := Station{
		markets: markets,
	}

	return &s, nil
}

// Snapshot returns the market of a denom.
func (s *Station) Snapshot(denom string) (market.Snapshot, error) {
	snapshot, ok := s.markets[denom]
	if !ok {
		return market.Snapshot{}, fmt.Errorf("unknown denom %q: %w", denom, market.ErrMarketNotFound)
	}
	return snapshot, nil
}

// Denoms lists the known markets in lexical order.
func (s *Station) Denoms() []string {
	denoms := make([]string, 0, len(s.markets))
	for denom := range s.markets {
		denoms = append(denoms, denom)
	}
	sort.Strings(denoms)
	return denoms
}

func parseRecord(record []string) (market.Snapshot, error) {

	denom := strings.TrimSpace(record[0])
	if denom == "" {
		return market.Snapshot{}, fmt.Errorf("empty denom")
	}

	values := make([]decimal.Decimal, 8)
	for i := range values {
		column := Header[i+1]
		value, err := decimal.NewFromString(strings.TrimSpace(record[i+1]))
		if err != nil {
			return market.Snapshot{}, fmt.Errorf("could not parse %s: %w", column, err)
		}
		values[i] = value
	}

	decimals, err := strconv.ParseUint(strings.TrimSpace(record[9]), 10, 8)
	if err != nil {
		return market.Snapshot{}, fmt.Errorf("could not parse decimals: %w", err)
	}

	curve := rate.Curve{
		Base:               values[2],
		OptimalUtilization: values[3],
		Slope1:             values[4],
		Slope2:             values[5],
		ReserveFactor:      values[6],
	}
	err = curve.Validate()
	if err != nil {
		return market.Snapshot{}, fmt.Errorf("invalid curve for %s: %w", denom, err)
	}

	snapshot := market.Snapshot{
		Denom:           denom,
		CollateralTotal: values[0],
		DebtTotal:       values[1],
		Curve:           curve,
		PriceUSD:        values[7],
		Decimals:        uint8(decimals),
	}

	return snapshot, nil
}
