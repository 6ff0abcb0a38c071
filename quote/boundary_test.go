package quote

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optakt/leverage/swap"
)

type fakeQuoter struct {
	calls    int32
	failures int32
	err      error
}

func (f *fakeQuoter) SwapQuote(ctx context.Context, req swap.Request) (*swap.Quote, error) {
	call := atomic.AddInt32(&f.calls, 1)
	if call <= f.failures {
		return nil, f.err
	}
	q := swap.Quote{
		DenomIn:   req.DenomIn,
		DenomOut:  req.DenomOut,
		AmountIn:  swap.Amount(req.Amount),
		AmountOut: swap.Amount(req.Amount.Mul(decimal.NewFromInt(2))),
	}
	return &q, nil
}

func testConfig() Config {
	cfg := DefaultConfig
	cfg.Quiet = 200 * time.Millisecond
	cfg.Rate = 0
	cfg.MinBackoff = time.Millisecond
	cfg.MaxBackoff = 5 * time.Millisecond
	return cfg
}

func request(amount int64) swap.Request {
	return swap.Request{DenomIn: "uusdc", DenomOut: "wbtc", Amount: decimal.NewFromInt(amount)}
}

func TestBoundaryFetch(t *testing.T) {
	quoter := &fakeQuoter{}
	b := NewBoundary(zerolog.Nop(), quoter, testConfig())

	stamped, err := b.Fetch(context.Background(), request(10))
	require.NoError(t, err)
	require.NotNil(t, stamped.Quote)
	assert.True(t, stamped.Quote.AmountOut.Decimal.Equal(decimal.NewFromInt(20)))
	assert.True(t, stamped.Answers(request(10)))
	assert.False(t, stamped.Answers(request(11)))
	assert.False(t, stamped.FetchedAt.IsZero())
	assert.Equal(t, int32(1), atomic.LoadInt32(&quoter.calls))
}

// started waits until the boundary has registered the n-th request.
func started(t *testing.T, b *Boundary, n int) {
	t.Helper()
	require.Eventually(t, func() bool {
		b.mu.Lock()
		defer b.mu.Unlock()
		return b.seq == uint64(n)
	}, time.Second, time.Millisecond)
}

func TestBoundaryDebounce(t *testing.T) {
	quoter := &fakeQuoter{}
	cfg := testConfig()
	cfg.Quiet = time.Second
	b := NewBoundary(zerolog.Nop(), quoter, cfg)

	type result struct {
		stamped Stamped
		err     error
	}
	results := make([]result, 5)

	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			stamped, err := b.Fetch(context.Background(), request(int64(i+1)))
			results[i] = result{stamped: stamped, err: err}
		}(i)
		started(t, b, i+1)
	}
	wg.Wait()

	succeeded := 0
	for i, res := range results {
		if res.err == nil {
			succeeded++
			assert.Equal(t, len(results)-1, i, "only the last keystroke gets a quote")
			continue
		}
		assert.ErrorIs(t, res.err, ErrSuperseded)
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, int32(1), atomic.LoadInt32(&quoter.calls))
}

func TestBoundaryRetry(t *testing.T) {
	quoter := &fakeQuoter{failures: 2, err: errors.New("timeout")}
	b := NewBoundary(zerolog.Nop(), quoter, testConfig())

	stamped, err := b.Fetch(context.Background(), request(1))
	require.NoError(t, err)
	assert.NotNil(t, stamped.Quote)
	assert.Equal(t, int32(3), atomic.LoadInt32(&quoter.calls))
}

func TestBoundaryRetriesExhausted(t *testing.T) {
	quoter := &fakeQuoter{failures: 100, err: errors.New("unavailable")}
	cfg := testConfig()
	cfg.Retries = 2
	b := NewBoundary(zerolog.Nop(), quoter, cfg)

	_, err := b.Fetch(context.Background(), request(1))
	assert.Error(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&quoter.calls))
}

func TestBoundaryNoRoute(t *testing.T) {
	quoter := &fakeQuoter{failures: 100, err: fmt.Errorf("no pool: %w", swap.ErrNoRoute)}
	b := NewBoundary(zerolog.Nop(), quoter, testConfig())

	stamped, err := b.Fetch(context.Background(), request(1))
	require.NoError(t, err)
	assert.Nil(t, stamped.Quote)
	assert.Equal(t, int32(1), atomic.LoadInt32(&quoter.calls))

	n := swap.Normalize(stamped.Quote, decimal.NewFromInt(1))
	assert.False(t, n.Available)
}

func TestBoundaryContextCanceled(t *testing.T) {
	quoter := &fakeQuoter{}
	b := NewBoundary(zerolog.Nop(), quoter, testConfig())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := b.Fetch(ctx, request(1))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, int32(0), atomic.LoadInt32(&quoter.calls))
}

func TestBoundaryCancel(t *testing.T) {
	quoter := &fakeQuoter{}
	b := NewBoundary(zerolog.Nop(), quoter, testConfig())

	done := make(chan error, 1)
	go func() {
		_, err := b.Fetch(context.Background(), request(1))
		done <- err
	}()
	started(t, b, 1)
	b.Cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrSuperseded)
	case <-time.After(time.Second):
		t.Fatal("fetch did not return after cancel")
	}
	assert.Equal(t, int32(0), atomic.LoadInt32(&quoter.calls))
}

func TestBoundaryRateLimitDeadline(t *testing.T) {
	quoter := &fakeQuoter{}
	cfg := testConfig()
	cfg.Quiet = 0
	cfg.Rate = 0.5
	cfg.Burst = 1
	b := NewBoundary(zerolog.Nop(), quoter, cfg)

	_, err := b.Fetch(context.Background(), request(1))
	require.NoError(t, err)

	// The next token is two seconds away, past the deadline.
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	stamped, err := b.Fetch(ctx, request(2))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrSuperseded)
	assert.Nil(t, stamped.Quote)
	assert.Equal(t, int32(1), atomic.LoadInt32(&quoter.calls))
}

func TestCheckFresh(t *testing.T) {
	fetched := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	s := Stamped{FetchedAt: fetched}

	assert.NoError(t, CheckFresh(s, fetched.Add(10*time.Second), 30*time.Second))
	assert.NoError(t, CheckFresh(s, fetched.Add(30*time.Second), 30*time.Second))
	assert.ErrorIs(t, CheckFresh(s, fetched.Add(31*time.Second), 30*time.Second), ErrStaleQuote)
}
