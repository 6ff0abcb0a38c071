package quote

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jpillora/backoff"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/optakt/leverage/swap"
)

var ErrSuperseded = errors.New("quote request superseded")

// Quoter is a swap quoting service. It returns an error wrapping
// swap.ErrNoRoute when the pair cannot be traded.
type Quoter interface {
	SwapQuote(ctx context.Context, req swap.Request) (*swap.Quote, error)
}

// Boundary sits between user input and a quoting service. It waits for the
// input to settle before asking for a quote, drops any request overtaken by
// a newer one and keeps the service within its rate limit.
type Boundary struct {
	log     zerolog.Logger
	quoter  Quoter
	limiter *rate.Limiter
	cfg     Config
	now     func() time.Time

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

func NewBoundary(log zerolog.Logger, quoter Quoter, cfg Config) *Boundary {

	limit := rate.Inf
	if cfg.Rate > 0 {
		limit = rate.Limit(cfg.Rate)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	b := Boundary{
		log:     log.With().Str("component", "quote_boundary").Logger(),
		quoter:  quoter,
		limiter: rate.NewLimiter(limit, burst),
		cfg:     cfg,
		now:     time.Now,
	}

	return &b
}

// Fetch returns a quote for the request once no newer request arrived during
// the quiet window. A request overtaken by a newer one, at any point before
// its quote is returned, fails with ErrSuperseded. A pair without route
// yields a stamped quote with a nil Quote, which callers render as such.
func (b *Boundary) Fetch(ctx context.Context, req swap.Request) (Stamped, error) {

	ctx, seq := b.begin(ctx)
	defer b.end(seq)

	log := b.log.With().
		Uint64("seq", seq).
		Str("denom_in", req.DenomIn).
		Str("denom_out", req.DenomOut).
		Str("amount", req.Amount.String()).
		Logger()

	timer := time.NewTimer(b.cfg.Quiet)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
		return Stamped{}, b.abort(ctx, seq)
	}

	if !b.latest(seq) {
		return Stamped{}, ErrSuperseded
	}

	err := b.limiter.Wait(ctx)
	if err != nil {
		aborted := b.abort(ctx, seq)
		if aborted != nil {
			return Stamped{}, aborted
		}
		// The limiter refuses up front when the deadline falls before the
		// next token, while the context is still live.
		return Stamped{}, fmt.Errorf("could not wait for rate limit: %w", err)
	}

	bo := backoff.Backoff{
		Min:    b.cfg.MinBackoff,
		Max:    b.cfg.MaxBackoff,
		Factor: 2,
	}

	var q *swap.Quote
	for attempt := 0; ; attempt++ {

		q, err = b.quoter.SwapQuote(ctx, req)
		if err == nil {
			break
		}

		if errors.Is(err, swap.ErrNoRoute) {
			log.Debug().Err(err).Msg("no route for swap")
			q = nil
			break
		}

		if ctx.Err() != nil {
			return Stamped{}, b.abort(ctx, seq)
		}

		if attempt >= b.cfg.Retries {
			return Stamped{}, fmt.Errorf("could not fetch quote after %d attempts: %w", attempt+1, err)
		}

		wait := bo.Duration()
		log.Warn().Err(err).Int("attempt", attempt+1).Dur("wait", wait).Msg("quote fetch failed, retrying")

		retry := time.NewTimer(wait)
		select {
		case <-retry.C:
		case <-ctx.Done():
			retry.Stop()
			return Stamped{}, b.abort(ctx, seq)
		}
	}

	if !b.latest(seq) {
		return Stamped{}, ErrSuperseded
	}

	stamped := Stamped{
		Request:   req,
		Quote:     q,
		FetchedAt: b.now(),
	}

	log.Debug().Bool("routed", q != nil).Msg("quote fetched")

	return stamped, nil
}

// Cancel aborts the request in flight, if any.
func (b *Boundary) Cancel() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.seq++
	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}
}

func (b *Boundary) begin(parent context.Context) (context.Context, uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cancel != nil {
		b.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	b.seq++
	b.cancel = cancel
	return ctx, b.seq
}

func (b *Boundary) end(seq uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.seq == seq && b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}
}

func (b *Boundary) latest(seq uint64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.seq == seq
}

// abort tells apart a request overtaken by a newer one from one whose caller
// gave up.
func (b *Boundary) abort(ctx context.Context, seq uint64) error {
	if !b.latest(seq) {
		return ErrSuperseded
	}
	return ctx.Err()
}
