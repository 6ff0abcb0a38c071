package quote

import (
	"errors"
	"fmt"
	"time"

	"github.com/optakt/leverage/swap"
)

var ErrStaleQuote = errors.New("stale quote")

// Stamped is a quote along with the request it answers and when it was
// fetched. Quote is nil when no route exists.
type Stamped struct {
	Request   swap.Request
	Quote     *swap.Quote
	FetchedAt time.Time
}

// CheckFresh fails when the quote is older than maxAge at now.
func CheckFresh(s Stamped, now time.Time, maxAge time.Duration) error {
	age := now.Sub(s.FetchedAt)
	if age > maxAge {
		return fmt.Errorf("quote is %s old, limit is %s: %w", age.Round(time.Millisecond), maxAge, ErrStaleQuote)
	}
	return nil
}

// Answers tells whether the quote was fetched for the given request, so it
// can still be applied to it.
func (s Stamped) Answers(req swap.Request) bool {
	return s.Request.Same(req)
}
