package swap

import (
	"github.com/shopspring/decimal"
)

// Request asks a quoting service for a swap of Amount base units of DenomIn
// into DenomOut.
type Request struct {
	DenomIn     string
	DenomOut    string
	DecimalsIn  uint8
	DecimalsOut uint8
	Amount      decimal.Decimal
}

// Same tells whether two requests would produce the same quote.
func (r Request) Same(other Request) bool {
	return r.DenomIn == other.DenomIn &&
		r.DenomOut == other.DenomOut &&
		r.DecimalsIn == other.DecimalsIn &&
		r.DecimalsOut == other.DecimalsOut &&
		r.Amount.Equal(other.Amount)
}
