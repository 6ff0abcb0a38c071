package write

import (
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

const measurement = "leverage"

func size(amount decimal.Decimal) string {
	number, suffix := humanize.ComputeSI(amount.InexactFloat64())
	return humanize.Ftoa(number) + suffix
}
