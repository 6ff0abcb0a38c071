package b

import (
	"github.com/shopspring/decimal"
)

var (
	D0     = decimal.Zero
	D1     = decimal.NewFromInt(1)
	D2     = decimal.NewFromInt(2)
	D6     = decimal.NewFromInt(6)
	D24    = decimal.NewFromInt(24)
	D100   = decimal.NewFromInt(100)
	D365   = decimal.NewFromInt(365)
	D3600  = decimal.NewFromInt(3600)
	D10000 = decimal.NewFromInt(10000)
)
