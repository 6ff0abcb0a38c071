package market

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type ActionKind uint8

const (
	Deposit ActionKind = iota + 1
	Borrow
	Withdraw
)

func (k ActionKind) String() string {
	switch k {
	case Deposit:
		return "deposit"
	case Borrow:
		return "borrow"
	case Withdraw:
		return "withdraw"
	default:
		return fmt.Sprintf("action(%d)", uint8(k))
	}
}

// Intent is a hypothetical action a user is about to take. Amount is given in
// base units of the market asset.
type Intent struct {
	Kind   ActionKind
	Amount decimal.Decimal
}
