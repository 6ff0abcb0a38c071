package withdraw

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/optakt/leverage/b"
	"github.com/optakt/leverage/market"
)

// Buffer inflates partial withdrawals before they are checked, leaving room
// for interest accrual and rounding between the check and execution.
var Buffer = decimal.RequireFromString("1.01")

type Reason uint8

const (
	None Reason = iota
	ExceedsDeposit
	ExceedsLiquidity
)

func (r Reason) String() string {
	switch r {
	case ExceedsDeposit:
		return "exceeds deposit"
	case ExceedsLiquidity:
		return "exceeds available liquidity"
	default:
		return "none"
	}
}

// Result of a withdrawal check. MaxWithdrawable is in human units and is set
// whenever the market was known, even for invalid requests.
type Result struct {
	Valid           bool
	MaxWithdrawable decimal.Decimal
	Reason          Reason
	Err             error
}

// Validate checks a withdrawal typed by the user, in human units, against the
// user's deposit and the liquidity left in the pool, both in base units.
func Validate(requested string, s *market.Snapshot, deposited decimal.Decimal) Result {

	amount, err := b.FromString(requested)
	if err != nil {
		return Result{MaxWithdrawable: b.D0, Err: err}
	}
	if amount.IsNegative() {
		return Result{MaxWithdrawable: b.D0, Err: fmt.Errorf("negative withdrawal %s: %w", amount, b.ErrInvalidAmountFormat)}
	}
	if s == nil {
		return Result{MaxWithdrawable: b.D0, Err: fmt.Errorf("could not validate withdrawal: %w", market.ErrMarketNotFound)}
	}

	own := b.Shift(deposited, s.Decimals)
	liquidity := b.Shift(s.Liquidity(), s.Decimals)
	max := b.Min(own, liquidity)

	// Withdrawing everything must not be blocked by the buffer meant for
	// partial withdrawals.
	check := amount
	if !amount.Equal(own) {
		check = amount.Mul(Buffer)
	}

	if check.LessThanOrEqual(max) {
		return Result{Valid: true, MaxWithdrawable: max}
	}

	reason := ExceedsLiquidity
	if own.LessThanOrEqual(liquidity) {
		reason = ExceedsDeposit
	}

	return Result{MaxWithdrawable: max, Reason: reason}
}
