package ledger

import (
	"errors"

	"github.com/shopspring/decimal"
)

// The three user-visible rejection cases the boundary must distinguish
// before any ledger mutation is attempted.
var (
	// ErrAmountNotPositive rejects zero or negative amounts.
	ErrAmountNotPositive = errors.New("amount must be greater than 0")
	// ErrInsufficientFunds rejects withdrawals exceeding the current balance.
	ErrInsufficientFunds = errors.New("insufficient balance: withdraw amount cannot exceed current balance")
)

// ValidateAmount checks that a deposit or withdrawal amount is strictly
// positive. Callers run this before invoking Deposit or Withdraw; the
// ledger itself does not re-check.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.Cmp(decimal.Zero) <= 0 {
		return ErrAmountNotPositive
	}
	return nil
}

// ValidateWithdrawal checks the amount is positive and does not exceed the
// current balance. A withdrawal of exactly the current balance is allowed.
func ValidateWithdrawal(amount, current decimal.Decimal) error {
	if err := ValidateAmount(amount); err != nil {
		return err
	}
	if amount.GreaterThan(current) {
		return ErrInsufficientFunds
	}
	return nil
}
