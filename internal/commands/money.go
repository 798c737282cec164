package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/shopspring/decimal"

	"github.com/statebank-dev/statebank/internal/filelock"
)

// parseAmount parses a command-line amount argument.
func parseAmount(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("amount must be a number, got %q", raw)
	}
	return d, nil
}

// retryBusy retries op a few times when the data file lock is busy. The
// ledger core never retries on its own; deciding to retry is this caller's
// choice. Any other error aborts immediately.
func retryBusy(op func() error) error {
	policy := backoff.WithMaxRetries(backoff.NewConstantBackOff(500*time.Millisecond), 3)
	return backoff.Retry(func() error {
		err := op()
		if err == nil || errors.Is(err, filelock.ErrBusy) {
			return err
		}
		return backoff.Permanent(err)
	}, policy)
}
