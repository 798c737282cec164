package commands

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statebank-dev/statebank/internal/auditlog"
	"github.com/statebank-dev/statebank/internal/ledger"
)

// newProject initializes a project with one known customer and returns its dir.
func newProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	_, err := run(t, "init", dir, "--demo-customers", "0")
	require.NoError(t, err)

	_, err = run(t, "customer", "add", "--dir", dir,
		"--id", "CUST-0001",
		"--customer-name", "Alice Zhang",
		"--opening-balance", "500.00",
		"--city", "Pune")
	require.NoError(t, err)

	return dir
}

func TestDepositWithdrawFlow(t *testing.T) {
	dir := newProject(t)

	out, err := run(t, "deposit", "CUST-0001", "150.00", "--dir", dir, "--reason", "salary", "--user", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, "TXN000001")
	assert.Contains(t, out, "650.00")

	out, err = run(t, "withdraw", "CUST-0001", "100.00", "--dir", dir, "--user", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, "TXN000002")
	assert.Contains(t, out, "550.00")

	out, err = run(t, "balance", "CUST-0001", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "550.00")

	out, err = run(t, "statement", "CUST-0001", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "TXN000001")
	assert.Contains(t, out, "TXN000002")
	assert.Contains(t, out, "salary")

	// Both movements are in the audit trail.
	entries, err := auditlog.Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "deposit", entries[0].Action)
	assert.Equal(t, "alice", entries[0].UserID)
	assert.Equal(t, "withdraw", entries[1].Action)
}

func TestWithdrawExactBalanceThenNothingLeft(t *testing.T) {
	dir := newProject(t)

	_, err := run(t, "withdraw", "CUST-0001", "500.00", "--dir", dir)
	require.NoError(t, err)

	out, err := run(t, "balance", "CUST-0001", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "0.00")

	// One cent over the (now zero) balance is rejected before mutation.
	_, err = run(t, "withdraw", "CUST-0001", "0.01", "--dir", dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ledger.ErrInsufficientFunds))
}

func TestInsufficientFundsRejectedBeforeMutation(t *testing.T) {
	dir := newProject(t)

	_, err := run(t, "withdraw", "CUST-0001", "500.01", "--dir", dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ledger.ErrInsufficientFunds))

	// No transaction row was created.
	out, err := run(t, "statement", "CUST-0001", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "No transactions.")
}

func TestNonPositiveAmountsRejected(t *testing.T) {
	dir := newProject(t)

	for _, amount := range []string{"0", "-10.00"} {
		_, err := run(t, "deposit", "CUST-0001", amount, "--dir", dir)
		require.Error(t, err, "amount %s", amount)
		assert.True(t, errors.Is(err, ledger.ErrAmountNotPositive))

		_, err = run(t, "withdraw", "CUST-0001", amount, "--dir", dir)
		require.Error(t, err, "amount %s", amount)
		assert.True(t, errors.Is(err, ledger.ErrAmountNotPositive))
	}

	_, err := run(t, "deposit", "CUST-0001", "ten", "--dir", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be a number")

	out, err := run(t, "statement", "CUST-0001", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "No transactions.")
}

func TestUnknownCustomer(t *testing.T) {
	dir := newProject(t)

	_, err := run(t, "deposit", "CUST-9999", "10.00", "--dir", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CUST-9999")

	_, err = run(t, "balance", "CUST-9999", "--dir", dir)
	require.Error(t, err)
}

func TestStatementLimit(t *testing.T) {
	dir := newProject(t)

	for i := 0; i < 3; i++ {
		_, err := run(t, "deposit", "CUST-0001", "10.00", "--dir", dir)
		require.NoError(t, err)
	}

	out, err := run(t, "statement", "CUST-0001", "--dir", dir, "--limit", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "TXN000003", "most recent shown")
	assert.NotContains(t, out, "TXN000001")
	assert.NotContains(t, out, "TXN000002")
}

func TestParseAmount(t *testing.T) {
	d, err := parseAmount("12.34")
	require.NoError(t, err)
	assert.Equal(t, "12.34", d.StringFixed(2))

	_, err = parseAmount("12,34")
	assert.Error(t, err)
}
