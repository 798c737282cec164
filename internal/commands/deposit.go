package commands

import (
	"github.com/spf13/cobra"

	"github.com/statebank-dev/statebank/internal/auditlog"
	"github.com/statebank-dev/statebank/internal/ledger"
	"github.com/statebank-dev/statebank/internal/model"
)

func newDepositCommand() *cobra.Command {
	var dir string
	var reason string
	var asUser string

	cmd := &cobra.Command{
		Use:   "deposit <customer-id> <amount>",
		Short: "Deposit an amount into a customer's account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openProject(dir)
			if err != nil {
				return err
			}
			return runDeposit(cmd, app, args[0], args[1], reason, asUser)
		},
	}

	addDirFlag(cmd, &dir)
	cmd.Flags().StringVar(&reason, "reason", "", "free-text reason recorded on the transaction")
	cmd.Flags().StringVar(&asUser, "user", "", "acting user ID recorded in the audit log")
	return cmd
}

func runDeposit(cmd *cobra.Command, app *app, customerID, rawAmount, reason, asUser string) error {
	amount, err := parseAmount(rawAmount)
	if err != nil {
		return err
	}
	// Rejected before any ledger mutation; no transaction row is created.
	if err := ledger.ValidateAmount(amount); err != nil {
		return err
	}

	var txn model.Transaction
	err = retryBusy(func() error {
		var err error
		txn, err = app.ledger.Deposit(customerID, amount, reason)
		return err
	})
	if err != nil {
		return err
	}

	app.audit(auditlog.Entry{
		UserID:     asUser,
		Action:     "deposit",
		CustomerID: customerID,
		TxnID:      txn.ID,
		Details:    "amount=" + amount.StringFixed(2),
	})

	cmd.Printf("%s deposited %s\n", txn.ID, app.money(txn.Amount))
	cmd.Printf("New balance: %s\n", app.money(txn.BalanceAfter))
	return nil
}
