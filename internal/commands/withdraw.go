package commands

import (
	"github.com/spf13/cobra"

	"github.com/statebank-dev/statebank/internal/auditlog"
	"github.com/statebank-dev/statebank/internal/ledger"
	"github.com/statebank-dev/statebank/internal/model"
)

func newWithdrawCommand() *cobra.Command {
	var dir string
	var reason string
	var asUser string

	cmd := &cobra.Command{
		Use:   "withdraw <customer-id> <amount>",
		Short: "Withdraw an amount from a customer's account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openProject(dir)
			if err != nil {
				return err
			}
			return runWithdraw(cmd, app, args[0], args[1], reason, asUser)
		},
	}

	addDirFlag(cmd, &dir)
	cmd.Flags().StringVar(&reason, "reason", "", "free-text reason recorded on the transaction")
	cmd.Flags().StringVar(&asUser, "user", "", "acting user ID recorded in the audit log")
	return cmd
}

func runWithdraw(cmd *cobra.Command, app *app, customerID, rawAmount, reason, asUser string) error {
	amount, err := parseAmount(rawAmount)
	if err != nil {
		return err
	}

	// The floor check happens here, before the mutation, against the
	// balance derived from the full history. The ledger itself does not
	// re-check inside the locked append.
	bal, err := app.ledger.CalculateBalance(customerID)
	if err != nil {
		return err
	}
	if err := ledger.ValidateWithdrawal(amount, bal.Current); err != nil {
		return err
	}

	var txn model.Transaction
	err = retryBusy(func() error {
		var err error
		txn, err = app.ledger.Withdraw(customerID, amount, reason)
		return err
	})
	if err != nil {
		return err
	}

	app.audit(auditlog.Entry{
		UserID:     asUser,
		Action:     "withdraw",
		CustomerID: customerID,
		TxnID:      txn.ID,
		Details:    "amount=" + amount.StringFixed(2),
	})

	cmd.Printf("%s withdrew %s\n", txn.ID, app.money(txn.Amount))
	cmd.Printf("New balance: %s\n", app.money(txn.BalanceAfter))
	return nil
}
