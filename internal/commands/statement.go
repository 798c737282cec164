package commands

import (
	"github.com/spf13/cobra"

	"github.com/statebank-dev/statebank/internal/ledger"
)

func newStatementCommand() *cobra.Command {
	var dir string
	var limit int

	cmd := &cobra.Command{
		Use:   "statement <customer-id>",
		Short: "Print a customer's mini statement, most recent first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openProject(dir)
			if err != nil {
				return err
			}
			return runStatement(cmd, app, args[0], limit)
		},
	}

	addDirFlag(cmd, &dir)
	cmd.Flags().IntVar(&limit, "limit", 0, "show at most N transactions (0 = all)")
	return cmd
}

func runStatement(cmd *cobra.Command, app *app, customerID string, limit int) error {
	cust, err := app.ledger.GetCustomer(customerID)
	if err != nil {
		return err
	}
	txns, err := app.ledger.GetTransactions(customerID)
	if err != nil {
		return err
	}
	bal, err := app.ledger.CalculateBalance(customerID)
	if err != nil {
		return err
	}

	cmd.Printf("%s statement for %s (%s)\n", app.cfg.Bank.Name, cust.Name, cust.AccountNo)

	if len(txns) == 0 {
		cmd.Println("No transactions.")
	} else {
		if limit > 0 && len(txns) > limit {
			txns = txns[:limit]
		}
		cmd.Printf("%-10s  %-19s  %-8s  %12s  %12s  %s\n",
			"TXN", "DATE", "TYPE", "AMOUNT", "BALANCE", "REASON")
		for _, txn := range txns {
			cmd.Printf("%-10s  %-19s  %-8s  %12s  %12s  %s\n",
				txn.ID,
				txn.Date.Format(ledger.DateFormat),
				txn.Type,
				app.money(txn.Amount),
				app.money(txn.BalanceAfter),
				txn.Reason)
		}
	}

	cmd.Printf("Current balance: %s\n", app.money(bal.Current))
	return nil
}
