package commands

import (
	"github.com/spf13/cobra"
)

func newBalanceCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "balance <customer-id>",
		Short: "Show a customer's derived balance summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openProject(dir)
			if err != nil {
				return err
			}
			return runBalance(cmd, app, args[0])
		},
	}

	addDirFlag(cmd, &dir)
	return cmd
}

func runBalance(cmd *cobra.Command, app *app, customerID string) error {
	cust, err := app.ledger.GetCustomer(customerID)
	if err != nil {
		return err
	}
	bal, err := app.ledger.CalculateBalance(customerID)
	if err != nil {
		return err
	}

	cmd.Printf("%s (%s)\n", cust.Name, cust.AccountNo)
	cmd.Printf("  Opening balance:  %s\n", app.money(bal.Opening))
	cmd.Printf("  Total deposits:   %s\n", app.money(bal.TotalDeposit))
	cmd.Printf("  Total withdrawals: %s\n", app.money(bal.TotalWithdraw))
	cmd.Printf("  Current balance:  %s\n", app.money(bal.Current))
	return nil
}
