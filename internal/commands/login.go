package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/statebank-dev/statebank/internal/auditlog"
)

// errInvalidCredentials is the single user-visible login failure: the CLI
// never reveals whether the user ID or the password was wrong.
var errInvalidCredentials = errors.New("invalid credentials")

func newLoginCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "login <user-id> <password>",
		Short: "Validate credentials and print the customer ID",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openProject(dir)
			if err != nil {
				return err
			}
			return runLogin(cmd, app, args[0], args[1])
		},
	}

	addDirFlag(cmd, &dir)
	return cmd
}

func runLogin(cmd *cobra.Command, app *app, userID, password string) error {
	customerID, ok, err := app.auth.Validate(userID, password)
	if err != nil {
		return err
	}

	detail := "ok"
	if !ok {
		detail = "rejected"
	}
	app.audit(auditlog.Entry{
		UserID:     userID,
		Action:     "login",
		CustomerID: customerID,
		Details:    detail,
	})

	if !ok {
		return errInvalidCredentials
	}

	cust, err := app.ledger.GetCustomer(customerID)
	if err != nil {
		return err
	}

	cmd.Printf("Welcome %s\n", cust.Name)
	cmd.Printf("Customer ID: %s\n", cust.ID)
	cmd.Printf("Account:     %s (%s)\n", cust.AccountNo, cust.AccountType)
	return nil
}
