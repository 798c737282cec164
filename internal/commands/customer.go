package commands

import (
	"github.com/spf13/cobra"

	"github.com/statebank-dev/statebank/internal/customers"
	"github.com/statebank-dev/statebank/internal/model"
)

func newCustomerCommand() *cobra.Command {
	customerCmd := &cobra.Command{
		Use:   "customer",
		Short: "Customer provisioning (out-of-band of the ledger)",
	}
	customerCmd.AddCommand(newCustomerAddCommand())
	customerCmd.AddCommand(newCustomerListCommand())
	return customerCmd
}

func newCustomerAddCommand() *cobra.Command {
	var dir string
	var c model.Customer
	var opening string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Provision a new customer account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openProject(dir)
			if err != nil {
				return err
			}
			return runCustomerAdd(cmd, app, c, opening)
		},
	}

	addDirFlag(cmd, &dir)
	cmd.Flags().StringVar(&c.ID, "id", "", "customer ID (generated when omitted)")
	cmd.Flags().StringVar(&c.Name, "customer-name", "", "customer name (required)")
	_ = cmd.MarkFlagRequired("customer-name")
	cmd.Flags().StringVar(&c.AccountType, "account-type", "SAVINGS", "account type")
	cmd.Flags().StringVar(&c.Email, "email", "", "email address")
	cmd.Flags().StringVar(&c.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&c.City, "city", "", "city")
	cmd.Flags().StringVar(&opening, "opening-balance", "0", "opening balance, fixed at creation")

	return cmd
}

func runCustomerAdd(cmd *cobra.Command, app *app, c model.Customer, opening string) error {
	amount, err := parseAmount(opening)
	if err != nil {
		return err
	}
	c.OpeningBalance = amount

	if c.ID == "" {
		c.ID = customers.NewCustomerID()
	}
	c.AccountNo = customers.NewAccountNo()

	if err := app.customers.Add(c); err != nil {
		return err
	}

	cmd.Printf("Created customer %s\n", c.ID)
	cmd.Printf("  Name:            %s\n", c.Name)
	cmd.Printf("  Account:         %s (%s)\n", c.AccountNo, c.AccountType)
	cmd.Printf("  Opening balance: %s\n", app.money(c.OpeningBalance))
	return nil
}

func newCustomerListCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all customers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openProject(dir)
			if err != nil {
				return err
			}

			all, err := app.customers.All()
			if err != nil {
				return err
			}
			cmd.Printf("%-14s  %-24s  %-16s  %-8s  %s\n",
				"CUSTOMER", "NAME", "ACCOUNT", "TYPE", "CITY")
			for _, c := range all {
				cmd.Printf("%-14s  %-24s  %-16s  %-8s  %s\n",
					c.ID, c.Name, c.AccountNo, c.AccountType, c.City)
			}
			return nil
		},
	}

	addDirFlag(cmd, &dir)
	return cmd
}
