package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/statebank-dev/statebank/internal/auth"
	"github.com/statebank-dev/statebank/internal/config"
	"github.com/statebank-dev/statebank/internal/customers"
	"github.com/statebank-dev/statebank/internal/filelock"
	"github.com/statebank-dev/statebank/internal/ledger"
	"github.com/statebank-dev/statebank/internal/tabfile"
)

func newInitCommand() *cobra.Command {
	var name string
	var demoCustomers int

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new statebank project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd, absDir, name, demoCustomers)
		},
	}

	cmd.Flags().StringVar(&name, "name", "State Bank of Go", "bank display name")
	cmd.Flags().IntVar(&demoCustomers, "demo-customers", 3, "number of demo customers to seed (0 = none)")

	return cmd
}

func runInit(cmd *cobra.Command, dir, name string, demoCustomers int) error {
	configPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("%s already exists in %s", config.FileName, dir)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking for existing config: %w", err)
	}

	for _, d := range []string{"data", "logs"} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	cfg := config.Default(name)
	if err := config.Save(configPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Seed the data file with all three tables in one locked write.
	dataPath := filepath.Join(dir, cfg.Data.File)
	lock := filelock.New(dataPath,
		filelock.WithTimeout(cfg.Lock.Timeout()),
		filelock.WithPoll(cfg.Lock.Poll()),
		filelock.WithBreakAfter(cfg.Lock.BreakAfter()),
	)
	store := tabfile.NewStore(dataPath, lock)

	custs := customers.Demo(demoCustomers)
	creds := customers.DemoCredentials(custs)

	err := store.Update(func(wb *tabfile.Workbook) error {
		wb.Replace(auth.ToTable(creds))
		wb.Replace(customers.ToTable(custs))
		wb.Replace(tabfile.Table{Name: ledger.TableName, Header: ledger.Header})
		return nil
	})
	if err != nil {
		return fmt.Errorf("seeding data file: %w", err)
	}

	cmd.Printf("Initialized %s at %s\n", name, dir)
	if len(creds) > 0 {
		cmd.Println("Demo logins:")
		for i, cr := range creds {
			cmd.Printf("  %-12s %-14s (customer %s, opening %s%s)\n",
				cr.UserID, cr.Password, cr.CustomerID,
				cfg.Bank.Currency, custs[i].OpeningBalance.StringFixed(2))
		}
	}
	return nil
}
