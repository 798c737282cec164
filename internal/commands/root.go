// Package commands wires the CLI surface over the ledger core. Each
// invocation of the binary is one independent request against the shared
// data file; there is no ambient session state, so every command names the
// customer (and acting user) it operates on.
package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/statebank-dev/statebank/internal/auditlog"
	"github.com/statebank-dev/statebank/internal/auth"
	"github.com/statebank-dev/statebank/internal/buildinfo"
	"github.com/statebank-dev/statebank/internal/config"
	"github.com/statebank-dev/statebank/internal/customers"
	"github.com/statebank-dev/statebank/internal/filelock"
	"github.com/statebank-dev/statebank/internal/ledger"
	"github.com/statebank-dev/statebank/internal/tabfile"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "statebank",
		Short:   "File-backed mini banking ledger",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging()
		},
	}

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newLoginCommand())
	rootCmd.AddCommand(newBalanceCommand())
	rootCmd.AddCommand(newStatementCommand())
	rootCmd.AddCommand(newDepositCommand())
	rootCmd.AddCommand(newWithdrawCommand())
	rootCmd.AddCommand(newCustomerCommand())

	return rootCmd
}

// configureLogging sets the logrus level from STATEBANK_LOG (default warn,
// keeping command output clean). A .env beside the binary is honored.
func configureLogging() {
	_ = godotenv.Load() // optional; missing .env is fine

	level := logrus.WarnLevel
	if raw := os.Getenv("STATEBANK_LOG"); raw != "" {
		if parsed, err := logrus.ParseLevel(raw); err == nil {
			level = parsed
		}
	}
	logrus.SetLevel(level)
}

// app bundles the services a command needs against one project directory.
type app struct {
	root      string // project dir holding statebank.yaml
	cfg       *config.Config
	store     *tabfile.Store
	ledger    *ledger.Service
	auth      *auth.Service
	customers *customers.Service
}

// openProject loads the config in dir and builds the service stack over the
// shared data file. STATEBANK_DIR overrides a default "." dir.
func openProject(dir string) (*app, error) {
	if dir == "." {
		if env := os.Getenv("STATEBANK_DIR"); env != "" {
			dir = env
		}
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(filepath.Join(absDir, config.FileName))
	if err != nil {
		return nil, err
	}

	dataPath := cfg.Data.File
	if !filepath.IsAbs(dataPath) {
		dataPath = filepath.Join(absDir, dataPath)
	}

	lock := filelock.New(dataPath,
		filelock.WithTimeout(cfg.Lock.Timeout()),
		filelock.WithPoll(cfg.Lock.Poll()),
		filelock.WithBreakAfter(cfg.Lock.BreakAfter()),
	)
	store := tabfile.NewStore(dataPath, lock)

	return &app{
		root:      absDir,
		cfg:       cfg,
		store:     store,
		ledger:    ledger.NewService(store),
		auth:      auth.NewService(store),
		customers: customers.NewService(store),
	}, nil
}

// addDirFlag registers the shared --dir flag on a command.
func addDirFlag(cmd *cobra.Command, dir *string) {
	cmd.Flags().StringVar(dir, "dir", ".", "project directory containing "+config.FileName)
}

// audit appends one best-effort audit trail entry. Audit failure must never
// fail the banking operation that triggered it.
func (a *app) audit(e auditlog.Entry) {
	if err := auditlog.Append(a.root, []auditlog.Entry{e}); err != nil {
		logrus.WithError(err).Warn("failed to write audit log")
	}
}

// money renders an amount with the configured currency symbol.
func (a *app) money(d decimal.Decimal) string {
	return a.cfg.Bank.Currency + d.StringFixed(2)
}
