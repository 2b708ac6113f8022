package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/fidash/internal/calculation"
	"github.com/rgehrsitz/fidash/internal/config"
	"github.com/rgehrsitz/fidash/internal/domain"
	"github.com/rgehrsitz/fidash/internal/logging"
	"github.com/rgehrsitz/fidash/internal/output"
	"github.com/rgehrsitz/fidash/internal/state"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const defaultStateFile = "fidash.yaml"

// globalOptions holds the persistent flags shared by every command
type globalOptions struct {
	file     string
	debug    bool
	currency string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "fidash",
		Short: "Financial independence dashboard",
		Long: `Track assets, budget and net worth history, and project wealth and
financial independence under pessimistic, realistic and optimistic growth.

State is kept in a YAML file (fidash.yaml unless --file is given). Set
FIDASH_MONGO_URI and FIDASH_USER_ID to mirror it to MongoDB.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.file, "file", defaultStateFile, "Path to the portfolio state file")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&opts.currency, "currency", output.DefaultCurrency, "ISO currency code used to display amounts")

	root.AddCommand(
		dashboardCmd(opts),
		allocationCmd(opts),
		projectCmd(opts),
		fiCmd(opts),
		savingsCmd(opts),
		compareCmd(opts),
		assetCmd(opts),
		ledgerCmd(opts, state.Incomes, "income"),
		ledgerCmd(opts, state.Expenses, "expense"),
		assumptionsCmd(opts),
		snapshotCmd(opts),
		contributeSavingsCmd(opts),
		validateCmd(opts),
		syncCmd(opts),
		versionCmd(),
	)
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "fidash %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.Main.Version
	}
	return ""
}

func (o *globalOptions) logger(cmd *cobra.Command) *logging.Logger {
	return logging.New(cmd.ErrOrStderr(), o.debug)
}

func (o *globalOptions) outputOptions() output.Options {
	return output.Options{Currency: o.currency}
}

func (o *globalOptions) money(amount decimal.Decimal) string {
	return output.FormatCurrency(amount, o.currency)
}

func (o *globalOptions) engine(cmd *cobra.Command) *calculation.CalculationEngine {
	engine := calculation.NewCalculationEngine()
	engine.SetLogger(o.logger(cmd).With("engine"))
	return engine
}

// load reads the state file, starting from defaults when it does not exist yet
func (o *globalOptions) load(cmd *cobra.Command) (*domain.Portfolio, error) {
	parser := config.NewInputParser()
	p, err := parser.LoadOrDefault(o.file)
	if err != nil {
		return nil, err
	}
	for _, w := range parser.Warnings(p) {
		o.logger(cmd).Debugf("%s: %s", o.file, w)
	}
	return p, nil
}

// dashboard loads the state file and computes its dashboard
func (o *globalOptions) dashboard(cmd *cobra.Command) (*domain.Dashboard, error) {
	p, err := o.load(cmd)
	if err != nil {
		return nil, err
	}
	return o.engine(cmd).BuildDashboard(*p), nil
}

// mutate runs fn against a store holding the state file, validates the
// result and writes it back. When a remote store is configured the change is
// pushed to it only after it has been validated and saved.
func (o *globalOptions) mutate(cmd *cobra.Command, fn func(*state.Store) error) error {
	p, err := o.load(cmd)
	if err != nil {
		return err
	}
	log := o.logger(cmd)
	store := state.NewStore(*p)
	store.SetLogger(log.With("store"))

	ctx := cmd.Context()
	remote, err := connectRemote(ctx, log)
	if err != nil {
		return err
	}
	if remote != nil {
		defer remote.Close()
	}

	if err := fn(store); err != nil {
		return err
	}

	parser := config.NewInputParser()
	commit := func(updated domain.Portfolio) error {
		if err := parser.ValidateConfiguration(&updated); err != nil {
			return fmt.Errorf("change rejected: %w", err)
		}
		return parser.SaveToFile(o.file, &updated)
	}
	if remote == nil {
		return commit(store.Portfolio())
	}
	return remote.syncer(store, log).Commit(ctx, commit)
}

func parseDecimal(name, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimPrefix(strings.TrimSpace(value), "$"))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q", name, value)
	}
	return d, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
