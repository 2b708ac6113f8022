package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/fidash/internal/config"
	"github.com/rgehrsitz/fidash/internal/domain"
	"github.com/rgehrsitz/fidash/internal/output"
	"github.com/rgehrsitz/fidash/internal/state"
)

func assetCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "asset",
		Short: "Manage assets",
	}

	var value, target string
	add := &cobra.Command{
		Use:   "add NAME",
		Short: "Add an asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseDecimal("value", value)
			if err != nil {
				return err
			}
			t, err := parseDecimal("target", target)
			if err != nil {
				return err
			}
			return opts.mutate(cmd, func(store *state.Store) error {
				a := store.AddAsset(args[0], v, t)
				fmt.Fprintf(cmd.OutOrStdout(), "Added asset %s (%s)\n", a.Name, a.ID)
				return nil
			})
		},
	}
	add.Flags().StringVar(&value, "value", "0", "Current value")
	add.Flags().StringVar(&target, "target", "0", "Target allocation in percent (0-100)")

	var name, newValue, newTarget string
	update := &cobra.Command{
		Use:   "update ID",
		Short: "Change an asset's name, value or target",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch domain.AssetPatch
			flags := cmd.Flags()
			if flags.Changed("name") {
				patch.Name = &name
			}
			if flags.Changed("value") {
				v, err := parseDecimal("value", newValue)
				if err != nil {
					return err
				}
				patch.Value = &v
			}
			if flags.Changed("target") {
				t, err := parseDecimal("target", newTarget)
				if err != nil {
					return err
				}
				patch.TargetPercent = &t
			}
			if patch == (domain.AssetPatch{}) {
				return errors.New("nothing to update: pass --name, --value or --target")
			}
			return opts.mutate(cmd, func(store *state.Store) error {
				a, err := store.UpdateAsset(args[0], patch)
				if err != nil {
					return fmt.Errorf("asset %s: %w", args[0], err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated %s: %s, target %s%%\n", a.Name, opts.money(a.Value), a.TargetPercent.String())
				return nil
			})
		},
	}
	update.Flags().StringVar(&name, "name", "", "New name")
	update.Flags().StringVar(&newValue, "value", "", "New value")
	update.Flags().StringVar(&newTarget, "target", "", "New target allocation in percent")

	remove := &cobra.Command{
		Use:   "remove ID",
		Short: "Remove an asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.mutate(cmd, func(store *state.Store) error {
				if err := store.RemoveAsset(args[0]); err != nil {
					return fmt.Errorf("asset %s: %w", args[0], err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed asset %s\n", args[0])
				return nil
			})
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List assets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.load(cmd)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(p.Assets))
			for _, a := range p.Assets {
				rows = append(rows, []string{a.ID, a.Name, opts.money(a.Value), a.TargetPercent.String() + "%"})
			}
			fmt.Fprintln(cmd.OutOrStdout(), output.RenderTable([]string{"ID", "Name", "Value", "Target"}, rows))
			return nil
		},
	}

	cmd.AddCommand(add, update, remove, list)
	return cmd
}

// ledgerCmd builds the income or expense command group
func ledgerCmd(opts *globalOptions, kind state.LedgerKind, noun string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   noun,
		Short: fmt.Sprintf("Manage monthly %s categories", noun),
	}

	add := &cobra.Command{
		Use:   "add NAME AMOUNT",
		Short: fmt.Sprintf("Add a monthly %s category", noun),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseDecimal("amount", args[1])
			if err != nil {
				return err
			}
			return opts.mutate(cmd, func(store *state.Store) error {
				c, err := store.AddCategory(kind, args[0], amount)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s %s per month (%s)\n", noun, c.Name, opts.money(c.Amount), c.ID)
				return nil
			})
		},
	}

	remove := &cobra.Command{
		Use:   "remove ID",
		Short: fmt.Sprintf("Remove a %s category", noun),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.mutate(cmd, func(store *state.Store) error {
				if err := store.RemoveCategory(kind, args[0]); err != nil {
					return fmt.Errorf("%s %s: %w", noun, args[0], err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s %s\n", noun, args[0])
				return nil
			})
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List %s categories", noun),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.load(cmd)
			if err != nil {
				return err
			}
			ledger := p.Incomes
			if kind == state.Expenses {
				ledger = p.Expenses
			}
			out := cmd.OutOrStdout()
			if ledger.IsLegacy() {
				fmt.Fprintf(out, "Single monthly figure: %s\n", opts.money(ledger.Monthly))
				return nil
			}
			rows := make([][]string, 0, len(ledger.Categories))
			for _, c := range ledger.Categories {
				rows = append(rows, []string{c.ID, c.Name, opts.money(c.Amount)})
			}
			fmt.Fprintln(out, output.RenderTable([]string{"ID", "Name", "Monthly"}, rows))
			fmt.Fprintf(out, "Total: %s per month\n", opts.money(ledger.MonthlyTotal()))
			return nil
		},
	}

	cmd.AddCommand(add, remove, list)
	return cmd
}

func assumptionsCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assumptions",
		Short: "Show or change projection assumptions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.load(cmd)
			if err != nil {
				return err
			}
			for _, line := range output.AssumptionLines(p.Assumptions, opts.currency) {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}

	var pessimistic, realistic, optimistic, contribution, frequency string
	var years int
	set := &cobra.Command{
		Use:   "set",
		Short: "Change one or more assumptions",
		Long: `Change projection assumptions. Rates are fractions (0.07 for 7%).
Only the flags given are changed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch domain.AssumptionsPatch
			flags := cmd.Flags()
			decimals := []struct {
				flag  string
				value string
				dst   **decimal.Decimal
			}{
				{"pessimistic", pessimistic, &patch.Pessimistic},
				{"realistic", realistic, &patch.Realistic},
				{"optimistic", optimistic, &patch.Optimistic},
				{"contribution", contribution, &patch.ContributionAmount},
			}
			for _, d := range decimals {
				if !flags.Changed(d.flag) {
					continue
				}
				v, err := parseDecimal(d.flag, d.value)
				if err != nil {
					return err
				}
				*d.dst = &v
			}
			if flags.Changed("frequency") {
				f := domain.Frequency(strings.ToLower(frequency))
				if !f.IsKnown() {
					return fmt.Errorf("unknown frequency %q (valid: monthly, annual)", frequency)
				}
				patch.ContributionFrequency = &f
			}
			if flags.Changed("years") {
				patch.Years = &years
			}
			if patch == (domain.AssumptionsPatch{}) {
				return errors.New("nothing to set: pass at least one flag")
			}
			return opts.mutate(cmd, func(store *state.Store) error {
				a := store.PatchAssumptions(patch)
				for _, line := range output.AssumptionLines(a, opts.currency) {
					fmt.Fprintln(cmd.OutOrStdout(), line)
				}
				return nil
			})
		},
	}
	set.Flags().StringVar(&pessimistic, "pessimistic", "", "Pessimistic annual growth rate")
	set.Flags().StringVar(&realistic, "realistic", "", "Realistic annual growth rate")
	set.Flags().StringVar(&optimistic, "optimistic", "", "Optimistic annual growth rate")
	set.Flags().StringVar(&contribution, "contribution", "", "Contribution amount per period")
	set.Flags().StringVar(&frequency, "frequency", "", "Contribution frequency (monthly or annual)")
	set.Flags().IntVar(&years, "years", 0, "Projection horizon in years")

	cmd.AddCommand(set)
	return cmd
}

func snapshotCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Record and review net worth history",
	}

	save := &cobra.Command{
		Use:   "save",
		Short: "Record today's net worth",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.mutate(cmd, func(store *state.Store) error {
				point := store.Snapshot(time.Now())
				fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s on %s\n", opts.money(point.NetWorth), point.Date.Format(time.DateOnly))
				return nil
			})
		},
	}

	undo := &cobra.Command{
		Use:   "undo",
		Short: "Remove the most recent snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.mutate(cmd, func(store *state.Store) error {
				point, err := store.UndoLastSnapshot()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed snapshot of %s from %s\n", opts.money(point.NetWorth), point.Date.Format(time.DateOnly))
				return nil
			})
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List recorded snapshots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.load(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(p.History) == 0 {
				fmt.Fprintln(out, "No snapshots recorded.")
				return nil
			}
			rows := make([][]string, 0, len(p.History))
			for i, h := range p.History {
				rows = append(rows, []string{strconv.Itoa(i + 1), h.Date.Format(time.DateOnly), opts.money(h.NetWorth)})
			}
			fmt.Fprintln(out, output.RenderTable([]string{"#", "Date", "Net worth"}, rows))
			if change, ok := domain.SummarizeHistory(p.History); ok {
				fmt.Fprintf(out, "Change since %s: %s (%s)\n",
					change.From.Date.Format(time.DateOnly), opts.money(change.Delta), output.FormatPercentage(change.Percent))
			}
			return nil
		},
	}

	cmd.AddCommand(save, undo, list)
	return cmd
}

func contributeSavingsCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "contribute-savings",
		Short: "Set the monthly contribution to current monthly savings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.mutate(cmd, func(store *state.Store) error {
				amount, err := store.ContributeSavings()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Contribution set to %s per month\n", opts.money(amount))
				return nil
			})
		},
	}
}

func validateCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the state file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			p, err := parser.LoadFromFile(opts.file)
			if err != nil {
				return err
			}
			if err := parser.ValidateConfiguration(p); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, w := range parser.Warnings(p) {
				fmt.Fprintf(out, "warning: %s\n", w)
			}
			fmt.Fprintf(out, "Configuration file %s is valid\n", opts.file)
			return nil
		},
	}
}
