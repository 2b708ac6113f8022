package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/fidash/internal/calculation"
	"github.com/rgehrsitz/fidash/internal/domain"
	"github.com/rgehrsitz/fidash/internal/output"
)

var reportExtensions = map[string]string{
	"console":  "txt",
	"pretty":   "txt",
	"json":     "json",
	"csv":      "csv",
	"markdown": "md",
	"html":     "html",
}

func dashboardCmd(opts *globalOptions) *cobra.Command {
	var (
		format string
		save   bool
	)
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the full dashboard",
		Long: fmt.Sprintf(`Compute the dashboard for the state file and print it.

Formats: %s (aliases: table, text, md, glow).`, strings.Join(output.AvailableFormatterNames(), ", ")),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter, ok := output.GetFormatterByName(format, opts.outputOptions())
			if !ok {
				return fmt.Errorf("unknown output format: %s (valid: %s)", format, strings.Join(output.AvailableFormatterNames(), ", "))
			}
			d, err := opts.dashboard(cmd)
			if err != nil {
				return err
			}
			if save {
				filename, err := output.WriteFormatted(formatter, d, reportExtensions[formatter.Name()])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", filename)
				return nil
			}
			data, err := formatter.Format(d)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "console", "Output format")
	cmd.Flags().BoolVar(&save, "save", false, "Write the report to a timestamped file instead of stdout")
	return cmd
}

func allocationCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "allocation",
		Short: "Show current versus target allocation and what to buy next",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := opts.dashboard(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(d.Allocation.Items) == 0 {
				fmt.Fprintln(out, "No assets recorded.")
				return nil
			}

			rows := make([][]string, 0, len(d.Allocation.Items))
			for _, item := range d.Allocation.Items {
				rows = append(rows, []string{
					item.Name,
					opts.money(item.Value),
					output.FormatPercentage(item.CurrentPercent),
					output.FormatPercentage(item.TargetPercent.Div(decimal.NewFromInt(100))),
					output.FormatPercentage(item.Gap),
				})
			}
			fmt.Fprintln(out, output.RenderTable([]string{"Asset", "Value", "Current", "Target", "Gap"}, rows))
			fmt.Fprintf(out, "Total: %s\n", opts.money(d.Allocation.Total))
			if d.Allocation.ToBuy != nil {
				fmt.Fprintf(out, "Buy next: %s (%s under target)\n", d.Allocation.ToBuy.Name, output.FormatPercentage(d.Allocation.ToBuy.Gap))
			} else {
				fmt.Fprintln(out, "Every asset is at or above its target.")
			}
			return nil
		},
	}
}

func projectCmd(opts *globalOptions) *cobra.Command {
	var step int
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project wealth under the three growth scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if step < 1 {
				return fmt.Errorf("--step must be at least 1")
			}
			d, err := opts.dashboard(cmd)
			if err != nil {
				return err
			}
			a := d.Assumptions
			headers := []string{
				"Year",
				"Pessimistic " + output.FormatPercentage(a.Pessimistic),
				"Realistic " + output.FormatPercentage(a.Realistic),
				"Optimistic " + output.FormatPercentage(a.Optimistic),
			}
			s := d.Scenarios
			last := len(s.Realistic) - 1
			var rows [][]string
			for i := range s.Realistic {
				if i%step != 0 && i != last {
					continue
				}
				rows = append(rows, []string{
					strconv.Itoa(s.Realistic[i].Year),
					opts.money(s.Pessimistic[i].Value),
					opts.money(s.Realistic[i].Value),
					opts.money(s.Optimistic[i].Value),
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Contributing %s per year over %d years\n", opts.money(d.AnnualContribution), a.Years)
			fmt.Fprintln(out, output.RenderTable(headers, rows))
			return nil
		},
	}
	cmd.Flags().IntVar(&step, "step", 1, "Print every Nth year (the final year is always shown)")
	return cmd
}

func fiCmd(opts *globalOptions) *cobra.Command {
	var step int
	cmd := &cobra.Command{
		Use:   "fi",
		Short: "Show sustainable income at common withdrawal rates and the FI horizon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if step < 1 {
				return fmt.Errorf("--step must be at least 1")
			}
			d, err := opts.dashboard(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "FI income today at %s: %s per year\n",
				output.FormatPercentage(calculation.DefaultWithdrawalRate), opts.money(d.CurrentFIIncome))
			fmt.Fprintf(out, "Annual expenses: %s\n", opts.money(d.AnnualExpenses))
			fmt.Fprintln(out, fiHorizonLine(d))

			if len(d.FIIncome) == 0 {
				return nil
			}
			headers := []string{"Year"}
			for _, ri := range d.FIIncome[0].Incomes {
				headers = append(headers, output.FormatPercentage(ri.Rate))
			}
			headers = append(headers, "Expenses")

			last := len(d.FIIncome) - 1
			var rows [][]string
			for i, point := range d.FIIncome {
				if i%step != 0 && i != last {
					continue
				}
				row := []string{strconv.Itoa(point.Year)}
				for _, ri := range point.Incomes {
					row = append(row, opts.money(ri.Income))
				}
				rows = append(rows, append(row, opts.money(point.Expenses)))
			}
			fmt.Fprintln(out, output.RenderTable(headers, rows))
			return nil
		},
	}
	cmd.Flags().IntVar(&step, "step", 5, "Print every Nth year (the final year is always shown)")
	return cmd
}

func fiHorizonLine(d *domain.Dashboard) string {
	h := d.FIHorizon
	switch {
	case d.AnnualExpenses.Sign() <= 0:
		return "FI horizon: record expenses to compute it"
	case h.Reached && h.Year == 0:
		return fmt.Sprintf("FI horizon: already independent at %s", output.FormatPercentage(h.Rate))
	case h.Reached:
		return fmt.Sprintf("FI horizon: year %d at %s", h.Year, output.FormatPercentage(h.Rate))
	default:
		return fmt.Sprintf("FI horizon: not reached within %d years", d.Assumptions.Years)
	}
}

func savingsCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "savings",
		Short: "Show monthly income, expenses and savings rate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := opts.dashboard(cmd)
			if err != nil {
				return err
			}
			s := d.Savings
			rows := [][]string{
				{"Income", opts.money(s.MonthlyIncome)},
				{"Expenses", opts.money(s.MonthlyExpenses)},
				{"Savings", opts.money(s.MonthlySavings)},
				{"Savings rate", output.FormatPercentagePtr(s.SavingsRate)},
			}
			fmt.Fprintln(cmd.OutOrStdout(), output.RenderTable([]string{"Monthly", "Amount"}, rows))
			return nil
		},
	}
}
