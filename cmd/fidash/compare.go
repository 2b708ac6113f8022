package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/fidash/internal/compare"
	"github.com/rgehrsitz/fidash/internal/transform"
)

func compareCmd(opts *globalOptions) *cobra.Command {
	var (
		base          string
		with          string
		transforms    []string
		format        string
		listTemplates bool
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare the current plan against what-if templates",
		Long: `Compare the current assumptions against alternative plans.

Examples:
  fidash compare --with save_more_10pct,work_5yr_longer
  fidash compare --with conservative_rates --format csv
  fidash compare --transform scale_contribution:factor=1.5 --transform extend_horizon:years=3
  fidash compare --list-templates  # Show all available templates
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if listTemplates {
				fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
				return nil
			}

			templateNames := transform.ParseTemplateList(with)
			if len(templateNames) == 0 && len(transforms) == 0 {
				return fmt.Errorf("--with or --transform is required (use --list-templates to see available templates)")
			}

			p, err := opts.load(cmd)
			if err != nil {
				return err
			}

			compareEngine := compare.NewCompareEngine(opts.engine(cmd))
			comparisonSet, err := compareEngine.Compare(cmd.Context(), *p, compare.CompareOptions{
				BaseScenarioName: base,
				Templates:        templateNames,
				Transforms:       transforms,
				ConfigPath:       opts.file,
			})
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}

			out := cmd.OutOrStdout()
			switch strings.ToLower(format) {
			case "csv":
				formatter := &compare.CSVFormatter{}
				text, err := formatter.Format(comparisonSet)
				if err != nil {
					return fmt.Errorf("failed to format CSV: %w", err)
				}
				fmt.Fprint(out, text)

			case "json":
				formatter := &compare.JSONFormatter{Pretty: true}
				text, err := formatter.Format(comparisonSet)
				if err != nil {
					return fmt.Errorf("failed to format JSON: %w", err)
				}
				fmt.Fprint(out, text)

			case "compact":
				formatter := &compare.TableFormatter{}
				fmt.Fprint(out, formatter.FormatCompact(comparisonSet))

			case "table", "console", "":
				formatter := &compare.TableFormatter{}
				fmt.Fprint(out, formatter.Format(comparisonSet))

			default:
				return fmt.Errorf("unknown output format: %s (valid: table, compact, csv, json)", format)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&base, "base", compare.DefaultBaseName, "Label for the current plan")
	cmd.Flags().StringVar(&with, "with", "", "Comma-separated list of templates to compare")
	cmd.Flags().StringArrayVar(&transforms, "transform", nil, "Transform spec name:key=value,... (repeatable, one alternative each)")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, compact, csv, json)")
	cmd.Flags().BoolVar(&listTemplates, "list-templates", false, "List all available scenario templates")
	return cmd
}
