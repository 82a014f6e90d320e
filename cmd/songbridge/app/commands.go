package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eliteembassy/songbridge/internal/workbook"
	"github.com/eliteembassy/songbridge/pkg/chain"
	"github.com/eliteembassy/songbridge/pkg/enrich"
	"github.com/eliteembassy/songbridge/pkg/intake"
	"github.com/eliteembassy/songbridge/pkg/validate"
)

// NewEnrichCommand creates the enrich command.
func (a *App) NewEnrichCommand() *cobra.Command {
	var intakePath, workbookDir, outDir string

	cmd := &cobra.Command{
		Use:   "enrich",
		Short: "Populate the works table from an intake export",
		Long: `Enrich copies every intake record into the workbook's works table:
titles, identifiers, dates, performers and track codes with their
cleanup rules applied, plus the aggregated notes column, the priority
flag, and the static language and territory fills.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.Rules()
			if err != nil {
				return err
			}

			src, err := workbook.LoadFile(intakePath)
			if err != nil {
				return err
			}
			dest, err := workbook.LoadDir(workbookDir)
			if err != nil {
				return err
			}

			res, err := enrich.NewRunner(cfg, *a.logger).Run(dest, src)
			if err != nil {
				return err
			}

			if outDir == "" {
				outDir = workbookDir
			}
			if err := workbook.SaveDir(dest, outDir); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Enriched %d works (%d columns mapped) into %s\n",
				res.RowsWritten, res.ColumnsMapped, outDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&intakePath, "intake", "", "intake export CSV file")
	cmd.Flags().StringVar(&workbookDir, "workbook", "", "workbook directory, one CSV file per table")
	cmd.Flags().StringVar(&outDir, "out", "", "output directory (defaults to the workbook directory)")
	_ = cmd.MarkFlagRequired("intake")
	_ = cmd.MarkFlagRequired("workbook")

	return cmd
}

// NewChainsCommand creates the chains command.
func (a *App) NewChainsCommand() *cobra.Command {
	var intakePath, workbookDir, outDir string

	cmd := &cobra.Command{
		Use:   "chains",
		Short: "Derive the ownership chain and alternate-title tables",
		Long: `Chains joins each work in the workbook to its intake record by
business key and regenerates the IP Chain and alternate-title tables:
one chain row per publisher group with its writers in the remaining
slots, and one row per alternate title.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.Rules()
			if err != nil {
				return err
			}

			src, err := workbook.LoadFile(intakePath)
			if err != nil {
				return err
			}
			dest, err := workbook.LoadDir(workbookDir)
			if err != nil {
				return err
			}

			idx := intake.BuildIndex(src)
			res, err := chain.NewRunner(cfg, *a.logger).Run(dest, idx)
			if err != nil {
				return err
			}

			if outDir == "" {
				outDir = workbookDir
			}
			if err := workbook.SaveDir(dest, outDir); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(),
				"Matched %d of %d works: %d chain rows, %d alternate titles into %s\n",
				res.WorksMatched, res.WorksScanned, res.ChainRows, res.AltTitleRows, outDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&intakePath, "intake", "", "intake export CSV file")
	cmd.Flags().StringVar(&workbookDir, "workbook", "", "workbook directory, one CSV file per table")
	cmd.Flags().StringVar(&outDir, "out", "", "output directory (defaults to the workbook directory)")
	_ = cmd.MarkFlagRequired("intake")
	_ = cmd.MarkFlagRequired("workbook")

	return cmd
}

// NewValidateCommand creates the validate command.
func (a *App) NewValidateCommand() *cobra.Command {
	var intakePath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check an intake export for data-quality problems",
		Long: `Validate scans an intake export for values the engine would drop or
coerce during a run: missing or duplicate business keys, unparsable
writer counts, unknown capacity codes and malformed controlled
markers. Findings are warnings; nothing blocks processing.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.Rules()
			if err != nil {
				return err
			}

			src, err := workbook.LoadFile(intakePath)
			if err != nil {
				return err
			}

			warnings := validate.New(cfg).Check(src)
			out := cmd.OutOrStdout()
			for _, w := range warnings {
				fmt.Fprintln(out, w.String())
			}
			if len(warnings) == 0 {
				fmt.Fprintln(out, "No problems found")
			} else {
				fmt.Fprintf(out, "%d warnings\n", len(warnings))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&intakePath, "intake", "", "intake export CSV file")
	_ = cmd.MarkFlagRequired("intake")

	return cmd
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "songbridge %s\n", a.version)
			fmt.Fprintf(out, "  commit:   %s\n", a.commit)
			fmt.Fprintf(out, "  built:    %s\n", a.date)
			fmt.Fprintf(out, "  built by: %s\n", a.builtBy)
		},
	}
}
