package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"drafthours/app"
	"drafthours/domain/estimate"
	"drafthours/internal/config"
	"drafthours/internal/container"
	"drafthours/internal/errors"
	"drafthours/internal/profiling"
	"drafthours/internal/report"
	"drafthours/internal/testkit"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:           "drafthours",
		Short:         "Drafting-hours estimator for PFD and P&ID drawings",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newEstimateCmd(),
		newReferenceCmd(),
		newImportCmd(),
		newTemplateCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		// Usage errors from cobra carry no code worth printing.
		if errors.IsAppError(err) || errors.GetCode(err) != errors.CodeInternalError {
			fmt.Fprintf(os.Stderr, "%s: %v\n", errors.GetCode(err), err)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func buildContainer(ctx context.Context) (*container.Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return container.Build(ctx, cfg)
}

func newEstimateCmd() *cobra.Command {
	var in estimate.RequestInput
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate drafting and management hours",
		Long: `Estimate hours for a batch of drawings from the reference table
(lookup) or from subtype weights (parametric).

Example: drafthours estimate --document-type "P&ID" --tool AutoCAD --revisions 1 \
  --complexity "SOLO DRAFTING P&ID STANDARD" --months 6 --documents 300`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, strategy, err := in.Build()
			if err != nil {
				return err
			}

			c, err := buildContainer(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Shutdown(cmd.Context())

			res, err := c.Estimation.Estimate(cmd.Context(), req, strategy)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			_, err = out.Write(report.Markdown(req, res))
			return err
		},
	}

	f := cmd.Flags()
	f.StringVar(&in.Strategy, "strategy", "lookup", "Estimation strategy: lookup or parametric")
	f.StringVar(&in.DocumentType, "document-type", "P&ID", "Document type: PFD or P&ID")
	f.StringVar(&in.Tool, "tool", string(estimate.ToolAutoCAD), "CAD tool")
	f.IntVar(&in.RevisionCount, "revisions", 1, "Number of issues/revisions")
	f.StringVar(&in.ComplexityClass, "complexity", "", "Complexity class (lookup only)")
	f.IntVar(&in.DurationMonths, "months", 1, "Project duration in months")
	f.IntVar(&in.DocumentCount, "documents", 1, "Number of documents")
	f.StringSliceVar(&in.Subtypes, "subtype", []string{string(estimate.SubtypeProcess)}, "P&ID subtype (repeatable, parametric only)")
	f.StringVar(&in.StartingCondition, "start", string(estimate.StartFromScratch), "Starting condition: from_scratch, from_semi_finished or drafting_only")
	f.BoolVar(&asJSON, "json", false, "Print the result as JSON")

	return cmd
}

func newReferenceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reference",
		Short: "Inspect the loaded reference table",
	}
	cmd.AddCommand(newReferenceListCmd(), newReferenceSummaryCmd())
	return cmd
}

func newReferenceListCmd() *cobra.Command {
	var docType string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List reference rows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter estimate.DocumentType
			if docType != "" {
				parsed, err := estimate.ParseDocumentType(docType)
				if err != nil {
					return errors.InvalidInput(err.Error())
				}
				filter = parsed
			}

			c, err := buildContainer(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Shutdown(cmd.Context())

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, strings.Join(testkit.ReferenceHeaders, "\t"))
			for _, r := range c.Estimation.Table().Rows() {
				if filter != "" && r.DocumentType != filter {
					continue
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%.2f\n", r.DocumentType, r.Tool, r.RevisionCount, r.ComplexityClass, r.TotalHours)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&docType, "document-type", "", "Only list rows for this document type")
	return cmd
}

func newReferenceSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print hour statistics per document type and complexity class",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := buildContainer(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Shutdown(cmd.Context())

			summary, err := profiling.NewTableProfiler().ProfileTable(c.Estimation.Table())
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(summary)
		},
	}
}

func newImportCmd() *cobra.Command {
	var sheet string

	cmd := &cobra.Command{
		Use:   "import [files...]",
		Short: "Load reference spreadsheets into the database, replacing its rows",
		Long: `Parse the given xlsx/csv files with the same rules used at startup and
replace the database reference table with their rows.

Example: DATABASE_URL=postgres://... drafthours import stima_p_id_pfd.xlsx`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			cfg.Reference.Files = args
			if sheet != "" {
				cfg.Reference.Sheet = sheet
			}

			c, err := container.New(cfg)
			if err != nil {
				return err
			}
			if err := c.InitWithDatabase(ctx); err != nil {
				return err
			}
			defer c.Shutdown(ctx)

			loader := app.NewReferenceLoader(c.Logger, container.FileSources(cfg.Reference)...)
			res, err := app.NewReferenceImporter(loader, c.ReferenceRepo, c.Logger).Import(ctx, strings.Join(args, ","))
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "imported %d reference rows from %d file(s); database now holds %d rows\n",
				res.Loaded, len(args), res.Stored)
			if len(res.Ambiguous) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "warning: %d ambiguous key(s); lookups for them will fail\n", len(res.Ambiguous))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", "", "Workbook sheet to read (default: first sheet)")
	return cmd
}

func newTemplateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "template [path]",
		Short: "Write a sample reference workbook with the expected headers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := testkit.WriteReferenceWorkbook(args[0], testkit.SampleRows()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
			return nil
		},
	}
}
