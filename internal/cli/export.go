package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/francescabuggio/ecocart/internal/export"
	"github.com/francescabuggio/ecocart/internal/store"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export responses in CSV or JSON format",
	Long: `Export all stored responses in CSV or JSON format.

The CSV output uses the flattened column schema (one column per Likert
question, ordered variant codes) used for spreadsheet analysis. JSON
output contains the raw response documents.

Examples:
  ecocart export --format csv --out responses.csv
  ecocart export --format json > responses.json`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "output format (csv or json)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportFormat != "csv" && exportFormat != "json" {
		return fmt.Errorf("invalid format: must be 'csv' or 'json'")
	}

	var w io.Writer = os.Stdout
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	ctx := cmd.Context()
	return withStore(ctx, func(s *store.Store) error {
		records, err := s.ListResponses(ctx)
		if err != nil {
			return fmt.Errorf("failed to list responses: %w", err)
		}

		if exportFormat == "csv" {
			return export.WriteCSV(w, records)
		}
		return export.WriteJSON(w, records)
	})
}
