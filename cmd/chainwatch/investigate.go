package main

import (
	"encoding/json"
	"os"

	cwerrors "github.com/chainwatch/chainwatch-go/internal/errors"
	"github.com/chainwatch/chainwatch-go/internal/models"
	"github.com/chainwatch/chainwatch-go/internal/output"
	"github.com/spf13/cobra"
)

var investigateFormat string

var investigateCmd = &cobra.Command{
	Use:   "investigate <commodity>",
	Short: "Analyze one commodity or free-text keyword right now",
	Long: `Investigate fetches live prices for a single commodity or product keyword
and prints its dispersion risk report, including regional hotspots.
Nothing is persisted.`,
	Args: cobra.ExactArgs(1),
	RunE: runInvestigate,
}

func init() {
	investigateCmd.Flags().StringVarP(&investigateFormat, "format", "f", "table", "output format: table, json")
}

func runInvestigate(cmd *cobra.Command, args []string) error {
	keyword := args[0]
	if keyword == "" {
		return cwerrors.ValidationErrorf("commodity keyword must not be empty")
	}

	a := buildAnalyzer()
	report, err := a.AnalyzeCommodity(cmd.Context(), keyword)
	if err != nil {
		return cwerrors.ExternalError(err, "investigate "+keyword)
	}

	if investigateFormat == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	wrapped := &models.Report{Commodities: []models.CommodityReport{report}}
	return output.NewFormatter(output.VerbosityStandard).Format(wrapped, os.Stdout)
}
