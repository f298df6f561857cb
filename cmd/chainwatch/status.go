package main

import (
	"errors"
	"fmt"
	"time"

	cwerrors "github.com/chainwatch/chainwatch-go/internal/errors"
	"github.com/chainwatch/chainwatch-go/internal/models"
	"github.com/chainwatch/chainwatch-go/internal/storage"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Summarize the latest persisted scan report",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	report, err := store.LatestReport(cmd.Context())
	if errors.Is(err, storage.ErrNotFound) {
		fmt.Println("No report yet. Run 'chainwatch scan' first.")
		return nil
	}
	if err != nil {
		return cwerrors.StorageError(err, "read latest report")
	}

	counts := map[models.RiskStatus]int{}
	for _, c := range report.Commodities {
		counts[c.Status]++
	}

	fmt.Printf("Latest report: %s\n", report.ID)
	fmt.Printf("Generated:     %s (%s ago)\n",
		report.Timestamp.Format("2006-01-02 15:04:05 MST"),
		time.Since(report.Timestamp).Round(time.Minute))
	fmt.Printf("Commodities:   %d total | %d critical | %d warning | %d stable | %d no data\n",
		len(report.Commodities),
		counts[models.StatusCritical],
		counts[models.StatusWarning],
		counts[models.StatusStable],
		counts[models.StatusNoData])

	for _, c := range report.CriticalCommodities() {
		score := "N/A"
		if c.RiskScore != nil {
			score = fmt.Sprintf("%.4f", *c.RiskScore)
		}
		fmt.Printf("  🔴 %s (risk=%s, n=%d)\n", c.Name, score, c.SampleSize)
	}

	return nil
}
