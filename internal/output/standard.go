package output

import (
	"fmt"
	"io"

	"github.com/chainwatch/chainwatch-go/internal/models"
)

// StandardFormatter outputs a per-commodity table plus regional hotspots
// for anything above STABLE (default)
type StandardFormatter struct{}

func (f *StandardFormatter) Format(report *models.Report, w io.Writer) error {
	// Header
	fmt.Fprintf(w, "🌾 ChainWatch Price Dispersion Scan\n")
	if report.ID != "" {
		fmt.Fprintf(w, "Report: %s\n", report.ID)
	}
	if !report.Timestamp.IsZero() {
		fmt.Fprintf(w, "Generated: %s\n", report.Timestamp.Format("2006-01-02 15:04:05 MST"))
	}
	fmt.Fprintf(w, "Commodities scanned: %d\n\n", len(report.Commodities))

	for _, c := range report.Commodities {
		fmt.Fprintf(w, "%s %s: %s\n", statusEmoji(c.Status), c.Name, c.Status)
		if c.Status == models.StatusNoData {
			fmt.Fprintf(w, "   insufficient price data (%d samples)\n\n", c.SampleSize)
			continue
		}

		fmt.Fprintf(w, "   risk score: %s | mean price: %s %s | samples: %d\n",
			floatOrNA(c.RiskScore), floatOrNA(c.MeanPrice), c.Currency, c.SampleSize)
		if c.DroppedRecords > 0 {
			fmt.Fprintf(w, "   dropped records: %d\n", c.DroppedRecords)
		}

		// Regional hotspots only matter once a commodity is flagged.
		if c.Status == models.StatusCritical || c.Status == models.StatusWarning {
			for _, region := range c.Regions.ByCountry {
				fmt.Fprintf(w, "   • %s: %s (risk=%s, n=%d)\n",
					region.Region, region.Status, floatOrNA(region.RiskScore), region.SampleSize)
			}
		}
		fmt.Fprintf(w, "\n")
	}

	critical := report.CriticalCommodities()
	if len(critical) > 0 {
		fmt.Fprintf(w, "Run 'chainwatch investigate <commodity>' for a regional breakdown\n")
	}

	return nil
}

func statusEmoji(status models.RiskStatus) string {
	switch status {
	case models.StatusCritical:
		return "🔴"
	case models.StatusWarning:
		return "⚠️ "
	case models.StatusStable:
		return "✅"
	default:
		return "•"
	}
}

func floatOrNA(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", *v)
}
