package alerts

import (
	"fmt"
	"strings"

	"github.com/chainwatch/chainwatch-go/internal/models"
)

// Severity selects which risk tiers an alert includes.
type Severity string

const (
	// SeverityCritical includes only CRITICAL commodities.
	SeverityCritical Severity = "CRITICAL"
	// SeverityWarning includes WARNING commodities as well.
	SeverityWarning Severity = "WARNING"
)

// FormatBody renders the plain-text alert body shared by email and SMS.
// Commodities outside the severity filter are skipped.
func FormatBody(commodities []models.CommodityReport, severity Severity) string {
	includeWarnings := severity == SeverityWarning

	var b strings.Builder
	b.WriteString("Supply Chain Resilience Alert\n")
	b.WriteString(strings.Repeat("=", 30))
	b.WriteString("\n\n")

	for _, c := range commodities {
		if !c.IsActionable(includeWarnings) {
			continue
		}

		risk := "N/A"
		if c.RiskScore != nil {
			risk = fmt.Sprintf("%.4f", *c.RiskScore)
		}
		avg := "N/A"
		if c.MeanPrice != nil {
			avg = fmt.Sprintf("%.2f %s", *c.MeanPrice, c.Currency)
		}
		fmt.Fprintf(&b, "- %s: %s (risk=%s, avg=%s, n=%d)\n",
			c.Name, c.Status, risk, avg, c.SampleSize)
	}

	return b.String()
}

// Filter returns the commodities that would appear in an alert with the
// given severity.
func Filter(commodities []models.CommodityReport, severity Severity) []models.CommodityReport {
	includeWarnings := severity == SeverityWarning
	var out []models.CommodityReport
	for _, c := range commodities {
		if c.IsActionable(includeWarnings) {
			out = append(out, c)
		}
	}
	return out
}
