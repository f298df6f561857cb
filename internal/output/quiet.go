package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/chainwatch/chainwatch-go/internal/models"
)

// QuietFormatter outputs one-line summary (for cron jobs and CI)
type QuietFormatter struct{}

func (f *QuietFormatter) Format(report *models.Report, w io.Writer) error {
	atRisk := []string{}
	for _, c := range report.Commodities {
		if c.Status == models.StatusCritical || c.Status == models.StatusWarning {
			atRisk = append(atRisk, fmt.Sprintf("%s (%s)", c.Name, c.Status))
		}
	}

	// Success case
	if len(atRisk) == 0 {
		fmt.Fprintf(w, "✅ %d commodities scanned, no dispersion risk\n", len(report.Commodities))
		return nil
	}

	fmt.Fprintf(w, "⚠️  %d of %d commodities at risk: %s\n",
		len(atRisk), len(report.Commodities), strings.Join(atRisk, ", "))
	fmt.Fprintf(w, "Run 'chainwatch scan' for details\n")

	return nil
}
