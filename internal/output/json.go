package output

import (
	"encoding/json"
	"io"

	"github.com/chainwatch/chainwatch-go/internal/models"
)

// JSONFormatter outputs the full report as indented JSON (machine-readable)
type JSONFormatter struct{}

func (f *JSONFormatter) Format(report *models.Report, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
