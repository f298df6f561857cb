package output

import (
	"io"
	"os"

	"github.com/chainwatch/chainwatch-go/internal/models"
)

// Formatter defines output formatting interface
type Formatter interface {
	Format(report *models.Report, w io.Writer) error
}

// VerbosityLevel determines output detail
type VerbosityLevel int

const (
	VerbosityQuiet    VerbosityLevel = iota // One-line summary
	VerbosityStandard                       // Per-commodity table + regional hotspots
	VerbosityJSON                           // Machine-readable JSON
)

// NewFormatter creates appropriate formatter based on level
func NewFormatter(level VerbosityLevel) Formatter {
	switch level {
	case VerbosityQuiet:
		return &QuietFormatter{}
	case VerbosityStandard:
		return &StandardFormatter{}
	case VerbosityJSON:
		return &JSONFormatter{}
	default:
		return &StandardFormatter{}
	}
}

// ParseVerbosity maps a --format flag value to a level.
func ParseVerbosity(format string) VerbosityLevel {
	switch format {
	case "quiet":
		return VerbosityQuiet
	case "json":
		return VerbosityJSON
	default:
		return VerbosityStandard
	}
}

// GetDefaultVerbosity returns appropriate default based on environment
func GetDefaultVerbosity() VerbosityLevel {
	// CI/CD context
	if os.Getenv("CI") == "true" {
		return VerbosityQuiet
	}

	// AI assistant context (detected by special env var)
	if os.Getenv("CHAINWATCH_AI_MODE") == "1" {
		return VerbosityJSON
	}

	return VerbosityStandard
}
