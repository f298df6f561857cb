package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/chainwatch/chainwatch-go/internal/models"
)

func reportWith(commodities ...models.CommodityReport) *models.Report {
	return &models.Report{
		ID:          "rpt-1",
		Timestamp:   time.Date(2025, 10, 4, 14, 23, 15, 0, time.UTC),
		Commodities: commodities,
	}
}

func ptrFloat64(f float64) *float64 {
	return &f
}

func TestQuietFormatter(t *testing.T) {
	tests := []struct {
		name     string
		report   *models.Report
		expected string
	}{
		{
			name: "all stable",
			report: reportWith(
				models.CommodityReport{Name: "rice", Status: models.StatusStable},
				models.CommodityReport{Name: "milk", Status: models.StatusStable},
			),
			expected: "✅ 2 commodities scanned, no dispersion risk\n",
		},
		{
			name: "no data counts as not at risk",
			report: reportWith(
				models.CommodityReport{Name: "rice", Status: models.StatusNoData},
			),
			expected: "✅ 1 commodities scanned, no dispersion risk\n",
		},
		{
			name: "mixed risk",
			report: reportWith(
				models.CommodityReport{Name: "rice", Status: models.StatusCritical},
				models.CommodityReport{Name: "milk", Status: models.StatusStable},
				models.CommodityReport{Name: "oil", Status: models.StatusWarning},
			),
			expected: "⚠️  2 of 3 commodities at risk: rice (CRITICAL), oil (WARNING)\nRun 'chainwatch scan' for details\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			formatter := &QuietFormatter{}
			err := formatter.Format(tt.report, &buf)

			if err != nil {
				t.Errorf("Format() returned error: %v", err)
			}

			if buf.String() != tt.expected {
				t.Errorf("Format() output mismatch:\nGot:  %q\nWant: %q", buf.String(), tt.expected)
			}
		})
	}
}

func TestStandardFormatter(t *testing.T) {
	report := reportWith(
		models.CommodityReport{
			Name:           "rice",
			Status:         models.StatusCritical,
			RiskScore:      ptrFloat64(0.6721),
			MeanPrice:      ptrFloat64(3.45),
			Currency:       "EUR",
			SampleSize:     42,
			DroppedRecords: 3,
			Regions: models.RegionBreakdown{
				ByCountry: []models.RegionSummary{
					{Region: "France", Status: models.StatusCritical, RiskScore: ptrFloat64(0.81), SampleSize: 12},
					{Region: "Spain", Status: models.StatusWarning, RiskScore: ptrFloat64(0.41), SampleSize: 9},
				},
			},
		},
		models.CommodityReport{
			Name:       "milk",
			Status:     models.StatusStable,
			RiskScore:  ptrFloat64(0.08),
			MeanPrice:  ptrFloat64(1.12),
			Currency:   "EUR",
			SampleSize: 50,
		},
		models.CommodityReport{
			Name:   "saffron",
			Status: models.StatusNoData,
		},
	)

	var buf bytes.Buffer
	formatter := &StandardFormatter{}
	err := formatter.Format(report, &buf)

	if err != nil {
		t.Fatalf("Format() returned error: %v", err)
	}

	output := buf.String()

	// Check header
	if !strings.Contains(output, "🌾 ChainWatch Price Dispersion Scan") {
		t.Error("Output missing header")
	}
	if !strings.Contains(output, "Report: rpt-1") {
		t.Error("Output missing report ID")
	}
	if !strings.Contains(output, "Commodities scanned: 3") {
		t.Error("Output missing commodity count")
	}

	// Check commodity lines
	if !strings.Contains(output, "rice: CRITICAL") {
		t.Error("Output missing critical commodity")
	}
	if !strings.Contains(output, "risk score: 0.67 | mean price: 3.45 EUR | samples: 42") {
		t.Error("Output missing rice stats line")
	}
	if !strings.Contains(output, "dropped records: 3") {
		t.Error("Output missing dropped records line")
	}
	if !strings.Contains(output, "milk: STABLE") {
		t.Error("Output missing stable commodity")
	}
	if !strings.Contains(output, "saffron: NO_DATA") {
		t.Error("Output missing no-data commodity")
	}
	if !strings.Contains(output, "insufficient price data (0 samples)") {
		t.Error("Output missing no-data explanation")
	}

	// Regional hotspots only for flagged commodities
	if !strings.Contains(output, "France: CRITICAL (risk=0.81, n=12)") {
		t.Error("Output missing France hotspot")
	}
	if !strings.Contains(output, "Spain: WARNING (risk=0.41, n=9)") {
		t.Error("Output missing Spain hotspot")
	}

	// Next steps
	if !strings.Contains(output, "Run 'chainwatch investigate <commodity>'") {
		t.Error("Output missing next steps")
	}
}

func TestStandardFormatterStableHidesRegions(t *testing.T) {
	report := reportWith(models.CommodityReport{
		Name:       "milk",
		Status:     models.StatusStable,
		RiskScore:  ptrFloat64(0.08),
		MeanPrice:  ptrFloat64(1.12),
		Currency:   "EUR",
		SampleSize: 50,
		Regions: models.RegionBreakdown{
			ByCountry: []models.RegionSummary{
				{Region: "France", Status: models.StatusStable, RiskScore: ptrFloat64(0.05), SampleSize: 20},
			},
		},
	})

	var buf bytes.Buffer
	if err := (&StandardFormatter{}).Format(report, &buf); err != nil {
		t.Fatalf("Format() returned error: %v", err)
	}

	if strings.Contains(buf.String(), "France") {
		t.Error("Stable commodity should not list regional hotspots")
	}
}

func TestJSONFormatter(t *testing.T) {
	report := reportWith(models.CommodityReport{
		Name:      "rice",
		Status:    models.StatusWarning,
		RiskScore: ptrFloat64(0.4041),
		Currency:  "USD",
	})

	var buf bytes.Buffer
	if err := (&JSONFormatter{}).Format(report, &buf); err != nil {
		t.Fatalf("Format() returned error: %v", err)
	}

	var decoded models.Report
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if decoded.ID != "rpt-1" {
		t.Errorf("Decoded ID = %q, want %q", decoded.ID, "rpt-1")
	}
	if len(decoded.Commodities) != 1 || decoded.Commodities[0].Status != models.StatusWarning {
		t.Errorf("Decoded commodities mismatch: %+v", decoded.Commodities)
	}
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		level    VerbosityLevel
		expected string
	}{
		{VerbosityQuiet, "*output.QuietFormatter"},
		{VerbosityStandard, "*output.StandardFormatter"},
		{VerbosityJSON, "*output.JSONFormatter"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("Level_%d", tt.level), func(t *testing.T) {
			formatter := NewFormatter(tt.level)
			typeName := fmt.Sprintf("%T", formatter)
			if typeName != tt.expected {
				t.Errorf("NewFormatter(%v) returned %s, want %s", tt.level, typeName, tt.expected)
			}
		})
	}
}

func TestParseVerbosity(t *testing.T) {
	tests := []struct {
		format   string
		expected VerbosityLevel
	}{
		{"quiet", VerbosityQuiet},
		{"json", VerbosityJSON},
		{"table", VerbosityStandard},
		{"", VerbosityStandard},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			if got := ParseVerbosity(tt.format); got != tt.expected {
				t.Errorf("ParseVerbosity(%q) = %v, want %v", tt.format, got, tt.expected)
			}
		})
	}
}

func TestStatusEmoji(t *testing.T) {
	tests := []struct {
		status   models.RiskStatus
		expected string
	}{
		{models.StatusCritical, "🔴"},
		{models.StatusWarning, "⚠️ "},
		{models.StatusStable, "✅"},
		{models.StatusNoData, "•"},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			emoji := statusEmoji(tt.status)
			if emoji != tt.expected {
				t.Errorf("statusEmoji(%q) = %q, want %q", tt.status, emoji, tt.expected)
			}
		})
	}
}
