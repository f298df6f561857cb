package tools

import (
	"context"
	"fmt"

	"github.com/chainwatch/chainwatch-go/internal/alerts"
	"github.com/chainwatch/chainwatch-go/internal/models"
)

// Notifier is the slice of the alert layer the tool needs.
type Notifier interface {
	IsConfigured() alerts.Channels
	SendReportAlert(ctx context.Context, commodities []models.CommodityReport, recipientEmail, recipientPhone string, severity alerts.Severity) alerts.Result
}

// SendAlertTool analyzes commodities on demand and dispatches an email/SMS
// risk summary. Only CRITICAL items are included unless include_warnings is
// set.
type SendAlertTool struct {
	analyzer Analyzer
	notifier Notifier
}

// NewSendAlertTool creates the tool.
func NewSendAlertTool(analyzer Analyzer, notifier Notifier) *SendAlertTool {
	return &SendAlertTool{analyzer: analyzer, notifier: notifier}
}

// Execute runs the analysis and sends the alert.
func (t *SendAlertTool) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	recipientEmail, ok := stringArg(args, "recipient_email")
	if !ok {
		return nil, fmt.Errorf("recipient_email is required")
	}
	recipientPhone, _ := args["recipient_phone"].(string)
	includeWarnings, _ := args["include_warnings"].(bool)

	channels := t.notifier.IsConfigured()
	if !channels.Email && !channels.SMS {
		return map[string]interface{}{
			"error": "email not configured: set RESEND_API_KEY (and optionally SMTP_FROM)",
		}, nil
	}

	var (
		reports []models.CommodityReport
		err     error
	)
	if commodity, ok := stringArg(args, "commodity"); ok {
		var report models.CommodityReport
		report, err = t.analyzer.AnalyzeCommodity(ctx, commodity)
		reports = []models.CommodityReport{report}
	} else {
		reports, err = t.analyzer.AnalyzeMany(ctx, t.analyzer.Commodities())
	}
	if err != nil {
		return nil, fmt.Errorf("analyze commodities: %w", err)
	}

	severity := alerts.SeverityCritical
	if includeWarnings {
		severity = alerts.SeverityWarning
	}

	filtered := alerts.Filter(reports, severity)
	if len(filtered) == 0 {
		return map[string]interface{}{
			"sent":    false,
			"message": "no CRITICAL or WARNING commodities to alert on",
		}, nil
	}

	result := t.notifier.SendReportAlert(ctx, filtered, recipientEmail, recipientPhone, severity)
	response := map[string]interface{}{
		"sent":  result.Email || result.SMS,
		"email": result.Email,
		"sms":   result.SMS,
	}
	if result.Error != "" {
		response["error"] = result.Error
	}
	return response, nil
}

// GetSchema returns the tool's input schema.
func (t *SendAlertTool) GetSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"recipient_email": map[string]interface{}{
				"type":        "string",
				"description": "Email address to deliver the alert to",
			},
			"recipient_phone": map[string]interface{}{
				"type":        "string",
				"description": "Optional phone number for an SMS copy",
			},
			"commodity": map[string]interface{}{
				"type":        "string",
				"description": "Analyze only this commodity; defaults to the full watch list",
			},
			"include_warnings": map[string]interface{}{
				"type":        "boolean",
				"description": "Include WARNING commodities, not just CRITICAL",
			},
		},
		"required": []string{"recipient_email"},
	}
}
