package main

import (
	"os"

	"github.com/chainwatch/chainwatch-go/internal/alerts"
	cwerrors "github.com/chainwatch/chainwatch-go/internal/errors"
	"github.com/chainwatch/chainwatch-go/internal/output"
	"github.com/chainwatch/chainwatch-go/internal/storage"
	"github.com/spf13/cobra"
)

var (
	scanFormat          string
	scanIncludeWarnings bool
	scanNoAlert         bool
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the commodity watch list and persist a risk report",
	Long: `Scan fetches recent prices for every commodity on the watch list, computes
price dispersion and risk tiers, persists the report, and dispatches an
alert when any commodity is CRITICAL and a recipient is configured.`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVarP(&scanFormat, "format", "f", "", "output format: table, quiet, json")
	scanCmd.Flags().BoolVar(&scanIncludeWarnings, "include-warnings", false, "include WARNING commodities in alerts")
	scanCmd.Flags().BoolVar(&scanNoAlert, "no-alert", false, "skip alert dispatch")
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a := buildAnalyzer()
	report, err := a.AnalyzeAll(ctx)
	if err != nil {
		return cwerrors.ExternalError(err, "scan failed")
	}

	// The JSON snapshot always lands on disk for the dashboard, even when a
	// database store is configured on top.
	fileStore := storage.NewFileStore(cfg.Storage.ReportPath, logger)
	if err := fileStore.SaveReport(ctx, report); err != nil {
		return cwerrors.StorageError(err, "write report snapshot")
	}

	if cfg.Storage.Type != "file" {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.SaveReport(ctx, report); err != nil {
			return cwerrors.StorageError(err, "persist report")
		}
	}

	level := output.ParseVerbosity(scanFormat)
	if scanFormat == "" {
		level = output.GetDefaultVerbosity()
	}
	if err := output.NewFormatter(level).Format(report, os.Stdout); err != nil {
		return err
	}

	if scanNoAlert || cfg.Alerts.Email == "" {
		return nil
	}

	severity := alerts.SeverityCritical
	if scanIncludeWarnings {
		severity = alerts.SeverityWarning
	}
	flagged := alerts.Filter(report.Commodities, severity)
	if len(flagged) == 0 {
		logger.Debug("no commodities above the alert threshold")
		return nil
	}

	notifier := newNotifier()
	channels := notifier.IsConfigured()
	if !channels.Email && !channels.SMS {
		logger.Warn("alert recipient set but no delivery channel is configured")
		return nil
	}

	result := notifier.SendReportAlert(ctx, flagged, cfg.Alerts.Email, cfg.Alerts.Phone, severity)
	if result.Error != "" {
		logger.WithField("error", result.Error).Warn("alert dispatch incomplete")
	} else {
		logger.WithField("commodities", len(flagged)).Info("alert dispatched")
	}

	return nil
}
