package main

import (
	"fmt"
	"os"

	"github.com/chainwatch/chainwatch-go/internal/alerts"
	"github.com/chainwatch/chainwatch-go/internal/analysis"
	"github.com/chainwatch/chainwatch-go/internal/analyzer"
	"github.com/chainwatch/chainwatch-go/internal/config"
	cwerrors "github.com/chainwatch/chainwatch-go/internal/errors"
	"github.com/chainwatch/chainwatch-go/internal/openprices"
	"github.com/chainwatch/chainwatch-go/internal/storage"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"

	cfgFile string
	verbose bool
	logger  *logrus.Logger
	cfg     *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cwerrors.ExitCode(err))
	}
}

var rootCmd = &cobra.Command{
	Use:   "chainwatch",
	Short: "ChainWatch - Commodity price dispersion monitoring",
	Long: `ChainWatch monitors crowdsourced commodity prices and flags supply chain
stress early: high price dispersion across observations is a leading
indicator of shortages, hoarding and regional disruptions.`,
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logrus.New()
		logger.SetOutput(os.Stderr)
		if verbose {
			logger.SetLevel(logrus.DebugLevel)
		} else {
			logger.SetLevel(logrus.InfoLevel)
		}

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			logger.WithError(err).Warn("Failed to load config, using defaults")
			cfg = config.Default()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: .chainwatch/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.SetVersionTemplate(`ChainWatch {{.Version}}
Build time: ` + BuildTime + `
Git commit: ` + GitCommit + `
`)

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(investigateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statusCmd)
}

// buildAnalyzer assembles the fetch-and-analyze pipeline from configuration.
func buildAnalyzer() *analyzer.Analyzer {
	client := openprices.NewClient(nil, openprices.Config{
		BaseURL:    cfg.API.BaseURL,
		PageSize:   cfg.API.PageSize,
		RateLimit:  cfg.API.RateLimit,
		MaxRetries: cfg.API.MaxRetries,
	}, logger)

	return analyzer.New(client, analyzer.Options{
		Thresholds: analysis.Thresholds{
			Warning:  cfg.Risk.WarningThreshold,
			Critical: cfg.Risk.CriticalThreshold,
		},
		Commodities: cfg.Commodities,
		MaxParallel: cfg.Scan.MaxParallel,
		CacheTTL:    cfg.Scan.CacheTTL,
	}, logger)
}

// openStore opens the configured report store.
func openStore() (storage.ReportStore, error) {
	switch cfg.Storage.Type {
	case "sqlite":
		store, err := storage.NewSQLiteStore(cfg.Storage.LocalPath, logger)
		if err != nil {
			return nil, cwerrors.StorageError(err, "open sqlite report store")
		}
		return store, nil
	case "postgres":
		store, err := storage.NewPostgresStore(cfg.Storage.PostgresDSN, logger)
		if err != nil {
			return nil, cwerrors.StorageError(err, "open postgres report store")
		}
		return store, nil
	default:
		return storage.NewFileStore(cfg.Storage.ReportPath, logger), nil
	}
}

// newNotifier builds the alert dispatcher from configuration.
func newNotifier() *alerts.Notifier {
	return alerts.NewNotifier(alerts.Config{
		ResendAPIKey:      cfg.Alerts.ResendAPIKey,
		SMTPHost:          cfg.Alerts.SMTPHost,
		SMTPPort:          cfg.Alerts.SMTPPort,
		SMTPUser:          cfg.Alerts.SMTPUser,
		SMTPPassword:      cfg.Alerts.SMTPPassword,
		SMTPFrom:          cfg.Alerts.SMTPFrom,
		TwilioAccountSID:  cfg.Alerts.TwilioAccountSID,
		TwilioAuthToken:   cfg.Alerts.TwilioAuthToken,
		TwilioPhoneNumber: cfg.Alerts.TwilioPhoneNumber,
	}, logger)
}
