package main

import (
	"os"
	"path/filepath"

	"github.com/chainwatch/chainwatch-go/internal/logging"
	"github.com/chainwatch/chainwatch-go/internal/mcp"
	"github.com/chainwatch/chainwatch-go/internal/mcp/tools"
	"github.com/spf13/cobra"
)

var serveLogDir string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server over stdio",
	Long: `Serve exposes the risk engine as MCP tools over stdio so AI assistants can
investigate commodities, compare risk, read the latest report and dispatch
alerts. Logs go to a file; stdout carries only the JSON-RPC stream.`,
	RunE: runServe,
}

func init() {
	defaultLogDir := "logs"
	if homeDir, err := os.UserHomeDir(); err == nil {
		defaultLogDir = filepath.Join(homeDir, ".chainwatch", "logs")
	}
	serveCmd.Flags().StringVar(&serveLogDir, "log-dir", defaultLogDir, "directory for server logs")
}

func runServe(cmd *cobra.Command, args []string) error {
	// Stdout belongs to the protocol; all diagnostics go to the log file.
	srvLog, err := logging.NewLogger(logging.ServerConfig(serveLogDir, verbose))
	if err != nil {
		return err
	}
	defer srvLog.Close()

	a := buildAnalyzer()
	notifier := newNotifier()

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	handler := mcp.NewHandler()
	handler.RegisterTool("investigate_commodity", tools.NewInvestigateCommodityTool(a))
	handler.RegisterTool("list_commodities", tools.NewListCommoditiesTool(a))
	handler.RegisterTool("compare_commodities", tools.NewCompareCommoditiesTool(a))
	handler.RegisterTool("get_supply_chain_report", tools.NewGetReportTool(store))
	handler.RegisterTool("send_supply_chain_alert", tools.NewSendAlertTool(a, notifier))
	handler.RegisterResource("latest_report", mcp.NewReportResource(store))

	srvLog.Info("mcp server listening on stdio",
		"commodities", len(a.Commodities()),
		"storage", cfg.Storage.Type)

	transport := mcp.NewStdioTransport(handler, os.Stdin, os.Stdout)
	if err := transport.Start(); err != nil {
		srvLog.Error("transport stopped", "error", err)
		return err
	}

	srvLog.Info("mcp server shut down")
	return nil
}
