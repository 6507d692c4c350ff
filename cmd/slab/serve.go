package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/slab-tools/slab/internal/config"
	"github.com/slab-tools/slab/internal/home"
	"github.com/slab-tools/slab/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the slab server",
	Long: `Start the slab HTTP API server.

All analysis is per request; the server keeps no state between calls.
Configuration hot-reloads when the config file changes.

Examples:
  slab serve                       # Start on 127.0.0.1:8080
  slab serve --addr 0.0.0.0:3000   # Bind to all interfaces on port 3000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Set up logger
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))

		// Get home directory
		h, err := home.New(homeDir)
		if err != nil {
			return err
		}
		if err := h.EnsureExists(); err != nil {
			return err
		}

		// Load config, preferring an explicit --config over the home default
		cfgPath := cfgFile
		if cfgPath == "" && h.ConfigExists() {
			cfgPath = h.ConfigPath()
		}
		cfgMgr, err := config.NewManager(cfgPath)
		if err != nil {
			return err
		}
		cfgMgr.WatchConfig()

		// Create server
		srv, err := server.New(server.Config{
			Addr:          serveAddr,
			ConfigManager: cfgMgr,
			Home:          h,
			Logger:        logger,
		})
		if err != nil {
			return err
		}

		// Start server (blocks until shutdown)
		return srv.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config, 127.0.0.1:8080)")

	rootCmd.AddCommand(serveCmd)
}
