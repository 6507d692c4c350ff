package main

import (
	"github.com/spf13/cobra"

	"github.com/slab-tools/slab/internal/server/endpoints"
)

var serverURL string

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Commands that call the running server",
	Long: `API commands call the running slab server via HTTP.

These commands require a running server (slab serve).
Use --server to specify a custom server URL.

Examples:
  slab api health                      # Check server health
  slab api summary --outcar ./OUTCAR   # Summarize a relaxation run
  slab api batch-insights --manifest runs.json`,
}

// getServerURL returns the server URL at runtime (after flag parsing).
func getServerURL() string {
	return serverURL
}

func init() {
	// Add --server flag to api command (persistent so all subcommands inherit it)
	apiCmd.PersistentFlags().StringVar(
		&serverURL, "server", "http://localhost:8080", "Server URL",
	)

	for _, ep := range endpoints.All() {
		apiCmd.AddCommand(ep.Command(getServerURL))
	}

	rootCmd.AddCommand(apiCmd)
}
