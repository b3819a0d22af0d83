package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "trello",
	Short: "Trello command line client",
	Long: `A command line client for the Trello REST API.

Credentials are read from ~/.trello/config.toml, the TRELLO_API_KEY and
TRELLO_TOKEN environment variables, or the --key and --token flags. A
trello.toml in the current directory or any parent may name a default
board and list.`,
	SilenceUsage: true,
}

// Global flags
var (
	jsonOutput bool
	verbose    bool
	apiKey     string
	apiToken   string
	baseURL    string
	timeout    time.Duration
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&jsonOutput, "json", false, "Output as JSON")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Log every request to stderr")
	flags.StringVar(&apiKey, "key", "", "Application key")
	flags.StringVar(&apiToken, "token", "", "Access token")
	flags.StringVar(&baseURL, "base-url", "", "API root, e.g. http://localhost:7433/1 for the sandbox")
	flags.DurationVar(&timeout, "timeout", 0, "Request timeout (0 means none)")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitInvalidArgs)
	}
}
