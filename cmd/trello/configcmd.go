package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/airyra/trello/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the CLI configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the global config file",
	Long: `Write ~/.trello/config.toml (or $TRELLO_CONFIG) from the --key, --token,
--base-url and --timeout flags. An existing file is kept unless --force is given.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		secret, _ := cmd.Flags().GetString("secret")
		force, _ := cmd.Flags().GetBool("force")

		homeDir, err := os.UserHomeDir()
		if err != nil {
			handleError(&configError{err})
		}
		cfg := &config.GlobalConfig{
			APIKey:  apiKey,
			Token:   apiToken,
			Secret:  secret,
			BaseURL: baseURL,
			Timeout: timeout,
		}
		handleError(runConfigInit(os.Stdout, config.GlobalConfigPath(homeDir), cfg, force))
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the global config file path",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			handleError(&configError{err})
		}
		fmt.Fprintln(os.Stdout, config.GlobalConfigPath(homeDir))
	},
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)

	configInitCmd.Flags().String("secret", "", "Application secret")
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing config file")
}

// runConfigInit writes cfg to path
func runConfigInit(w io.Writer, path string, cfg *config.GlobalConfig, force bool) error {
	if cfg.APIKey == "" {
		return &usageError{"--key is required"}
	}
	if _, err := os.Stat(path); err == nil && !force {
		return &usageError{fmt.Sprintf("%s already exists (use --force to overwrite)", path)}
	}
	if err := config.WriteGlobalConfig(path, cfg); err != nil {
		return &configError{err}
	}
	printSuccess(w, fmt.Sprintf("Wrote %s", path), jsonOutput)
	return nil
}
