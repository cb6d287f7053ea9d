package cmd

import (
	"consolidator/src/config"
	"os"

	"github.com/spf13/cobra"
)

var (
	settingsPath string
	environment  string
)

var rootCmd = &cobra.Command{
	Use:   "consolidator",
	Short: "Consolidates wealth-manager statements into one deduplicated holdings list",
	Long: `Consolidator reads the monthly PDF statements of every configured wealth
manager, extracts their holdings, removes holdings reported by more than one
manager and writes the result as JSON (and optionally XLSX).

Statements are read from <input.dataDir>/<Month YYYY>/. Passwords come from
environment variables (.env) or AWS Secrets Manager.`,
	SilenceUsage: true,
	RunE:         runConfiguredService,
}

var (
	extractCmd = newExtractCmd()
	serveCmd   = newServeCmd()
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", "./settings", "directory holding appsettings.yaml")
	rootCmd.PersistentFlags().StringVar(&environment, "env", os.Getenv("ENV"), "settings environment (reads appsettings.<env>.yaml)")

	rootCmd.AddCommand(
		extractCmd,
		serveCmd,
		newLatestFolderCmd(),
	)
}

// runConfiguredService runs serve when service.type is API and extract
// otherwise.
func runConfiguredService(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(settingsPath, environment)
	if err != nil {
		return err
	}
	if cfg.Service.Type == config.API {
		return serveCmd.RunE(cmd, args)
	}
	return extractCmd.RunE(cmd, args)
}
