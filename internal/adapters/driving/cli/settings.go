package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/geodist/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "View and change configuration",
	Long: `View and change geodist configuration.

Settings are stored in ~/.geodist/config.toml. A running MCP server picks
up changes to the file without restarting.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change a single setting. Run "geodist settings" to list the keys.

Examples:
  geodist settings set estimator.k 8
  geodist settings set oracle.backend local
  geodist settings set oracle.rate 0`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if settingsService == nil {
			return errors.New("settings service not configured")
		}

		if err := settingsService.Set(args[0], args[1]); err != nil {
			return fmt.Errorf("failed to set %s: %w", args[0], err)
		}

		cmd.Printf("Set %s = %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Estimator")
	cmd.Printf("  K:           %d\n", settings.Estimator.K)
	cmd.Printf("  Concurrency: %d\n", settings.Estimator.Concurrency)
	cmd.Println()

	cmd.Println("Oracle")
	cmd.Printf("  Backend:     %s (%s)\n", settings.Oracle.Backend, settings.Oracle.Backend.Description())
	if settings.Oracle.Backend.IsRemote() {
		cmd.Printf("  URL:         %s\n", orDefault(settings.Oracle.BaseURL, domain.DefaultOracleURL))
		cmd.Printf("  Timeout:     %ds\n", settings.Oracle.TimeoutSeconds)
		if settings.Oracle.Rate == 0 {
			cmd.Println("  Rate:        unlimited")
		} else {
			cmd.Printf("  Rate:        %g/s (burst %d)\n", settings.Oracle.Rate, settings.Oracle.Burst)
		}
	}
	cmd.Println()

	cmd.Println("Store")
	cmd.Printf("  Data dir:    %s\n", orDefault(settings.Store.DataDir, "~/.geodist/data"))
	cmd.Println()

	cmd.Println("Keys")
	for _, k := range settingsService.Keys() {
		cmd.Printf("  %s\n", k)
	}
	return nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
