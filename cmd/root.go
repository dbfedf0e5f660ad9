package cmd

import (
	"github.com/spf13/cobra"

	"github.com/priyad/mathventure/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "mathventure",
	Short: "Adaptive arithmetic practice in the terminal",
	Long: "Mathventure is a terminal math game that watches how a player " +
		"does and moves the difficulty up or down to match.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides MATHVENTURE_DB)")
	rootCmd.PersistentFlags().String("config", "", "Path to TOML config file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using the --db flag (highest
// priority), then MATHVENTURE_DB, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p
	}
	return config.DefaultDBPath()
}

// loadConfig reads the layered configuration, honoring --config.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}
