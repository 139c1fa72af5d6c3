// Root command for the ticklist CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/ticklist/internal/paths"
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagServerURL string
	flagJSON      bool
)

// Values loaded from config.yaml by PersistentPreRunE so all subcommands
// can use them. Flags take precedence; see the resolve* helpers.
var (
	configListenAddr string
	configDataDir    string
	configServerURL  string
)

var rootCmd = &cobra.Command{
	Use:     "ticklist",
	Short:   "Ticklist is a synchronized todo-list manager",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		configListenAddr = cfg.GetString(cfgKeyListenAddr)
		configDataDir = cfg.GetString(cfgKeyDataDir)
		configServerURL = cfg.GetString(cfgKeyServerURL)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.ticklist-db)")
	rootCmd.PersistentFlags().StringVar(&flagServerURL, "server", "", "server base URL (default: http://localhost:8080)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(uiCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(rmCmd)
}

// resolveConfigDir returns the configuration directory following the
// precedence: --config-dir flag > TICKLIST_CONFIG_DIR env > platform default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}

// resolveDataDir returns the data directory following the precedence:
// --data-dir flag > config.yaml data_dir > TICKLIST_DATA_DIR env > default.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, configDataDir)
}
