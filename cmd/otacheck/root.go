// ABOUTME: Root Cobra command and global flags
// ABOUTME: Sets up CLI structure, opens stores, and builds the fetch engine

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nvdw/otacheck/internal/api"
	"github.com/nvdw/otacheck/internal/config"
	"github.com/nvdw/otacheck/internal/connectivity"
	"github.com/nvdw/otacheck/internal/engine"
	"github.com/nvdw/otacheck/internal/obs"
	"github.com/nvdw/otacheck/internal/prefs"
	"github.com/nvdw/otacheck/internal/storage"
)

var (
	serverURL  string
	dataDir    string
	cfg        *config.Config
	prefsStore prefs.Store
	newsStore  storage.Store
	eng        *engine.Engine
)

var rootCmd = &cobra.Command{
	Use:   "otacheck",
	Short: "Firmware update companion for unreliable networks",
	Long: `otacheck keeps you informed about firmware updates and related news.

It checks the update service for new builds, caches the last known-good
result for offline use, tracks news items locally, and manages the push
topic subscription for your device and update method selection.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if serverURL != "" {
			cfg.ServerURL = serverURL
		}
		if dataDir != "" {
			cfg.DataDir = dataDir
		}

		prefsStore, err = cfg.OpenPrefs()
		if err != nil {
			return fmt.Errorf("failed to open preferences: %w", err)
		}

		newsStore, err = storage.NewSQLiteStore(cfg.NewsDBPath())
		if err != nil {
			return fmt.Errorf("failed to open news cache: %w", err)
		}

		client := api.NewClient(cfg.GetServerURL(), Version)
		checker := connectivity.NewDialChecker(cfg.ProbeAddr)
		eng = engine.New(client, prefsStore, newsStore, checker, Version, obs.NewLogger())

		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if newsStore != nil {
			if err := newsStore.Close(); err != nil {
				return fmt.Errorf("failed to close news cache: %w", err)
			}
		}
		if prefsStore != nil {
			if err := prefsStore.Close(); err != nil {
				return fmt.Errorf("failed to close preferences: %w", err)
			}
		}
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "update service base URL (default from config)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default: ~/.local/share/otacheck)")
}

// selection returns the persisted device and update-method ids, optionally
// overridden by command flags.
func selection(cmd *cobra.Command) (int64, int64, error) {
	settings := prefs.LoadSettings(prefsStore)
	deviceID, updateMethodID := settings.DeviceID, settings.UpdateMethodID

	if cmd.Flags().Changed("device") {
		deviceID, _ = cmd.Flags().GetInt64("device")
	}
	if cmd.Flags().Changed("method") {
		updateMethodID, _ = cmd.Flags().GetInt64("method")
	}

	if deviceID < 0 || updateMethodID < 0 {
		return 0, 0, fmt.Errorf("no device selected: pass --device and --method, or run 'otacheck select'")
	}
	return deviceID, updateMethodID, nil
}
