package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/ismaelescalante7/challenge-leverbox/config"
	"github.com/ismaelescalante7/challenge-leverbox/utils"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var configPath string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "taskapi",
	Short: "Task management REST API",
	Long: `taskapi serves the task management API and the operator commands
around it: schema migration, seeding, token minting and a terminal task list.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (default: $CONFIG_FILE)")
}

// bootstrap loads the configuration and builds the logger.
func bootstrap() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	logger := utils.NewLogger(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	return cfg, logger, nil
}

// openDB connects and migrates.
func openDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := config.ConnectDB(cfg)
	if err != nil {
		return nil, err
	}
	if err := config.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
