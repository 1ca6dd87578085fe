package cmd

import (
	"github.com/ismaelescalante7/challenge-leverbox/models"
	"github.com/ismaelescalante7/challenge-leverbox/seeders"
	"github.com/spf13/cobra"
)

var seedWithTasks bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := bootstrap()
		if err != nil {
			return err
		}
		db, err := openDB(cfg)
		if err != nil {
			return err
		}
		defer closeDB(db)

		logger.Info("schema migrated", "driver", cfg.Database.Driver)
		printf(cmd, "✅ Schema migrated (%s)\n", cfg.Database.Driver)
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the default priorities and tags",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := bootstrap()
		if err != nil {
			return err
		}
		db, err := openDB(cfg)
		if err != nil {
			return err
		}
		defer closeDB(db)

		res, err := seeders.Run(cmd.Context(), db, logger, seedWithTasks, models.Today())
		if err != nil {
			return err
		}

		printf(cmd, "✅ Seeded %d priorities, %d tags, %d tasks\n", res.Priorities, res.Tags, res.Tasks)
		return nil
	},
}

func init() {
	seedCmd.Flags().BoolVar(&seedWithTasks, "with-tasks", false, "also insert sample tasks into an empty table")
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}
