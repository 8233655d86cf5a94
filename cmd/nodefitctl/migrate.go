package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"nodefit/internal/app"
	"nodefit/internal/config"
	"nodefit/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd, func(cfg *config.Config, db *gorm.DB, _ *app.Services, zl *zap.Logger) error {
			version, err := database.CurrentVersion(db)
			if err != nil {
				return err
			}
			zl.Debug("migrations applied", zap.String("driver", cfg.DBDriver), zap.Int("version", version))
			fmt.Fprintf(cmd.OutOrStdout(), "Schema version %d of %d\n", version, database.SchemaVersion())
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
