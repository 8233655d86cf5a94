package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"nodefit/internal/app"
	"nodefit/internal/config"
	"nodefit/internal/database"
	"nodefit/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "nodefitctl",
	Short: "nodefitctl administers a local nodefit store",
	Long:  "nodefitctl migrates the nodefit database, inspects profiles and progress, and tails domain events.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// the environment wins over .env, flags win over both
		_ = godotenv.Load()
	},
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("db-driver", "", "Database driver: sqlite or postgres")
	rootCmd.PersistentFlags().String("db-dsn", "", "Database DSN or SQLite path")
	rootCmd.PersistentFlags().String("log-level", "", "Log level")
}

// loadConfig merges defaults, the environment and the persistent flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v := viper.New()
	config.SetDefaults(v)
	v.AutomaticEnv()
	for key, flag := range map[string]string{"DB_DRIVER": "db-driver", "DB_DSN": "db-dsn", "LOG_LEVEL": "log-level"} {
		if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
			v.Set(key, f.Value.String())
		}
	}
	return config.FromViper(v)
}

// withServices opens and migrates the database, then runs fn against the
// wired services.
func withServices(cmd *cobra.Command, run func(*config.Config, *gorm.DB, *app.Services, *zap.Logger) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	zl, err := logger.New(cfg.LogLevel, true)
	if err != nil {
		return err
	}
	defer func() { _ = zl.Sync() }()

	db, err := database.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close(db) }()
	if err := database.Migrate(db); err != nil {
		return err
	}
	return run(cfg, db, app.NewServices(app.Options{Config: cfg, DB: db, Logger: zl}), zl)
}

func parseIDArg(name, value string) (uint, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	if v == 0 {
		return 0, fmt.Errorf("%s must be > 0", name)
	}
	return uint(v), nil
}
