package main

import (
	"fmt"
	"os"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/shopcraft/ecommerce-api/app/config"
	"github.com/shopcraft/ecommerce-api/app/database"
	"github.com/shopcraft/ecommerce-api/app/logging"
)

const envFileFlag = "env-file"

// newCommonFlags returns the flags every subcommand registers. A cobraflags
// flag binds to one command only, so each command gets its own map.
func newCommonFlags() map[string]cobraflags.Flag {
	return map[string]cobraflags.Flag{
		envFileFlag: &cobraflags.StringFlag{
			Name:  envFileFlag,
			Value: ".env",
			Usage: "Optional dotenv file loaded before reading the environment",
		},
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "shop",
		Short:         "E-commerce catalog, review and account API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newMigrateCommand())
	rootCmd.AddCommand(newUsersCommand())
	return rootCmd
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// env holds what every subcommand needs.
type env struct {
	cfg   *config.Config
	log   *zap.Logger
	db    *gorm.DB
	close func()
}

// envFile is the dotenv file named on cmd's command line.
func envFile(cmd *cobra.Command) string {
	name, err := cmd.Flags().GetString(envFileFlag)
	if err != nil {
		return ""
	}
	return name
}

// setup loads the configuration and opens the logger and database.
func setup(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load(envFile(cmd))
	if err != nil {
		return nil, err
	}

	log, err := logging.New(cfg.Logger)
	if err != nil {
		return nil, err
	}

	db, closeDB, err := database.New(cfg.Postgres, log)
	if err != nil {
		_ = log.Sync()
		return nil, err
	}
	log.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	return &env{
		cfg: cfg,
		log: log,
		db:  db,
		close: func() {
			if err := closeDB(); err != nil {
				log.Warn("failed to close database", zap.Error(err))
			}
			_ = log.Sync()
		},
	}, nil
}
