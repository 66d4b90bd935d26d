package main

import (
	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/shopcraft/ecommerce-api/models"
)

func newMigrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the database schema",
		Long: `Create the categories, products, users and reviews tables with their
indexes and foreign keys. Existing tables are kept; missing columns and
indexes are added.`,
		RunE: migrateCommand,
	}
	cobraflags.RegisterMap(migrateCmd, newCommonFlags())
	return migrateCmd
}

func migrateCommand(cmd *cobra.Command, _ []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	if err := models.Migrate(e.db.WithContext(cmd.Context())); err != nil {
		return err
	}
	e.log.Info("Schema is up to date")
	return nil
}
