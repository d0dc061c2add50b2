package main

import (
	"fmt"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"

	"github.com/jhoicas/comercial-api/internal/infrastructure/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Aplica las migraciones pendientes de PostgreSQL",
	RunE: func(cmd *cobra.Command, args []string) error {
		pool, err := postgres.NewPool(cmd.Context(), cfg.DB)
		if err != nil {
			return err
		}
		defer pool.Close()
		if err := postgres.MigrateFromPool(pool); err != nil {
			return err
		}
		log.Info().Msg("migraciones aplicadas")
		return nil
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Muestra la versión de esquema aplicada",
	RunE: func(cmd *cobra.Command, args []string) error {
		pool, err := postgres.NewPool(cmd.Context(), cfg.DB)
		if err != nil {
			return err
		}
		defer pool.Close()
		db := stdlib.OpenDBFromPool(pool)
		defer db.Close()

		v, dirty, err := postgres.MigrationVersion(db)
		if err != nil {
			return err
		}
		fmt.Printf("version=%d dirty=%t\n", v, dirty)
		return nil
	},
}

func init() {
	migrateCmd.AddCommand(migrateVersionCmd)
	rootCmd.AddCommand(migrateCmd)
}
