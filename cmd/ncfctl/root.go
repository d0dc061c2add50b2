package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/comercial-api/internal/bootstrap"
	"github.com/jhoicas/comercial-api/pkg/config"
	"github.com/jhoicas/comercial-api/pkg/logger"
)

var version = "1.0.0"

var (
	cfg *config.Config
	log *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:           "ncfctl",
	Short:         "Operación del motor comercial (NCF, inventario, cuentas)",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		log = logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).WithComponent("ncfctl")
		return nil
	},
}

// withServices abre el almacenamiento configurado y ejecuta fn con los casos de uso.
func withServices(ctx context.Context, fn func(svc *bootstrap.Services) error) error {
	store, err := bootstrap.OpenStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(bootstrap.NewServices(store.Tx, store.Reads, bootstrap.Options{Log: log}))
}

// printJSON escribe v indentado en stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
