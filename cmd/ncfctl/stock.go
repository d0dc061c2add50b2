package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/comercial-api/internal/application/dto"
	"github.com/jhoicas/comercial-api/internal/bootstrap"
)

var stockCmd = &cobra.Command{
	Use:   "stock",
	Short: "Consultas del libro de inventario",
}

var stockReconcileCmd = &cobra.Command{
	Use:   "reconcile [product-id]",
	Short: "Reproduce el libro y lo compara con el stock de cada producto",
	Long: `Reproduce los movimientos en orden y compara el resultado con el contador
del producto. Sin argumentos revisa todo el catálogo. Sale con error si
encuentra alguna diferencia.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd.Context(), func(svc *bootstrap.Services) error {
			var results []dto.ReconcileResponse
			if len(args) == 1 {
				r, err := svc.Ledger.Reconcile(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				results = append(results, *r)
			} else {
				all, err := svc.Ledger.ReconcileAll(cmd.Context())
				if err != nil {
					return err
				}
				results = all
			}
			if err := printJSON(results); err != nil {
				return err
			}
			inconsistent := 0
			for _, r := range results {
				if !r.Consistent {
					inconsistent++
				}
			}
			if inconsistent > 0 {
				return fmt.Errorf("%d producto(s) con el libro inconsistente", inconsistent)
			}
			return nil
		})
	},
}

var stockLowCmd = &cobra.Command{
	Use:   "low",
	Short: "Productos en o por debajo del stock mínimo con la reposición sugerida",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd.Context(), func(svc *bootstrap.Services) error {
			out, err := svc.Catalog.LowStock(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(out)
		})
	},
}

func init() {
	stockCmd.AddCommand(stockReconcileCmd, stockLowCmd)
	rootCmd.AddCommand(stockCmd)
}
