package main

import (
	"github.com/spf13/cobra"

	"github.com/jhoicas/comercial-api/internal/bootstrap"
)

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "Cuentas por cobrar y por pagar",
}

var sweepOverdueCmd = &cobra.Command{
	Use:   "sweep-overdue",
	Short: "Marca como OVERDUE las cuentas pendientes vencidas",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd.Context(), func(svc *bootstrap.Services) error {
			res, err := svc.Accounts.SweepOverdue(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(res)
		})
	},
}

func init() {
	accountsCmd.AddCommand(sweepOverdueCmd)
	rootCmd.AddCommand(accountsCmd)
}
