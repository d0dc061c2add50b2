package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/comercial-api/pkg/jwt"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Emite un Bearer token firmado con JWT_SECRET",
	Example: `  ncfctl token --user caja01 --role vendedor`,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, _ := cmd.Flags().GetString("user")
		role, _ := cmd.Flags().GetString("role")
		minutes, _ := cmd.Flags().GetInt("minutes")
		if minutes <= 0 {
			minutes = cfg.JWT.Expiration
		}
		tok, err := jwt.Generate(cfg.JWT.Secret, user, role, cfg.JWT.Issuer, minutes)
		if err != nil {
			return err
		}
		fmt.Println(tok)
		return nil
	},
}

func init() {
	tokenCmd.Flags().String("user", "", "Identificador del usuario")
	tokenCmd.Flags().String("role", "vendedor", "Rol: admin | vendedor | bodeguero")
	tokenCmd.Flags().Int("minutes", 0, "Vigencia en minutos (por defecto JWT_EXPIRATION_MINUTES)")
	_ = tokenCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(tokenCmd)
}
