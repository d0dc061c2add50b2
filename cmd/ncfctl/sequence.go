package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/comercial-api/internal/application/dto"
	"github.com/jhoicas/comercial-api/internal/bootstrap"
	"github.com/jhoicas/comercial-api/internal/domain/entity"
	"github.com/jhoicas/comercial-api/pkg/dgii"
)

var sequenceCmd = &cobra.Command{
	Use:   "sequence",
	Short: "Administra las secuencias NCF autorizadas",
}

var sequenceCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Registra un rango NCF autorizado por la DGII",
	Example: `  ncfctl sequence create --type 02 --start 1 --end 5000 --expiry 2026-12-31
  ncfctl sequence create --type 01 --series E --start 1 --end 1000 --expiry 2026-12-31`,
	RunE: func(cmd *cobra.Command, args []string) error {
		docType, _ := cmd.Flags().GetString("type")
		series, _ := cmd.Flags().GetString("series")
		start, _ := cmd.Flags().GetInt64("start")
		end, _ := cmd.Flags().GetInt64("end")
		expiryStr, _ := cmd.Flags().GetString("expiry")

		expiry, err := time.Parse("2006-01-02", expiryStr)
		if err != nil {
			return fmt.Errorf("fecha de vencimiento inválida, use YYYY-MM-DD: %w", err)
		}
		// El rango vence al final del día indicado.
		expiry = expiry.Add(24*time.Hour - time.Second)

		return withServices(cmd.Context(), func(svc *bootstrap.Services) error {
			seq, err := svc.Sequences.Create(cmd.Context(), entity.SystemActor, dto.CreateSequenceRequest{
				DocumentType: docType,
				Series:       series,
				RangeStart:   start,
				RangeEnd:     end,
				Expiry:       expiry,
			})
			if err != nil {
				return err
			}
			return printJSON(seq)
		})
	},
}

var sequenceListCmd = &cobra.Command{
	Use:   "list",
	Short: "Lista las secuencias con sus números restantes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd.Context(), func(svc *bootstrap.Services) error {
			seqs, err := svc.Sequences.List(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(seqs)
		})
	},
}

var sequenceDeactivateCmd = &cobra.Command{
	Use:   "deactivate <id>",
	Short: "Desactiva una secuencia",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd.Context(), func(svc *bootstrap.Services) error {
			seq, err := svc.Sequences.Deactivate(cmd.Context(), entity.SystemActor, args[0])
			if err != nil {
				return err
			}
			return printJSON(seq)
		})
	},
}

func init() {
	sequenceCreateCmd.Flags().String("type", dgii.TypeConsumo, "Tipo de comprobante (01, 02, 03, 04)")
	sequenceCreateCmd.Flags().String("series", dgii.SeriesPrinted, "Serie (B impreso, E electrónico)")
	sequenceCreateCmd.Flags().Int64("start", 1, "Primer número del rango")
	sequenceCreateCmd.Flags().Int64("end", 0, "Fin del rango (exclusivo)")
	sequenceCreateCmd.Flags().String("expiry", "", "Fecha de vencimiento YYYY-MM-DD")
	_ = sequenceCreateCmd.MarkFlagRequired("end")
	_ = sequenceCreateCmd.MarkFlagRequired("expiry")

	sequenceCmd.AddCommand(sequenceCreateCmd, sequenceListCmd, sequenceDeactivateCmd)
	rootCmd.AddCommand(sequenceCmd)
}
