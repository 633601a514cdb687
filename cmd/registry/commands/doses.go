package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	pettypes "github.com/Apurer/pet-registry/internal/domains/pets/application/types"
)

func doseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dose",
		Short: "Track vaccination doses",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "administer [pet-uuid] [dose-id]",
		Short: "Mark a pending dose as administered",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doseID, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return err
			}
			dose, err := registry.Pets.MarkDoseAdministered(cmd.Context(), actor, pettypes.MarkDoseInput{PetUUID: args[0], DoseID: doseID})
			if err != nil {
				return err
			}
			return printJSON(cmd, dose)
		},
	})
	return cmd
}
