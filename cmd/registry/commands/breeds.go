package commands

import (
	"github.com/spf13/cobra"
)

func breedsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "breeds",
		Short: "List the breed catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			breeds, err := registry.Pets.ListBreeds(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, breeds)
		},
	}
}
