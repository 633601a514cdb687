package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	pettypes "github.com/Apurer/pet-registry/internal/domains/pets/application/types"
	"github.com/Apurer/pet-registry/internal/domains/pets/domain"
)

const dateLayout = "2006-01-02"

func petCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pet",
		Short: "Register pets and drive the adoption lifecycle",
	}
	cmd.AddCommand(
		petRegisterCmd(),
		petShowCmd(),
		petListCmd(),
		petOfferCmd(),
		petAdoptCmd(),
		petDeleteCmd(),
		petRescheduleCmd(),
	)
	return cmd
}

func petRegisterCmd() *cobra.Command {
	var (
		breedID int64
		born    string
		care    domain.CareFlags
		images  []string
	)
	cmd := &cobra.Command{
		Use:   "register [name]",
		Short: "Register a pet owned by the acting user and schedule its due vaccinations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := pettypes.RegisterPetInput{Name: args[0], BreedID: breedID, Care: care, Images: images}
			if born != "" {
				birthDate, err := time.Parse(dateLayout, born)
				if err != nil {
					return fmt.Errorf("--born must be YYYY-MM-DD: %w", err)
				}
				input.BirthDate = &birthDate
			}
			result, err := registry.Pets.RegisterPet(cmd.Context(), actor, input)
			if err != nil {
				return err
			}
			return printJSON(cmd, result)
		},
	}
	cmd.Flags().Int64Var(&breedID, "breed", 0, "breed id (see `registry breeds`)")
	cmd.Flags().StringVar(&born, "born", "", "birth date YYYY-MM-DD (default today)")
	cmd.Flags().BoolVar(&care.Dewormed, "dewormed", false, "pet is dewormed")
	cmd.Flags().BoolVar(&care.Sterilized, "sterilized", false, "pet is sterilized")
	cmd.Flags().BoolVar(&care.Vaccinated, "vaccinated", false, "pet is vaccinated")
	cmd.Flags().StringSliceVar(&images, "image", nil, "image reference, repeatable")
	_ = cmd.MarkFlagRequired("breed")
	return cmd
}

func petShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [uuid]",
		Short: "Show a pet with its adoption record and pending doses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := registry.Pets.GetByUUID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, result)
		},
	}
}

func petListCmd() *cobra.Command {
	var inAdoption bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the pets visible to the acting user, or every pet offered for adoption",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				result []*pettypes.PetProjection
				err    error
			)
			if inAdoption {
				result, err = registry.Pets.ListInAdoption(cmd.Context())
			} else {
				result, err = registry.Pets.ListVisibleTo(cmd.Context(), actor)
			}
			if err != nil {
				return err
			}
			return printJSON(cmd, result)
		},
	}
	cmd.Flags().BoolVar(&inAdoption, "in-adoption", false, "list pets offered for adoption")
	return cmd
}

func petOfferCmd() *cobra.Command {
	var description string
	cmd := &cobra.Command{
		Use:   "offer [uuid]",
		Short: "Offer a pet for adoption",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := registry.Pets.OfferForAdoption(cmd.Context(), actor, pettypes.OfferForAdoptionInput{UUID: args[0], Description: description})
			if err != nil {
				return err
			}
			return printJSON(cmd, record)
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "adoption description")
	_ = cmd.MarkFlagRequired("description")
	return cmd
}

func petAdoptCmd() *cobra.Command {
	var mobile string
	cmd := &cobra.Command{
		Use:   "adopt [uuid]",
		Short: "Adopt a pet as the acting user and notify its owner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := registry.Pets.FinalizeAdoption(cmd.Context(), actor, pettypes.FinalizeAdoptionInput{UUID: args[0], Mobile: mobile})
			if result != nil {
				if printErr := printJSON(cmd, result); printErr != nil {
					return printErr
				}
			}
			return err
		},
	}
	cmd.Flags().StringVar(&mobile, "mobile", "", "adopter mobile shared with the owner")
	_ = cmd.MarkFlagRequired("mobile")
	return cmd
}

func petDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a pet that is not offered for adoption",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return err
			}
			return registry.Pets.DeletePet(cmd.Context(), actor, id)
		},
	}
}

func petRescheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reschedule [uuid]",
		Short: "Schedule the vaccinations due for the pet's current age",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := registry.Pets.RescheduleVaccinations(cmd.Context(), actor, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, result)
		},
	}
}
