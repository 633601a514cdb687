package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	userdomain "github.com/Apurer/pet-registry/internal/domains/users/domain"
)

func userCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage registry accounts",
	}
	cmd.AddCommand(userCreateCmd(), userShowCmd())
	return cmd
}

func userCreateCmd() *cobra.Command {
	var email, first, last string
	cmd := &cobra.Command{
		Use:   "create [username]",
		Short: "Create an owner or adopter account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := userdomain.NewUser(args[0], email)
			if err != nil {
				return err
			}
			if err := user.UpdateProfile(first, last, email); err != nil {
				return err
			}
			created, err := registry.Users.CreateUser(cmd.Context(), user)
			if err != nil {
				return err
			}
			return printJSON(cmd, created)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "contact email")
	cmd.Flags().StringVar(&first, "first-name", "", "first name")
	cmd.Flags().StringVar(&last, "last-name", "", "last name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func userShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return err
			}
			user, err := registry.Users.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd, user)
		},
	}
}
