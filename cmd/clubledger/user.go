package main

import (
	"fmt"
	"strings"

	"github.com/antusaha970/member-management-backend-sub000/internal/core/domain"
	"github.com/antusaha970/member-management-backend-sub000/internal/dto"
	"github.com/spf13/cobra"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage staff users",
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a staff user",
	Long: `Create a staff user who can log in to the API. Registration over HTTP is
not offered, so the first administrator is created here.`,
	Example: `  clubledger user create --email admin@club.example --name "Front Desk" --password 's3cret-pass' --role ADMIN`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		email, _ := cmd.Flags().GetString("email")
		name, _ := cmd.Flags().GetString("name")
		password, _ := cmd.Flags().GetString("password")
		role, _ := cmd.Flags().GetString("role")

		a, err := loadApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		user, err := a.services.User.CreateUser(cmd.Context(), dto.CreateUserRequest{
			Email:    email,
			Name:     name,
			Password: password,
			Role:     domain.UserRole(strings.ToUpper(role)),
		})
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created user %s (%s)\n", user.UserID, user.Email)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userCreateCmd)

	userCreateCmd.Flags().String("email", "", "Login email")
	userCreateCmd.Flags().String("name", "", "Display name")
	userCreateCmd.Flags().String("password", "", "Initial password (at least 8 characters)")
	userCreateCmd.Flags().String("role", string(domain.RoleCashier), "ADMIN or CASHIER")
	_ = userCreateCmd.MarkFlagRequired("email")
	_ = userCreateCmd.MarkFlagRequired("password")
}
