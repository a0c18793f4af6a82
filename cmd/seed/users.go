package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"stevensfit/fitness-api/internal/seed"
)

var userCount int

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Create demo users",
	Long: `Create student1..studentN, each with password "password<i>" and email
"student<i>@stevens.edu".

Examples:
  seed users
  seed users --count 5`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUsers(cmd)
	},
}

func runUsers(cmd *cobra.Command) error {
	added, err := seeder.Users(cmd.Context(), userCount)
	printAdded("users", added)
	if err != nil {
		color.Red("✗ Error adding users to database: %v", err)
		return err
	}
	return nil
}

func init() {
	usersCmd.Flags().IntVar(&userCount, "count", seed.DefaultUserCount, "number of demo users")
	rootCmd.AddCommand(usersCmd)
}
