package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"stevensfit/fitness-api/internal/seed"
)

var workoutsCmd = &cobra.Command{
	Use:   "workouts",
	Short: "Create the stock workouts",
	Long: `Create the Leg, Chest, Back and Shoulder workouts with creator ADMIN.
Every exercise they reference must already exist, so run 'seed exercises' first.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWorkouts(cmd)
	},
}

func runWorkouts(cmd *cobra.Command) error {
	added, err := seeder.Workouts(cmd.Context(), seed.StockWorkouts)
	printAdded("workouts", added)
	if err != nil {
		color.Red("✗ Error adding workouts to database: %v", err)
		return err
	}
	return nil
}

func init() {
	rootCmd.AddCommand(workoutsCmd)
}
