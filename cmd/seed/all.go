package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"stevensfit/fitness-api/internal/seed"
)

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Seed exercises, workouts and users in order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		color.Cyan("Seeding database with exercises ...")
		if err := runExercises(cmd); err != nil {
			return err
		}
		color.Cyan("Seeding database with workouts ...")
		if err := runWorkouts(cmd); err != nil {
			return err
		}
		color.Cyan("Seeding database with users ...")
		if err := runUsers(cmd); err != nil {
			return err
		}
		color.Green("✓ Done seeding database")
		return nil
	},
}

func init() {
	allCmd.Flags().StringVar(&exerciseSource, "source", "data.csv", "CSV path or s3://bucket/key")
	allCmd.Flags().IntVar(&userCount, "count", seed.DefaultUserCount, "number of demo users")
	rootCmd.AddCommand(allCmd)
}
