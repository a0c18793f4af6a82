package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"stevensfit/fitness-api/internal/seed"
	"stevensfit/fitness-api/internal/storage"
)

var exerciseSource string

var exercisesCmd = &cobra.Command{
	Use:   "exercises",
	Short: "Create exercises from a CSV file or S3 object",
	Long: `Create one exercise per CSV row. The header must name the columns
name, target, bodyPart, equipment and gifUrl; other columns are ignored.

Examples:
  seed exercises --source data.csv
  seed exercises --source s3://seed-data/exercises.csv
  seed exercises --source s3:///exercises.csv   # uses s3.bucket_name`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExercises(cmd)
	},
}

func runExercises(cmd *cobra.Command) error {
	ctx := cmd.Context()

	var objects storage.ObjectReader
	if storage.IsS3URI(exerciseSource) {
		var err error
		objects, err = storage.NewS3Storage(ctx, cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 storage: %w", err)
		}
	}

	body, err := seed.OpenSource(ctx, exerciseSource, objects)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", exerciseSource, err)
	}
	defer body.Close()

	rows, err := seed.ParseExercisesCSV(body)
	if err != nil {
		return err
	}

	added, err := seeder.Exercises(ctx, rows)
	printAdded("exercises", added)
	if err != nil {
		color.Red("✗ Error adding exercises to database: %v", err)
		return err
	}
	return nil
}

func init() {
	exercisesCmd.Flags().StringVar(&exerciseSource, "source", "data.csv", "CSV path or s3://bucket/key")
	rootCmd.AddCommand(exercisesCmd)
}
