package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"stevensfit/fitness-api/internal/app"
	"stevensfit/fitness-api/internal/config"
	"stevensfit/fitness-api/internal/logging"
	"stevensfit/fitness-api/internal/seed"
)

var (
	configDir string

	cfg     config.Config
	seeder  *seed.Seeder
	closeDB func() error
)

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the exercise library, stock workouts and demo users",
	Long: `Seed populates a fresh Stevens Fit database through the service layer,
so every document passes the same validation as API input.

COMMANDS:

  exercises   Create exercises from a CSV (name,target,bodyPart,equipment,gifUrl)
  workouts    Create the stock Leg/Chest/Back/Shoulder workouts (needs exercises)
  users       Create demo users student1..studentN
  all         Run exercises, workouts and users in order

EXAMPLES:

  $ seed exercises --source data.csv
  $ seed exercises --source s3://seed-data/exercises.csv
  $ seed workouts
  $ seed users --count 30
  $ seed all --source data.csv

The database is chosen by config.yaml in --config (or DATABASE_* env vars).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.LoadConfig(configDir)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger := logging.New(os.Stderr, cfg.Log.Format, cfg.Log.Level)
		ctx := logging.WithLogger(cmd.Context(), logger)
		cmd.SetContext(ctx)

		repos, closeFn, err := app.Open(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to open %s backend: %w", cfg.Database.Backend, err)
		}
		closeDB = closeFn

		services := repos.Services(cfg.Security.BcryptCost)
		seeder = seed.NewSeeder(services.Exercises, services.Workouts, services.Users)
		return nil
	},
}

// Execute runs the root command. The backend is released here rather than in
// a post-run hook, which cobra skips when RunE fails.
func Execute() error {
	err := rootCmd.Execute()
	if closeDB != nil {
		if closeErr := closeDB(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close database: %w", closeErr)
		}
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", ".", "directory holding config.yaml")
}

func printAdded(kind string, added []seed.Added) {
	for _, a := range added {
		fmt.Printf("  %s %s %s\n", color.GreenString("✓"), a.Name, color.New(color.Faint).Sprint(a.ID))
	}
	color.Green("✓ Added %d %s", len(added), kind)
}
