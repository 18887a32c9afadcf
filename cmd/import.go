package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"train-search-server/models"
	"train-search-server/store"
	"train-search-server/timetable"
)

var importCmd = &cobra.Command{
	Use:   "import <file.csv|file.json>",
	Short: "Load trains from a timetable file into the configured store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		trains, err := timetable.Load(args[0])
		if err != nil {
			return err
		}
		for i, t := range trains {
			if err := t.Validate(); err != nil {
				return fmt.Errorf("train %d (%q): %w", i+1, t.Name, err)
			}
		}

		cfg, s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()
		if cfg.Store.Driver == store.DriverMemory {
			return fmt.Errorf("import needs a persistent store; set store.driver to %s or %s", store.DriverSnapshot, store.DriverSQLite)
		}

		log.Printf("Importing %d trains from %s...", len(trains), args[0])
		imported, importErr := importTrains(cmd.Context(), s, trains)
		if importErr != nil {
			return fmt.Errorf("imported %d of %d trains: %w", imported, len(trains), importErr)
		}

		fmt.Println(accentStyle.Render(fmt.Sprintf("Imported %d trains", imported)))
		return nil
	},
}

func importTrains(ctx context.Context, s store.Store, trains []models.Train) (int, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	for i, t := range trains {
		if _, err := s.CreateTrain(ctx, t); err != nil {
			return i, err
		}
	}
	return len(trains), nil
}

func init() {
	rootCmd.AddCommand(importCmd)
}
