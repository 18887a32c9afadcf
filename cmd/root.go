package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"train-search-server/config"
	"train-search-server/store"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "train-search-server",
	Short: "Store train timetables and search direct connections between stations",
	Long: `train-search-server keeps a set of trains, each an ordered list of stops,
and answers which trains run directly from one station to another, with
distance, fare and departure times.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogging()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "path to the YAML config file")
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func initLogging() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
}

// openStore loads the config and opens the configured store, wrapped in the
// snapshot cache when a TTL is set.
func openStore() (*config.AppConfig, store.Store, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	s, err := store.Open(cfg.Store.Driver, cfg.Store.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s store: %w", cfg.Store.Driver, err)
	}
	if cfg.Store.CacheTTL > 0 {
		log.Printf("Caching train snapshots for %s", cfg.Store.CacheTTL)
		s = store.NewCached(s, cfg.Store.CacheTTL)
	}
	return cfg, s, nil
}
