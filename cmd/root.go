package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stinglish/stinglish/internal/config"
	"github.com/stinglish/stinglish/internal/store"
)

var rootCmd = &cobra.Command{
	Use:          "stinglish",
	Short:        "AI English tutor in your terminal",
	Long:         "Stinglish is a terminal English tutor: a placement test, conversation practice with an AI tutor and topic exercises.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("db", "", "Path to the SQLite LLM request log (overrides STINGLISH_DB env var)")

	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(bankCmd)
	rootCmd.AddCommand(versionCmd)
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	file, _ := cmd.Flags().GetString("config")
	loader, err := config.NewConfigLoader(file)
	if err != nil {
		return nil, err
	}
	return loader.Load()
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then store.path from the config, then STINGLISH_DB and the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg != nil && cfg.Store.Path != "" {
		return cfg.Store.Path, store.EnsureDir(cfg.Store.Path)
	}
	return store.DefaultDBPath()
}

// openStore opens the request log for the inspection commands.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
