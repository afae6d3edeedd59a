package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/tango/internal/cardclient"
	"github.com/abhisek/tango/internal/cards"
	"github.com/abhisek/tango/internal/config"
	"github.com/abhisek/tango/internal/llm"
	"github.com/abhisek/tango/internal/logging"
	"github.com/abhisek/tango/internal/store"
	"github.com/abhisek/tango/internal/suggest"
)

// appConfig is loaded once per invocation by the root PersistentPreRunE.
var appConfig *config.Config

var rootCmd = &cobra.Command{
	Use:          "tango",
	Short:        "Vocabulary flashcards in the terminal",
	Long:         "Tango keeps a collection of vocabulary cards for flip-card review and timed quizzes.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		appConfig = cfg
		_, err = logging.Setup(os.Stderr, cfg.Log.Level, cfg.Log.Format)
		return err
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// Execute runs the root command with ctx, which is cancelled on interrupt.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file (default $XDG_CONFIG_HOME/tango/config.yaml)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides TANGO_DB env var)")
	rootCmd.PersistentFlags().String("remote", "", "Base URL of a running `tango serve` to use for cards")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(cardCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config file and environment, then applies flag
// overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DB = p
	}
	if u, _ := cmd.Flags().GetString("remote"); u != "" {
		cfg.Remote.URL = u
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		if _, err := logging.ParseLevel(lvl); err != nil {
			return nil, err
		}
		cfg.Log.Level = lvl
	}
	return cfg, nil
}

// resolveDBPath returns the database path using --db or the db config key
// (highest priority), then TANGO_DB, then the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

func openStore(cfg *config.Config) (*store.Store, error) {
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}

// cardStore returns the remote card service when one is configured and the
// local repository otherwise.
func cardStore(cfg *config.Config, st *store.Store) (cards.Store, error) {
	if cfg.Remote.URL == "" {
		return st.CardRepo(), nil
	}
	client, err := cardclient.New(cfg.Remote.URL, cfg.Remote.Timeout)
	if err != nil {
		return nil, err
	}
	slog.Debug("using remote card service", "url", cfg.Remote.URL)
	return client, nil
}

// newSuggester builds a suggester from the configured LLM provider. It
// returns nil, nil when no provider is configured.
func newSuggester(ctx context.Context, cfg *config.Config, events store.EventRepo) (*suggest.Suggester, error) {
	llmCfg, ok := cfg.LLMProvider()
	if !ok {
		return nil, nil
	}
	provider, err := llm.NewProvider(ctx, llmCfg, events)
	if err != nil {
		return nil, err
	}
	sc := suggest.DefaultConfig()
	sc.SourceLanguage = cfg.LLM.SourceLanguage
	sc.MeaningLanguage = cfg.LLM.MeaningLanguage
	return suggest.New(provider, sc), nil
}
