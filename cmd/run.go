package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/tango/internal/app"
	"github.com/abhisek/tango/internal/ledger"
	"github.com/abhisek/tango/internal/logging"
	"github.com/abhisek/tango/internal/random"
	"github.com/abhisek/tango/internal/screens/home"
	quizscreen "github.com/abhisek/tango/internal/screens/quiz"
	"github.com/abhisek/tango/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	cfg := appConfig

	logPath, err := tuiLogPath(cfg.Log.File)
	if err != nil {
		return err
	}
	closer, err := logging.SetupFile(logPath, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer closer.Close()

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	cardSrc, err := cardStore(cfg, st)
	if err != nil {
		return err
	}

	eventRepo := st.EventRepo()
	deps := home.Deps{
		Cards:  cardSrc,
		Ledger: ledger.New(st.KV()),
		Events: eventRepo,
		Random: random.NewRandom,
		Quiz: quizscreen.Defaults{
			Questions: cfg.Study.QuizQuestions,
			Minutes:   cfg.Study.QuizMinutes,
		},
	}

	sg, err := newSuggester(ctx, cfg, eventRepo)
	switch {
	case err != nil:
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Card suggestions will be unavailable.")
	case sg != nil:
		deps.Suggester = sg
	}

	slog.Info("starting tui", "remote", cfg.Remote.URL != "", "suggestions", deps.Suggester != nil)
	if err := app.Run(ctx, deps); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

func tuiLogPath(configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	dir, err := store.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "tango.log"), nil
}
