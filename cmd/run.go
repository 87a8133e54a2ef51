package cmd

import (
	"fmt"
	"os"

	"github.com/abhisek/pmoquiz/internal/app"
	"github.com/abhisek/pmoquiz/internal/llm"
	"github.com/abhisek/pmoquiz/internal/logger"
	"github.com/abhisek/pmoquiz/internal/quiz"
	"github.com/abhisek/pmoquiz/internal/recommend"
	"github.com/abhisek/pmoquiz/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, closeLog, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Logging disabled:", err)
	}
	defer closeLog()

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	eventRepo := st.EventRepo()
	log.Info("starting",
		zap.String("db", dbPath),
		zap.String("config", cfg.File),
		zap.String("provider", cfg.LLM.Provider),
		zap.Bool("discovered", cfg.Discovered))

	provider, err := llm.NewProvider(ctx, cfg.LLM, eventRepo, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Recommendations will be unavailable.")
		log.Warn("llm provider unavailable", zap.Error(err))
		provider = llm.WithLogging(llm.Unconfigured(err), "none", eventRepo, log)
	}

	return app.Run(app.Options{
		Questions:   quiz.Bank(),
		Recommender: recommend.NewClient(provider, recommend.DefaultConfig(), log),
		Timeout:     cfg.LLM.Timeout,
		EventRepo:   eventRepo,
		ExportDir:   cfg.Export.Dir,
		Logger:      log,
	})
}
