package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stinglish/stinglish/internal/app"
	"github.com/stinglish/stinglish/internal/chat"
	"github.com/stinglish/stinglish/internal/llm"
	"github.com/stinglish/stinglish/internal/logging"
	"github.com/stinglish/stinglish/internal/questionbank"
	"github.com/stinglish/stinglish/internal/store"
	"github.com/stinglish/stinglish/internal/tutor"
)

// runApp loads the config, opens the request log, builds the tutor and
// launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.Setup(cfg.Log)
	if err != nil {
		return fmt.Errorf("set up logging: %w", err)
	}
	defer closeLog()

	var eventRepo store.EventRepo
	if !cfg.Store.Disabled {
		dbPath, err := resolveDBPath(cmd, cfg)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()
		eventRepo = st.EventRepo()
		logger.Debug("request log opened", "path", dbPath)
	}

	bank := questionbank.Default()
	llmCfg := cfg.ToLLM()

	// The provider is built on first use so that a missing key only
	// disables the AI features instead of blocking startup.
	client := tutor.New(
		func(ctx context.Context) (llm.Provider, error) {
			return llm.NewProvider(ctx, llmCfg, eventRepo)
		},
		tutor.WithConfig(tutor.Config{
			MaxTokens:      cfg.Chat.MaxTokens,
			Temperature:    cfg.Chat.Temperature,
			TopicMaxTokens: tutor.DefaultConfig().TopicMaxTokens,
		}),
		tutor.WithTopics(bank.Topics()),
	)

	logger.Info("starting", "provider", llmCfg.Provider, "streaming", cfg.Chat.Streaming)
	return app.Run(ctx, app.Options{
		Bank:         bank,
		Tutor:        client,
		Responder:    chat.ResponderFor(cfg.Chat.Streaming),
		SampleSize:   cfg.Diagnostic.SampleSize,
		AdvanceDelay: cfg.Diagnostic.AdvanceDelay,
	})
}
