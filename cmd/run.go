package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/abhisek/prepgd/internal/app"
	"github.com/abhisek/prepgd/internal/llm"
	"github.com/abhisek/prepgd/internal/questiongen"
	"github.com/abhisek/prepgd/internal/stats"
	"github.com/abhisek/prepgd/internal/store"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	settings, err := st.Settings()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	cfg := buildLLMConfig(settings)

	// Without a configured provider the generator serves the built-in
	// fallback set, so exams stay available offline.
	gen := questiongen.New(nil, questiongen.DefaultConfig())
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Exams will use the built-in question set.")
	} else {
		provider, perr := llm.NewProvider(ctx, cfg, st.EventRepo())
		if perr != nil {
			fmt.Fprintln(os.Stderr, "LLM provider unavailable:", perr)
			fmt.Fprintln(os.Stderr, "Exams will use the built-in question set.")
		} else {
			gen = questiongen.New(provider, questiongen.DefaultConfig())
		}
	}

	return app.Run(app.Options{
		Store:      st,
		Aggregator: stats.NewAggregator(st),
		Generator:  gen,
		Version:    version,
	})
}

// buildLLMConfig merges persisted settings into the env-derived config.
// Environment variables win over the settings screen.
func buildLLMConfig(settings store.Settings) llm.Config {
	cfg := llm.ConfigFromEnv()

	if settings.Provider != "" && os.Getenv("PREPGD_LLM_PROVIDER") == "" {
		cfg.Provider = settings.Provider
	}
	if settings.APIKey != "" && !cfg.HasCredential() {
		cfg.SetCredential(settings.APIKey)
	}
	if settings.Model != "" {
		envModel := "PREPGD_" + strings.ToUpper(cfg.Provider) + "_MODEL"
		if os.Getenv(envModel) == "" {
			cfg.SetModel(settings.Model)
		}
	}
	return cfg
}
