package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/delegate"
	"github.com/jonathan/resume-matcher/internal/extraction"
	"github.com/jonathan/resume-matcher/internal/lexicon"
	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/logger"
	"github.com/jonathan/resume-matcher/internal/match"
	"github.com/jonathan/resume-matcher/internal/store"
)

// runtime bundles the wired components shared by every command.
type runtime struct {
	cfg       config.Config
	logger    *zap.Logger
	db        *store.DB
	llmClient llm.Client
	matcher   *match.Orchestrator
}

// defaultCLIConfig returns the built-in defaults applied beneath the config
// file, environment, and flags.
func defaultCLIConfig() config.Config {
	return config.Config{
		Model:            llm.DefaultModel,
		BatchConcurrency: match.DefaultBatchConcurrency,
		PacingMillis:     int(delegate.DefaultPacingInterval / time.Millisecond),
		TimeoutSeconds:   int(delegate.DefaultTimeout / time.Second),
	}
}

// loadCLIConfig loads the optional config file, fills connection settings
// from the environment, and layers the built-in defaults underneath.
func loadCLIConfig(path string) (config.Config, error) {
	var cfg config.Config

	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loaded
	}

	cfg.FromEnv()
	return cfg.MergeWithDefaults(defaultCLIConfig()), nil
}

// buildRuntime wires the store, delegated scorer, and orchestrator from the
// merged configuration. The database is optional only when requireDB is
// false; without it the prediction ledger is skipped.
func buildRuntime(ctx context.Context, cfg config.Config, requireDB bool) (*runtime, error) {
	log, err := logger.New(cfg.JSONLogs, cfg.Verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	rt := &runtime{cfg: cfg, logger: log}

	if cfg.DatabaseURL != "" {
		db, err := store.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		rt.db = db
	} else if requireDB {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	lex := lexicon.Default()
	if cfg.MergeJobSkills && rt.db != nil {
		skills, err := rt.db.AllRequiredSkills(ctx)
		if err != nil {
			rt.Close()
			return nil, fmt.Errorf("failed to load job skills: %w", err)
		}
		lex = lex.Merge(skills)
		log.Debug("extended skill lexicon from job store", zap.Int("entries", lex.Len()))
	}

	var delegated match.DelegatedScorer
	if cfg.APIKey != "" {
		llmCfg := llm.DefaultConfig()
		llmCfg.Model = cfg.Model
		client, err := llm.NewClient(ctx, llmCfg, cfg.APIKey)
		if err != nil {
			rt.Close()
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		rt.llmClient = client
		delegated = delegate.NewScorer(client, log,
			delegate.WithTimeout(time.Duration(cfg.TimeoutSeconds)*time.Second),
			delegate.WithPacer(delegate.NewPacer(time.Duration(cfg.PacingMillis)*time.Millisecond)),
		)
	}

	var ledger match.Ledger
	if rt.db != nil {
		ledger = rt.db
	}

	rt.matcher = match.New(extraction.NewExtractor(lex), delegated, ledger, log,
		match.WithBatchConcurrency(cfg.BatchConcurrency))

	return rt, nil
}

// Close waits for pending ledger writes and releases connections.
func (rt *runtime) Close() {
	if rt.matcher != nil {
		rt.matcher.Flush()
	}
	if rt.llmClient != nil {
		_ = rt.llmClient.Close()
	}
	if rt.db != nil {
		rt.db.Close()
	}
	_ = rt.logger.Sync()
}
