package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/studentos/internal/ai"
	"github.com/spigell/studentos/internal/ai/gemini"
	"github.com/spigell/studentos/internal/catalog"
	"github.com/spigell/studentos/internal/explain"
	"github.com/spigell/studentos/internal/filtering"
	"github.com/spigell/studentos/internal/logger"
	"github.com/spigell/studentos/internal/secrets"
	"github.com/spigell/studentos/internal/storage"
)

// session bundles what every command needs: config, logger and stores.
type session struct {
	config    *Config
	logger    *zap.Logger
	kv        storage.KV
	profiles  *storage.ProfileStore
	tasks     *storage.TaskStore
	lastShown *storage.LastShownStore
}

// newSession exits the process on unusable configuration.
func newSession(ctx context.Context) *session {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Debug("starting", zap.String("app", app), zap.String("version", version),
		zap.String("data_dir", config.DataDir), zap.String("storage_backend", config.Storage.Backend))

	kv, err := storage.Open(ctx, config.Storage, config.DataDir)
	if err != nil {
		logger.Fatal("opening storage", zap.Error(err),
			zap.String("hint", "check the storage section of the configuration file"))
	}

	return &session{
		config:    config,
		logger:    logger,
		kv:        kv,
		profiles:  storage.NewProfileStore(kv, logger),
		tasks:     storage.NewTaskStore(kv, logger),
		lastShown: storage.NewLastShownStore(kv, logger),
	}
}

func (s *session) Close() {
	if err := s.kv.Close(); err != nil {
		s.logger.Warn("closing storage", zap.Error(err))
	}
	_ = s.logger.Sync()
}

func (s *session) loadCatalog() *catalog.Jobs {
	jobs, err := catalog.Load(s.config.CatalogFile)
	if err != nil {
		s.logger.Fatal("loading job catalog", zap.Error(err), zap.String("path", s.config.CatalogFile))
	}
	s.logger.Debug("catalog loaded", zap.Int("jobs", jobs.Len()))
	return jobs
}

// filteredCatalog applies the configured exclusions to the catalog.
func (s *session) filteredCatalog(ctx context.Context) *catalog.Jobs {
	cfg := &filtering.Config{
		Companies:     s.config.excludedCompanies(),
		DismissedFile: s.config.DismissedFile,
	}

	jobs, err := filtering.Run(ctx, cfg, filtering.Deps{Logger: s.logger}, filtering.Default(), s.loadCatalog())
	if err != nil {
		s.logger.Fatal("filtering failed", zap.Error(err))
	}
	return jobs
}

// newAdapter builds the explanation adapter. Without a usable generator the
// adapter works offline with deterministic text.
func (s *session) newAdapter(ctx context.Context, offline bool) *explain.Adapter {
	opts := []explain.Option{
		explain.WithLogger(s.logger),
		explain.WithTimeout(s.config.AI.ExplanationTimeout),
	}
	if offline {
		return explain.New(nil, opts...)
	}

	gen, err := newGenerator(ctx, s.config.AI, s.logger)
	switch {
	case errors.Is(err, secrets.ErrNotConfigured):
		s.logger.Debug("gemini api key is not configured, using offline explanations",
			zap.String("hint", "set GEMINI_API_KEY, GEMINI_API_KEY_FILE or ai.gemini.api-key-file"))
	case err != nil:
		s.logger.Warn("ai generator is unavailable, using offline explanations", zap.Error(err))
	}
	if gen == nil {
		return explain.New(nil, opts...)
	}
	return explain.New(gen, opts...)
}

// newGenerator returns nil, nil when AI is disabled.
func newGenerator(ctx context.Context, cfg *AIConfig, log *zap.Logger) (ai.Generator, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != ai.ProviderGemini {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	gcfg := cfg.Gemini
	if gcfg == nil {
		gcfg = &GeminiConfig{}
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: gcfg.APIKey,
		File:  gcfg.APIKeyFile,
		Env:   "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, err
	}

	gen, err := gemini.NewGenerator(ctx, gemini.Config{
		APIKey:            apiKey,
		Model:             gcfg.Model,
		MaxRetries:        gcfg.MaxRetries,
		MaxLogLength:      gcfg.MaxLogLength,
		RequestsPerMinute: gcfg.RequestsPerMinute,
	}, log)
	if err != nil {
		return nil, err
	}
	return gen, nil
}

// interactive reports whether prompts can be shown.
func interactive() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
}
