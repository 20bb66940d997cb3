package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/lung-visualizer/internal/domain/advice"
	"github.com/yanqian/lung-visualizer/internal/domain/assessment"
	"github.com/yanqian/lung-visualizer/internal/domain/lungviz"
	"github.com/yanqian/lung-visualizer/internal/domain/quitplan"
	"github.com/yanqian/lung-visualizer/internal/infra/config"
	"github.com/yanqian/lung-visualizer/internal/infra/llm"
	"github.com/yanqian/lung-visualizer/internal/infra/llm/chatgpt"
	"github.com/yanqian/lung-visualizer/internal/infra/llm/gemini"
	"github.com/yanqian/lung-visualizer/internal/infra/vizstore"
	"github.com/yanqian/lung-visualizer/pkg/metrics"
)

func provideRenderConfig(cfg *config.Config) lungviz.Config {
	return lungviz.Config{
		Width:         cfg.Renderer.WidthPx,
		Height:        cfg.Renderer.HeightPx,
		DefaultFormat: lungviz.Format(cfg.Renderer.DefaultFormat),
		CacheTTL:      cfg.Cache.TTL,
	}
}

func provideAssessmentConfig(cfg *config.Config) assessment.Config {
	return assessment.Config{
		Currency:     cfg.Cost.Currency,
		PricePerPack: cfg.Cost.DefaultPackPrice,
		PackSize:     cfg.Cost.DefaultPackSize,
	}
}

func provideQuitPlanConfig(cfg *config.Config) quitplan.Config {
	return quitplan.Config{
		PricePerCigarette: cfg.Cost.DefaultPackPrice / float64(cfg.Cost.DefaultPackSize),
	}
}

func provideAdviceConfig(cfg *config.Config) advice.Config {
	return advice.Config{
		SystemPrompt: cfg.Advice.SystemPrompt,
		Timeout:      cfg.Advice.Timeout,
	}
}

const tokenWarmTimeout = 30 * time.Second

// provideTokenCounter loads the BPE table in the background so no request
// ever waits on the download.
func provideTokenCounter(logger *slog.Logger) (*metrics.TokenCounter, func()) {
	counter := metrics.NewTokenCounter(metrics.DefaultEncoding)
	ctx, cancel := context.WithTimeout(context.Background(), tokenWarmTimeout)
	go func() {
		defer cancel()
		if err := counter.Warm(ctx); err != nil {
			logger.Warn("token encoding unavailable, counting words", "encoding", metrics.DefaultEncoding, "error", err)
		}
	}()
	return counter, cancel
}

// provideTextGenerator returns nil when no provider is usable so the advice
// service serves offline content.
func provideTextGenerator(cfg *config.Config, logger *slog.Logger) (advice.TextGenerator, func()) {
	noop := func() {}
	if cfg.LLM.Provider == config.ProviderNone {
		logger.Info("llm provider disabled, advice served offline")
		return nil, noop
	}
	if strings.TrimSpace(cfg.LLM.APIKey) == "" {
		logger.Warn("llm api key not set, advice served offline", "provider", cfg.LLM.Provider)
		return nil, noop
	}

	switch cfg.LLM.Provider {
	case config.ProviderOpenAI:
		client, err := chatgpt.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL)
		if err != nil {
			logger.Error("failed to create chatgpt client, advice served offline", "error", err)
			return nil, noop
		}
		logger.Info("advice llm enabled", "provider", cfg.LLM.Provider, "model", cfg.LLM.Model)
		return llm.NewChatGPTGenerator(client, cfg.LLM.Model, cfg.LLM.Temperature, int(cfg.LLM.MaxOutputTokens)), noop
	default:
		client, err := gemini.NewClient(context.Background(), cfg.LLM.APIKey, gemini.Settings{
			Model:           cfg.LLM.Model,
			Temperature:     cfg.LLM.Temperature,
			TopP:            cfg.LLM.TopP,
			TopK:            cfg.LLM.TopK,
			MaxOutputTokens: cfg.LLM.MaxOutputTokens,
		})
		if err != nil {
			logger.Error("failed to create gemini client, advice served offline", "error", err)
			return nil, noop
		}
		logger.Info("advice llm enabled", "provider", config.ProviderGemini, "model", client.Model())
		return llm.NewGeminiGenerator(client), func() {
			if err := client.Close(); err != nil {
				logger.Warn("failed to close gemini client", "error", err)
			}
		}
	}
}

// provideVizStore picks the render cache backend, falling back to memory
// when the configured remote backend is unreachable.
func provideVizStore(cfg *config.Config, logger *slog.Logger) (lungviz.Store, func()) {
	noop := func() {}
	switch cfg.Cache.Backend {
	case config.CacheNone:
		logger.Info("render cache disabled")
		return nil, noop
	case config.CacheValkey:
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
			break
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory store", "error", err)
			break
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory store", "error", err)
			client.Close()
			break
		}
		logger.Info("render valkey cache enabled", "addr", cfg.Cache.Valkey.Addr)
		return vizstore.NewValkeyStore(client, cfg.Cache.Valkey.Prefix), client.Close
	case config.CacheR2:
		store, err := vizstore.NewR2Store(vizstore.R2Config{
			Endpoint:  cfg.Cache.R2.Endpoint,
			AccessKey: cfg.Cache.R2.AccessKey,
			SecretKey: cfg.Cache.R2.SecretKey,
			Bucket:    cfg.Cache.R2.Bucket,
			Region:    cfg.Cache.R2.Region,
			Prefix:    cfg.Cache.R2.Prefix,
		}, logger)
		if err != nil {
			logger.Error("failed to init r2 cache, falling back to memory store", "error", err)
			break
		}
		logger.Info("render r2 cache enabled", "bucket", cfg.Cache.R2.Bucket)
		return store, noop
	}
	return vizstore.NewMemoryStore(cfg.Cache.MaxEntries), noop
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Cache.Valkey.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Cache.Valkey.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Cache.Valkey.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}
