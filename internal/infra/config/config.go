package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	maxCanvasPx      = 4096
	maxRetryAttempts = 5
)

// LLM providers understood by the advice wiring.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderNone   = "none"
)

// Cache backends for rendered illustrations.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheValkey = "valkey"
	CacheR2     = "r2"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	LLM      LLMConfig      `yaml:"llm"`
	Advice   AdviceConfig   `yaml:"advice"`
	Renderer RendererConfig `yaml:"renderer"`
	Cache    CacheConfig    `yaml:"cache"`
	Cost     CostConfig     `yaml:"cost"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
	Retry          RetryConfig     `yaml:"retry"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// RetryConfig configures best-effort retries for idempotent requests.
type RetryConfig struct {
	Enabled     bool          `yaml:"enabled"`
	MaxAttempts int           `yaml:"maxAttempts"`
	BaseBackoff time.Duration `yaml:"baseBackoff"`
	Exclude     []string      `yaml:"exclude"`
}

// LLMConfig selects and tunes the text generation provider.
type LLMConfig struct {
	Provider        string  `yaml:"provider"`
	APIKey          string  `yaml:"apiKey"`
	BaseURL         string  `yaml:"baseUrl"`
	Model           string  `yaml:"model"`
	Temperature     float32 `yaml:"temperature"`
	TopP            float32 `yaml:"topP"`
	TopK            int32   `yaml:"topK"`
	MaxOutputTokens int32   `yaml:"maxOutputTokens"`
}

// AdviceConfig controls the advice prompt and upstream deadline.
type AdviceConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	SystemPrompt string        `yaml:"systemPrompt"`
}

// RendererConfig sizes the illustration canvas.
type RendererConfig struct {
	WidthPx       int    `yaml:"widthPx"`
	HeightPx      int    `yaml:"heightPx"`
	DefaultFormat string `yaml:"defaultFormat"`
}

// CacheConfig selects where rendered images are cached.
type CacheConfig struct {
	Backend    string        `yaml:"backend"`
	TTL        time.Duration `yaml:"ttl"`
	MaxEntries int           `yaml:"maxEntries"`
	Valkey     ValkeyConfig  `yaml:"valkey"`
	R2         R2Config      `yaml:"r2"`
}

// ValkeyConfig contains connection information for the valkey cache.
type ValkeyConfig struct {
	Addr   string `yaml:"addr"`
	Prefix string `yaml:"prefix"`
}

// R2Config contains the S3-compatible object storage settings.
type R2Config struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Prefix    string `yaml:"prefix"`
}

// CostConfig sets the currency label and default pack pricing.
type CostConfig struct {
	Currency         string  `yaml:"currency"`
	DefaultPackPrice float64 `yaml:"defaultPackPrice"`
	DefaultPackSize  int     `yaml:"defaultPackSize"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("PORT"); v != "" && os.Getenv("HTTP_ADDRESS") == "" {
		cfg.HTTP.Address = ":" + v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("HTTP_RETRY_ENABLED"); v != "" {
		cfg.HTTP.Retry.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RETRY_MAX_ATTEMPTS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.Retry.MaxAttempts = parsed
		}
	}
	if v := os.Getenv("HTTP_RETRY_BASE_BACKOFF"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.HTTP.Retry.BaseBackoff = parsed
		}
	}

	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	} else if v := os.Getenv("GEMINI_API_KEY"); v != "" && cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.LLM.Temperature = float32(parsed)
		}
	}

	if v := os.Getenv("ADVICE_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Advice.Timeout = parsed
		}
	}
	if v := os.Getenv("ADVICE_SYSTEM_PROMPT"); v != "" {
		cfg.Advice.SystemPrompt = v
	}

	if v := os.Getenv("RENDER_DEFAULT_FORMAT"); v != "" {
		cfg.Renderer.DefaultFormat = strings.ToLower(v)
	}

	if v := os.Getenv("CACHE_BACKEND"); v != "" {
		cfg.Cache.Backend = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("CACHE_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Cache.TTL = parsed
		}
	}
	if v := os.Getenv("VALKEY_ADDR"); v != "" {
		cfg.Cache.Valkey.Addr = v
	}
	if v := os.Getenv("R2_ENDPOINT"); v != "" {
		cfg.Cache.R2.Endpoint = v
	}
	if v := os.Getenv("R2_ACCESS_KEY"); v != "" {
		cfg.Cache.R2.AccessKey = v
	}
	if v := os.Getenv("R2_SECRET_KEY"); v != "" {
		cfg.Cache.R2.SecretKey = v
	}
	if v := os.Getenv("R2_BUCKET"); v != "" {
		cfg.Cache.R2.Bucket = v
	}

	if v := os.Getenv("COST_CURRENCY"); v != "" {
		cfg.Cost.Currency = v
	}
	if v := os.Getenv("COST_PACK_PRICE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Cost.DefaultPackPrice = parsed
		}
	}
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 45 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
			Retry: RetryConfig{
				Enabled:     true,
				MaxAttempts: 2,
				BaseBackoff: 150 * time.Millisecond,
				Exclude: []string{
					"/api/v1/advice",
					"/api/v1/progressions",
				},
			},
		},
		LLM: LLMConfig{
			Provider:        ProviderGemini,
			Model:           "gemini-1.5-flash",
			Temperature:     0.7,
			TopP:            0.8,
			TopK:            40,
			MaxOutputTokens: 2048,
		},
		Advice: AdviceConfig{
			Timeout: 30 * time.Second,
		},
		Renderer: RendererConfig{
			WidthPx:       500,
			HeightPx:      500,
			DefaultFormat: "png",
		},
		Cache: CacheConfig{
			Backend:    CacheMemory,
			TTL:        24 * time.Hour,
			MaxEntries: 512,
			Valkey: ValkeyConfig{
				Prefix: "lungviz",
			},
			R2: R2Config{
				Region: "auto",
				Prefix: "illustrations",
			},
		},
		Cost: CostConfig{
			Currency:         "NT$",
			DefaultPackPrice: 100,
			DefaultPackSize:  20,
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if c.HTTP.Retry.Enabled {
		if c.HTTP.Retry.MaxAttempts <= 0 || c.HTTP.Retry.MaxAttempts > maxRetryAttempts {
			return fmt.Errorf("http.retry.maxAttempts must be within [1, %d]", maxRetryAttempts)
		}
		if c.HTTP.Retry.BaseBackoff <= 0 {
			return errors.New("http.retry.baseBackoff must be positive")
		}
	}
	switch c.LLM.Provider {
	case ProviderGemini, ProviderOpenAI, ProviderNone:
	default:
		return fmt.Errorf("llm.provider must be one of gemini, openai, none; got %q", c.LLM.Provider)
	}
	if c.LLM.Provider != ProviderNone && strings.TrimSpace(c.LLM.Model) == "" {
		return errors.New("llm.model cannot be empty")
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return errors.New("llm.temperature must be within [0, 2]")
	}
	if c.Advice.Timeout < 0 {
		return errors.New("advice.timeout cannot be negative")
	}
	if c.Renderer.WidthPx <= 0 || c.Renderer.HeightPx <= 0 {
		return errors.New("renderer.widthPx and renderer.heightPx must be positive")
	}
	if c.Renderer.WidthPx > maxCanvasPx || c.Renderer.HeightPx > maxCanvasPx {
		return fmt.Errorf("renderer.widthPx and renderer.heightPx cannot exceed %d", maxCanvasPx)
	}
	switch c.Renderer.DefaultFormat {
	case "png", "svg":
	default:
		return fmt.Errorf("renderer.defaultFormat must be png or svg; got %q", c.Renderer.DefaultFormat)
	}
	switch c.Cache.Backend {
	case CacheNone, CacheMemory:
	case CacheValkey:
		if strings.TrimSpace(c.Cache.Valkey.Addr) == "" {
			return errors.New("cache.valkey.addr cannot be empty when valkey cache is selected")
		}
	case CacheR2:
		if strings.TrimSpace(c.Cache.R2.Endpoint) == "" || strings.TrimSpace(c.Cache.R2.Bucket) == "" {
			return errors.New("cache.r2.endpoint and cache.r2.bucket are required when r2 cache is selected")
		}
	default:
		return fmt.Errorf("cache.backend must be one of none, memory, valkey, r2; got %q", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return errors.New("cache.ttl cannot be negative")
	}
	if c.Cost.DefaultPackPrice <= 0 {
		return errors.New("cost.defaultPackPrice must be positive")
	}
	if c.Cost.DefaultPackSize <= 0 {
		return errors.New("cost.defaultPackSize must be positive")
	}
	return nil
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
