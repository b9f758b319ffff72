package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"dfaith/pkg/content"
	"dfaith/pkg/section"

	"github.com/joho/godotenv"
)

const (
	ConfigFileName = ".dfaith.json"
	LogFileName    = ".dfaith.log"

	DefaultAPIBaseURL          = "https://www.dawidfaith.com"
	DefaultLeaderboardFallback = "https://leaderboard-pi-liard.vercel.app/api/leaderboard"
	DefaultRefreshSeconds      = 300
	DefaultTimeoutSeconds      = 10
	DefaultVisibilityThreshold = 0.5
	DefaultLanguage            = "de"
	DefaultCelebrationSection  = "tokenomics"
	DefaultCelebrationSeconds  = 3
	DefaultStaticSupply        = 100000
)

// ChainConfig points the supply reader at the D.FAITH token contract.
type ChainConfig struct {
	RPCURLs      []string `json:"rpc_urls"`
	TokenAddress string   `json:"dfaith_token_address"`
	Decimals     int      `json:"decimals"`
	StaticSupply float64  `json:"static_supply"`
}

// Enabled reports whether an on-chain supply lookup is configured.
func (c ChainConfig) Enabled() bool {
	return len(c.RPCURLs) > 0 && strings.TrimSpace(c.TokenAddress) != ""
}

// Config holds application-wide settings.
type Config struct {
	APIBaseURL             string      `json:"api_base_url"`
	LeaderboardFallbackURL string      `json:"leaderboard_fallback_url"`
	RefreshIntervalSeconds int         `json:"refresh_interval_seconds"`
	RequestTimeoutSeconds  int         `json:"request_timeout_seconds"`
	VisibilityThreshold    float64     `json:"visibility_threshold"`
	Language               string      `json:"language"`
	CelebrationSection     string      `json:"celebration_section"`
	CelebrationSeconds     int         `json:"celebration_seconds"`
	LogLevel               string      `json:"log_level"`
	LogFile                string      `json:"log_file"`
	Chain                  ChainConfig `json:"chain"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIBaseURL:             DefaultAPIBaseURL,
		LeaderboardFallbackURL: DefaultLeaderboardFallback,
		RefreshIntervalSeconds: DefaultRefreshSeconds,
		RequestTimeoutSeconds:  DefaultTimeoutSeconds,
		VisibilityThreshold:    DefaultVisibilityThreshold,
		Language:               DefaultLanguage,
		CelebrationSection:     DefaultCelebrationSection,
		CelebrationSeconds:     DefaultCelebrationSeconds,
		LogLevel:               "info",
		Chain: ChainConfig{
			Decimals:     18,
			StaticSupply: DefaultStaticSupply,
		},
	}
}

func (c Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalSeconds) * time.Second
}

func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

func (c Config) CelebrationDuration() time.Duration {
	return time.Duration(c.CelebrationSeconds) * time.Second
}

// Validate reports every structural problem found, joined into one error.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.APIBaseURL) == "" {
		errs = append(errs, errors.New("api_base_url is empty"))
	}
	if c.RefreshIntervalSeconds <= 0 {
		errs = append(errs, fmt.Errorf("refresh_interval_seconds must be positive, got %d", c.RefreshIntervalSeconds))
	}
	if c.RequestTimeoutSeconds <= 0 {
		errs = append(errs, fmt.Errorf("request_timeout_seconds must be positive, got %d", c.RequestTimeoutSeconds))
	}
	if c.VisibilityThreshold <= 0 || c.VisibilityThreshold > 1 {
		errs = append(errs, fmt.Errorf("visibility_threshold must be in (0, 1], got %g", c.VisibilityThreshold))
	}
	if !content.Valid(c.Language) {
		errs = append(errs, fmt.Errorf("unsupported language %q", c.Language))
	}
	if _, err := section.ParseID(c.CelebrationSection); err != nil {
		errs = append(errs, fmt.Errorf("celebration_section: %w", err))
	}
	if c.CelebrationSeconds <= 0 {
		errs = append(errs, fmt.Errorf("celebration_seconds must be positive, got %d", c.CelebrationSeconds))
	}
	if c.Chain.Decimals < 0 || c.Chain.Decimals > 36 {
		errs = append(errs, fmt.Errorf("chain.decimals out of range: %d", c.Chain.Decimals))
	}
	return errors.Join(errs...)
}

func GetConfigPath(customPath string) (string, error) {
	if customPath != "" {
		return customPath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ConfigFileName), nil
}

// GetLogPath resolves the TUI log file, next to the config by default.
func GetLogPath(cfg Config) (string, error) {
	if cfg.LogFile != "" {
		return cfg.LogFile, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, LogFileName), nil
}

// LoadConfigFromFile reads the JSON config at path, falling back to defaults
// when it does not exist, and then applies environment overrides.
func LoadConfigFromFile(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("error loading .env file: %w", err)
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return ApplyEnv(Default()), nil
	}
	if err != nil {
		return Config{}, err
	}
	defer func() { _ = f.Close() }()

	cfg, err := LoadConfig(f)
	if err != nil {
		return Config{}, err
	}
	return ApplyEnv(cfg), nil
}

// LoadConfig decodes a JSON config. Missing keys keep their defaults.
func LoadConfig(r io.Reader) (Config, error) {
	var raw struct {
		APIBaseURL             *string  `json:"api_base_url"`
		LeaderboardFallbackURL *string  `json:"leaderboard_fallback_url"`
		RefreshIntervalSeconds *int     `json:"refresh_interval_seconds"`
		RequestTimeoutSeconds  *int     `json:"request_timeout_seconds"`
		VisibilityThreshold    *float64 `json:"visibility_threshold"`
		Language               *string  `json:"language"`
		CelebrationSection     *string  `json:"celebration_section"`
		CelebrationSeconds     *int     `json:"celebration_seconds"`
		LogLevel               *string  `json:"log_level"`
		LogFile                *string  `json:"log_file"`
		Chain                  *struct {
			RPCURLs      []string `json:"rpc_urls"`
			TokenAddress string   `json:"dfaith_token_address"`
			Decimals     *int     `json:"decimals"`
			StaticSupply *float64 `json:"static_supply"`
		} `json:"chain"`
	}
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return Config{}, err
	}

	cfg := Default()
	if raw.APIBaseURL != nil {
		cfg.APIBaseURL = strings.TrimRight(*raw.APIBaseURL, "/")
	}
	if raw.LeaderboardFallbackURL != nil {
		cfg.LeaderboardFallbackURL = *raw.LeaderboardFallbackURL
	}
	if raw.RefreshIntervalSeconds != nil {
		cfg.RefreshIntervalSeconds = *raw.RefreshIntervalSeconds
	}
	if raw.RequestTimeoutSeconds != nil {
		cfg.RequestTimeoutSeconds = *raw.RequestTimeoutSeconds
	}
	if raw.VisibilityThreshold != nil {
		cfg.VisibilityThreshold = *raw.VisibilityThreshold
	}
	if raw.Language != nil {
		cfg.Language = *raw.Language
	}
	if raw.CelebrationSection != nil {
		cfg.CelebrationSection = *raw.CelebrationSection
	}
	if raw.CelebrationSeconds != nil {
		cfg.CelebrationSeconds = *raw.CelebrationSeconds
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = *raw.LogLevel
	}
	if raw.LogFile != nil {
		cfg.LogFile = *raw.LogFile
	}
	if raw.Chain != nil {
		cfg.Chain.RPCURLs = raw.Chain.RPCURLs
		cfg.Chain.TokenAddress = raw.Chain.TokenAddress
		if raw.Chain.Decimals != nil {
			cfg.Chain.Decimals = *raw.Chain.Decimals
		}
		if raw.Chain.StaticSupply != nil {
			cfg.Chain.StaticSupply = *raw.Chain.StaticSupply
		}
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with DFAITH_* environment variables.
func ApplyEnv(cfg Config) Config {
	cfg.APIBaseURL = strings.TrimRight(getEnv("DFAITH_API_BASE_URL", cfg.APIBaseURL), "/")
	cfg.LeaderboardFallbackURL = getEnv("DFAITH_LEADERBOARD_FALLBACK_URL", cfg.LeaderboardFallbackURL)
	cfg.RefreshIntervalSeconds = getEnvAsInt("DFAITH_REFRESH_INTERVAL_SECONDS", cfg.RefreshIntervalSeconds)
	cfg.RequestTimeoutSeconds = getEnvAsInt("DFAITH_REQUEST_TIMEOUT_SECONDS", cfg.RequestTimeoutSeconds)
	cfg.Language = getEnv("DFAITH_LANGUAGE", cfg.Language)
	cfg.LogLevel = getEnv("DFAITH_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFile = getEnv("DFAITH_LOG_FILE", cfg.LogFile)
	if v := os.Getenv("DFAITH_VISIBILITY_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.VisibilityThreshold = f
		}
	}
	if v := os.Getenv("DFAITH_CHAIN_RPC_URLS"); v != "" {
		var urls []string
		for _, u := range strings.Split(v, ",") {
			if u = strings.TrimSpace(u); u != "" {
				urls = append(urls, u)
			}
		}
		cfg.Chain.RPCURLs = urls
	}
	cfg.Chain.TokenAddress = getEnv("DFAITH_TOKEN_ADDRESS", cfg.Chain.TokenAddress)
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvAsInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
