package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/KOFI-GYIMAH/handoff-assistant/pkg/logger"
	"github.com/joho/godotenv"
)

type LLMConfig struct {
	Provider     string
	GoogleAPIKey string
	GeminiModel  string
	OpenAIAPIKey string
	OpenAIModel  string
	// * Requests per minute allowed against the provider
	RequestsPerMinute int
}

type ConfluenceConfig struct {
	BaseURL  string
	Username string
	APIToken string
	SpaceKey string
}

// * Configured reports whether credentials for publishing are present
func (c ConfluenceConfig) Configured() bool {
	return c.BaseURL != "" && c.Username != "" && c.APIToken != ""
}

type AnalysisConfig struct {
	DetailWorkers int
	DetailTimeout time.Duration
}

type Config struct {
	GitHubToken    string
	GitHubAPIURL   string
	LLM            LLMConfig
	Confluence     ConfluenceConfig
	Analysis       AnalysisConfig
	DBURL          string
	RabbitMQURL    string
	ServerPort     string
	AllowedOrigins []string
}

// * LoadConfiguration reads the configuration from the .env file and the environment
func LoadConfiguration() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		GitHubToken:  os.Getenv("GITHUB_TOKEN"),
		GitHubAPIURL: os.Getenv("GITHUB_API_URL"),
		LLM: LLMConfig{
			Provider:          getEnv("LLM_PROVIDER", "gemini"),
			GoogleAPIKey:      os.Getenv("GOOGLE_API_KEY"),
			GeminiModel:       getEnv("GEMINI_MODEL", "gemini-2.5-pro"),
			OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
			OpenAIModel:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			RequestsPerMinute: 60,
		},
		Confluence: ConfluenceConfig{
			BaseURL:  strings.TrimRight(os.Getenv("CONFLUENCE_BASE_URL"), "/"),
			Username: os.Getenv("CONFLUENCE_USERNAME"),
			APIToken: os.Getenv("CONFLUENCE_API_TOKEN"),
			SpaceKey: os.Getenv("CONFLUENCE_SPACE_KEY"),
		},
		Analysis: AnalysisConfig{
			DetailWorkers: 8,
			DetailTimeout: 15 * time.Second,
		},
		DBURL:          os.Getenv("DB_URL"),
		RabbitMQURL:    os.Getenv("RABBITMQ_URL"),
		ServerPort:     getEnv("SERVER_PORT", ":8000"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")),
	}

	if v := os.Getenv("LLM_REQUESTS_PER_MINUTE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("LLM_REQUESTS_PER_MINUTE must be a positive integer, got %q", v)
		}
		cfg.LLM.RequestsPerMinute = n
	}

	if v := os.Getenv("ANALYSIS_DETAIL_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("ANALYSIS_DETAIL_WORKERS must be a positive integer, got %q", v)
		}
		cfg.Analysis.DetailWorkers = n
	}

	if v := os.Getenv("ANALYSIS_DETAIL_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("ANALYSIS_DETAIL_TIMEOUT must be a positive duration, got %q", v)
		}
		cfg.Analysis.DetailTimeout = d
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	logger.Info("✅ env content loaded successfully 🎉")
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.LLM.Provider {
	case "gemini":
		if c.LLM.GoogleAPIKey == "" {
			return errors.New("GOOGLE_API_KEY is required when LLM_PROVIDER is gemini")
		}
	case "openai":
		if c.LLM.OpenAIAPIKey == "" {
			return errors.New("OPENAI_API_KEY is required when LLM_PROVIDER is openai")
		}
	default:
		return fmt.Errorf("unsupported LLM_PROVIDER %q (use gemini or openai)", c.LLM.Provider)
	}

	if c.GitHubToken == "" {
		logger.Warn("GITHUB_TOKEN is not set, GitHub requests are unauthenticated and heavily rate limited")
	}

	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

var repoURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^https://github\.com/([^/]+)/([^/]+?)(?:\.git)?/?$`),
	regexp.MustCompile(`^git@github\.com:([^/]+)/([^/]+?)\.git$`),
	regexp.MustCompile(`^([A-Za-z0-9_.-]+)/([A-Za-z0-9_.-]+)$`),
}

// * ParseRepository extracts owner and name from a GitHub URL or an owner/name pair.
// * Accepted: https://github.com/o/r, https://github.com/o/r.git, git@github.com:o/r.git, o/r
func ParseRepository(repo string) (owner, name string, err error) {
	repo = strings.TrimSpace(repo)
	for _, pattern := range repoURLPatterns {
		if m := pattern.FindStringSubmatch(repo); m != nil {
			return m[1], strings.TrimSuffix(m[2], ".git"), nil
		}
	}
	return "", "", fmt.Errorf("invalid GitHub repository %q: expected a github.com URL or owner/name", repo)
}
