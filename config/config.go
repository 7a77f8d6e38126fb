package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"rolebot/core/log"
)

// PacingConfig holds the fixed delays used to stay under platform rate limits
type PacingConfig struct {
	RoleBatchSize  int
	RoleBatchDelay time.Duration
	ReactionDelay  time.Duration
}

type ScanConfig struct {
	HistoryLimit    int
	ChannelKeywords []string
}

type AppConfig struct {
	// Core configuration (always required)
	BotToken string

	Prefix      string // Optional with default "!"
	CatalogPath string // Empty means the built-in catalog
	LogLevel    string // Optional with default "info"
	StatusPort  string // Empty disables the status endpoint

	Scan   ScanConfig
	Pacing PacingConfig
}

// StatusEnabled returns true if the status endpoint should be served
func (c *AppConfig) StatusEnabled() bool {
	return c.StatusPort != ""
}

// LoadConfig reads configuration from the environment. Values from the given
// env files (default .env) never override variables that are already set.
func LoadConfig(envFiles ...string) (*AppConfig, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		log.Warn("⚠️ Could not load .env file, continuing with system env vars")
	}

	botToken, err := getEnvRequired("DISCORD_BOT_TOKEN")
	if err != nil {
		return nil, err
	}

	historyLimit, err := getEnvInt("SCAN_HISTORY_LIMIT", 100)
	if err != nil {
		return nil, err
	}
	roleBatchSize, err := getEnvInt("ROLE_BATCH_SIZE", 5)
	if err != nil {
		return nil, err
	}
	roleBatchDelay, err := getEnvDuration("ROLE_BATCH_DELAY", time.Second)
	if err != nil {
		return nil, err
	}
	reactionDelay, err := getEnvDuration("REACTION_DELAY", 500*time.Millisecond)
	if err != nil {
		return nil, err
	}

	config := &AppConfig{
		BotToken:    botToken,
		Prefix:      getEnvWithDefault("BOT_PREFIX", "!"),
		CatalogPath: os.Getenv("CATALOG_PATH"),
		LogLevel:    getEnvWithDefault("LOG_LEVEL", "info"),
		StatusPort:  os.Getenv("STATUS_PORT"),
		Scan: ScanConfig{
			HistoryLimit:    historyLimit,
			ChannelKeywords: getEnvList("SCAN_CHANNEL_KEYWORDS"),
		},
		Pacing: PacingConfig{
			RoleBatchSize:  roleBatchSize,
			RoleBatchDelay: roleBatchDelay,
			ReactionDelay:  reactionDelay,
		},
	}

	if config.CatalogPath == "" {
		log.Info("✅ Using built-in role catalog")
	} else {
		log.Info("✅ Using role catalog from file", "path", config.CatalogPath)
	}
	if !config.StatusEnabled() {
		log.Info("⚠️ STATUS_PORT not set - status endpoint will be disabled")
	}

	return config, nil
}

func getEnvRequired(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set", key)
	}
	return value, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, value)
	}
	return parsed, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil || parsed < 0 {
		return 0, fmt.Errorf("%s must be a non-negative duration, got %q", key, value)
	}
	return parsed, nil
}

// getEnvList splits a comma separated variable, dropping blank entries
func getEnvList(key string) []string {
	var result []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}
