package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	FeedURL      string
	FeedTimeout  time.Duration
	FeedCacheTTL time.Duration

	CareersPages   []string
	CareersTimeout time.Duration

	PollingInterval time.Duration
	MaxRetries      int
	RetryDelay      time.Duration
	RecencyHorizon  time.Duration

	NATSURL         string
	NATSConnTimeout time.Duration

	ClickHouseDSN          string
	ClickHouseMaxOpenConns int
	ClickHouseMaxIdleConns int
	ClickHouseConnMaxLife  time.Duration
	ClickHouseUsername     string
	ClickHousePassword     string
	ClickHouseDatabase     string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration
	SeenTTL       time.Duration

	DiscordWebhookURL string
	MaxPostsPerRun    int

	BoardPath      string
	RenderInterval time.Duration
	ArchiveAfter   time.Duration
	APIAddr        string

	OTLPCollectorURL string
}

func LoadConfig() (*Config, error) {
	config := &Config{
		FeedURL:     getEnvString("FEED_URL", "https://raw.githubusercontent.com/zapplyjobs/New-Grad-Data-Science-Jobs-2026/main/jobboard/src/data/transformed_jobs.json"),
		FeedTimeout: getEnvDuration("FEED_TIMEOUT", 45*time.Second),
		// Shorter than the polling interval, so a poll never reuses the
		// previous cycle's feed snapshot.
		FeedCacheTTL: getEnvDuration("FEED_CACHE_TTL", 10*time.Minute),

		CareersPages:   getEnvStringSlice("CAREERS_PAGES", nil),
		CareersTimeout: getEnvDuration("CAREERS_TIMEOUT", 30*time.Second),

		PollingInterval: getEnvDuration("POLLING_INTERVAL", 15*time.Minute),
		MaxRetries:      getEnvInt("MAX_RETRIES", 3),
		RetryDelay:      getEnvDuration("RETRY_DELAY", 30*time.Second),
		RecencyHorizon:  getEnvDuration("RECENCY_HORIZON", 60*24*time.Hour),

		NATSURL:         getEnvString("NATS_URL", "nats://localhost:4222"),
		NATSConnTimeout: getEnvDuration("NATS_CONN_TIMEOUT", 10*time.Second),

		ClickHouseDSN:          getEnvString("CLICKHOUSE_DSN", "localhost:9000"),
		ClickHouseMaxOpenConns: getEnvInt("CLICKHOUSE_MAX_OPEN_CONNS", 10),
		ClickHouseMaxIdleConns: getEnvInt("CLICKHOUSE_MAX_IDLE_CONNS", 5),
		ClickHouseConnMaxLife:  getEnvDuration("CLICKHOUSE_CONN_MAX_LIFE", time.Hour),
		ClickHouseUsername:     getEnvString("CLICKHOUSE_USERNAME", "default"),
		ClickHousePassword:     getEnvString("CLICKHOUSE_PASSWORD", ""),
		ClickHouseDatabase:     getEnvString("CLICKHOUSE_DATABASE", "jobradar"),

		RedisAddr:     getEnvString("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnvString("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		CacheTTL:      getEnvDuration("CACHE_TTL", 24*time.Hour),
		SeenTTL:       getEnvDuration("SEEN_TTL", 90*24*time.Hour),

		DiscordWebhookURL: getEnvString("DISCORD_WEBHOOK_URL", ""),
		MaxPostsPerRun:    getEnvInt("MAX_POSTS_PER_RUN", 5),

		BoardPath:      getEnvString("BOARD_PATH", "README.md"),
		RenderInterval: getEnvDuration("RENDER_INTERVAL", time.Hour),
		ArchiveAfter:   getEnvDuration("ARCHIVE_AFTER", 7*24*time.Hour),
		APIAddr:        getEnvString("API_ADDR", ":8090"),

		OTLPCollectorURL: getEnvString("OTLP_COLLECTOR_URL", "localhost:4317"),
	}

	return config, nil
}

func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvStringSlice(key string, defaultValue []string) []string {
	if value, exists := os.LookupEnv(key); exists {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
