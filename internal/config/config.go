package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	RulesFile string // path to optional classifier rules yaml (empty = built-in lists only)

	// Enrichment
	UserAgent       string        // User-Agent sent on metadata fetches
	PageTimeout     time.Duration // timeout for page fetches (default: 10s)
	VideoTimeout    time.Duration // timeout for video metadata fetches (default: 8s)
	PreviewDebounce time.Duration // quiet period before a preview fetch fires (default: 350ms)

	// Schedulers
	PendingDrainInterval time.Duration // interval to drain the share inbox (default: 30s)
	SweepInterval        time.Duration // interval to re-enrich incomplete links (default: 1h)
	ReminderTick         time.Duration // interval to check for due reminders (default: 30s)

	// Redis
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)

	AllowedCIDRS []string // optional, restrict admin endpoints to specific IPs/CIDRs
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
}

func Load() *Config {
	// Local development convenience; a missing .env is fine.
	_ = godotenv.Load()

	cfg := &Config{
		// Server settings
		ListenPort:      getenv("LINKSHELF_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("LINKSHELF_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("LINKSHELF_LOG_LEVEL", "info"),
		PrettyLog: mustBool("LINKSHELF_PRETTY_LOG", true),

		// Classifier rules
		RulesFile: getenv("LINKSHELF_RULES_FILE", ""),

		// Enrichment
		UserAgent:       getenv("LINKSHELF_USER_AGENT", "Mozilla/5.0"),
		PageTimeout:     mustDuration("LINKSHELF_PAGE_TIMEOUT", 10*time.Second),
		VideoTimeout:    mustDuration("LINKSHELF_VIDEO_TIMEOUT", 8*time.Second),
		PreviewDebounce: mustDuration("LINKSHELF_PREVIEW_DEBOUNCE", 350*time.Millisecond),

		// Schedulers
		PendingDrainInterval: mustDuration("LINKSHELF_PENDING_DRAIN_INTERVAL", 30*time.Second),
		SweepInterval:        mustDuration("LINKSHELF_SWEEP_INTERVAL", time.Hour),
		ReminderTick:         mustDuration("LINKSHELF_REMINDER_TICK", 30*time.Second),

		// Redis settings
		RedisAddr:             requireEnv("LINKSHELF_REDIS_ADDR"),
		RedisUser:             getenv("LINKSHELF_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("LINKSHELF_REDIS_PASSWORD_REQUIRED", true),
		RedisPassword:         getenv("LINKSHELF_REDIS_PASSWORD", ""),
		RedisDB:               requireEnvInt("LINKSHELF_REDIS_DB"),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),

		// Access restrictions
		AllowedCIDRS: parseAllowedIPs(getenv("LINKSHELF_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("LINKSHELF_TRUST_PROXY", false),
	}

	// Validate Redis password configuration
	if cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: LINKSHELF_REDIS_PASSWORD is required when LINKSHELF_REDIS_PASSWORD_REQUIRED=true")
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = "***REDACTED***"
		if cfg.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func requireEnvInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		panic(fmt.Sprintf("❌ FATAL: Invalid integer value for %s: %s", key, v))
	}
	return i
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
