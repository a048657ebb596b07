package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	DatabaseDriver string
	DatabaseURL    string

	RabbitMQURL string

	MailHost string
	MailPort int
	MailUser string
	MailPass string
	MailFrom string

	CMSURL       string
	CMSAPIToken  string
	CMSJWTSecret string
	CMSTimeout   time.Duration
	CMSCacheTTL  time.Duration

	CORSOrigins []string

	StoreLatency time.Duration

	ReminderEnabled  bool
	ReminderInterval time.Duration

	RateLimitRPS   float64
	RateLimitBurst int

	// TrustProxy reads the client address from X-Forwarded-For / X-Real-IP.
	// Only enable it behind a reverse proxy that overwrites those headers.
	TrustProxy bool

	OTLPEndpoint string
}

// Load reads the .env file when present, then the process environment.
// Precedence: explicit env var > .env file > default.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[CONFIG] .env introuvable, utilisation des variables système")
	}

	return Config{
		Port:             getEnv("PORT", "8080"),
		DatabaseDriver:   getEnv("DATABASE_DRIVER", "pgx"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RabbitMQURL:      os.Getenv("RABBITMQ_URL"),
		MailHost:         os.Getenv("MAIL_HOST"),
		MailPort:         parseInt("MAIL_PORT", 587),
		MailUser:         os.Getenv("MAIL_USER"),
		MailPass:         os.Getenv("MAIL_PASS"),
		MailFrom:         getEnv("MAIL_FROM", "ne-pas-repondre@formapro.fr"),
		CMSURL:           getEnv("CMS_URL", "http://localhost:1337/api"),
		CMSAPIToken:      os.Getenv("CMS_API_TOKEN"),
		CMSJWTSecret:     os.Getenv("CMS_JWT_SECRET"),
		CMSTimeout:       parsePositiveDuration("CMS_TIMEOUT", 10*time.Second),
		CMSCacheTTL:      parseDuration("CMS_CACHE_TTL", 5*time.Minute),
		CORSOrigins:      parseList("CORS_ORIGINS", []string{"http://localhost:5173"}),
		StoreLatency:     parseDuration("STORE_LATENCY", 0),
		ReminderEnabled:  parseBool("REMINDER_ENABLED", false),
		ReminderInterval: parsePositiveDuration("REMINDER_INTERVAL", time.Hour),
		RateLimitRPS:     parseFloat("RATE_LIMIT_RPS", 1),
		RateLimitBurst:   parseInt("RATE_LIMIT_BURST", 5),
		TrustProxy:       parseBool("TRUSTED_PROXY", false),
		OTLPEndpoint:     os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}
}

// TracingEnabled reports whether spans should be exported over OTLP.
func (c Config) TracingEnabled() bool {
	return c.OTLPEndpoint != ""
}

// MailConfigured reports whether an SMTP host was provided.
func (c Config) MailConfigured() bool {
	return c.MailHost != ""
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("[CONFIG] booléen invalide pour %s: %s", key, v)
			return def
		}
		return b
	}
	return def
}

func parseInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("[CONFIG] entier invalide pour %s: %s", key, v)
			return def
		}
		return n
	}
	return def
}

func parseFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			log.Printf("[CONFIG] nombre invalide pour %s: %s", key, v)
			return def
		}
		return f
	}
	return def
}

func parseDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("[CONFIG] durée invalide pour %s: %s", key, v)
			return def
		}
		return d
	}
	return def
}

// parsePositiveDuration is parseDuration for intervals and timeouts: zero or
// negative values fall back to def.
func parsePositiveDuration(key string, def time.Duration) time.Duration {
	d := parseDuration(key, def)
	if d <= 0 {
		log.Printf("[CONFIG] durée non positive pour %s: %s", key, d)
		return def
	}
	return d
}

func parseList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
