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
	ServiceName string
	ServerPort  int
	LogLevel    string

	DBDriver    string
	DatabaseURL string

	SessionSecret []byte
	SessionTTL    time.Duration
	CookieSecure  bool

	// PasswordStorage is "bcrypt" or "plain"; plain keeps legacy datasets usable.
	PasswordStorage string

	// LoginRate is the sustained number of login attempts per second per client.
	LoginRate  float64
	LoginBurst int

	KafkaBrokers []string

	// TemplatesGlob selects html/template views; empty renders view models as JSON.
	TemplatesGlob string
}

// Load reads .env (when present) and the process environment.
func Load(envFile string) Config {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			log.Printf("notice: %s not loaded: %v, using system environment variables", envFile, err)
		}
	}

	return Config{
		ServiceName: EnvDefault("SERVICE_NAME", "inventory"),
		ServerPort:  EnvIntDefault("SERVER_PORT", 8080),
		LogLevel:    EnvDefault("LOG_LEVEL", "info"),

		DBDriver:    EnvDefault("DB_DRIVER", "postgres"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		SessionSecret: []byte(os.Getenv("SESSION_SECRET")),
		SessionTTL:    EnvDurationDefault("SESSION_TTL", 8*time.Hour),
		CookieSecure:  EnvBoolDefault("COOKIE_SECURE", false),

		PasswordStorage: EnvDefault("PASSWORD_STORAGE", "bcrypt"),

		LoginRate:  EnvFloatDefault("LOGIN_RATE", 1),
		LoginBurst: EnvIntDefault("LOGIN_BURST", 5),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),

		TemplatesGlob: os.Getenv("TEMPLATES_GLOB"),
	}
}

// MustLoad is Load plus the checks the server cannot start without.
func MustLoad(envFile string) Config {
	cfg := Load(envFile)
	MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	MustNonEmptyBytes(cfg.SessionSecret, "SESSION_SECRET")
	return cfg
}

func MustNonEmpty(value, envName string) {
	if value == "" {
		log.Fatalf("missing required env %s", envName)
	}
}

func MustNonEmptyBytes(value []byte, envName string) {
	if len(value) == 0 {
		log.Fatalf("missing required env %s", envName)
	}
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func EnvFloatDefault(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func EnvBoolDefault(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func EnvDurationDefault(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
