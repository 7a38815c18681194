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
	Port          string
	AllowedOrigin string
	LogLevel      string

	// Fallback responder
	OpenAIAPIKey string
	Model        string
	PromptFile   string

	// Listings database
	DatabaseURL    string
	DBMaxConns     int
	DBMaxIdleConns int
	SearchLimit    int

	// Matching vocabulary override; empty uses the built-in lexicon
	LexiconFile string

	// Sessions
	SessionTTL       time.Duration
	MaxSessions      int
	ResetClearsIntro bool

	// Static chat page
	StaticDir string
}

func Load() Config {
	_ = godotenv.Load()
	cfg := Config{
		Port:             getEnvDefault("PORT", "3000"),
		AllowedOrigin:    getEnvDefault("ALLOWED_ORIGIN", "*"),
		LogLevel:         getEnvDefault("LOG_LEVEL", "info"),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		Model:            getEnvDefault("OPENAI_MODEL", "gpt-4o-mini"),
		PromptFile:       getEnvDefault("PROMPT_FILE", "prompts/responder.yaml"),
		DatabaseURL:      os.Getenv("DB_URL"),
		DBMaxConns:       getEnvIntDefault("DB_MAX_CONNS", 10),
		DBMaxIdleConns:   getEnvIntDefault("DB_MAX_IDLE_CONNS", 5),
		SearchLimit:      getEnvIntDefault("SEARCH_LIMIT", 5),
		LexiconFile:      os.Getenv("LEXICON_FILE"),
		SessionTTL:       getEnvDurationDefault("SESSION_TTL", 30*time.Minute),
		MaxSessions:      getEnvIntDefault("MAX_SESSIONS", 1000),
		ResetClearsIntro: getEnvBoolDefault("RESET_CLEARS_INTRO", false),
		StaticDir:        getEnvDefault("STATIC_DIR", "web"),
	}
	if cfg.OpenAIAPIKey == "" {
		log.Println("warning: OPENAI_API_KEY is not set; fallback replies will fail until provided")
	}
	return cfg
}

func getEnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvIntDefault(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
		log.Printf("warning: %s=%q is not an integer, using %d", key, v, def)
	}
	return def
}

func getEnvDurationDefault(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(strings.TrimSpace(v)); err == nil {
			return d
		}
		log.Printf("warning: %s=%q is not a duration, using %s", key, v, def)
	}
	return def
}

func getEnvBoolDefault(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}
