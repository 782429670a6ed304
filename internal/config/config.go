package config

import (
	"os"
	"strings"
)

type Config struct {
	HTTPAddr string
	LogJSON  bool
	LogDebug bool

	DBDriver string
	DBDSN    string

	// SessionBackend selects memory|db; RedisAddr, when set, layers a cache
	// over it.
	SessionBackend string
	RedisAddr      string

	// Normalizer selects sum|max; DefaultCategory is the documented
	// all-zero classification outcome.
	Normalizer      string
	DefaultCategory string

	// DatasetPath is where the sync operation materializes universities.json.
	DatasetPath string

	TelegramToken string

	AdminUser     string
	AdminPassHash string // bcrypt
	HMACSecret    string

	CORSOrigins []string
}

func FromEnv() Config {
	return Config{
		HTTPAddr:        envOr("HTTP_ADDR", ":8080"),
		LogJSON:         envBool("LOG_JSON", false),
		LogDebug:        envBool("LOG_DEBUG", false),
		DBDriver:        envOr("DB_DRIVER", "sqlite"),
		DBDSN:           envOr("DB_DSN", ""),
		SessionBackend:  envOr("SESSION_BACKEND", "db"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		Normalizer:      envOr("NORMALIZER", "sum"),
		DefaultCategory: envOr("DEFAULT_CATEGORY", "ai_ml"),
		DatasetPath:     envOr("DATASET_PATH", "./universities.json"),
		TelegramToken:   os.Getenv("TELEGRAM_TOKEN"),
		AdminUser:       envOr("ADMIN_USER", "admin"),
		AdminPassHash:   envOr("ADMIN_PASS_HASH", "$2y$12$pyZAiWaTfVtM7UElIRStvOC3gNbnp70nmQU4eYopLGBfCJr1DOvji"),
		HMACSecret:      envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),
		CORSOrigins:     csvOr("CORS_ORIGINS", "http://localhost:3000"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}
func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
