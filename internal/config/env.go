package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr string
	GinMode string

	StorageDriver string
	StateDir      string
	StorageKey    string

	MySQLDSN    string
	PostgresDSN string

	RedisAddr     string
	RedisUser     string
	RedisPassword string
	RedisDB       int

	SessionSecret   string
	AdminSessionTTL time.Duration

	PublicBaseURL      string
	CORSAllowedOrigins []string
}

// LoadEnv reads .env when present, then the process environment.
func LoadEnv() Env {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: .env not loaded: %v", err)
	}

	return Env{
		AppAddr: getenv("APP_ADDR", ":8080"),
		GinMode: getenv("GIN_MODE", ""),

		StorageDriver: strings.ToLower(getenv("STORAGE_DRIVER", "file")),
		StateDir:      getenv("STATE_DIR", "./data"),
		StorageKey:    getenv("STORAGE_KEY", "envy-estate-db"),

		MySQLDSN:    getenv("MYSQL_DSN", ""),
		PostgresDSN: getenv("POSTGRES_DSN", ""),

		RedisAddr:     getenv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisUser:     getenv("REDIS_USER", ""),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       getenvInt("REDIS_DB", 0),

		SessionSecret:   getenv("SESSION_SECRET", ""),
		AdminSessionTTL: getenvDuration("ADMIN_SESSION_TTL", 12*time.Hour),

		PublicBaseURL:      strings.TrimRight(getenv("PUBLIC_BASE_URL", "http://localhost:3000"), "/"),
		CORSAllowedOrigins: splitOrigins(getenv("CORS_ALLOWED_ORIGINS", "")),
	}
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func getenvInt(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: %s=%q is not a number, using %d", key, v, def)
		return def
	}
	return n
}

func getenvDuration(key string, def time.Duration) time.Duration {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("config: %s=%q is not a duration, using %s", key, v, def)
		return def
	}
	return d
}

func splitOrigins(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, strings.TrimRight(part, "/"))
		}
	}
	return out
}
