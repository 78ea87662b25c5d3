package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoadEnvDefaults(t *testing.T) {
	for _, key := range []string{"APP_ADDR", "STORAGE_DRIVER", "STATE_DIR", "STORAGE_KEY", "ADMIN_SESSION_TTL", "PUBLIC_BASE_URL", "CORS_ALLOWED_ORIGINS", "REDIS_DB"} {
		t.Setenv(key, "")
	}
	env := LoadEnv()

	if env.AppAddr != ":8080" {
		t.Fatalf("AppAddr: got %q", env.AppAddr)
	}
	if env.StorageDriver != "file" || env.StateDir != "./data" || env.StorageKey != "envy-estate-db" {
		t.Fatalf("storage defaults: %+v", env)
	}
	if env.AdminSessionTTL != 12*time.Hour {
		t.Fatalf("AdminSessionTTL: got %s", env.AdminSessionTTL)
	}
	if env.PublicBaseURL != "http://localhost:3000" {
		t.Fatalf("PublicBaseURL: got %q", env.PublicBaseURL)
	}
	if env.CORSAllowedOrigins != nil {
		t.Fatalf("expected no origins, got %v", env.CORSAllowedOrigins)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", " Redis ")
	t.Setenv("ADMIN_SESSION_TTL", "30m")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("PUBLIC_BASE_URL", "https://envy.example/")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example/, ,https://b.example")
	env := LoadEnv()

	if env.StorageDriver != "redis" {
		t.Fatalf("StorageDriver: got %q", env.StorageDriver)
	}
	if env.AdminSessionTTL != 30*time.Minute || env.RedisDB != 3 {
		t.Fatalf("parsed values: %+v", env)
	}
	if env.PublicBaseURL != "https://envy.example" {
		t.Fatalf("PublicBaseURL: got %q", env.PublicBaseURL)
	}
	if want := []string{"https://a.example", "https://b.example"}; !reflect.DeepEqual(env.CORSAllowedOrigins, want) {
		t.Fatalf("origins: got %v", env.CORSAllowedOrigins)
	}
}

func TestLoadEnvIgnoresBadNumbers(t *testing.T) {
	t.Setenv("REDIS_DB", "two")
	t.Setenv("ADMIN_SESSION_TTL", "-5m")
	env := LoadEnv()
	if env.RedisDB != 0 || env.AdminSessionTTL != 12*time.Hour {
		t.Fatalf("bad values should fall back: %+v", env)
	}
}

func TestWithParseTime(t *testing.T) {
	cases := map[string]string{
		"u:p@tcp(h)/db":                    "u:p@tcp(h)/db?parseTime=true",
		"u:p@tcp(h)/db?charset=utf8mb4":    "u:p@tcp(h)/db?charset=utf8mb4&parseTime=true",
		"u:p@tcp(h)/db?parseTime=false":    "u:p@tcp(h)/db?parseTime=false",
	}
	for in, want := range cases {
		if got := withParseTime(in); got != want {
			t.Fatalf("withParseTime(%q) = %q, want %q", in, got, want)
		}
	}
}
