package config

import (
	"testing"
	"time"
)

func TestFirstNonEmpty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		values []string
		want   string
	}{
		{"all empty", []string{"", "   "}, ""},
		{"first non empty", []string{"foo", "bar"}, "foo"},
		{"skips whitespace", []string{"   ", "bar"}, "bar"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := firstNonEmpty(tt.values...); got != tt.want {
				t.Fatalf("firstNonEmpty(%v) = %q, want %q", tt.values, got, tt.want)
			}
		})
	}
}

func TestParseIntWithDefault(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		def   int
		want  int
	}{
		{"blank returns default", "", 7, 7},
		{"invalid returns default", "abc", 3, 3},
		{"valid parses value", "42", 0, 42},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := parseIntWithDefault(tt.value, tt.def); got != tt.want {
				t.Fatalf("parseIntWithDefault(%q, %d) = %d, want %d", tt.value, tt.def, got, tt.want)
			}
		})
	}
}

func TestParseDurationWithDefault(t *testing.T) {
	t.Parallel()

	def := 5 * time.Second
	if got := parseDurationWithDefault("", def); got != def {
		t.Fatalf("expected default for blank value, got %v", got)
	}
	if got := parseDurationWithDefault("bogus", def); got != def {
		t.Fatalf("expected default for invalid value, got %v", got)
	}
	if got := parseDurationWithDefault("90s", def); got != 90*time.Second {
		t.Fatalf("expected 90s, got %v", got)
	}
}

func TestParseBoolWithDefault(t *testing.T) {
	t.Parallel()

	if got := parseBoolWithDefault("", true); got != true {
		t.Fatal("expected default true for blank value")
	}
	if got := parseBoolWithDefault("nope", false); got != false {
		t.Fatal("expected default false for invalid value")
	}
	if got := parseBoolWithDefault("true", false); got != true {
		t.Fatal("expected parsed true")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVER_ADDR", "")
	t.Setenv("ADDR", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_URL", "")
	t.Setenv("SESSION_COOKIE_NAME", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Fatalf("expected default addr :8080, got %q", cfg.Server.Addr)
	}
	if cfg.Session.CookieName != "artisan_session" {
		t.Fatalf("expected default cookie name, got %q", cfg.Session.CookieName)
	}
	if cfg.Session.Lifetime != 12*time.Hour {
		t.Fatalf("expected default session lifetime, got %v", cfg.Session.Lifetime)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Fatalf("expected default log settings, got %+v", cfg.Log)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":9090")
	t.Setenv("DATABASE_URL", "postgres://localhost/artisan")
	t.Setenv("DB_MAX_OPEN_CONNS", "25")
	t.Setenv("SESSION_LIFETIME", "1h")
	t.Setenv("SESSION_COOKIE_SECURE", "true")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Fatalf("expected overridden addr, got %q", cfg.Server.Addr)
	}
	if cfg.Database.URL != "postgres://localhost/artisan" {
		t.Fatalf("expected overridden database url, got %q", cfg.Database.URL)
	}
	if cfg.Database.MaxOpenConns != 25 {
		t.Fatalf("expected 25 max open conns, got %d", cfg.Database.MaxOpenConns)
	}
	if cfg.Session.Lifetime != time.Hour {
		t.Fatalf("expected 1h session lifetime, got %v", cfg.Session.Lifetime)
	}
	if !cfg.Session.CookieSecure {
		t.Fatal("expected secure cookie")
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("expected debug log level, got %q", cfg.Log.Level)
	}
}
