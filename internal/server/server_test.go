package server

import (
	"testing"
	"time"
)

func TestNewAppliesSessionDefaults(t *testing.T) {
	srv, err := New(Config{Addr: ":0"})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if srv.config.Session.Lifetime != 0 {
		t.Fatal("New must not mutate the caller's config")
	}
	if srv.httpServer.Addr != ":0" {
		t.Fatalf("unexpected addr %q", srv.httpServer.Addr)
	}
	if srv.Handler() == nil {
		t.Fatal("expected a configured handler")
	}
}

func TestNewHonorsSessionOverrides(t *testing.T) {
	cfg := Config{
		Addr: ":0",
		Session: SessionConfig{
			Lifetime:   30 * time.Minute,
			CookieName: "custom_session",
		},
	}
	srv, err := New(cfg)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if srv.httpServer.ReadHeaderTimeout != 5*time.Second {
		t.Fatalf("unexpected read header timeout %v", srv.httpServer.ReadHeaderTimeout)
	}
}
