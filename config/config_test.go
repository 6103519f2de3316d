package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestFromEnv(t *testing.T) {
	t.Setenv("MENU_PAGE_SIZE", "24")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("DB_MAX_CONNS", "7")
	t.Setenv("APP_ID", "test-menu")
	t.Setenv("STORE_DRIVER", DriverMemory)

	cfg := FromEnv()

	got := struct {
		AppID      string
		PageSize   int
		SessionTTL time.Duration
		MaxConns   int32
	}{cfg.AppID, cfg.MenuPageSize, cfg.SessionTTL, cfg.DBMaxConns}
	want := struct {
		AppID      string
		PageSize   int
		SessionTTL time.Duration
		MaxConns   int32
	}{"test-menu", 24, 30 * time.Minute, 7}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FromEnv() mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "memory store", mutate: func(c *Config) {}},
		{name: "postgres without dsn", mutate: func(c *Config) { c.StoreDriver = DriverPostgres; c.DBUrl = "" }, wantErr: true},
		{name: "postgres with dsn", mutate: func(c *Config) { c.StoreDriver = DriverPostgres; c.DBUrl = "postgres://localhost/menu" }},
		{name: "unknown driver", mutate: func(c *Config) { c.StoreDriver = "firestore" }, wantErr: true},
		{name: "zero page size", mutate: func(c *Config) { c.MenuPageSize = 0 }, wantErr: true},
		{name: "negative burst", mutate: func(c *Config) { c.RateLimitBurst = -1 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{StoreDriver: DriverMemory, MenuPageSize: 12, InboxSize: 8, JWTSecret: "s"}
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFromEnvFallsBackOnBadValues(t *testing.T) {
	t.Setenv("RATE_LIMIT_RPS", "fast")
	t.Setenv("RATE_LIMIT_BURST", "20")
	t.Setenv("SESSION_TTL", "forever")

	cfg := FromEnv()
	if cfg.RateLimitRPS != 50 || cfg.RateLimitBurst != 20 || cfg.SessionTTL != 12*time.Hour {
		t.Errorf("got rps=%v burst=%d ttl=%v", cfg.RateLimitRPS, cfg.RateLimitBurst, cfg.SessionTTL)
	}
}
