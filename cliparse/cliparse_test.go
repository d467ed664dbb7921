// cliparse/cliparse_test.go
package cliparse

import (
	"reflect"
	"testing"
)

func TestParseFlags_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DATABASE_TYPE", "")
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("RATE_LIMIT_RPS", "")
	t.Setenv("RATE_LIMIT_BURST", "")
	t.Setenv("TRUST_PROXY", "")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 3318 {
		t.Errorf("expected port 3318, got %d", cfg.Port)
	}
	if cfg.DatabaseType != DatabaseSQLite {
		t.Errorf("expected sqlite, got %q", cfg.DatabaseType)
	}
	if cfg.DatabaseURL != defaultSQLiteURL {
		t.Errorf("expected default sqlite url, got %q", cfg.DatabaseURL)
	}
	if !reflect.DeepEqual(cfg.AllowedOrigins, []string{"*"}) {
		t.Errorf("expected wildcard origin, got %v", cfg.AllowedOrigins)
	}
	if cfg.RateLimit != 20 || cfg.RateBurst != 40 {
		t.Errorf("unexpected rate limit %v/%d", cfg.RateLimit, cfg.RateBurst)
	}
	if cfg.TrustProxy {
		t.Error("proxy headers should not be trusted by default")
	}
}

func TestParseFlags_TrustProxy(t *testing.T) {
	t.Setenv("DATABASE_TYPE", "")
	t.Setenv("TRUST_PROXY", "true")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.TrustProxy {
		t.Error("expected TRUST_PROXY=true to be honored")
	}

	cfg, err = ParseFlags([]string{"-trust-proxy=false"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TrustProxy {
		t.Error("CLI should override env: expected trust-proxy false")
	}
}

func TestParseFlags_EnvVars(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("DATABASE_URL", "postgres://test")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("RATE_LIMIT_RPS", "0")
	t.Setenv("RATE_LIMIT_BURST", "5")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseURL != "postgres://test" {
		t.Errorf("unexpected database url %q", cfg.DatabaseURL)
	}
	if !reflect.DeepEqual(cfg.AllowedOrigins, []string{"http://a.test", "http://b.test"}) {
		t.Errorf("unexpected origins %v", cfg.AllowedOrigins)
	}
	if cfg.RateLimit != 0 {
		t.Errorf("expected rate limiting disabled, got %v", cfg.RateLimit)
	}
	if cfg.RateBurst != 5 {
		t.Errorf("expected burst 5, got %d", cfg.RateBurst)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_TYPE", "")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-rate", "2.5"})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.DatabaseURL != "file:test.db" {
		t.Errorf("expected file:test.db, got %q", cfg.DatabaseURL)
	}
	if cfg.RateLimit != 2.5 {
		t.Errorf("expected rate 2.5, got %v", cfg.RateLimit)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"invalid port", map[string]string{"PORT": "abc"}, nil},
		{"unknown database type", nil, []string{"-t", "mysql"}},
		{"postgres without url", map[string]string{"DATABASE_URL": ""}, []string{"-t", "postgres"}},
		{"invalid rate", map[string]string{"RATE_LIMIT_RPS": "fast"}, nil},
		{"invalid burst", map[string]string{"RATE_LIMIT_BURST": "lots"}, nil},
		{"invalid trust proxy", map[string]string{"TRUST_PROXY": "maybe"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range []string{"PORT", "DATABASE_URL", "DATABASE_TYPE", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "TRUST_PROXY"} {
				t.Setenv(k, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			if _, err := ParseFlags(tt.args); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
