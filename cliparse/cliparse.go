package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Supported database backends
const (
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"
)

const defaultSQLiteURL = "file:surveys.db"

type Config struct {
	Port           int
	DatabaseURL    string
	DatabaseType   string
	AllowedOrigins []string
	RateLimit      float64
	RateBurst      int
	// TrustProxy keys rate limiting on X-Forwarded-For / X-Real-IP.
	// Only enable behind a proxy that overwrites those headers.
	TrustProxy bool
}

// ParseFlags reads flags, falling back to environment variables (and .env)
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var origins string

	// A missing .env file is fine; real env vars win anyway
	_ = godotenv.Load()

	fs := flag.NewFlagSet("survey-places", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&origins, "origins", "", "Comma separated CORS origins")
	fs.Float64Var(&cfg.RateLimit, "rate", -1, "Requests per second per client (0 disables)")
	fs.IntVar(&cfg.RateBurst, "burst", 0, "Rate limiter burst size")
	fs.BoolVar(&cfg.TrustProxy, "trust-proxy", false, "Trust proxy headers for the client IP")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Port == 0 {
		port, err := envInt("PORT", 3318)
		if err != nil {
			return Config{}, err
		}
		cfg.Port = port
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = DatabaseSQLite
		}
	}
	if cfg.DatabaseType != DatabaseSQLite && cfg.DatabaseType != DatabasePostgres {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType == DatabasePostgres {
			return Config{}, errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = defaultSQLiteURL
	}

	if origins == "" {
		origins = os.Getenv("CORS_ORIGINS")
	}
	cfg.AllowedOrigins = splitOrigins(origins)

	if cfg.RateLimit < 0 {
		rps := os.Getenv("RATE_LIMIT_RPS")
		if rps == "" {
			cfg.RateLimit = 20
		} else {
			v, err := strconv.ParseFloat(rps, 64)
			if err != nil || v < 0 {
				return Config{}, errors.New("invalid RATE_LIMIT_RPS env variable")
			}
			cfg.RateLimit = v
		}
	}

	if cfg.RateBurst == 0 {
		burst, err := envInt("RATE_LIMIT_BURST", 40)
		if err != nil {
			return Config{}, err
		}
		cfg.RateBurst = burst
	}

	trustSet := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "trust-proxy" {
			trustSet = true
		}
	})
	if !trustSet {
		if v := os.Getenv("TRUST_PROXY"); v != "" {
			trust, err := strconv.ParseBool(v)
			if err != nil {
				return Config{}, errors.New("invalid TRUST_PROXY env variable")
			}
			cfg.TrustProxy = trust
		}
	}

	return cfg, nil
}

func envInt(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable", key)
	}
	return v, nil
}

func splitOrigins(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{"*"}
	}
	var out []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
