package cliparse

import (
	"errors"
	"flag"
	"net/netip"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	SongsPath    string
	TaxonomyPath string
	AdminKey     string
	IPHashSalt   string
	SubmitRate   float64 // submissions per second per client IP, 0 disables limiting

	// TrustedProxies lists the addresses or CIDR ranges whose
	// X-Forwarded-For and X-Real-IP headers are believed.
	TrustedProxies []string
	// CORSOrigins lists the origins allowed to call the API from a browser.
	// Empty allows any origin without credentials.
	CORSOrigins []string
}

// Defaults
const (
	DefaultPort       = 5001
	DefaultSQLiteURL  = "file:songmood.db"
	DefaultSongsPath  = "songs.json"
	DefaultSubmitRate = 2
)

// EnvFile is read before flags are parsed. Values already set in the
// environment win over the file.
var EnvFile = ".env"

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	if err := godotenv.Load(EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, errors.New("invalid env file " + EnvFile + ": " + err.Error())
	}

	fs := flag.NewFlagSet("songmood", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Session content
	fs.StringVar(&cfg.SongsPath, "songs", "", "Path to the songs JSON file")
	fs.StringVar(&cfg.TaxonomyPath, "taxonomy", "", "Path to the taxonomy JSON file (bundled copy if empty)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminKey, "admin-key", "", "Admin key for /api/admin routes (prefer env)")
	fs.StringVar(&cfg.IPHashSalt, "ip-salt", "", "Salt for client IP hashes (prefer env)")

	rate := fs.String("submit-rate", "", "Submissions per second per client IP (0 disables)")

	// Edge
	proxies := fs.String("trusted-proxies", "", "Comma-separated proxy addresses or CIDRs allowed to set X-Forwarded-For")
	origins := fs.String("cors-origins", "", "Comma-separated origins allowed by CORS (any origin if empty)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType == "postgres" {
			return Config{}, errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = DefaultSQLiteURL
	}

	if cfg.SongsPath == "" {
		cfg.SongsPath = os.Getenv("SONGS_PATH")
		if cfg.SongsPath == "" {
			cfg.SongsPath = DefaultSongsPath
		}
	}
	if cfg.TaxonomyPath == "" {
		cfg.TaxonomyPath = os.Getenv("TAXONOMY_PATH")
	}

	if cfg.AdminKey == "" {
		cfg.AdminKey = os.Getenv("ADMIN_KEY")
	}
	if cfg.IPHashSalt == "" {
		cfg.IPHashSalt = os.Getenv("IP_HASH_SALT")
	}

	if *rate == "" {
		*rate = os.Getenv("SUBMIT_RATE")
	}
	cfg.SubmitRate = DefaultSubmitRate
	if *rate != "" {
		r, err := strconv.ParseFloat(*rate, 64)
		if err != nil || r < 0 {
			return Config{}, errors.New("submit rate must be a non-negative number")
		}
		cfg.SubmitRate = r
	}

	if *proxies == "" {
		*proxies = os.Getenv("TRUSTED_PROXIES")
	}
	cfg.TrustedProxies = splitList(*proxies)
	for _, p := range cfg.TrustedProxies {
		if !validProxy(p) {
			return Config{}, errors.New("invalid trusted proxy " + strconv.Quote(p))
		}
	}

	if *origins == "" {
		*origins = os.Getenv("CORS_ORIGINS")
	}
	cfg.CORSOrigins = splitList(*origins)
	for i, o := range cfg.CORSOrigins {
		if o != "*" && !strings.Contains(o, "://") {
			return Config{}, errors.New("CORS origin must include a scheme: " + strconv.Quote(o))
		}
		cfg.CORSOrigins[i] = strings.TrimSuffix(o, "/")
	}

	return cfg, nil
}

// splitList splits a comma-separated value, dropping blanks. Returns nil
// when nothing is left.
func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func validProxy(p string) bool {
	if strings.Contains(p, "/") {
		_, err := netip.ParsePrefix(p)
		return err == nil
	}
	_, err := netip.ParseAddr(p)
	return err == nil
}
