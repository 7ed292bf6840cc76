package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"roomreserve/internal/domain"
)

// Config holds all configuration for the application.
type Config struct {
	Environment string
	Port        string

	// SheetsURL is the endpoint of the spreadsheet web app acting as the
	// remote store.
	SheetsURL string

	// AdminPassphraseHash is the bcrypt hash of the admin passphrase. If
	// only ADMIN_PASSPHRASE is set, main hashes it at startup.
	AdminPassphraseHash string
	AdminPassphrase     string

	JWTSecret   string
	TokenExpiry time.Duration

	AllowedOrigins []string

	// DefaultRoomLimits seeds the capacity ledger before the first remote
	// load and is what an admin reset restores.
	DefaultRoomLimits map[domain.RoomSize]int
}

// Load loads configuration from environment variables. It attempts to
// load from a .env file when not in production, where we rely on system
// environment variables instead.
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment:         env,
		Port:                os.Getenv("PORT"),
		SheetsURL:           os.Getenv("SHEETS_URL"),
		AdminPassphraseHash: os.Getenv("ADMIN_PASSPHRASE_HASH"),
		AdminPassphrase:     os.Getenv("ADMIN_PASSPHRASE"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.SheetsURL == "" {
		return nil, fmt.Errorf("SHEETS_URL is required")
	}
	if cfg.AdminPassphraseHash == "" && cfg.AdminPassphrase == "" {
		return nil, fmt.Errorf("one of ADMIN_PASSPHRASE_HASH or ADMIN_PASSPHRASE is required")
	}
	if cfg.JWTSecret == "" {
		if env == "production" {
			return nil, fmt.Errorf("JWT_SECRET is required in production")
		}
		log.Printf("Warning: JWT_SECRET not set, using insecure development secret")
		cfg.JWTSecret = "dev-secret"
	}

	expiry := 60
	if s := os.Getenv("TOKEN_EXPIRY_MINUTES"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v <= 0 {
			return nil, fmt.Errorf("invalid TOKEN_EXPIRY_MINUTES %q", s)
		}
		expiry = v
	}
	cfg.TokenExpiry = time.Duration(expiry) * time.Minute

	if s := os.Getenv("ALLOWED_ORIGINS"); s != "" {
		for _, origin := range strings.Split(s, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
			}
		}
	}

	limitsSpec := os.Getenv("DEFAULT_ROOM_LIMITS")
	if limitsSpec == "" {
		// Same party sizes the original deployment supported.
		limitsSpec = "2:0,3:0,4:0,5:0"
	}
	limits, err := ParseRoomLimits(limitsSpec)
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_ROOM_LIMITS: %w", err)
	}
	cfg.DefaultRoomLimits = limits

	return cfg, nil
}

// ParseRoomLimits parses a "size:count,size:count" spec such as
// "2:0,3:1,4:2,5:0".
func ParseRoomLimits(spec string) (map[domain.RoomSize]int, error) {
	limits := make(map[domain.RoomSize]int)
	for _, pair := range strings.Split(spec, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		parts := strings.SplitN(pair, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("bad entry %q", pair)
		}
		size, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil || size <= 0 {
			return nil, fmt.Errorf("bad room size in %q", pair)
		}
		count, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil || count < 0 {
			return nil, fmt.Errorf("bad count in %q", pair)
		}
		if _, dup := limits[domain.RoomSize(size)]; dup {
			return nil, fmt.Errorf("duplicate room size in %q", pair)
		}
		limits[domain.RoomSize(size)] = count
	}
	if len(limits) == 0 {
		return nil, fmt.Errorf("no room sizes configured")
	}
	return limits, nil
}
