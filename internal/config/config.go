package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	duct "Ductwork/internal/calc/duct"
	"github.com/joho/godotenv"
)

type Config struct {
	Addr        string
	TLSCert     string
	TLSKey      string
	DatabaseURL string
	TokenKey    []byte
	RateLimit   float64 // requests per second per IP on /api
	RateBurst   int
	Defaults    duct.Defaults
}

var ErrNoTokenKey = errors.New("TOKEN_KEY environment variable is not set")

// Load reads .env (if present) and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}
	return FromEnv()
}

// LoadFile reads variables from the given env files before the environment.
// Variables already set in the environment win.
func LoadFile(paths ...string) (Config, error) {
	if err := godotenv.Load(paths...); err != nil {
		return Config{}, fmt.Errorf("loading env file: %w", err)
	}
	return FromEnv()
}

func FromEnv() (Config, error) {
	cfg := Config{
		Addr:        getenv("DUCTWORK_ADDR", ":443"),
		TLSCert:     getenv("DUCTWORK_TLS_CERT", "server.crt"),
		TLSKey:      getenv("DUCTWORK_TLS_KEY", "server.key"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		TokenKey:    []byte(os.Getenv("TOKEN_KEY")),
		Defaults:    duct.StandardDefaults,
	}

	var err error
	if cfg.RateLimit, err = floatEnv("DUCTWORK_RATE_LIMIT", 1); err != nil {
		return Config{}, err
	}
	if cfg.RateBurst, err = intEnv("DUCTWORK_RATE_BURST", 3); err != nil {
		return Config{}, err
	}

	d := &cfg.Defaults
	if d.RoughnessMM, err = floatEnv("DUCT_DEFAULT_ROUGHNESS_MM", d.RoughnessMM); err != nil {
		return Config{}, err
	}
	if d.TemperatureC, err = floatEnv("DUCT_DEFAULT_TEMPERATURE_C", d.TemperatureC); err != nil {
		return Config{}, err
	}
	if d.RelativeHumidity, err = floatEnv("DUCT_DEFAULT_RELATIVE_HUMIDITY", d.RelativeHumidity); err != nil {
		return Config{}, err
	}
	if d.ElevationM, err = floatEnv("DUCT_DEFAULT_ELEVATION_M", d.ElevationM); err != nil {
		return Config{}, err
	}
	if d.DirectionFactor, err = intEnv("DUCT_DEFAULT_DIRECTION_FACTOR", d.DirectionFactor); err != nil {
		return Config{}, err
	}
	if d.DistanceM, err = floatEnv("DUCT_DEFAULT_DISTANCE_M", d.DistanceM); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// RequireServer checks the settings only the HTTP server needs.
func (c Config) RequireServer() error {
	if len(c.TokenKey) == 0 {
		return ErrNoTokenKey
	}
	return nil
}

// TLS reports whether both certificate files are configured.
func (c Config) TLS() bool {
	return c.TLSCert != "" && c.TLSKey != ""
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func floatEnv(key string, fallback float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func intEnv(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}
