package config

import (
	"os"
	"path/filepath"
	"testing"

	duct "Ductwork/internal/calc/duct"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"DUCTWORK_ADDR", "DUCTWORK_RATE_LIMIT", "DUCT_DEFAULT_TEMPERATURE_C", "TOKEN_KEY"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	cfg, err := FromEnv()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != ":443" || cfg.RateLimit != 1 || cfg.RateBurst != 3 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Defaults != duct.StandardDefaults {
		t.Errorf("defaults = %+v", cfg.Defaults)
	}
	if err := cfg.RequireServer(); err != ErrNoTokenKey {
		t.Errorf("RequireServer() = %v, want ErrNoTokenKey", err)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("DUCTWORK_ADDR", ":8080")
	t.Setenv("TOKEN_KEY", "secret")
	t.Setenv("DUCTWORK_RATE_BURST", "10")
	t.Setenv("DUCT_DEFAULT_TEMPERATURE_C", "-5")
	t.Setenv("DUCT_DEFAULT_DIRECTION_FACTOR", "2")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != ":8080" || string(cfg.TokenKey) != "secret" || cfg.RateBurst != 10 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Defaults.TemperatureC != -5 || cfg.Defaults.DirectionFactor != 2 {
		t.Errorf("defaults = %+v", cfg.Defaults)
	}
	if err := cfg.RequireServer(); err != nil {
		t.Error(err)
	}
}

func TestFromEnvBadNumber(t *testing.T) {
	t.Setenv("DUCT_DEFAULT_DISTANCE_M", "far")
	if _, err := FromEnv(); err == nil {
		t.Error("expected error for non-numeric distance")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("DUCT_DEFAULT_ELEVATION_M=1500\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DUCT_DEFAULT_ELEVATION_M", "")
	os.Unsetenv("DUCT_DEFAULT_ELEVATION_M")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Defaults.ElevationM != 1500 {
		t.Errorf("elevation = %g, want 1500", cfg.Defaults.ElevationM)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Error("expected error for missing env file")
	}
}
