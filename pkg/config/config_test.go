package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const minimalConfig = `
environment: test
market:
  tracked_symbols: [AAPL]
`

func TestLoadAppliesForecastDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Forecast.P != 5 {
		t.Fatalf("p = %d, want default 5", cfg.Forecast.P)
	}
	if cfg.Forecast.D == nil || *cfg.Forecast.D != 1 {
		t.Fatalf("d = %v, want default 1", cfg.Forecast.D)
	}
	if cfg.Forecast.Horizon != 10 {
		t.Fatalf("horizon = %d, want default 10", cfg.Forecast.Horizon)
	}
}

func TestLoadKeepsExplicitZeroDifferencing(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig+`
forecast:
  p: 3
  d: 0
  horizon: 20
`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Forecast.D == nil || *cfg.Forecast.D != 0 {
		t.Fatalf("d = %v, want explicit 0", cfg.Forecast.D)
	}
	if cfg.Forecast.P != 3 || cfg.Forecast.Horizon != 20 {
		t.Fatalf("p=%d horizon=%d, want 3/20", cfg.Forecast.P, cfg.Forecast.Horizon)
	}
}

func TestLoadRejectsNegativeOrder(t *testing.T) {
	_, err := Load(writeConfig(t, minimalConfig+`
forecast:
  d: -1
`))
	if err == nil {
		t.Fatal("expected validation error for d=-1")
	}
}
