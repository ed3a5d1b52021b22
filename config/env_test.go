package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadFromDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadFrom(filepath.Join(dir, "missing.json"), filepath.Join(dir, "missing.env"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	if cfg.DatabaseURL != "sqlite://posnet.db" {
		t.Errorf("DatabaseURL = %q, want default", cfg.DatabaseURL)
	}
	if cfg.AppEnv != "local" {
		t.Errorf("AppEnv = %q, want local", cfg.AppEnv)
	}
	if cfg.StoreID != 1 {
		t.Errorf("StoreID = %d, want 1", cfg.StoreID)
	}
	if cfg.MultiTier() {
		t.Error("MultiTier() = true without HQ_DATABASE_URL")
	}
}

func TestLoadFromDotEnv(t *testing.T) {
	dir := t.TempDir()
	env := writeFile(t, dir, ".env", `
# local store two
DATABASE_URL=sqlite://store2.db
HQ_DATABASE_URL="sqlite://hq.db"
LOGISTICS_URL='sqlite://logistics.db'
STORE_ID=2
not a key=value line
`)

	cfg, err := LoadFrom(filepath.Join(dir, "missing.json"), env)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	if cfg.DatabaseURL != "sqlite://store2.db" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if cfg.HQDatabaseURL != "sqlite://hq.db" {
		t.Errorf("HQDatabaseURL = %q, quotes should be stripped", cfg.HQDatabaseURL)
	}
	if cfg.LogisticsURL != "sqlite://logistics.db" {
		t.Errorf("LogisticsURL = %q", cfg.LogisticsURL)
	}
	if cfg.StoreID != 2 {
		t.Errorf("StoreID = %d, want 2", cfg.StoreID)
	}
	if !cfg.MultiTier() {
		t.Error("MultiTier() = false with HQ_DATABASE_URL set")
	}
}

func TestLoadFromJSONThenDotEnv(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "app.json", `{
		"app_env": "production",
		"database_url": "sqlite://from-json.db",
		"metrics_addr": ":9200",
		"ignored_number": 42
	}`)
	envPath := writeFile(t, dir, ".env", "DATABASE_URL=sqlite://from-env.db\n")

	cfg, err := LoadFrom(cfgPath, envPath)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	// .env wins over app.json; app.json wins over defaults.
	if cfg.DatabaseURL != "sqlite://from-env.db" {
		t.Errorf("DatabaseURL = %q, want .env value", cfg.DatabaseURL)
	}
	if cfg.AppEnv != "production" {
		t.Errorf("AppEnv = %q, want production", cfg.AppEnv)
	}
	if cfg.MetricsAddr != ":9200" {
		t.Errorf("MetricsAddr = %q", cfg.MetricsAddr)
	}
}

func TestLoadFromEnvVarWins(t *testing.T) {
	dir := t.TempDir()
	envPath := writeFile(t, dir, ".env", "STORE_ID=2\n")

	t.Setenv("STORE_ID", "7")

	cfg, err := LoadFrom(filepath.Join(dir, "missing.json"), envPath)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.StoreID != 7 {
		t.Errorf("StoreID = %d, real env var should win", cfg.StoreID)
	}
}

func TestLoadFromInvalidStoreID(t *testing.T) {
	dir := t.TempDir()
	for _, raw := range []string{"zero", "0", "-3"} {
		envPath := writeFile(t, dir, ".env", "STORE_ID="+raw+"\n")
		if _, err := LoadFrom(filepath.Join(dir, "missing.json"), envPath); err == nil {
			t.Errorf("STORE_ID=%q accepted, want error", raw)
		}
	}
}

func TestLoadFromBadJSON(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "app.json", "{not json")

	if _, err := LoadFrom(cfgPath, filepath.Join(dir, "missing.env")); err == nil {
		t.Error("malformed app.json accepted, want error")
	}
}
