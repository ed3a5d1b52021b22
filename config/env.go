// Package config loads POS configuration into an explicit Config value that
// is passed to each controller at construction. Sources are merged in
// order: built-in defaults, config/app.json, then .env.
package config

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	defaultDatabaseURL = "sqlite://posnet.db"
	defaultStoreID     = 1
	defaultAppEnv      = "local"
)

// Config carries every tier address and ambient setting. Each database is
// named by a "driver://dsn" connection string and is independently
// settable; an empty HQDatabaseURL means the deployment is single-tier.
type Config struct {
	AppEnv string

	// DatabaseURL is the local tier (usually a store's own database).
	DatabaseURL string
	// HQDatabaseURL is the central database. Empty means single-tier.
	HQDatabaseURL string
	// LogisticsURL is where stores file restock requests.
	LogisticsURL string
	// StoreID identifies this store when filing restock requests.
	StoreID uint

	RedisAddr     string
	RedisPassword string
	MetricsAddr   string
}

// MultiTier reports whether a separate HQ database is configured. This is
// the explicit topology flag: sync operations are no-ops when it is false.
func (c *Config) MultiTier() bool {
	return c.HQDatabaseURL != ""
}

// Load reads config/app.json and .env relative to the working directory.
func Load() (*Config, error) {
	return LoadFrom("config/app.json", ".env")
}

// LoadFrom merges defaults, then the JSON config, then the dotenv file.
// Missing files are not errors.
func LoadFrom(configPath, envPath string) (*Config, error) {
	values := defaultValues()

	if err := mergeJSONConfig(configPath, values); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if err := mergeDotEnv(envPath, values); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	// Real environment variables win over both files.
	for key := range values {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			values[key] = v
		}
	}

	storeID := defaultStoreID
	if raw := values["STORE_ID"]; raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("config: invalid STORE_ID %q", raw)
		}
		storeID = n
	}

	return &Config{
		AppEnv:        get(values, "APP_ENV", defaultAppEnv),
		DatabaseURL:   get(values, "DATABASE_URL", defaultDatabaseURL),
		HQDatabaseURL: values["HQ_DATABASE_URL"],
		LogisticsURL:  values["LOGISTICS_URL"],
		StoreID:       uint(storeID),
		RedisAddr:     values["REDIS_ADDR"],
		RedisPassword: values["REDIS_PASSWORD"],
		MetricsAddr:   values["METRICS_ADDR"],
	}, nil
}

func defaultValues() map[string]string {
	return map[string]string{
		"APP_ENV":         defaultAppEnv,
		"DATABASE_URL":    defaultDatabaseURL,
		"HQ_DATABASE_URL": "",
		"LOGISTICS_URL":   "",
		"STORE_ID":        "",
		"REDIS_ADDR":      "",
		"REDIS_PASSWORD":  "",
		"METRICS_ADDR":    "",
	}
}

func mergeJSONConfig(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var raw map[string]interface{}
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return fmt.Errorf("config: decode %s: %w", path, err)
	}

	for key, val := range raw {
		s, ok := val.(string)
		if !ok {
			continue
		}
		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(s)
	}
	return nil
}

func mergeDotEnv(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		idx := strings.IndexByte(line, '=')
		if idx <= 0 {
			continue
		}

		key := strings.ToUpper(strings.TrimSpace(line[:idx]))
		value := strings.TrimSpace(line[idx+1:])
		value = strings.Trim(value, `"'`)
		if key == "" {
			continue
		}
		out[key] = value
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	return nil
}

func get(values map[string]string, key, fallback string) string {
	if v := strings.TrimSpace(values[key]); v != "" {
		return v
	}
	return fallback
}
