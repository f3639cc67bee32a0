// Package creds resolves API credentials from the environment and from
// config files.
//
// Two credentials exist: the EIA API key, required by every command that
// talks to the API, and a MapTiler key, required only by facility-map
// rendering. Sources are merged with a fixed precedence (highest wins):
//
//  1. process environment (EIA_API_KEY, MAPTILER_API_KEY)
//  2. a .env file in the working directory
//  3. the user config file ($XDG_CONFIG_HOME/eiascout/config.toml)
//  4. a legacy api_key.json file in the working directory
package creds

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvAPIKey  = "EIA_API_KEY"
	EnvTileKey = "MAPTILER_API_KEY"
)

// legacyFile is the key file written by older tooling.
const legacyFile = "api_key.json"

// ErrNoAPIKey indicates no EIA API key was found in any source.
var ErrNoAPIKey = errors.New("creds: no EIA API key configured")

// Credentials holds the resolved keys. Zero fields mean "not configured".
type Credentials struct {
	// APIKey authenticates against the EIA API.
	APIKey string `toml:"api_key" json:"api_key"`

	// TileKey authenticates against the map tile service. Only the
	// facility-map feature needs it.
	TileKey string `toml:"tile_key" json:"tile_key"`
}

// Load resolves credentials from all sources. Missing sources are skipped;
// a source that exists but cannot be parsed is an error, so a typo in a
// config file fails loudly instead of silently dropping the key.
func Load() (Credentials, error) {
	var c Credentials

	// Lowest-precedence sources first; later sources overwrite.
	if err := loadLegacy(&c); err != nil {
		return Credentials{}, err
	}
	if err := loadConfigFile(&c); err != nil {
		return Credentials{}, err
	}

	// godotenv only sets variables that are not already present, so the
	// process environment keeps precedence over .env contents.
	_ = godotenv.Load()

	if v := os.Getenv(EnvAPIKey); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv(EnvTileKey); v != "" {
		c.TileKey = v
	}
	return c, nil
}

// RequireAPIKey returns the API key or ErrNoAPIKey when none is configured.
func (c Credentials) RequireAPIKey() (string, error) {
	if c.APIKey == "" {
		return "", ErrNoAPIKey
	}
	return c.APIKey, nil
}

// ConfigPath returns the user config file location, honoring XDG_CONFIG_HOME.
func ConfigPath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "eiascout", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("creds: resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "eiascout", "config.toml"), nil
}

func loadConfigFile(c *Credentials) error {
	path, err := ConfigPath()
	if err != nil {
		// No resolvable home directory; the other sources still apply.
		return nil
	}

	var fc Credentials
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("creds: parse %s: %w", path, err)
	}

	if fc.APIKey != "" {
		c.APIKey = fc.APIKey
	}
	if fc.TileKey != "" {
		c.TileKey = fc.TileKey
	}
	return nil
}

func loadLegacy(c *Credentials) error {
	data, err := os.ReadFile(legacyFile)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("creds: read %s: %w", legacyFile, err)
	}

	var fc Credentials
	if err := json.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("creds: parse %s: %w", legacyFile, err)
	}

	if fc.APIKey != "" {
		c.APIKey = fc.APIKey
	}
	return nil
}
