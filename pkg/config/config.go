/*
Package config manages the TOML configuration for the suggestion service.
*/
package config

import (
	"github.com/charmbracelet/log"

	"github.com/screengreen/suggestive-service/internal/utils"
)

// Config holds the entire config structure
type Config struct {
	Server ServerConfig `toml:"server"`
	Corpus CorpusConfig `toml:"corpus"`
	Cache  CacheConfig  `toml:"cache"`
}

// ServerConfig has serving related options.
type ServerConfig struct {
	Addr         string `toml:"addr"`
	DefaultLimit int    `toml:"default_limit"`
	MaxLimit     int    `toml:"max_limit"`
	MaxQueryLen  int    `toml:"max_query_len"`
}

// CorpusConfig describes where the query corpus comes from.
type CorpusConfig struct {
	URL  string `toml:"url"`
	Path string `toml:"path"`
}

// CacheConfig holds query cache options.
type CacheConfig struct {
	Enabled    bool `toml:"enabled"`
	MaxEntries int  `toml:"max_entries"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         ":8080",
			DefaultLimit: 10,
			MaxLimit:     100,
			MaxQueryLen:  200,
		},
		Corpus: CorpusConfig{
			URL:  "https://disk.yandex.ru/d/yQt-jfBSzTs1eA",
			Path: "data/queries.txt",
		},
		Cache: CacheConfig{
			Enabled:    true,
			MaxEntries: 4096,
		},
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	if configPath == "" {
		return DefaultConfig(), nil
	}
	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}
	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file, falling back to defaults per field.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()
	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
