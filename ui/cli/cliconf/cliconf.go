package cliconf

import (
	"encoding/json"
	"fmt"
	"os"
)

const defaultFile = "voicechess.json"

// Config keeps the cosmetic and convenience preferences of the CLI layer.
// The engine never reads it.
type Config struct {
	Theme     string `json:"theme"`      // unicode/ascii board glyphs
	Level     string `json:"level"`      // easy/medium/hard
	PlayWhite bool   `json:"play_white"` // human side
	LogLevel  string `json:"log_level"`  // debug/info/warn/error
	Debug     bool   `json:"debug"`      // console log encoding
}

func defaultConfig() Config {
	return Config{
		Theme:     "unicode",
		Level:     "medium",
		PlayWhite: true,
		LogLevel:  "info",
		Debug:     false,
	}
}

// Load reads the config file, falling back to defaults when it is absent.
func Load(path string) (*Config, error) {
	if path == "" {
		path = defaultFile
	}

	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		def := defaultConfig()
		return &def, nil
	} else if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// decode over the defaults so omitted fields keep them
	c := defaultConfig()
	if err := json.NewDecoder(f).Decode(&c); err != nil {
		return nil, fmt.Errorf("error decode config: %w", err)
	}
	normalize(&c)
	return &c, nil
}

func (c *Config) Save(path string) error {
	if path == "" {
		path = defaultFile
	}
	data, err := json.MarshalIndent(c, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func normalize(c *Config) {
	if c.Theme != "ascii" {
		c.Theme = "unicode"
	}
	switch c.Level {
	case "easy", "medium", "hard":
	default:
		c.Level = "medium"
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		c.LogLevel = "info"
	}
}
