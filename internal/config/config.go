package config

import (
	"encoding/json"
	"os"
)

type Config struct {
	InputDir  string `json:"input_dir"`
	OutputDir string `json:"output_dir"`
	LogFile   string `json:"log_file"`
	LogLevel  string `json:"log_level"`
}

// LoadConfig loads a JSON config from the given path. If path is empty, looks for ./config.json.
// A missing file is not fatal: defaults are returned so flags alone can drive the program.
// A file that exists but fails to decode returns defaults together with the
// decode error, so callers can always use the Config and report the error.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = "config.json"
	}
	f, err := os.Open(path)
	if err != nil {
		// not fatal: return defaults
		return &Config{}, nil
	}
	defer f.Close()
	var c Config
	dec := json.NewDecoder(f)
	if err := dec.Decode(&c); err != nil {
		return &Config{}, err
	}
	return &c, nil
}
