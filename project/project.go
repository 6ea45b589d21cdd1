// Package project holds the per-project configuration for script
// conversion. Settings live in a dlg.yaml file next to the scripts;
// everything has a sensible default so the file is optional.
package project

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const ConfigFile = "dlg.yaml"

type Config struct {
	// DisplayBudget is the maximum characters per display screen. Text
	// longer than this is split into linked screens.
	DisplayBudget int `yaml:"display_budget"`
	// RowLength is the maximum characters per drawn text row.
	RowLength int `yaml:"row_length"`
	// PlayerName is the expression announced when the player speaks.
	PlayerName string `yaml:"player_name"`
	// OutDir receives generated scripts; empty means next to the input.
	OutDir string `yaml:"out_dir"`
}

// Defaults match a 4-row, 85-column dialogue box.
func Defaults() Config {
	return Config{
		DisplayBudget: 340,
		RowLength:     85,
		PlayerName:    "global.name",
	}
}

// Load reads dlg.yaml from the current directory.
func Load() (Config, error) {
	return LoadFrom(".")
}

// LoadFrom reads dlg.yaml from dir. A missing file yields the defaults;
// present values override defaults field by field.
func LoadFrom(dir string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(filepath.Join(dir, ConfigFile))
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read %s: %w", ConfigFile, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", ConfigFile, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", ConfigFile, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.DisplayBudget <= 0 {
		return fmt.Errorf("display_budget must be positive, got %d", c.DisplayBudget)
	}
	if c.RowLength <= 0 {
		return fmt.Errorf("row_length must be positive, got %d", c.RowLength)
	}
	if c.RowLength > c.DisplayBudget {
		return fmt.Errorf("row_length %d exceeds display_budget %d", c.RowLength, c.DisplayBudget)
	}
	if c.PlayerName == "" {
		return fmt.Errorf("player_name must not be empty")
	}
	return nil
}
