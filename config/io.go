package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Migrate moves the legacy top level "labelFont" and "axisFont"
// settings into Font, when Font lacks them.
func Migrate(c Config) Config {
	if c.LabelFont == nil && c.AxisFont == nil {
		return c
	}
	out := c.Clone()
	if out.Font == nil {
		out.Font = &Font{}
	}
	if out.Font.Label == nil {
		out.Font.Label = out.LabelFont
	}
	if out.Font.Axis == nil {
		out.Font.Axis = out.AxisFont
	}
	out.LabelFont, out.AxisFont = nil, nil
	return out
}

// Load decodes a JSON configuration and applies Migrate.
// Absent sections are left to their zero value: use Validate
// to detect a missing font configuration.
func Load(r io.Reader) (Config, error) {
	var c Config
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return Config{}, fmt.Errorf("decoding configuration: %w", err)
	}
	return Migrate(c), nil
}

// LoadFile is a convenience wrapper around Load.
func LoadFile(filename string) (Config, error) {
	f, err := os.Open(filename)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()
	return Load(f)
}

// Save writes c as indented JSON.
func Save(w io.Writer, c Config) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
