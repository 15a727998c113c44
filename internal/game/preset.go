package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PresetFile represents the top-level YAML structure.
type PresetFile struct {
	Presets []Preset `yaml:"presets"`
}

// Preset is a named board setup.
type Preset struct {
	Name   string `yaml:"name" json:"name"`
	Width  int    `yaml:"width" json:"width"`
	Height int    `yaml:"height" json:"height"`
	Seed   int64  `yaml:"seed,omitempty" json:"seed,omitempty"`
}

// MatchConfig returns a config for this preset with the remaining fields zero.
func (p Preset) MatchConfig() MatchConfig {
	return MatchConfig{Width: p.Width, Height: p.Height, Seed: p.Seed}
}

// DecodePresets parses preset YAML and validates every entry.
func DecodePresets(data []byte) (PresetFile, error) {
	var pf PresetFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return PresetFile{}, fmt.Errorf("parse preset YAML: %w", err)
	}
	for i, p := range pf.Presets {
		if err := ValidateDimensions(p.Width, p.Height); err != nil {
			return PresetFile{}, fmt.Errorf("preset %d (%s): %w", i+1, p.Name, err)
		}
	}
	return pf, nil
}

// ParsePresetFile reads and parses a YAML preset file.
func ParsePresetFile(path string) (PresetFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PresetFile{}, err
	}
	return DecodePresets(data)
}

// PresetByNumber returns the Nth preset (1-indexed) from the preset file.
func PresetByNumber(path string, n int) (Preset, error) {
	pf, err := ParsePresetFile(path)
	if err != nil {
		return Preset{}, err
	}
	if n < 1 || n > len(pf.Presets) {
		return Preset{}, fmt.Errorf("preset %d not found (have %d presets)", n, len(pf.Presets))
	}
	return pf.Presets[n-1], nil
}
