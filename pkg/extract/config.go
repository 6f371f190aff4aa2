package extract

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Default relative layout inside a target directory, matching the game's
// asset dump structure.
const (
	DefaultTextureDir  = "Assets/Texture2D"
	DefaultMetadataDir = "Assets/#WitchTrials/Textures/Naninovel/Characters/DicedSpriteAtlases"
)

// Config controls a batch extraction sweep.
type Config struct {
	BaseDir     string `yaml:"base_dir"`     // Root containing one subdirectory per target
	TextureDir  string `yaml:"texture_dir"`  // Atlas dir, relative to each target
	MetadataDir string `yaml:"metadata_dir"` // Sprite JSON dir, relative to each target
	OutputDir   string `yaml:"output_dir"`   // Root for extracted PNGs
	Workers     int    `yaml:"workers"`      // Sprites rasterized in parallel per target
	CropOutput  bool   `yaml:"crop_output"`  // Trim rasters to their opaque bounding box
}

// DefaultConfig returns a config with the standard dump layout and one worker
// per CPU.
func DefaultConfig() Config {
	return Config{
		TextureDir:  DefaultTextureDir,
		MetadataDir: DefaultMetadataDir,
		OutputDir:   "output",
		Workers:     runtime.NumCPU(),
		CropOutput:  true,
	}
}

// LoadConfig reads a YAML config file over the defaults. The result is not
// validated; callers merge in their own overrides first.
func LoadConfig(filename string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", filename, err)
	}

	return cfg, nil
}

// Validate checks the config for values the sweep cannot run with.
func (c *Config) Validate() error {
	if c.BaseDir == "" {
		return fmt.Errorf("config: base_dir is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("config: output_dir is required")
	}
	if c.Workers < 1 {
		c.Workers = runtime.NumCPU()
	}
	return nil
}
