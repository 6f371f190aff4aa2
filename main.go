package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"

	"github.com/kenafu/manosaba-utils/pkg/extract"
)

func main() {
	// Parse command line flags
	baseDir := flag.String("base", "", "Root directory containing one subdirectory per target")
	outputDir := flag.String("out", "", "Output root directory (default \"output\")")
	configPath := flag.String("config", "", "Optional YAML config file")
	textureDir := flag.String("texture-dir", "", "Atlas directory relative to each target")
	metadataDir := flag.String("metadata-dir", "", "Sprite JSON directory relative to each target")
	workers := flag.Int("workers", 0, "Sprites rasterized in parallel per target (default: CPU count)")
	noCrop := flag.Bool("no-crop", false, "Keep full mesh bounding box instead of cropping to opaque pixels")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		fmt.Println("Diced Sprite Extractor")
		fmt.Println("Usage: sprite-extractor [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Each target directory must contain an atlas image and the sprite")
		fmt.Println("metadata JSON files dumped from the game. Extracted sprites are")
		fmt.Println("saved to <out>/<target>/<target>_<sprite>.png")
		return
	}

	cfg, err := buildConfig(*configPath, *baseDir, *outputDir, *textureDir, *metadataDir, *workers, *noCrop)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Starting diced sprite extraction...")

	targets, err := extract.DiscoverTargets(cfg)
	if err != nil {
		fmt.Printf("Error discovering targets: %v\n", err)
		os.Exit(1)
	}
	if len(targets) == 0 {
		fmt.Printf("No targets found under %s\n", cfg.BaseDir)
		os.Exit(1)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		fmt.Printf("Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	ex := extract.NewExtractor(cfg)
	stats := &extract.Stats{}

	for _, target := range targets {
		fmt.Printf("=== Target: %s (atlas: %s, %d sprites) ===\n",
			target.Name, target.AtlasPath, len(target.SpritePaths))

		bar := progressbar.Default(int64(len(target.SpritePaths)), target.Name)
		ex.OnSpriteDone = func(result extract.SpriteResult) {
			_ = bar.Add(1)
		}

		ts, err := ex.ExtractTarget(target)
		_ = bar.Finish()
		if err != nil {
			fmt.Printf("Warning: target %s failed: %v\n", target.Name, err)
			continue
		}

		fmt.Printf("[%s] extracted %d/%d sprites in %v (%d failed)\n",
			ts.Target, ts.Extracted, ts.Sprites, ts.Elapsed, ts.Failed)
		stats.Add(ts)
	}

	fmt.Printf("Done: %d sprites extracted, %d failed, output in %s\n",
		stats.TotalExtracted(), stats.TotalFailed(), cfg.OutputDir)
}

// buildConfig merges the optional YAML config file with command line
// overrides. Flags win over file values.
func buildConfig(configPath, baseDir, outputDir, textureDir, metadataDir string, workers int, noCrop bool) (extract.Config, error) {
	cfg := extract.DefaultConfig()
	if configPath != "" {
		loaded, err := extract.LoadConfig(configPath)
		if err != nil {
			return extract.Config{}, err
		}
		cfg = loaded
	}

	if baseDir != "" {
		cfg.BaseDir = baseDir
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	if textureDir != "" {
		cfg.TextureDir = textureDir
	}
	if metadataDir != "" {
		cfg.MetadataDir = metadataDir
	}
	if workers > 0 {
		cfg.Workers = workers
	}
	if noCrop {
		cfg.CropOutput = false
	}

	return cfg, cfg.Validate()
}
