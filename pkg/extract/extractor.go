package extract

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kenafu/manosaba-utils/pkg/loaders"
	"github.com/kenafu/manosaba-utils/pkg/raster"
	"github.com/kenafu/manosaba-utils/pkg/sprite"
)

// Extractor runs the batch sprite extraction sweep: for every discovered
// target it loads the atlas once, then decodes, rasterizes and writes each
// sprite. Failed sprites are reported and skipped; the sweep continues.
type Extractor struct {
	cfg Config

	// OnSpriteDone, when set, is called after every sprite attempt.
	// Used by the CLI for progress reporting.
	OnSpriteDone func(result SpriteResult)
}

// NewExtractor creates an extractor for the given config.
func NewExtractor(cfg Config) *Extractor {
	return &Extractor{cfg: cfg}
}

// Run discovers all targets under the base directory and extracts each one.
func (ex *Extractor) Run() (*Stats, error) {
	if err := os.MkdirAll(ex.cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	targets, err := DiscoverTargets(ex.cfg)
	if err != nil {
		return nil, err
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("no targets found under %s", ex.cfg.BaseDir)
	}

	stats := &Stats{}
	for _, target := range targets {
		ts, err := ex.ExtractTarget(target)
		if err != nil {
			fmt.Printf("Warning: target %s failed: %v\n", target.Name, err)
			continue
		}
		stats.Add(ts)
	}

	return stats, nil
}

// ExtractTarget extracts every sprite of one target against its atlas.
func (ex *Extractor) ExtractTarget(target Target) (TargetStats, error) {
	startTime := time.Now()

	tex, err := loaders.LoadAtlas(target.AtlasPath)
	if err != nil {
		return TargetStats{}, err
	}

	outDir := filepath.Join(ex.cfg.OutputDir, target.Name)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return TargetStats{}, fmt.Errorf("failed to create output directory: %w", err)
	}

	pool := NewWorkerPool(ex, target, tex, ex.cfg.Workers, len(target.SpritePaths))
	for i, spritePath := range target.SpritePaths {
		pool.SubmitTask(SpriteTask{TaskID: i, SpritePath: spritePath})
	}
	pool.Finish()

	ts := TargetStats{
		Target:  target.Name,
		Sprites: len(target.SpritePaths),
	}
	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		if result.Err != nil {
			ts.Failed++
			fmt.Printf("Warning: [%s] %s: %v\n", target.Name, filepath.Base(result.SpritePath), result.Err)
		} else {
			ts.Extracted++
		}
		if ex.OnSpriteDone != nil {
			ex.OnSpriteDone(result)
		}
	}

	ts.Elapsed = time.Since(startTime)
	return ts, nil
}

// extractSprite runs the pipeline for a single sprite: decode the metadata,
// rasterize against the atlas, optionally crop, encode as PNG.
func (ex *Extractor) extractSprite(target Target, tex *raster.Texture, spritePath string) (string, error) {
	rec, err := loaders.LoadSpriteRecord(spritePath)
	if err != nil {
		return "", err
	}

	mesh, err := sprite.DecodeRecord(rec)
	if err != nil {
		return "", err
	}

	img, err := raster.Rasterize(mesh, tex)
	if err != nil {
		return "", err
	}
	if ex.cfg.CropOutput {
		img = CropTransparent(img)
	}

	base := strings.TrimSuffix(filepath.Base(spritePath), filepath.Ext(spritePath))
	outputPath := filepath.Join(ex.cfg.OutputDir, target.Name,
		fmt.Sprintf("%s_%s.png", target.Name, base))

	file, err := os.Create(outputPath)
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("failed to encode PNG: %w", err)
	}

	return outputPath, nil
}
