package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Target is one extractable unit discovered under the base directory: a
// shared atlas texture plus the sprite metadata files that reference it.
type Target struct {
	Name        string   // Directory name, used for output naming
	AtlasPath   string   // The target's atlas image
	SpritePaths []string // Sprite metadata JSON files, sorted
}

// DiscoverTargets scans cfg.BaseDir for target subdirectories that contain
// both a metadata directory and a texture directory. Directories missing
// either are skipped with a warning rather than failing the sweep.
func DiscoverTargets(cfg Config) ([]Target, error) {
	entries, err := os.ReadDir(cfg.BaseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan base directory: %w", err)
	}

	var targets []Target
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		targetRoot := filepath.Join(cfg.BaseDir, entry.Name())
		target, err := resolveTarget(targetRoot, cfg)
		if err != nil {
			fmt.Printf("Warning: skipping %s: %v\n", entry.Name(), err)
			continue
		}
		targets = append(targets, target)
	}

	sort.Slice(targets, func(i, j int) bool { return targets[i].Name < targets[j].Name })
	return targets, nil
}

// resolveTarget locates the atlas and sprite files for one target directory.
// The first texture image (sorted by name) is the atlas; every JSON file in
// the metadata directory is a sprite candidate.
func resolveTarget(targetRoot string, cfg Config) (Target, error) {
	name := filepath.Base(targetRoot)

	metadataDir := filepath.Join(targetRoot, filepath.FromSlash(cfg.MetadataDir))
	textureDir := filepath.Join(targetRoot, filepath.FromSlash(cfg.TextureDir))

	if _, err := os.Stat(metadataDir); err != nil {
		return Target{}, fmt.Errorf("no metadata directory at %s", metadataDir)
	}

	atlasPath, err := findAtlas(textureDir)
	if err != nil {
		return Target{}, err
	}

	spritePaths, err := filepath.Glob(filepath.Join(metadataDir, "*.json"))
	if err != nil {
		return Target{}, fmt.Errorf("failed to scan metadata directory: %w", err)
	}
	if len(spritePaths) == 0 {
		return Target{}, fmt.Errorf("no sprite metadata in %s", metadataDir)
	}
	sort.Strings(spritePaths)

	return Target{
		Name:        name,
		AtlasPath:   atlasPath,
		SpritePaths: spritePaths,
	}, nil
}

// findAtlas picks the first image file (sorted by name) in the texture
// directory. Targets ship exactly one atlas, so first-by-name is stable.
func findAtlas(textureDir string) (string, error) {
	entries, err := os.ReadDir(textureDir)
	if err != nil {
		return "", fmt.Errorf("no texture directory at %s", textureDir)
	}

	var candidates []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".png", ".jpg", ".jpeg", ".webp", ".bmp", ".tiff":
			candidates = append(candidates, entry.Name())
		}
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("no atlas image in %s", textureDir)
	}

	sort.Strings(candidates)
	return filepath.Join(textureDir, candidates[0]), nil
}
