package loaders

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kenafu/manosaba-utils/pkg/sprite"
)

// spriteJSON mirrors the layout of a dumped sprite asset. Only the fields the
// mesh pipeline needs are declared; everything else in the dump is ignored.
type spriteJSON struct {
	Name          string   `json:"m_Name"`
	PixelsToUnits *float64 `json:"m_PixelsToUnits"`
	RD            struct {
		VertexData struct {
			VertexCount int    `json:"m_VertexCount"`
			Data        string `json:"m_Data"`
		} `json:"m_VertexData"`
		IndexBuffer string `json:"m_IndexBuffer"`
	} `json:"m_RD"`
}

// LoadSpriteRecord parses one sprite metadata JSON file into a sprite.Record.
// Files without mesh data (other asset types share the dump directory) return
// an error so the batch sweep can skip them.
func LoadSpriteRecord(filename string) (sprite.Record, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return sprite.Record{}, fmt.Errorf("failed to read sprite metadata: %w", err)
	}

	var parsed spriteJSON
	if err := json.Unmarshal(data, &parsed); err != nil {
		return sprite.Record{}, fmt.Errorf("failed to parse sprite metadata %s: %w", filename, err)
	}

	if parsed.RD.VertexData.Data == "" || parsed.RD.IndexBuffer == "" {
		return sprite.Record{}, fmt.Errorf("%s carries no sprite mesh data", filename)
	}

	rec := sprite.Record{
		Name:        parsed.Name,
		VertexCount: parsed.RD.VertexData.VertexCount,
		VertexData:  parsed.RD.VertexData.Data,
		IndexBuffer: parsed.RD.IndexBuffer,
	}
	if parsed.PixelsToUnits != nil {
		rec.PixelsToUnits = *parsed.PixelsToUnits
	}
	if rec.Name == "" {
		rec.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}

	return rec, nil
}

// LoadSpriteMesh parses and decodes one sprite metadata file in a single call.
func LoadSpriteMesh(filename string) (*sprite.Mesh, error) {
	rec, err := LoadSpriteRecord(filename)
	if err != nil {
		return nil, err
	}
	mesh, err := sprite.DecodeRecord(rec)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return mesh, nil
}
