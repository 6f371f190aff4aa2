package sprite

import (
	"errors"
	"fmt"

	"github.com/kenafu/manosaba-utils/pkg/core"
)

// DefaultPixelsToUnits is used when a sprite record carries no scale of its own.
const DefaultPixelsToUnits = 100

// ErrMalformedMesh indicates that a record's vertex or index buffer is
// inconsistent with its declared vertex count.
var ErrMalformedMesh = errors.New("malformed sprite mesh")

// ErrInvalidIndex indicates that the index buffer references a vertex that
// does not exist. Indices are never clamped or wrapped.
var ErrInvalidIndex = errors.New("triangle index out of range")

// Record is the raw metadata for a single diced sprite, as stored in the
// game's sprite JSON dumps. The vertex and index blobs are base64-encoded
// little-endian binary data.
type Record struct {
	Name          string
	VertexCount   int
	VertexData    string  // base64: vertexCount*3 float32 positions, then vertexCount*2 float32 UVs
	IndexBuffer   string  // base64: uint16 triangle indices, 3 per triangle
	PixelsToUnits float64 // 0 when absent from the source record
}

// Mesh is a decoded diced-sprite mesh: a triangle list over a shared atlas
// texture. Positions are in mesh units with Y pointing up; UVs are normalized
// atlas coordinates with the origin at the bottom-left. A Mesh is immutable
// once decoded.
type Mesh struct {
	Positions     []core.Vec3 // One per vertex; Z is carried but ignored by rasterization
	UVs           []core.Vec2 // One per vertex, same order as Positions
	Indices       []uint16    // Triangle list, length is a multiple of 3
	PixelsToUnits float64     // Mesh units to output pixels
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Bounds returns the component-wise min and max over all vertex positions.
func (m *Mesh) Bounds() (minP, maxP core.Vec3) {
	if len(m.Positions) == 0 {
		return core.Vec3{}, core.Vec3{}
	}
	minP, maxP = m.Positions[0], m.Positions[0]
	for _, p := range m.Positions[1:] {
		minP = minP.MinComponents(p)
		maxP = maxP.MaxComponents(p)
	}
	return minP, maxP
}

// ValidateIndices checks that every triangle index references an existing
// vertex. It returns ErrInvalidIndex (wrapped) on the first violation.
func (m *Mesh) ValidateIndices() error {
	vertexCount := len(m.Positions)
	for i, idx := range m.Indices {
		if int(idx) >= vertexCount {
			return fmt.Errorf("index %d at position %d exceeds vertex count %d: %w",
				idx, i, vertexCount, ErrInvalidIndex)
		}
	}
	return nil
}
