package sprite

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/kenafu/manosaba-utils/pkg/core"
)

// DecodeRecord decodes a sprite metadata record into a Mesh.
//
// The vertex blob holds vertexCount positions of 3 little-endian float32s
// followed by vertexCount UVs of 2 float32s. The index blob holds
// little-endian uint16 triangle indices. Any inconsistency between the blobs
// and the declared vertex count returns ErrMalformedMesh; an index referencing
// a missing vertex returns ErrInvalidIndex.
func DecodeRecord(rec Record) (*Mesh, error) {
	if rec.VertexCount < 0 {
		return nil, fmt.Errorf("negative vertex count %d: %w", rec.VertexCount, ErrMalformedMesh)
	}

	floats, err := decodeFloats(rec.VertexData)
	if err != nil {
		return nil, err
	}

	// Positions come first, UVs fill the remainder.
	wantFloats := rec.VertexCount * 5
	if len(floats) != wantFloats {
		return nil, fmt.Errorf("vertex buffer holds %d floats, want %d for %d vertices: %w",
			len(floats), wantFloats, rec.VertexCount, ErrMalformedMesh)
	}

	positions := make([]core.Vec3, rec.VertexCount)
	for i := range positions {
		positions[i] = core.NewVec3(
			float64(floats[i*3]),
			float64(floats[i*3+1]),
			float64(floats[i*3+2]),
		)
	}

	uvFloats := floats[rec.VertexCount*3:]
	uvs := make([]core.Vec2, rec.VertexCount)
	for i := range uvs {
		uvs[i] = core.NewVec2(
			float64(uvFloats[i*2]),
			float64(uvFloats[i*2+1]),
		)
	}

	indices, err := decodeIndices(rec.IndexBuffer)
	if err != nil {
		return nil, err
	}
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("index buffer holds %d indices, not a multiple of 3: %w",
			len(indices), ErrMalformedMesh)
	}

	scale := rec.PixelsToUnits
	if scale <= 0 {
		scale = DefaultPixelsToUnits
	}

	mesh := &Mesh{
		Positions:     positions,
		UVs:           uvs,
		Indices:       indices,
		PixelsToUnits: scale,
	}

	if err := mesh.ValidateIndices(); err != nil {
		return nil, err
	}

	return mesh, nil
}

// decodeFloats base64-decodes a vertex blob into little-endian float32s.
func decodeFloats(encoded string) ([]float32, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("vertex buffer is not valid base64: %w", ErrMalformedMesh)
	}
	if len(raw)%4 != 0 {
		return nil, fmt.Errorf("vertex buffer is %d bytes, not a multiple of 4: %w",
			len(raw), ErrMalformedMesh)
	}

	floats := make([]float32, len(raw)/4)
	for i := range floats {
		bits := binary.LittleEndian.Uint32(raw[i*4:])
		floats[i] = math.Float32frombits(bits)
	}
	return floats, nil
}

// decodeIndices base64-decodes an index blob into little-endian uint16s.
func decodeIndices(encoded string) ([]uint16, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("index buffer is not valid base64: %w", ErrMalformedMesh)
	}
	if len(raw)%2 != 0 {
		return nil, fmt.Errorf("index buffer is %d bytes, not a multiple of 2: %w",
			len(raw), ErrMalformedMesh)
	}

	indices := make([]uint16, len(raw)/2)
	for i := range indices {
		indices[i] = binary.LittleEndian.Uint16(raw[i*2:])
	}
	return indices, nil
}
