package sprite

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kenafu/manosaba-utils/pkg/core"
)

// encodeFloats packs float32s as base64 little-endian bytes, the way sprite
// dumps store vertex data.
func encodeFloats(values ...float32) string {
	buf := make([]byte, len(values)*4)
	for i, v := range values {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return base64.StdEncoding.EncodeToString(buf)
}

// encodeIndices packs uint16s as base64 little-endian bytes.
func encodeIndices(values ...uint16) string {
	buf := make([]byte, len(values)*2)
	for i, v := range values {
		binary.LittleEndian.PutUint16(buf[i*2:], v)
	}
	return base64.StdEncoding.EncodeToString(buf)
}

// quadRecord builds a valid unit-quad record: 4 vertices, 2 triangles.
func quadRecord() Record {
	return Record{
		Name:        "quad",
		VertexCount: 4,
		VertexData: encodeFloats(
			// Positions (x, y, z)
			0, 0, 0,
			1, 0, 0,
			1, 1, 0,
			0, 1, 0,
			// UVs (u, v)
			0, 0,
			1, 0,
			1, 1,
			0, 1,
		),
		IndexBuffer: encodeIndices(0, 1, 2, 0, 2, 3),
	}
}

func TestDecodeRecord(t *testing.T) {
	mesh, err := DecodeRecord(quadRecord())
	if err != nil {
		t.Fatalf("DecodeRecord failed: %v", err)
	}

	wantPositions := []core.Vec3{
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(1, 1, 0),
		core.NewVec3(0, 1, 0),
	}
	if diff := cmp.Diff(wantPositions, mesh.Positions); diff != "" {
		t.Errorf("positions mismatch (-want +got):\n%s", diff)
	}

	wantUVs := []core.Vec2{
		core.NewVec2(0, 0),
		core.NewVec2(1, 0),
		core.NewVec2(1, 1),
		core.NewVec2(0, 1),
	}
	if diff := cmp.Diff(wantUVs, mesh.UVs); diff != "" {
		t.Errorf("uvs mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]uint16{0, 1, 2, 0, 2, 3}, mesh.Indices); diff != "" {
		t.Errorf("indices mismatch (-want +got):\n%s", diff)
	}

	if len(mesh.Positions) != len(mesh.UVs) {
		t.Errorf("position count %d != uv count %d", len(mesh.Positions), len(mesh.UVs))
	}
	if got := mesh.TriangleCount(); got != 2 {
		t.Errorf("TriangleCount() = %d, want 2", got)
	}
	if mesh.PixelsToUnits != DefaultPixelsToUnits {
		t.Errorf("PixelsToUnits = %v, want default %v", mesh.PixelsToUnits, DefaultPixelsToUnits)
	}
}

func TestDecodeRecord_ExplicitScale(t *testing.T) {
	rec := quadRecord()
	rec.PixelsToUnits = 32

	mesh, err := DecodeRecord(rec)
	if err != nil {
		t.Fatalf("DecodeRecord failed: %v", err)
	}
	if mesh.PixelsToUnits != 32 {
		t.Errorf("PixelsToUnits = %v, want 32", mesh.PixelsToUnits)
	}
}

func TestDecodeRecord_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Record)
		wantErr error
	}{
		{
			name: "float count short of vertex count",
			mutate: func(r *Record) {
				// 4*5-1 floats instead of 4*5
				r.VertexData = encodeFloats(make([]float32, 19)...)
			},
			wantErr: ErrMalformedMesh,
		},
		{
			name: "float count exceeds vertex count",
			mutate: func(r *Record) {
				r.VertexData = encodeFloats(make([]float32, 21)...)
			},
			wantErr: ErrMalformedMesh,
		},
		{
			name: "vertex buffer not multiple of float size",
			mutate: func(r *Record) {
				r.VertexData = base64.StdEncoding.EncodeToString(make([]byte, 81))
			},
			wantErr: ErrMalformedMesh,
		},
		{
			name: "vertex buffer not base64",
			mutate: func(r *Record) {
				r.VertexData = "not base64!!"
			},
			wantErr: ErrMalformedMesh,
		},
		{
			name: "index count not multiple of 3",
			mutate: func(r *Record) {
				r.IndexBuffer = encodeIndices(0, 1, 2, 3)
			},
			wantErr: ErrMalformedMesh,
		},
		{
			name: "index buffer odd byte count",
			mutate: func(r *Record) {
				r.IndexBuffer = base64.StdEncoding.EncodeToString(make([]byte, 5))
			},
			wantErr: ErrMalformedMesh,
		},
		{
			name: "index references missing vertex",
			mutate: func(r *Record) {
				r.IndexBuffer = encodeIndices(0, 1, 4)
			},
			wantErr: ErrInvalidIndex,
		},
		{
			name: "negative vertex count",
			mutate: func(r *Record) {
				r.VertexCount = -1
			},
			wantErr: ErrMalformedMesh,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := quadRecord()
			tt.mutate(&rec)

			mesh, err := DecodeRecord(rec)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("DecodeRecord error = %v, want %v", err, tt.wantErr)
			}
			if mesh != nil {
				t.Errorf("DecodeRecord returned a mesh alongside the error")
			}
		})
	}
}

func TestDecodeRecord_EmptyMesh(t *testing.T) {
	rec := Record{
		VertexCount: 0,
		VertexData:  encodeFloats(),
		IndexBuffer: encodeIndices(),
	}

	mesh, err := DecodeRecord(rec)
	if err != nil {
		t.Fatalf("DecodeRecord failed on empty mesh: %v", err)
	}
	if len(mesh.Positions) != 0 || len(mesh.UVs) != 0 || mesh.TriangleCount() != 0 {
		t.Errorf("empty record decoded to non-empty mesh: %+v", mesh)
	}
}
