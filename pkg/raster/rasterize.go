package raster

import (
	"fmt"
	"image"
	"math"

	"github.com/kenafu/manosaba-utils/pkg/sprite"
)

// degenerateArea is the signed-area threshold below which a triangle is
// treated as zero-area and skipped.
const degenerateArea = 1e-6

// edgeSlack is the barycentric inclusion tolerance. Accepting weights down to
// -0.01 instead of 0 lets adjacent triangles overlap slightly at shared edges,
// which closes the sub-pixel seams that exact edge tests leave behind.
const edgeSlack = -0.01

// Rasterize scan-converts a diced-sprite mesh against its atlas texture and
// returns a freshly allocated RGBA raster sized to the mesh's bounding box.
//
// Triangles are drawn strictly in index-buffer order with full overwrite, so
// the last triangle covering a pixel wins. Degenerate triangles and triangles
// whose clamped bounding box is empty are skipped silently. The returned
// raster is owned by the caller; Rasterize keeps no reference to it.
func Rasterize(mesh *sprite.Mesh, tex *Texture) (*image.NRGBA, error) {
	if tex == nil || tex.width < 1 || tex.height < 1 {
		return nil, fmt.Errorf("rasterize: invalid texture")
	}
	if err := mesh.ValidateIndices(); err != nil {
		return nil, fmt.Errorf("rasterize: %w", err)
	}

	scale := mesh.PixelsToUnits
	minP, maxP := mesh.Bounds()

	outW := int(math.Ceil((maxP.X - minP.X) * scale))
	outH := int(math.Ceil((maxP.Y - minP.Y) * scale))
	if outW < 0 {
		outW = 0
	}
	if outH < 0 {
		outH = 0
	}

	out := image.NewNRGBA(image.Rect(0, 0, outW, outH))

	// Vertex positions to raster pixels. Mesh Y points up, raster Y points
	// down, so Y is measured from the top of the bounding box.
	vx := make([]float64, len(mesh.Positions))
	vy := make([]float64, len(mesh.Positions))
	for i, p := range mesh.Positions {
		vx[i] = (p.X - minP.X) * scale
		vy[i] = (maxP.Y - p.Y) * scale
	}

	texW := float64(tex.width - 1)
	texH := float64(tex.height - 1)

	for tri := 0; tri+2 < len(mesh.Indices); tri += 3 {
		i0 := mesh.Indices[tri]
		i1 := mesh.Indices[tri+1]
		i2 := mesh.Indices[tri+2]

		x0, y0 := vx[i0], vy[i0]
		x1, y1 := vx[i1], vy[i1]
		x2, y2 := vx[i2], vy[i2]

		// Bounding box expanded by one pixel on every side to cover
		// rounding at edges shared with neighboring triangles.
		xmin := clampInt(int(math.Floor(min(x0, x1, x2)))-1, 0, outW-1)
		xmax := clampInt(int(math.Ceil(max(x0, x1, x2)))+1, 0, outW-1)
		ymin := clampInt(int(math.Floor(min(y0, y1, y2)))-1, 0, outH-1)
		ymax := clampInt(int(math.Ceil(max(y0, y1, y2)))+1, 0, outH-1)
		if outW == 0 || outH == 0 || xmax < xmin || ymax < ymin {
			continue
		}

		denom := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
		if math.Abs(denom) < degenerateArea {
			continue
		}

		uv0 := mesh.UVs[i0]
		uv1 := mesh.UVs[i1]
		uv2 := mesh.UVs[i2]

		for py := ymin; py <= ymax; py++ {
			fy := float64(py)
			for px := xmin; px <= xmax; px++ {
				fx := float64(px)

				w1 := ((y1-y2)*(fx-x2) + (x2-x1)*(fy-y2)) / denom
				w2 := ((y2-y0)*(fx-x2) + (x0-x2)*(fy-y2)) / denom
				w3 := 1.0 - w1 - w2

				if w1 < edgeSlack || w2 < edgeSlack || w3 < edgeSlack {
					continue
				}

				u := w1*uv0.X + w2*uv1.X + w3*uv2.X
				v := w1*uv0.Y + w2*uv1.Y + w3*uv2.Y

				// UV origin is bottom-left, texture storage is
				// top-left, so V flips.
				sx := u * texW
				sy := (1.0 - v) * texH

				r, g, b, a := tex.SampleBilinear(sx, sy)

				i := out.PixOffset(px, py)
				out.Pix[i+0] = clampChannel(r)
				out.Pix[i+1] = clampChannel(g)
				out.Pix[i+2] = clampChannel(b)
				out.Pix[i+3] = clampChannel(a)
			}
		}
	}

	return out, nil
}

// clampChannel rounds a sampled channel value into the 0-255 range.
func clampChannel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
