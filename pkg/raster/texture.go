package raster

import (
	"fmt"
	"image"
	"math"
)

// Texture is an immutable RGBA atlas image sampled by the rasterizer.
// Pixels are stored row-major, 4 bytes per pixel, origin at the top-left.
// A Texture may be shared across concurrent rasterizations.
type Texture struct {
	width  int
	height int
	pixels []uint8 // RGBA, len = width*height*4
}

// NewTexture builds a Texture from a decoded image. Alpha is preserved
// non-premultiplied.
func NewTexture(img image.Image) (*Texture, error) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("invalid texture dimensions %dx%d", width, height)
	}

	nrgba := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			nrgba.Set(x, y, img.At(x+bounds.Min.X, y+bounds.Min.Y))
		}
	}

	return &Texture{
		width:  width,
		height: height,
		pixels: nrgba.Pix,
	}, nil
}

// Width returns the texture width in pixels.
func (t *Texture) Width() int {
	return t.width
}

// Height returns the texture height in pixels.
func (t *Texture) Height() int {
	return t.height
}

// texelAt returns the RGBA channels of one texel as float64s.
// Coordinates must be in range.
func (t *Texture) texelAt(x, y int) (r, g, b, a float64) {
	i := (y*t.width + x) * 4
	return float64(t.pixels[i]), float64(t.pixels[i+1]), float64(t.pixels[i+2]), float64(t.pixels[i+3])
}

// SampleBilinear samples the texture at a fractional pixel coordinate,
// blending the four surrounding texels. All four channels, alpha included,
// are blended the same way. Coordinates outside the texture clamp to the
// edge texels.
func (t *Texture) SampleBilinear(sx, sy float64) (r, g, b, a float64) {
	fx := math.Floor(sx)
	fy := math.Floor(sy)

	// The neighbor taps derive from the unclamped floor so that samples
	// outside the texture clamp both taps onto the same edge texel.
	x0 := clampInt(int(fx), 0, t.width-1)
	y0 := clampInt(int(fy), 0, t.height-1)
	x1 := clampInt(int(fx)+1, 0, t.width-1)
	y1 := clampInt(int(fy)+1, 0, t.height-1)

	wx := sx - fx
	wy := sy - fy

	r00, g00, b00, a00 := t.texelAt(x0, y0)
	r10, g10, b10, a10 := t.texelAt(x1, y0)
	r01, g01, b01, a01 := t.texelAt(x0, y1)
	r11, g11, b11, a11 := t.texelAt(x1, y1)

	// Horizontal lerp within each row, then vertical lerp between rows.
	lerp := func(c0, c1, w float64) float64 { return c0*(1-w) + c1*w }

	r = lerp(lerp(r00, r10, wx), lerp(r01, r11, wx), wy)
	g = lerp(lerp(g00, g10, wx), lerp(g01, g11, wx), wy)
	b = lerp(lerp(b00, b10, wx), lerp(b01, b11, wx), wy)
	a = lerp(lerp(a00, a10, wx), lerp(a01, a11, wx), wy)
	return r, g, b, a
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
