package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"

	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/tiff" // TIFF decoder
	_ "golang.org/x/image/webp" // WebP decoder

	"github.com/kenafu/manosaba-utils/pkg/raster"
)

// LoadAtlas loads a sprite atlas image into a raster.Texture. The format is
// auto-detected from the file header; PNG, JPEG, WebP, BMP and TIFF are
// accepted since atlas dumps show up in all of them.
func LoadAtlas(filename string) (*raster.Texture, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open atlas file: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode atlas %s: %w", filename, err)
	}

	tex, err := raster.NewTexture(img)
	if err != nil {
		return nil, fmt.Errorf("atlas %s: %w", filename, err)
	}

	return tex, nil
}
