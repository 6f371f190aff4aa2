package extract

import "image"

// OpaqueBounds returns the bounding box of all pixels with non-zero alpha.
// The second return is false when the image is fully transparent.
func OpaqueBounds(img *image.NRGBA) (image.Rectangle, bool) {
	bounds := img.Bounds()
	minX, minY := bounds.Max.X, bounds.Max.Y
	maxX, maxY := bounds.Min.X-1, bounds.Min.Y-1

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if img.Pix[img.PixOffset(x, y)+3] == 0 {
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}

	if maxX < minX || maxY < minY {
		return image.Rectangle{}, false
	}
	return image.Rect(minX, minY, maxX+1, maxY+1), true
}

// CropTransparent copies the non-transparent region of a raster into a fresh
// image anchored at the origin. Fully transparent inputs are returned as-is.
func CropTransparent(img *image.NRGBA) *image.NRGBA {
	box, ok := OpaqueBounds(img)
	if !ok {
		return img
	}

	out := image.NewNRGBA(image.Rect(0, 0, box.Dx(), box.Dy()))
	for y := 0; y < box.Dy(); y++ {
		src := img.PixOffset(box.Min.X, box.Min.Y+y)
		dst := out.PixOffset(0, y)
		copy(out.Pix[dst:dst+box.Dx()*4], img.Pix[src:src+box.Dx()*4])
	}
	return out
}
