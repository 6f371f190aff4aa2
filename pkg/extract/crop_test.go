package extract

import (
	"image"
	"image/color"
	"testing"
)

func TestOpaqueBounds(t *testing.T) {
	tests := []struct {
		name   string
		size   image.Rectangle
		opaque []image.Point
		want   image.Rectangle
		wantOK bool
	}{
		{
			name:   "single pixel",
			size:   image.Rect(0, 0, 10, 10),
			opaque: []image.Point{{X: 3, Y: 4}},
			want:   image.Rect(3, 4, 4, 5),
			wantOK: true,
		},
		{
			name:   "spread pixels",
			size:   image.Rect(0, 0, 10, 10),
			opaque: []image.Point{{X: 1, Y: 8}, {X: 7, Y: 2}},
			want:   image.Rect(1, 2, 8, 9),
			wantOK: true,
		},
		{
			name:   "fully transparent",
			size:   image.Rect(0, 0, 5, 5),
			opaque: nil,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := image.NewNRGBA(tt.size)
			for _, p := range tt.opaque {
				img.SetNRGBA(p.X, p.Y, color.NRGBA{R: 255, A: 255})
			}

			got, ok := OpaqueBounds(img)
			if ok != tt.wantOK {
				t.Fatalf("OpaqueBounds ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("OpaqueBounds = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCropTransparent(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	img.SetNRGBA(5, 6, color.NRGBA{R: 10, A: 255})
	img.SetNRGBA(9, 12, color.NRGBA{B: 20, A: 128})

	cropped := CropTransparent(img)

	if got := cropped.Bounds(); got.Dx() != 5 || got.Dy() != 7 {
		t.Fatalf("cropped bounds = %v, want 5x7", got)
	}
	if got := cropped.NRGBAAt(0, 0); got != (color.NRGBA{R: 10, A: 255}) {
		t.Errorf("pixel (0,0) = %v, want the first opaque pixel", got)
	}
	if got := cropped.NRGBAAt(4, 6); got != (color.NRGBA{B: 20, A: 128}) {
		t.Errorf("pixel (4,6) = %v, want the second opaque pixel", got)
	}
}

func TestCropTransparent_FullyTransparent(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	cropped := CropTransparent(img)
	if cropped != img {
		t.Error("fully transparent image should be returned unchanged")
	}
}
