package assets

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/db47h/ofs"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Image is a decoded raster with tightly packed RGBA8 rows (stride == 4*Width),
// row-major, top-left origin.
type Image struct {
	Width, Height int
	Pix           []byte
}

// LoadImage decodes any registered raster format into RGBA8.
func LoadImage(fsys ofs.FileSystem, name string) (*Image, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open image %q: %w", name, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %q: %w", name, err)
	}
	out := FromImage(img)
	if out.Width == 0 || out.Height == 0 {
		return nil, fmt.Errorf("image %q (%s) is empty", name, format)
	}
	return out, nil
}

// FromImage converts img to a tightly packed RGBA8 Image.
func FromImage(img image.Image) *Image {
	rgba := imageToRGBA(img)
	w, h := rgba.Bounds().Dx(), rgba.Bounds().Dy()

	// Repack in tight rows (stride == 4*w)
	out := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		copy(out[y*w*4:(y+1)*w*4], rgba.Pix[y*rgba.Stride:y*rgba.Stride+w*4])
	}
	return &Image{Width: w, Height: h, Pix: out}
}

func imageToRGBA(img image.Image) *image.RGBA {
	if m, ok := img.(*image.RGBA); ok && m.Rect.Min == (image.Point{}) {
		return m
	}
	dst := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
	return dst
}
