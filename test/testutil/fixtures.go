package testutil

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Fixtures holds the standard test documents, generated fresh per test.
type Fixtures struct {
	SinglePagePNG string
	SecondPagePNG string
	SinglePagePDF string
	MultiPagePDF  string
}

// GenerateFixtures writes the standard test documents into a temporary
// directory cleaned up with the test.
func GenerateFixtures(t *testing.T) Fixtures {
	t.Helper()

	dir := t.TempDir()
	f := Fixtures{
		SinglePagePNG: filepath.Join(dir, "single-page-1.png"),
		SecondPagePNG: filepath.Join(dir, "single-page-2.png"),
		SinglePagePDF: filepath.Join(dir, "textractor-singlepage-doc.pdf"),
		MultiPagePDF:  filepath.Join(dir, "textractor-multipage-doc.pdf"),
	}

	WritePNG(t, f.SinglePagePNG)
	WritePNG(t, f.SecondPagePNG)
	WritePDF(t, f.SinglePagePDF, 1)
	WritePDF(t, f.MultiPagePDF, 2)
	return f
}

// WritePNG writes a small document-like PNG: a white page with black
// marks so the service has something to look at.
func WritePNG(t *testing.T, path string) {
	t.Helper()

	const w, h = 200, 120
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.White)
		}
	}
	// A few horizontal bars, roughly where lines of text would sit.
	for _, top := range []int{20, 50, 80} {
		for y := top; y < top+8; y++ {
			for x := 20; x < w-20; x++ {
				img.Set(x, y, color.Black)
			}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create fixture %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode fixture %s: %v", path, err)
	}
}

// WritePDF writes a PDF fixture with the given page count.
func WritePDF(t *testing.T, path string, pages int) {
	t.Helper()

	pngPath := filepath.Join(t.TempDir(), "page.png")
	WritePNG(t, pngPath)

	images := make([]string, pages)
	for i := range images {
		images[i] = pngPath
	}
	if err := api.ImportImagesFile(images, path, nil, nil); err != nil {
		t.Fatalf("failed to create PDF fixture %s: %v", path, err)
	}
}
