package input

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, color.White)
		}
	}

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func writePDF(t *testing.T, path string, pages int) {
	t.Helper()

	pngPath := filepath.Join(t.TempDir(), "page.png")
	writePNG(t, pngPath)

	images := make([]string, pages)
	for i := range images {
		images[i] = pngPath
	}
	require.NoError(t, api.ImportImagesFile(images, path, nil, nil))
}

func TestResolveLocalPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.png")
	writePNG(t, path)

	src, err := Resolve(path)
	require.NoError(t, err)

	assert.True(t, src.IsLocal())
	assert.False(t, src.IsPDF())
	assert.Equal(t, "image/png", src.MIMEType)
	assert.Equal(t, 1, src.Pages)

	data, err := src.Bytes()
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestResolveLocalPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.pdf")
	writePDF(t, path, 1)

	src, err := Resolve(path)
	require.NoError(t, err)

	assert.True(t, src.IsPDF())
	assert.Equal(t, 1, src.Pages)
	assert.NoError(t, CheckSinglePage(src))
}

func TestResolveMultiPagePDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.pdf")
	writePDF(t, path, 3)

	src, err := Resolve(path)
	require.NoError(t, err)

	assert.Equal(t, 3, src.Pages)

	err = CheckSinglePage(src)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMultiPage)
}

func TestResolveS3URI(t *testing.T) {
	src, err := Resolve("s3://my-bucket/docs/scan.pdf")
	require.NoError(t, err)

	assert.False(t, src.IsLocal())
	assert.Equal(t, "my-bucket", src.S3.Bucket)
	assert.Equal(t, "docs/scan.pdf", src.S3.Key)
	assert.NoError(t, CheckSinglePage(src))
}

func TestResolveS3Prefix(t *testing.T) {
	_, err := Resolve("s3://my-bucket/docs/")
	require.Error(t, err)
}

func TestResolveMissingFile(t *testing.T) {
	_, err := Resolve(filepath.Join(t.TempDir(), "nope.png"))
	require.Error(t, err)
}

func TestResolveUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("plain text, not a document image"), 0o644))

	_, err := Resolve(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
