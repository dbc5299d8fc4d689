// filepath: internal/render/render_test.go
package render

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"

	"teachermonitor/internal/logging"
	"teachermonitor/internal/shared"

	"github.com/stretchr/testify/assert"
)

func testRegion(id string) Region {
	return Region{
		ID:     id,
		Title:  "Supervision Report",
		Header: []string{"Hillside Academy", "12 School Lane"},
		Sections: []Section{
			{Heading: "General", Rows: []Row{
				{Label: "Teacher", Value: "Alice Smith"},
				{Label: "Class", Value: "5A"},
			}},
		},
		Footer: "Generated by the school office",
	}
}

func pngDataURI(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for x := 0; x < 10; x++ {
		img.Set(x, 5, color.Black)
	}
	var buf bytes.Buffer
	assert.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestRenderRegion_2xDensity(t *testing.T) {
	reg := NewRegistry(logging.NewLogger("error"))
	reg.Mount(testRegion("r1"))

	raster, err := reg.RenderRegion("r1")
	assert.NoError(t, err)
	assert.Equal(t, baseWidth*2, raster.Width)
	assert.Equal(t, baseHeight*2, raster.Height)
	assert.Equal(t, raster.Width, raster.Image.Bounds().Dx())
	assert.Equal(t, raster.Height, raster.Image.Bounds().Dy())
}

func TestRenderRegion_NotMounted(t *testing.T) {
	reg := NewRegistry(logging.NewLogger("error"))

	raster, err := reg.RenderRegion("ghost")
	assert.Nil(t, raster)
	assert.ErrorIs(t, err, shared.ErrRegionNotFound)
}

func TestRenderRegion_UnmountForgetsRegion(t *testing.T) {
	reg := NewRegistry(logging.NewLogger("error"))
	reg.Mount(testRegion("r1"))
	assert.True(t, reg.Mounted("r1"))

	reg.Unmount("r1")
	assert.False(t, reg.Mounted("r1"))

	_, err := reg.RenderRegion("r1")
	assert.ErrorIs(t, err, shared.ErrRegionNotFound)
}

func TestRenderRegion_WithImages(t *testing.T) {
	reg := NewRegistry(logging.NewLogger("error"))

	region := testRegion("r1")
	region.LogoURI = pngDataURI(t)
	region.Signatures = []Signature{
		{Caption: "Teacher", ImageURI: pngDataURI(t)},
		{Caption: "Supervisor"}, // caption only, no image yet
	}
	reg.Mount(region)

	raster, err := reg.RenderRegion("r1")
	assert.NoError(t, err)
	assert.NotNil(t, raster)
}

func TestRenderRegion_BrokenEmbeddedImageIsSkipped(t *testing.T) {
	reg := NewRegistry(logging.NewLogger("error"))

	region := testRegion("r1")
	region.LogoURI = "data:image/png;base64,not-base64!!"
	reg.Mount(region)

	// A broken logo degrades to no logo, never to a failed export.
	raster, err := reg.RenderRegion("r1")
	assert.NoError(t, err)
	assert.NotNil(t, raster)
}

func TestDecodeDataURI(t *testing.T) {
	img, err := decodeDataURI(pngDataURI(t))
	assert.NoError(t, err)
	assert.Equal(t, 10, img.Bounds().Dx())

	_, err = decodeDataURI("http://example.com/logo.png")
	assert.Error(t, err)

	_, err = decodeDataURI("data:image/png;base64")
	assert.Error(t, err)
}

func TestWrap(t *testing.T) {
	assert.Equal(t, []string{"short"}, wrap("short", 20))
	assert.Equal(t, []string{"one two", "three"}, wrap("one two three", 8))
	assert.Equal(t, []string{"aaaaabbb", "bb"}, wrap("aaaaabbbbb", 8))
	assert.Equal(t, []string{""}, wrap("", 8))
}
