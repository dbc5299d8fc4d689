// filepath: internal/pdfdoc/pdfdoc.go
// Package pdfdoc composes captured report images into fixed-geometry
// PDF documents: portrait A4, one image per page.
package pdfdoc

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/go-pdf/fpdf"

	"teachermonitor/internal/shared"
)

// Page geometry, portrait A4 in millimeters.
const (
	PageWidthMM  = 210.0
	PageHeightMM = 297.0
)

// Document is an in-memory PDF under construction. Producing it has no
// side effects; writing a file is the explicit Save step.
type Document struct {
	pdf   *fpdf.Fpdf
	pages int
}

func New() *Document {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	return &Document{pdf: pdf}
}

// Pages reports how many pages have been composed so far.
func (d *Document) Pages() int {
	return d.pages
}

// AddImagePage appends one page holding the image scaled to fill the
// page width. If that would overflow the page height, the height is
// capped instead and the image is centered horizontally. The image is
// always top-aligned; aspect ratio is preserved either way.
func (d *Document) AddImagePage(img image.Image) error {
	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return fmt.Errorf("cannot place an empty image")
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("failed to encode page image: %w", err)
	}

	aspect := float64(bounds.Dy()) / float64(bounds.Dx())
	width := PageWidthMM
	height := width * aspect
	x := 0.0
	if height > PageHeightMM {
		height = PageHeightMM
		width = height / aspect
		x = (PageWidthMM - width) / 2
	}

	d.pages++
	name := fmt.Sprintf("page-%d", d.pages)
	opts := fpdf.ImageOptions{ImageType: "PNG"}

	d.pdf.AddPage()
	d.pdf.RegisterImageOptionsReader(name, opts, &buf)
	d.pdf.ImageOptions(name, x, 0, width, height, false, opts, 0, "")

	if d.pdf.Err() {
		return fmt.Errorf("pdf composition failed: %v", d.pdf.Error())
	}
	return nil
}

// ComposeSinglePage builds a one-page document from the image.
func ComposeSinglePage(img image.Image) (*Document, error) {
	return ComposeMultiPage([]image.Image{img})
}

// ComposeMultiPage builds one page per input image, in input order. An
// empty input produces no document at all.
func ComposeMultiPage(imgs []image.Image) (*Document, error) {
	if len(imgs) == 0 {
		return nil, nil
	}

	doc := New()
	for _, img := range imgs {
		if err := doc.AddImagePage(img); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// Save writes the document to the named file.
func (d *Document) Save(path string) error {
	if d.pages == 0 {
		return shared.ErrNoPages
	}
	return d.pdf.OutputFileAndClose(path)
}

// Output writes the document to w without touching the filesystem.
func (d *Document) Output(w io.Writer) error {
	if d.pages == 0 {
		return shared.ErrNoPages
	}
	return d.pdf.Output(w)
}
