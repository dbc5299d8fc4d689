// filepath: internal/render/raster.go
package render

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Base canvas is A4 at 96dpi; the capture is delivered at 2x density.
const (
	baseWidth  = 794
	baseHeight = 1123
	margin     = 48
	lineHeight = 18
	charWidth  = 7 // basicfont.Face7x13 advance
	density    = 2
)

// Raster is a completed region capture.
type Raster struct {
	Image image.Image
	// Width and Height are the delivered pixel dimensions.
	Width  int
	Height int
}

func rasterize(region Region, logger *logrus.Logger) (*Raster, error) {
	rgba := image.NewRGBA(image.Rect(0, 0, baseWidth, baseHeight))
	draw.Draw(rgba, rgba.Bounds(), image.White, image.Point{}, draw.Src)

	c := &painter{rgba: rgba, y: margin}

	c.drawLogo(region.LogoURI, logger)
	for _, line := range region.Header {
		c.centeredLine(line)
	}
	c.space(lineHeight / 2)
	c.rule()
	c.space(lineHeight)
	c.centeredLine(strings.ToUpper(region.Title))
	c.space(lineHeight)

	for _, section := range region.Sections {
		if section.Heading != "" {
			c.line(section.Heading)
			c.rule()
			c.space(lineHeight / 2)
		}
		for _, row := range section.Rows {
			c.row(row.Label, row.Value)
		}
		c.space(lineHeight / 2)
	}

	c.drawSignatures(region.Signatures, logger)

	if region.Footer != "" {
		c.footerLine(region.Footer)
	}

	scaled := imaging.Resize(rgba, baseWidth*density, baseHeight*density, imaging.Lanczos)
	return &Raster{
		Image:  scaled,
		Width:  baseWidth * density,
		Height: baseHeight * density,
	}, nil
}

// painter is a top-down text flow over the base canvas.
type painter struct {
	rgba *image.RGBA
	y    int
}

func (p *painter) drawer() *font.Drawer {
	return &font.Drawer{
		Dst:  p.rgba,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
	}
}

func (p *painter) space(px int) { p.y += px }

func (p *painter) textAt(s string, x int) {
	d := p.drawer()
	d.Dot = fixed.P(x, p.y)
	d.DrawString(s)
}

func (p *painter) line(s string) {
	p.textAt(s, margin)
	p.y += lineHeight
}

func (p *painter) centeredLine(s string) {
	w := len(s) * charWidth
	p.textAt(s, (baseWidth-w)/2)
	p.y += lineHeight
}

// row prints "Label:" and a wrapped value.
func (p *painter) row(label, value string) {
	maxChars := (baseWidth - 2*margin) / charWidth
	text := label + ": " + value
	for _, wrapped := range wrap(text, maxChars) {
		p.line(wrapped)
	}
}

// rule draws a horizontal separator across the content width.
func (p *painter) rule() {
	for x := margin; x < baseWidth-margin; x++ {
		p.rgba.Set(x, p.y-lineHeight/2, color.Black)
	}
}

func (p *painter) footerLine(s string) {
	d := p.drawer()
	w := len(s) * charWidth
	d.Dot = fixed.P((baseWidth-w)/2, baseHeight-margin)
	d.DrawString(s)
}

func (p *painter) drawLogo(uri string, logger *logrus.Logger) {
	if uri == "" {
		return
	}
	logo, err := decodeDataURI(uri)
	if err != nil {
		// A broken logo must not abort a report export.
		logger.Warnf("Skipping school logo: %v", err)
		return
	}
	fitted := imaging.Fit(logo, 96, 96, imaging.Lanczos)
	bounds := fitted.Bounds()
	target := image.Rect(margin, p.y, margin+bounds.Dx(), p.y+bounds.Dy())
	draw.Draw(p.rgba, target, fitted, bounds.Min, draw.Over)
}

func (p *painter) drawSignatures(sigs []Signature, logger *logrus.Logger) {
	if len(sigs) == 0 {
		return
	}

	p.space(lineHeight)
	colWidth := (baseWidth - 2*margin) / len(sigs)
	top := p.y
	bottom := top

	for i, sig := range sigs {
		x := margin + i*colWidth
		y := top
		if sig.ImageURI != "" {
			img, err := decodeDataURI(sig.ImageURI)
			if err != nil {
				logger.Warnf("Skipping signature image for %q: %v", sig.Caption, err)
			} else {
				fitted := imaging.Fit(img, colWidth-2*charWidth, 64, imaging.Lanczos)
				b := fitted.Bounds()
				draw.Draw(p.rgba, image.Rect(x, y, x+b.Dx(), y+b.Dy()), fitted, b.Min, draw.Over)
				y += b.Dy() + lineHeight/2
			}
		}
		d := p.drawer()
		d.Dot = fixed.P(x, y+lineHeight)
		d.DrawString(sig.Caption)
		if y+2*lineHeight > bottom {
			bottom = y + 2*lineHeight
		}
	}
	p.y = bottom
}

// wrap splits s into lines of at most maxChars characters, breaking on
// spaces where possible.
func wrap(s string, maxChars int) []string {
	if maxChars <= 0 || len(s) <= maxChars {
		return []string{s}
	}

	var lines []string
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}

	current := words[0]
	for _, word := range words[1:] {
		if len(current)+1+len(word) <= maxChars {
			current += " " + word
			continue
		}
		lines = append(lines, current)
		current = word
	}
	lines = append(lines, current)

	// Hard-break any single word longer than the line.
	var out []string
	for _, line := range lines {
		for len(line) > maxChars {
			out = append(out, line[:maxChars])
			line = line[maxChars:]
		}
		out = append(out, line)
	}
	return out
}
