// filepath: internal/services/exporter.go
package services

import (
	"fmt"
	"image"
	"time"

	"teachermonitor/internal/pdfdoc"
	"teachermonitor/internal/render"
	"teachermonitor/internal/shared"
	"teachermonitor/internal/storage"

	"github.com/sirupsen/logrus"
)

// Exporter turns rendered report regions into PDF files on disk. It is
// shared by all report kinds; the per-kind layout and naming comes in
// through the ReportKind descriptor.
type Exporter struct {
	registry *render.Registry
	settings SettingsService
	dir      string
	logger   *logrus.Logger
}

func NewExporter(registry *render.Registry, settings SettingsService, dir string, logger *logrus.Logger) *Exporter {
	return &Exporter{registry: registry, settings: settings, dir: dir, logger: logger}
}

// capture mounts the region, waits for its raster, and unmounts again.
func (e *Exporter) capture(region render.Region) (image.Image, error) {
	e.registry.Mount(region)
	defer e.registry.Unmount(region.ID)

	raster, err := e.registry.RenderRegion(region.ID)
	if err != nil {
		return nil, err
	}
	return raster.Image, nil
}

// regionFor builds the printable region for one report, keyed by the
// report id so simultaneous exports cannot collide in the registry.
func regionFor[R any](kind ReportKind[R], r R, b Branding) render.Region {
	region := kind.Layout(r, b)
	region.ID = kind.Meta(r).ID
	return region
}

// exportOne writes one report as a one-page PDF named
// <FilePrefix>_<teacher>_<date>.pdf and returns the file path.
func exportOne[R any](e *Exporter, kind ReportKind[R], r R) (string, error) {
	img, err := e.capture(regionFor(kind, r, e.settings.Branding()))
	if err != nil {
		return "", err
	}

	doc, err := pdfdoc.ComposeSinglePage(img)
	if err != nil {
		return "", err
	}

	meta := kind.Meta(r)
	name := fmt.Sprintf("%s_%s_%s.pdf", kind.FilePrefix, shared.SanitizeFilename(meta.TeacherName), meta.Date)
	return e.save(doc, name)
}

// exportBulk writes one multi-page PDF over the given reports, one page
// per report in slice order.
func exportBulk[R any](e *Exporter, kind ReportKind[R], reports []R) (string, error) {
	branding := e.settings.Branding()

	imgs := make([]image.Image, 0, len(reports))
	for _, r := range reports {
		img, err := e.capture(regionFor(kind, r, branding))
		if err != nil {
			return "", err
		}
		imgs = append(imgs, img)
	}

	doc, err := pdfdoc.ComposeMultiPage(imgs)
	if err != nil {
		return "", err
	}
	if doc == nil {
		return "", shared.ErrNoReports
	}

	name := fmt.Sprintf("%s_Reports_Bulk_Export_%s.pdf", kind.BulkPrefix, shared.ISODate(time.Now()))
	return e.save(doc, name)
}

func (e *Exporter) save(doc *pdfdoc.Document, name string) (string, error) {
	path, err := storage.ExportPath(e.dir, name)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrorCreateFile, err)
	}
	if err := doc.Save(path); err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrorCreateFile, err)
	}
	e.logger.WithField("file", path).Info("Exported PDF")
	return path, nil
}
