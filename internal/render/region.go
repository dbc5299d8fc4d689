// filepath: internal/render/region.go
// Package render turns a mounted report region into a raster image that
// the PDF composer can place on a page. A region is the laid-out
// printable form of one report: school header, field rows, footer, and
// any embedded images (logo, signatures).
package render

import (
	"fmt"
	"sync"

	"teachermonitor/internal/shared"

	"github.com/sirupsen/logrus"
)

// Row is one labelled value line of a region.
type Row struct {
	Label string
	Value string
}

// Section groups rows under a heading. An empty heading renders the
// rows without one.
type Section struct {
	Heading string
	Rows    []Row
}

// Region is one printable report sheet.
type Region struct {
	ID       string
	Title    string
	Header   []string // school name, address
	LogoURI  string   // optional data URI
	Sections []Section
	// Signatures render side by side above the footer when present.
	Signatures []Signature
	Footer     string
}

// Signature pairs a caption with an embedded raster image (data URI).
type Signature struct {
	Caption  string
	ImageURI string
}

// Registry holds the regions currently mounted for capture. Bulk export
// mounts one region per report, renders them all, then unmounts; each
// RenderRegion call returns only when its raster is complete, so there
// is no settle delay to tune.
type Registry struct {
	mu      sync.Mutex
	regions map[string]Region
	logger  *logrus.Logger
}

func NewRegistry(logger *logrus.Logger) *Registry {
	return &Registry{regions: make(map[string]Region), logger: logger}
}

// Mount makes the region available for capture under its ID.
func (r *Registry) Mount(region Region) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.regions[region.ID] = region
}

// Unmount removes the region. Unknown ids are ignored.
func (r *Registry) Unmount(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.regions, id)
}

// Mounted reports whether a region is currently mounted.
func (r *Registry) Mounted(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.regions[id]
	return ok
}

// RenderRegion captures the region at 2x pixel density. A missing
// region logs a diagnostic and returns ErrRegionNotFound.
func (r *Registry) RenderRegion(id string) (*Raster, error) {
	r.mu.Lock()
	region, ok := r.regions[id]
	r.mu.Unlock()

	if !ok {
		r.logger.Errorf("Render capture failed: region %q is not mounted", id)
		return nil, fmt.Errorf("%w: %s", shared.ErrRegionNotFound, id)
	}
	return rasterize(region, r.logger)
}
