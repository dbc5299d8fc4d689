// filepath: internal/housekeeping/service.go
// Package housekeeping runs the background sweeper that keeps the
// exports directory from growing without bound. Exported PDFs and
// backup snapshots are regenerable, so aged files are simply removed.
package housekeeping

import (
	"os"
	"path/filepath"
	"time"

	"teachermonitor/internal/storage"

	"github.com/sirupsen/logrus"
)

// DefaultCheckInterval is the time between retention sweeps.
const DefaultCheckInterval = 1 * time.Hour

// Service provides the background worker for export retention.
type Service struct {
	dir    string
	maxAge time.Duration
	logger *logrus.Logger

	timer  *time.Timer
	stopCh chan struct{}
}

// NewService creates a sweeper for dir. maxAge 0 disables deletion;
// Start then does nothing.
func NewService(dir string, maxAge time.Duration, logger *logrus.Logger) *Service {
	return &Service{
		dir:    dir,
		maxAge: maxAge,
		logger: logger,
		stopCh: make(chan struct{}),
	}
}

// Start kicks off the background sweeper.
func (s *Service) Start() {
	if s.maxAge <= 0 {
		s.logger.Info("Export retention disabled, files are kept forever.")
		return
	}

	s.logger.Infof("Starting export retention sweeper (max age %v).", s.maxAge)
	s.timer = time.NewTimer(0) // Fire immediately on start

	go func() {
		for {
			select {
			case <-s.timer.C:
				s.Sweep()
				s.timer.Reset(DefaultCheckInterval)
			case <-s.stopCh:
				s.timer.Stop()
				return
			}
		}
	}()
}

// Stop terminates the background sweeper.
func (s *Service) Stop() {
	if s.maxAge <= 0 {
		return
	}
	s.logger.Info("Stopping export retention sweeper.")
	close(s.stopCh)
}

// Sweep removes export files older than the retention age. It returns
// the number of files removed.
func (s *Service) Sweep() int {
	files, err := storage.ListFiles(s.dir)
	if err != nil {
		s.logger.Errorf("Retention sweep could not list %s: %v", s.dir, err)
		return 0
	}

	cutoff := time.Now().Add(-s.maxAge)
	removed := 0
	for _, f := range files {
		if f.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(s.dir, f.Name())
		if err := os.Remove(path); err != nil {
			s.logger.Warnf("Retention sweep could not remove %s: %v", path, err)
			continue
		}
		removed++
	}

	if removed > 0 {
		s.logger.Infof("Retention sweep removed %d expired export(s).", removed)
	}
	return removed
}
