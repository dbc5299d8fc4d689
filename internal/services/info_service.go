// filepath: internal/services/info_service.go
package services

import (
	"time"

	"teachermonitor/internal/models"
)

type infoService struct {
	version   string
	startTime time.Time
}

// NewInfoService creates the service reporting version and uptime.
func NewInfoService(version string, startTime time.Time) InfoService {
	return &infoService{version: version, startTime: startTime}
}

func (s *infoService) GetInfo() models.Info {
	return models.Info{
		ServiceName: "teachermonitor",
		Version:     s.version,
		UptimeSince: s.startTime,
	}
}
