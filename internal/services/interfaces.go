// filepath: internal/services/interfaces.go
package services

import (
	"context"
	"io"

	"teachermonitor/internal/models"
	"teachermonitor/internal/reactive"

	"github.com/sirupsen/logrus"
)

// InfoService defines the interface for the info service.
type InfoService interface {
	GetInfo() models.Info
}

// TeacherService defines the interface for the teacher directory.
type TeacherService interface {
	GetTeacher(id string) (models.Teacher, error)
	GetTeachers() ([]models.Teacher, error)
	SaveTeacher(t models.Teacher) (models.Teacher, error)
	DeleteTeacher(id string) error
}

// SettingsService defines the interface for school branding settings.
type SettingsService interface {
	GetSetting(key string) (models.SettingValue, error)
	SetSetting(key string, value models.SettingValue) error
	GetSettings() ([]models.Setting, error)
	Branding() Branding
	Watch(broker *reactive.Broker, logger *logrus.Logger) *reactive.Query[[]models.Setting]
}

// BackupService defines the interface for full-store export/import.
type BackupService interface {
	Export(w io.Writer) error
	ExportToFile() (string, error)
	Import(ctx context.Context, r io.Reader) error
	ClearAll(ctx context.Context) error
}
