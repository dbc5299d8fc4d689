// filepath: internal/services/mocks/settings_mock.go
package mocks

import (
	"teachermonitor/internal/models"
	"teachermonitor/internal/reactive"
	"teachermonitor/internal/services"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
)

// MockSettingsService is a mock implementation of services.SettingsService
type MockSettingsService struct {
	mock.Mock
}

var _ services.SettingsService = (*MockSettingsService)(nil)

func (m *MockSettingsService) GetSetting(key string) (models.SettingValue, error) {
	args := m.Called(key)
	return args.Get(0).(models.SettingValue), args.Error(1)
}

func (m *MockSettingsService) SetSetting(key string, value models.SettingValue) error {
	args := m.Called(key, value)
	return args.Error(0)
}

func (m *MockSettingsService) GetSettings() ([]models.Setting, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Setting), args.Error(1)
}

func (m *MockSettingsService) Branding() services.Branding {
	args := m.Called()
	return args.Get(0).(services.Branding)
}

func (m *MockSettingsService) Watch(broker *reactive.Broker, logger *logrus.Logger) *reactive.Query[[]models.Setting] {
	args := m.Called(broker, logger)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*reactive.Query[[]models.Setting])
}
