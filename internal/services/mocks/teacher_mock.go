// filepath: internal/services/mocks/teacher_mock.go
package mocks

import (
	"teachermonitor/internal/models"
	"teachermonitor/internal/services"

	"github.com/stretchr/testify/mock"
)

// MockTeacherService is a mock implementation of services.TeacherService
type MockTeacherService struct {
	mock.Mock
}

var _ services.TeacherService = (*MockTeacherService)(nil)

func (m *MockTeacherService) GetTeacher(id string) (models.Teacher, error) {
	args := m.Called(id)
	return args.Get(0).(models.Teacher), args.Error(1)
}

func (m *MockTeacherService) GetTeachers() ([]models.Teacher, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Teacher), args.Error(1)
}

func (m *MockTeacherService) SaveTeacher(t models.Teacher) (models.Teacher, error) {
	args := m.Called(t)
	return args.Get(0).(models.Teacher), args.Error(1)
}

func (m *MockTeacherService) DeleteTeacher(id string) error {
	args := m.Called(id)
	return args.Error(0)
}
