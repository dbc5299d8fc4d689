// filepath: internal/services/mocks/backup_mock.go
package mocks

import (
	"context"
	"io"

	"teachermonitor/internal/services"

	"github.com/stretchr/testify/mock"
)

// MockBackupService is a mock implementation of services.BackupService
type MockBackupService struct {
	mock.Mock
}

var _ services.BackupService = (*MockBackupService)(nil)

func (m *MockBackupService) Export(w io.Writer) error {
	args := m.Called(w)
	return args.Error(0)
}

func (m *MockBackupService) ExportToFile() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

func (m *MockBackupService) Import(ctx context.Context, r io.Reader) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockBackupService) ClearAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
