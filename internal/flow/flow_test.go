// filepath: internal/flow/flow_test.go
package flow

import (
	"path/filepath"
	"testing"

	"teachermonitor/internal/config"
	"teachermonitor/internal/logging"
	"teachermonitor/internal/models"
	"teachermonitor/internal/reactive"
	"teachermonitor/internal/render"
	"teachermonitor/internal/repository"
	"teachermonitor/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMachineFixture(t *testing.T) (*Machine[models.SupervisionReport], *services.ReportService[models.SupervisionReport]) {
	t.Helper()

	cfg := &config.Config{
		Database: config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "test.db")},
	}
	logger := logging.NewLogger("error")

	repo, err := repository.NewRepository(cfg, reactive.NewBroker(), logger)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	require.NoError(t, repo.MigrateUp())

	settings := services.NewSettingsService(repo)
	exporter := services.NewExporter(render.NewRegistry(logger), settings, t.TempDir(), logger)
	svc := services.NewReportService(services.SupervisionKind(), repo, exporter, logger)
	return NewMachine(svc), svc
}

func validReport() models.SupervisionReport {
	return models.SupervisionReport{
		TeacherName:       "Amina Yusuf",
		ClassName:         "Grade 8-B",
		Subject:           "Mathematics",
		Date:              "2025-03-14",
		Rating:            4,
		LessonPlanning:    "Detailed plan.",
		TeachingMethod:    "Guided practice.",
		ClassManagement:   "Orderly.",
		StudentEngagement: "Active participation.",
		SubjectKnowledge:  "Confident.",
		BoardWork:         "Legible.",
	}
}

func acceptAll(string) bool { return true }
func declineAll(string) bool { return false }

func TestMachine_StartsOnList(t *testing.T) {
	m, _ := newMachineFixture(t)
	assert.Equal(t, StateList, m.State())
}

func TestMachine_ExternalNavigationOpensDetail(t *testing.T) {
	m, svc := newMachineFixture(t)

	saved, err := svc.Save(validReport())
	require.NoError(t, err)

	at := NewMachineAt(svc, saved.ID)
	assert.Equal(t, StateDetail, at.State())
	assert.Equal(t, saved.ID, at.Selected())

	// Unknown ids fall back to the list.
	missing := NewMachineAt(svc, "no-such-id")
	assert.Equal(t, StateList, missing.State())
	_ = m
}

func TestMachine_AddNewSaveCycle(t *testing.T) {
	m, _ := newMachineFixture(t)

	require.NoError(t, m.AddNew())
	assert.Equal(t, StateForm, m.State())

	require.NoError(t, m.Save(validReport()))
	assert.Equal(t, StateList, m.State())

	got, err := m.List()
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestMachine_ValidationFailureKeepsForm(t *testing.T) {
	m, _ := newMachineFixture(t)

	require.NoError(t, m.AddNew())
	err := m.Save(models.SupervisionReport{})
	require.Error(t, err)

	assert.Equal(t, StateForm, m.State())
	assert.Len(t, m.FieldErrors(), 11)

	got, err := m.List()
	require.NoError(t, err)
	assert.Empty(t, got, "a failed save must write nothing")

	// Fixing the form clears the errors and leaves the form.
	require.NoError(t, m.Save(validReport()))
	assert.Equal(t, StateList, m.State())
	assert.Empty(t, m.FieldErrors())
}

func TestMachine_CancelDiscardsDraft(t *testing.T) {
	m, _ := newMachineFixture(t)

	require.NoError(t, m.AddNew())
	require.NoError(t, m.Cancel())
	assert.Equal(t, StateList, m.State())

	got, err := m.List()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMachine_EditPrefillsForm(t *testing.T) {
	m, svc := newMachineFixture(t)

	saved, err := svc.Save(validReport())
	require.NoError(t, err)

	require.NoError(t, m.Edit(saved.ID))
	assert.Equal(t, StateForm, m.State())
	assert.Equal(t, saved, m.Draft())

	draft := m.Draft()
	draft.Rating = 5
	require.NoError(t, m.Save(draft))

	got, err := svc.Get(saved.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Rating)
}

func TestMachine_SelectAndBack(t *testing.T) {
	m, svc := newMachineFixture(t)

	saved, err := svc.Save(validReport())
	require.NoError(t, err)

	require.NoError(t, m.Select(saved.ID))
	assert.Equal(t, StateDetail, m.State())

	require.NoError(t, m.Back())
	assert.Equal(t, StateList, m.State())
	assert.Empty(t, m.Selected())
}

func TestMachine_SelectUnknownIDStaysOnList(t *testing.T) {
	m, _ := newMachineFixture(t)

	err := m.Select("no-such-id")
	require.Error(t, err)
	assert.Equal(t, StateList, m.State())
}

func TestMachine_DeleteNeedsConfirmation(t *testing.T) {
	m, svc := newMachineFixture(t)

	saved, err := svc.Save(validReport())
	require.NoError(t, err)

	require.NoError(t, m.Delete(saved.ID, declineAll))
	_, err = svc.Get(saved.ID)
	assert.NoError(t, err, "a declined confirmation must not delete")

	require.NoError(t, m.Delete(saved.ID, acceptAll))
	_, err = svc.Get(saved.ID)
	assert.Error(t, err)
}

func TestMachine_DeleteFromDetailReturnsToList(t *testing.T) {
	m, svc := newMachineFixture(t)

	saved, err := svc.Save(validReport())
	require.NoError(t, err)

	require.NoError(t, m.Select(saved.ID))
	require.NoError(t, m.Delete(saved.ID, acceptAll))
	assert.Equal(t, StateList, m.State())
	assert.Empty(t, m.Selected())
}

func TestMachine_RejectsBadTransitions(t *testing.T) {
	m, _ := newMachineFixture(t)

	assert.Error(t, m.Back())
	assert.Error(t, m.Cancel())
	assert.Error(t, m.Save(validReport()))

	require.NoError(t, m.AddNew())
	assert.Error(t, m.AddNew())
	assert.Error(t, m.Select("x"))
}
