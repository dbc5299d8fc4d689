// filepath: internal/flow/flow.go
// Package flow drives the per-report-kind screen cycle: a filtered
// list, a create/edit form, and a read-only detail view. One Machine
// instance backs one report kind; the kinds share the logic through
// the generic parameter instead of three copies.
package flow

import (
	"errors"
	"fmt"

	"teachermonitor/internal/models"
	"teachermonitor/internal/services"
)

// State names the screen currently shown.
type State string

const (
	StateList   State = "list"
	StateForm   State = "form"
	StateDetail State = "detail"
)

// ConfirmFunc asks the user to confirm a destructive action. Returning
// false cancels it with no effect.
type ConfirmFunc func(prompt string) bool

// Machine is the screen state for one report kind. It is driven from a
// single goroutine (one user action at a time), so it carries no locks.
type Machine[R any] struct {
	svc *services.ReportService[R]

	state    State
	query    models.ListQuery
	selected string

	draft       R
	editing     bool
	fieldErrors []models.FieldError
}

// NewMachine starts on the list screen.
func NewMachine[R any](svc *services.ReportService[R]) *Machine[R] {
	return &Machine[R]{svc: svc, state: StateList}
}

// NewMachineAt starts on the detail screen for id, the entry point for
// an external navigation request naming a specific report. An unknown
// id falls back to the list.
func NewMachineAt[R any](svc *services.ReportService[R], id string) *Machine[R] {
	m := NewMachine(svc)
	if _, err := svc.Get(id); err == nil {
		m.state = StateDetail
		m.selected = id
	}
	return m
}

func (m *Machine[R]) State() State { return m.state }

// Selected returns the id shown on the detail screen, empty elsewhere.
func (m *Machine[R]) Selected() string { return m.selected }

// Draft returns the form contents while on the form screen.
func (m *Machine[R]) Draft() R { return m.draft }

// FieldErrors returns the validation failures of the last save attempt.
func (m *Machine[R]) FieldErrors() []models.FieldError { return m.fieldErrors }

// SetQuery updates the list filter/sort. It applies on the next List
// call and does not change the screen.
func (m *Machine[R]) SetQuery(q models.ListQuery) { m.query = q }

func (m *Machine[R]) Query() models.ListQuery { return m.query }

// List returns the reports for the current filter, filtered first and
// sorted second.
func (m *Machine[R]) List() ([]R, error) {
	return m.svc.List(m.query)
}

// AddNew opens a blank form. Any prior selection is cleared.
func (m *Machine[R]) AddNew() error {
	if m.state != StateList {
		return m.badTransition("add new")
	}
	var blank R
	m.draft = blank
	m.editing = false
	m.selected = ""
	m.fieldErrors = nil
	m.state = StateForm
	return nil
}

// Edit opens the form pre-filled with the stored report.
func (m *Machine[R]) Edit(id string) error {
	if m.state != StateList && m.state != StateDetail {
		return m.badTransition("edit")
	}
	r, err := m.svc.Get(id)
	if err != nil {
		return err
	}
	m.draft = r
	m.editing = true
	m.selected = ""
	m.fieldErrors = nil
	m.state = StateForm
	return nil
}

// Select opens the detail screen for id.
func (m *Machine[R]) Select(id string) error {
	if m.state != StateList {
		return m.badTransition("select")
	}
	if _, err := m.svc.Get(id); err != nil {
		return err
	}
	m.selected = id
	m.state = StateDetail
	return nil
}

// Back leaves the detail screen.
func (m *Machine[R]) Back() error {
	if m.state != StateDetail {
		return m.badTransition("back")
	}
	m.selected = ""
	m.state = StateList
	return nil
}

// Cancel discards the form without writing.
func (m *Machine[R]) Cancel() error {
	if m.state != StateForm {
		return m.badTransition("cancel")
	}
	var blank R
	m.draft = blank
	m.fieldErrors = nil
	m.state = StateList
	return nil
}

// Save validates and upserts the form contents. A validation failure
// keeps the form open with every missing field reported at once and
// writes nothing; any other failure also keeps the form so the input
// is not lost.
func (m *Machine[R]) Save(r R) error {
	if m.state != StateForm {
		return m.badTransition("save")
	}
	m.draft = r

	saved, err := m.svc.Save(r)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			m.fieldErrors = verr.Fields
		}
		return err
	}

	m.draft = saved
	m.fieldErrors = nil
	m.state = StateList
	return nil
}

// Delete removes the report after interactive confirmation. Declining
// leaves everything untouched. There is no undo.
func (m *Machine[R]) Delete(id string, confirm ConfirmFunc) error {
	if !confirm(fmt.Sprintf("Delete %s %s? This cannot be undone.", m.svc.Kind.DisplayName, id)) {
		return nil
	}
	if err := m.svc.Delete(id); err != nil {
		return err
	}
	if m.selected == id {
		m.selected = ""
		m.state = StateList
	}
	return nil
}

func (m *Machine[R]) badTransition(action string) error {
	return fmt.Errorf("cannot %s from the %s screen", action, m.state)
}
