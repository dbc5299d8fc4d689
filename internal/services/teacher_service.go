// filepath: internal/services/teacher_service.go
package services

import (
	"sort"
	"strings"

	"teachermonitor/internal/models"
	"teachermonitor/internal/repository"
)

type teacherService struct {
	store repository.Store
}

// NewTeacherService creates the teacher directory service.
func NewTeacherService(store repository.Store) TeacherService {
	return &teacherService{store: store}
}

func (s *teacherService) GetTeacher(id string) (models.Teacher, error) {
	rec, err := s.store.Get(repository.TableTeachers, id)
	if err != nil {
		return models.Teacher{}, err
	}
	teachers, err := decodeAll[models.Teacher]([]repository.DocRecord{rec})
	if err != nil {
		return models.Teacher{}, err
	}
	return teachers[0], nil
}

func (s *teacherService) GetTeachers() ([]models.Teacher, error) {
	recs, err := s.store.ToArray(repository.TableTeachers)
	if err != nil {
		return nil, err
	}
	teachers, err := decodeAll[models.Teacher](recs)
	if err != nil {
		return nil, err
	}
	sort.Slice(teachers, func(i, j int) bool {
		return strings.ToLower(teachers[i].Name) < strings.ToLower(teachers[j].Name)
	})
	return teachers, nil
}

// SaveTeacher upserts the teacher, assigning an id on first save. Name
// uniqueness is deliberately not enforced; the directory mirrors
// whatever the office records say.
func (s *teacherService) SaveTeacher(t models.Teacher) (models.Teacher, error) {
	if err := checkStruct(t); err != nil {
		return models.Teacher{}, err
	}
	if t.ID == "" {
		t.ID = models.NewID()
	}

	rec, err := teacherRecord(t)
	if err != nil {
		return models.Teacher{}, err
	}
	if err := s.store.Put(repository.TableTeachers, rec); err != nil {
		return models.Teacher{}, err
	}
	return t, nil
}

func (s *teacherService) DeleteTeacher(id string) error {
	return s.store.Delete(repository.TableTeachers, id)
}
