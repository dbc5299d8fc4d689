// filepath: internal/models/models.go
// Package models contains the core data structures for the application.
package models

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// Info represents general information about the service.
type Info struct {
	ServiceName string    `json:"service_name"`
	Version     string    `json:"version"`
	UptimeSince time.Time `json:"uptime_since"`
}

// Teacher is an entry in the teacher directory. Reports reference
// teachers by name string, not by id: renaming a teacher leaves
// historical reports pointing at the old name. That matches how the
// records are actually kept on paper, so it stays that way.
type Teacher struct {
	ID       string   `json:"id"`
	Name     string   `json:"name" validate:"required"`
	Subjects []string `json:"subjects"`
	Classes  []string `json:"classes"`
}

// SupervisionReport records a classroom supervision visit.
type SupervisionReport struct {
	ID          string `json:"id"`
	TeacherName string `json:"teacherName" validate:"required"`
	ClassName   string `json:"className" validate:"required"`
	Subject     string `json:"subject" validate:"required"`
	Date        string `json:"date" validate:"required"`
	// Overall rating, 1 (poor) to 5 (excellent). Zero means "not rated"
	// and does not pass validation.
	Rating int `json:"rating" validate:"min=1,max=5"`

	LessonPlanning    string `json:"lessonPlanning" validate:"required"`
	TeachingMethod    string `json:"teachingMethod" validate:"required"`
	ClassManagement   string `json:"classManagement" validate:"required"`
	StudentEngagement string `json:"studentEngagement" validate:"required"`
	SubjectKnowledge  string `json:"subjectKnowledge" validate:"required"`
	BoardWork         string `json:"boardWork" validate:"required"`

	Strengths           string `json:"strengths"`
	AreasForImprovement string `json:"areasForImprovement"`
	Remarks             string `json:"remarks"`
}

// Coverage levels for checked books.
const (
	CoverageComplete = "complete"
	CoveragePartial  = "partial"
	CoverageMissing  = "missing"
)

// BookCheckingReport records a notebook/workbook inspection.
type BookCheckingReport struct {
	ID          string `json:"id"`
	TeacherName string `json:"teacherName" validate:"required"`
	ClassName   string `json:"className" validate:"required"`
	Subject     string `json:"subject" validate:"required"`
	Date        string `json:"date" validate:"required"`

	// BooksChecked is kept as a string-encoded integer; the forms have
	// always submitted it that way and the backup format depends on it.
	BooksChecked string `json:"booksChecked" validate:"required,number"`
	WorkCoverage string `json:"workCoverage" validate:"required,oneof=complete partial missing"`

	NeatnessRating     int `json:"neatnessRating" validate:"min=1,max=5"`
	CorrectionRating   int `json:"correctionRating" validate:"min=1,max=5"`
	PresentationRating int `json:"presentationRating" validate:"min=1,max=5"`

	QualityOfWork string `json:"qualityOfWork"`
	CommonErrors  string `json:"commonErrors"`
	Suggestions   string `json:"suggestions"`
	Remarks       string `json:"remarks"`
}

// WorkCoverageReport tracks syllabus progress for a class and subject.
type WorkCoverageReport struct {
	ID          string `json:"id"`
	TeacherName string `json:"teacherName" validate:"required"`
	ClassName   string `json:"className" validate:"required"`
	Subject     string `json:"subject" validate:"required"`
	Date        string `json:"date" validate:"required"`

	PlannedTopics   string `json:"plannedTopics" validate:"required"`
	CompletedTopics string `json:"completedTopics" validate:"required"`
	PendingTopics   string `json:"pendingTopics"`
	Remarks         string `json:"remarks"`

	// Signatures are embedded raster images (base64 data URIs), or empty.
	TeacherSignature    string `json:"teacherSignature"`
	SupervisorSignature string `json:"supervisorSignature"`
}

// NewID generates a caller-side record id. ULIDs are lexicographically
// sortable by creation time, which keeps the "id is a timestamp"
// property of the historical data.
func NewID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}
