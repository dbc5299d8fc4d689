// filepath: internal/services/kinds.go
package services

import (
	"fmt"

	"teachermonitor/internal/models"
	"teachermonitor/internal/render"
	"teachermonitor/internal/repository"
)

// ReportMeta is the common slice of any report kind: the fields the
// list views filter and sort on, and the file names are built from.
type ReportMeta struct {
	ID          string
	TeacherName string
	Subject     string
	Date        string
}

// Branding is the school identity block stamped onto every report page.
type Branding struct {
	SchoolName    string
	SchoolAddress string
	LogoURI       string
	ReportFooter  string
}

// ReportKind describes one report family: where it is stored, how its
// files are named, and how it lays out on a page. The three kinds share
// every behavior through this descriptor instead of three copies of the
// module.
type ReportKind[R any] struct {
	Table       string
	DisplayName string
	// FilePrefix heads single-export file names: <FilePrefix>_<teacher>_<date>.pdf
	FilePrefix string
	// BulkPrefix heads bulk file names: <BulkPrefix>_Reports_Bulk_Export_<date>.pdf
	BulkPrefix string

	Meta   func(R) ReportMeta
	WithID func(R, string) R
	Layout func(R, Branding) render.Region
}

// record builds the storable row for a report: indexed fields extracted
// from the document, document marshalled whole.
func (k ReportKind[R]) record(r R) (repository.DocRecord, error) {
	meta := k.Meta(r)
	return docRecord(meta.ID, map[string]string{
		"teacher_name": meta.TeacherName,
		"report_date":  meta.Date,
	}, r)
}

func brandingHeader(b Branding) []string {
	header := make([]string, 0, 2)
	if b.SchoolName != "" {
		header = append(header, b.SchoolName)
	}
	if b.SchoolAddress != "" {
		header = append(header, b.SchoolAddress)
	}
	return header
}

func generalSection(meta ReportMeta, className string) render.Section {
	return render.Section{Heading: "General", Rows: []render.Row{
		{Label: "Teacher", Value: meta.TeacherName},
		{Label: "Class", Value: className},
		{Label: "Subject", Value: meta.Subject},
		{Label: "Date", Value: meta.Date},
	}}
}

func ratingValue(n int) string {
	return fmt.Sprintf("%d / 5", n)
}

// SupervisionKind describes the classroom supervision reports.
func SupervisionKind() ReportKind[models.SupervisionReport] {
	return ReportKind[models.SupervisionReport]{
		Table:       repository.TableSupervisionReports,
		DisplayName: "Supervision Report",
		FilePrefix:  "Supervision_Report",
		BulkPrefix:  "Supervision",
		Meta: func(r models.SupervisionReport) ReportMeta {
			return ReportMeta{ID: r.ID, TeacherName: r.TeacherName, Subject: r.Subject, Date: r.Date}
		},
		WithID: func(r models.SupervisionReport, id string) models.SupervisionReport {
			r.ID = id
			return r
		},
		Layout: func(r models.SupervisionReport, b Branding) render.Region {
			return render.Region{
				Title:   "Classroom Supervision Report",
				Header:  brandingHeader(b),
				LogoURI: b.LogoURI,
				Sections: []render.Section{
					generalSection(ReportMeta{TeacherName: r.TeacherName, Subject: r.Subject, Date: r.Date}, r.ClassName),
					{Heading: "Observation", Rows: []render.Row{
						{Label: "Overall rating", Value: ratingValue(r.Rating)},
						{Label: "Lesson planning", Value: r.LessonPlanning},
						{Label: "Teaching method", Value: r.TeachingMethod},
						{Label: "Class management", Value: r.ClassManagement},
						{Label: "Student engagement", Value: r.StudentEngagement},
						{Label: "Subject knowledge", Value: r.SubjectKnowledge},
						{Label: "Board work", Value: r.BoardWork},
					}},
					{Heading: "Assessment", Rows: []render.Row{
						{Label: "Strengths", Value: r.Strengths},
						{Label: "Areas for improvement", Value: r.AreasForImprovement},
						{Label: "Remarks", Value: r.Remarks},
					}},
				},
				Footer: b.ReportFooter,
			}
		},
	}
}

// BookCheckingKind describes the notebook/workbook inspection reports.
func BookCheckingKind() ReportKind[models.BookCheckingReport] {
	return ReportKind[models.BookCheckingReport]{
		Table:       repository.TableBookCheckingReports,
		DisplayName: "Book Checking Report",
		FilePrefix:  "Book_Checking",
		BulkPrefix:  "Book_Checking",
		Meta: func(r models.BookCheckingReport) ReportMeta {
			return ReportMeta{ID: r.ID, TeacherName: r.TeacherName, Subject: r.Subject, Date: r.Date}
		},
		WithID: func(r models.BookCheckingReport, id string) models.BookCheckingReport {
			r.ID = id
			return r
		},
		Layout: func(r models.BookCheckingReport, b Branding) render.Region {
			return render.Region{
				Title:   "Book Checking Report",
				Header:  brandingHeader(b),
				LogoURI: b.LogoURI,
				Sections: []render.Section{
					generalSection(ReportMeta{TeacherName: r.TeacherName, Subject: r.Subject, Date: r.Date}, r.ClassName),
					{Heading: "Inspection", Rows: []render.Row{
						{Label: "Books checked", Value: r.BooksChecked},
						{Label: "Work coverage", Value: r.WorkCoverage},
						{Label: "Neatness", Value: ratingValue(r.NeatnessRating)},
						{Label: "Correction", Value: ratingValue(r.CorrectionRating)},
						{Label: "Presentation", Value: ratingValue(r.PresentationRating)},
					}},
					{Heading: "Findings", Rows: []render.Row{
						{Label: "Quality of work", Value: r.QualityOfWork},
						{Label: "Common errors", Value: r.CommonErrors},
						{Label: "Suggestions", Value: r.Suggestions},
						{Label: "Remarks", Value: r.Remarks},
					}},
				},
				Footer: b.ReportFooter,
			}
		},
	}
}

// WorkCoverageKind describes the syllabus coverage reports.
func WorkCoverageKind() ReportKind[models.WorkCoverageReport] {
	return ReportKind[models.WorkCoverageReport]{
		Table:       repository.TableWorkCoverageReports,
		DisplayName: "Work Coverage Report",
		FilePrefix:  "Work_Coverage",
		BulkPrefix:  "Work_Coverage",
		Meta: func(r models.WorkCoverageReport) ReportMeta {
			return ReportMeta{ID: r.ID, TeacherName: r.TeacherName, Subject: r.Subject, Date: r.Date}
		},
		WithID: func(r models.WorkCoverageReport, id string) models.WorkCoverageReport {
			r.ID = id
			return r
		},
		Layout: func(r models.WorkCoverageReport, b Branding) render.Region {
			return render.Region{
				Title:   "Syllabus Work Coverage Report",
				Header:  brandingHeader(b),
				LogoURI: b.LogoURI,
				Sections: []render.Section{
					generalSection(ReportMeta{TeacherName: r.TeacherName, Subject: r.Subject, Date: r.Date}, r.ClassName),
					{Heading: "Coverage", Rows: []render.Row{
						{Label: "Planned topics", Value: r.PlannedTopics},
						{Label: "Completed topics", Value: r.CompletedTopics},
						{Label: "Pending topics", Value: r.PendingTopics},
						{Label: "Remarks", Value: r.Remarks},
					}},
				},
				Signatures: []render.Signature{
					{Caption: "Teacher", ImageURI: r.TeacherSignature},
					{Caption: "Supervisor", ImageURI: r.SupervisorSignature},
				},
				Footer: b.ReportFooter,
			}
		},
	}
}
