// filepath: internal/repository/tables.go
package repository

import (
	"encoding/json"

	"teachermonitor/internal/shared"
)

// Table names. The schema is declared in the embedded migrations; this
// registry mirrors it so queries can be built without string literals
// scattered around.
const (
	TableTeachers            = "teachers"
	TableSupervisionReports  = "supervision_reports"
	TableBookCheckingReports = "book_checking_reports"
	TableWorkCoverageReports = "work_coverage_reports"
	TableSettings            = "settings"
)

// AllTables in creation order; Clear-all and backup import walk this.
var AllTables = []string{
	TableTeachers,
	TableSupervisionReports,
	TableBookCheckingReports,
	TableWorkCoverageReports,
	TableSettings,
}

// DocRecord is one row of a document table: the key, the values of the
// table's declared indexed fields, and the full JSON document.
type DocRecord struct {
	ID    string
	Index map[string]string
	Doc   json.RawMessage
}

// tableSpec describes the structural schema of one table.
type tableSpec struct {
	keyColumn    string
	indexColumns []string
}

var tableSpecs = map[string]tableSpec{
	TableTeachers:            {keyColumn: "id", indexColumns: []string{"name"}},
	TableSupervisionReports:  {keyColumn: "id", indexColumns: []string{"teacher_name", "report_date"}},
	TableBookCheckingReports: {keyColumn: "id", indexColumns: []string{"teacher_name", "report_date"}},
	TableWorkCoverageReports: {keyColumn: "id", indexColumns: []string{"teacher_name", "report_date"}},
	TableSettings:            {keyColumn: "key", indexColumns: nil},
}

func specFor(table string) (tableSpec, error) {
	spec, ok := tableSpecs[table]
	if !ok {
		return tableSpec{}, shared.ErrUnknownTable
	}
	return spec, nil
}

// columnsFor returns the full column list of a table in select order.
func columnsFor(spec tableSpec) []string {
	cols := []string{spec.keyColumn}
	cols = append(cols, spec.indexColumns...)
	return append(cols, "doc")
}
