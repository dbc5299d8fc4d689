// filepath: internal/services/records.go
package services

import (
	"encoding/json"
	"fmt"

	"teachermonitor/internal/models"
	"teachermonitor/internal/repository"
)

// docRecord marshals v and pairs it with the table's indexed fields.
func docRecord(id string, index map[string]string, v interface{}) (repository.DocRecord, error) {
	doc, err := json.Marshal(v)
	if err != nil {
		return repository.DocRecord{}, fmt.Errorf("failed to encode record: %w", err)
	}
	return repository.DocRecord{ID: id, Index: index, Doc: doc}, nil
}

func teacherRecord(t models.Teacher) (repository.DocRecord, error) {
	return docRecord(t.ID, map[string]string{"name": t.Name}, t)
}

func settingRecord(s models.Setting) (repository.DocRecord, error) {
	return docRecord(s.Key, nil, s.Value)
}

// decodeAll unmarshals a table scan into typed records.
func decodeAll[T any](recs []repository.DocRecord) ([]T, error) {
	out := make([]T, 0, len(recs))
	for _, rec := range recs {
		var v T
		if err := json.Unmarshal(rec.Doc, &v); err != nil {
			return nil, fmt.Errorf("corrupt document %s: %w", rec.ID, err)
		}
		out = append(out, v)
	}
	return out, nil
}
