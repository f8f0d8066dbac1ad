package entity

import (
	"time"

	"github.com/chaatgpt/till/internal/domain/enum"
)

// CSVExportRecord is one entry of the saved export history
type CSVExportRecord struct {
	Kind      enum.ExportKind `json:"type"`
	Content   string          `json:"content"`
	Timestamp time.Time       `json:"timestamp"`
	Date      string          `json:"date"`
}

// FileName is the download name of a saved export
func (r *CSVExportRecord) FileName() string {
	return r.Kind.String() + "_" + r.Timestamp.UTC().Format(DateLayout) + ".csv"
}

// ExportFile is a generated CSV ready for download
type ExportFile struct {
	Kind     enum.ExportKind `json:"kind"`
	FileName string          `json:"filename"`
	Content  string          `json:"content"`
	Rows     int             `json:"rows"`
}
