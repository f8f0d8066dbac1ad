package enum

import (
	"encoding/json"
)

// ExportKind tags a CSV export in the export history
type ExportKind string

const (
	ExportKindBills         ExportKind = "bills"
	ExportKindEOD           ExportKind = "eod"
	ExportKindProductReport ExportKind = "product_report"
	ExportKindAllData       ExportKind = "all_data"
	ExportKindAutoSaveBills ExportKind = "auto_save_bills"
)

func (k ExportKind) String() string {
	return string(k)
}

// FilePrefix is the download file name prefix. The EOD summary is tagged
// "eod" in the history but downloads as eod_report_<date>.csv.
func (k ExportKind) FilePrefix() string {
	if k == ExportKindEOD {
		return "eod_report"
	}
	return string(k)
}

// ParseExportKind accepts a history tag or a file prefix
func ParseExportKind(s string) (ExportKind, bool) {
	switch s {
	case "bills":
		return ExportKindBills, true
	case "eod", "eod_report":
		return ExportKindEOD, true
	case "product_report":
		return ExportKindProductReport, true
	case "all_data":
		return ExportKindAllData, true
	case "auto_save_bills":
		return ExportKindAutoSaveBills, true
	}
	return "", false
}

func (k ExportKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(k))
}

func (k *ExportKind) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*k = ExportKind(str)
	return nil
}
