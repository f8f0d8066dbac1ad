package enum

import (
	"encoding/json"
	"strings"
)

// ReportPeriod selects the window for product analytics
type ReportPeriod int

const (
	ReportPeriodDaily  ReportPeriod = 0
	ReportPeriodWeekly ReportPeriod = 1
)

func (p ReportPeriod) String() string {
	names := [...]string{"daily", "weekly"}
	if int(p) < 0 || int(p) >= len(names) {
		return "daily"
	}
	return names[p]
}

// Label is the capitalised name used in CSV exports
func (p ReportPeriod) Label() string {
	if p == ReportPeriodWeekly {
		return "Weekly"
	}
	return "Daily"
}

// ParseReportPeriod accepts "daily" or "weekly", case-insensitively
func ParseReportPeriod(s string) (ReportPeriod, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "daily", "":
		return ReportPeriodDaily, true
	case "weekly":
		return ReportPeriodWeekly, true
	}
	return ReportPeriodDaily, false
}

func (p ReportPeriod) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *ReportPeriod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*p, _ = ParseReportPeriod(str)
	return nil
}
