package domain

import "time"

// ProjectReading is one row of reservoir data for a single project.
// Optional measurements are pointers: nil means the upstream report did not
// provide a usable value, and serializes as JSON null for API consumers.
type ProjectReading struct {
	Basin       string   `json:"basin"`
	Project     string   `json:"project"`
	TodayPool   *float64 `json:"todayPool"`
	Deviation   *float64 `json:"deviation"`
	Change24h   *float64 `json:"change24h"`
	Precip24h   *float64 `json:"precip24h"`
	Inflow      *float64 `json:"inflow"`
	Outflow     *float64 `json:"outflow"`
	PercentUtil *float64 `json:"percentUtil"`
}

// HasData reports whether at least one measurement is present. Parsers drop
// readings with no measurements instead of publishing empty rows.
func (r ProjectReading) HasData() bool {
	fields := []*float64{
		r.TodayPool, r.Deviation, r.Change24h, r.Precip24h,
		r.Inflow, r.Outflow, r.PercentUtil,
	}
	for _, f := range fields {
		if f != nil {
			return true
		}
	}
	return false
}

// Snapshot is one complete, internally consistent set of readings.
// CapturedAt drives cache freshness and is never shown to consumers;
// DisplayDate is the coarser calendar date that is. Both are stamped at
// normalization time, never taken from the upstream report's own timestamp.
type Snapshot struct {
	Lakes       []ProjectReading `json:"lakes"`
	CapturedAt  time.Time        `json:"capturedAt"`
	DisplayDate string           `json:"displayDate"`
}

// Float returns a pointer to v. Convenience for building readings in tests
// and fixtures.
func Float(v float64) *float64 { return &v }
