package domain

import "strings"

// MergeReadings reconciles the tabular lake report with the single-project
// basin page. The tabular report is the more structurally reliable source, so
// its values always win: when a project matches (case-insensitive, trimmed),
// only absent pool, inflow, and outflow fields are filled from the secondary
// reading, and every other field is left untouched. When no project matches,
// the secondary reading is appended. A nil secondary returns primary as is.
func MergeReadings(primary []ProjectReading, secondary *ProjectReading) []ProjectReading {
	if secondary == nil {
		return primary
	}
	name := strings.ToLower(strings.TrimSpace(secondary.Project))
	for i := range primary {
		if strings.ToLower(strings.TrimSpace(primary[i].Project)) != name {
			continue
		}
		if primary[i].TodayPool == nil {
			primary[i].TodayPool = secondary.TodayPool
		}
		if primary[i].Inflow == nil {
			primary[i].Inflow = secondary.Inflow
		}
		if primary[i].Outflow == nil {
			primary[i].Outflow = secondary.Outflow
		}
		return primary
	}
	return append(primary, *secondary)
}
