// Package domain models US Army Corps of Engineers (USACE) reservoir report data.
//
// # Data Sources
//
// Readings come from two water-control pages run by different USACE districts,
// neither of which is versioned or contractually stable:
//
//	Louisville District lake report (lkreport.html):
//	  One HTML table, one row per project, grouped by basin. The basin name is
//	  printed only on the first row of each group and implied for the rows
//	  that follow ("fill-down"). Data rows carry at least 13 cells; anything
//	  shorter is a decorative or partial row and is dropped rather than
//	  guessed at. Columns are positional: 1 = project, 5 = today's pool
//	  elevation (ft), 6 = deviation from guide curve, 7 = 24-hour change,
//	  8 = 24-hour precipitation, 9 = inflow (cfs), 10 = outflow (cfs),
//	  12 = percent of flood storage utilized.
//
//	Nashville District basin project page (Wolf Creek / Lake Cumberland):
//	  Labels and values are intermixed across unpredictable tag boundaries, so
//	  column extraction is unreliable. Values are instead located by proximity:
//	  the first number within a bounded window after a known label in the
//	  flattened page text. Label spellings vary between revisions
//	  ("Pool Elevation", "Lake Elevation", "Elevation").
//
// # Flow Unit Heuristic
//
// The basin project page reports flows with no unit marker. Some revisions use
// cfs, others thousands of cfs (kcfs). Heuristic: values below 200 are assumed
// to be kcfs and scaled by 1000, because Wolf Creek releases below 200 cfs do
// not occur in practice while sub-200 kcfs figures are routine. This is a
// guess, not a guarantee — a legitimate small cfs value would be misclassified.
// Corrections are therefore logged and counted so consumers can audit them.
// See [FlowUnitPolicy] and [KcfsThreshold].
//
// # Defensive Parsing
//
// Every field-level extraction returns nil on failure instead of an error, and
// row-level parsing skips malformed rows instead of aborting: one bad cell
// must never poison the rest of the dataset. Only whole-source failures (page
// unreachable, expected table missing) surface as errors.
package domain
