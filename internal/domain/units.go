package domain

// DefaultKcfsThreshold is the magnitude below which a basin project flow is
// assumed to be in kcfs rather than cfs.
const DefaultKcfsThreshold = 200

// FlowUnitPolicy decides whether a raw flow value needs unit rescaling before
// publication. It returns the possibly corrected value and whether a
// correction was applied, so callers can log and count every correction.
type FlowUnitPolicy func(v float64) (corrected float64, applied bool)

// KcfsThreshold returns the unit heuristic for the basin project page: flows
// strictly below limit are assumed to be thousands of cubic feet per second
// and are scaled to cfs. The page carries no unit marker, so this is a guess;
// a legitimate sub-limit cfs release would be misclassified. See the package
// documentation for why the heuristic is kept anyway.
func KcfsThreshold(limit float64) FlowUnitPolicy {
	return func(v float64) (float64, bool) {
		if v < limit {
			return v * 1000, true
		}
		return v, false
	}
}
