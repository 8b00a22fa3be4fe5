package common

// Clamp limits v to [lo, hi]. A hi below lo is raised to lo, so an empty
// range collapses onto its lower bound instead of inverting.
func Clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	return max(lo, min(v, hi))
}
