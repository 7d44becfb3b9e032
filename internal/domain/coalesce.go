package domain

// CoalesceStr returns the first non-empty string from vals.
func CoalesceStr(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// CoalesceInt returns the first positive int from vals, or the fallback.
func CoalesceInt(fallback int, vals ...int) int {
	for _, v := range vals {
		if v > 0 {
			return v
		}
	}
	return fallback
}

// ClampInt restricts v to the closed interval [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
