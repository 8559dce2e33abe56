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

// NonZeroOr returns v unless it is zero, in which case it returns fallback.
func NonZeroOr(v, fallback float64) float64 {
	if v != 0 {
		return v
	}
	return fallback
}
