package scoring

// Validate checks that score lies within [lower, upper] inclusive and
// returns a *RangeError otherwise. It is called after every criterion score,
// sub-score, capped score and aggregate is produced; a failure here means an
// upstream bug and must propagate to the caller.
func Validate(score, lower, upper float64, label string) error {
	if score < lower || score > upper {
		return &RangeError{Label: label, Value: score, Lower: lower, Upper: upper}
	}
	return nil
}
