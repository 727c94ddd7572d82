package scoring

import "fmt"

// RangeError reports a score that left its declared bound. It indicates an
// upstream bug and is always propagated, never auto-corrected.
type RangeError struct {
	Label string
	Value float64
	Lower float64
	Upper float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s out of bounds: %.2f not in [%g, %g]", e.Label, e.Value, e.Lower, e.Upper)
}

// UnknownTechnologyError reports a scoring request for a technology with no
// registered rule-set. Surfaced immediately: defaulting to zero would be
// indistinguishable from "evaluated but absent".
type UnknownTechnologyError struct {
	Technology string
}

func (e *UnknownTechnologyError) Error() string {
	return fmt.Sprintf("no rule-set registered for technology %q", e.Technology)
}
