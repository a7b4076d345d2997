package lottie

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// markerKey folds a marker name for comparison. Names that differ only in
// Unicode normalization or case match.
func markerKey(name string) string {
	return cases.Fold().String(norm.NFC.String(name))
}

// Marker returns the marker called name. The lookup ignores case and
// Unicode normalization form.
func (a *Animation) Marker(name string) (Marker, error) {
	key := markerKey(name)
	for _, m := range a.Markers {
		if markerKey(m.Name) == key {
			return m, nil
		}
	}
	return Marker{}, fmt.Errorf("%w: %q", ErrUnknownMarker, name)
}

// End returns the frame the marker's range stops at, exclusive. Markers
// without a duration cover a single frame.
func (m Marker) End() float64 {
	if m.Duration <= 0 {
		return m.Time + 1
	}
	return m.Time + m.Duration
}
