// Package order arranges widget fields in the sequence a screen viewer such as
// Evince or Firefox tabs through them.
package order

import (
	"sort"

	"github.com/a3tai/pdf-tab-order/internal/pdf/extraction"
)

// Less reports whether a is visited before b: higher center first (PDF y grows
// upwards), then further left. Coordinates are compared exactly.
func Less(a, b extraction.FieldRecord) bool {
	if a.CenterY != b.CenterY {
		return a.CenterY > b.CenterY
	}
	return a.CenterX < b.CenterX
}

// Sort returns a copy of fields in tab order. The sort is stable, so fields
// with identical centers keep their input order. The input is not modified.
func Sort(fields []extraction.FieldRecord) []extraction.FieldRecord {
	sorted := make([]extraction.FieldRecord, len(fields))
	copy(sorted, fields)
	sort.SliceStable(sorted, func(i, j int) bool {
		return Less(sorted[i], sorted[j])
	})
	return sorted
}

// IsSorted reports whether fields are already in tab order
func IsSorted(fields []extraction.FieldRecord) bool {
	for i := 1; i < len(fields); i++ {
		if Less(fields[i], fields[i-1]) {
			return false
		}
	}
	return true
}
