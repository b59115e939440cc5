// Package visibility aggregates a rendered ID buffer into per-object
// coverage statistics.
package visibility

import "sort"

// Entry is one object's visibility result: its ID and the fraction of
// the frame's total pixel count it covers.
type Entry struct {
	ObjectID uint32
	Coverage float32
}

// Visibility is the full result of one compute-visibility call, sorted
// by descending coverage.
type Visibility []Entry

const emptyID = 0xFFFFFFFF

// FromIDBuffer builds a Visibility from an ID buffer (0xFFFFFFFF
// marks untouched pixels) against numObjects known object IDs.
// Coverage is computed against the buffer's total pixel count, not the
// count of non-empty pixels, so that an object visible in only a
// corner of the frame reports a small coverage fraction rather than
// being normalized away.
func FromIDBuffer(idBuffer []uint32, numObjects int) Visibility {
	counts := make([]int, numObjects)
	for _, id := range idBuffer {
		if id == emptyID {
			continue
		}
		if int(id) < numObjects {
			counts[id]++
		}
	}

	total := float32(len(idBuffer))
	v := make(Visibility, numObjects)
	for i, c := range counts {
		v[i] = Entry{ObjectID: uint32(i), Coverage: float32(c) / total}
	}

	sort.Slice(v, func(i, j int) bool {
		return v[i].Coverage > v[j].Coverage
	})
	return v
}
