// Package resolver locates semantic fields in rows whose column layout is not
// fixed. Each ambiguous field is described by a FieldSpec: an index window and
// a validity predicate. The first token in scan order that satisfies the
// predicate wins; later plausible tokens are ignored.
package resolver

// FieldSpec describes where to look for one field and how to recognize it.
type FieldSpec struct {
	Name string
	// From and To are inclusive column indices. To < 0 means the last column.
	From int
	To   int
	// Reverse scans from To down to From.
	Reverse bool
	Accept  func(token string) bool
}

// Table is an ordered set of field specs.
type Table []FieldSpec

// Lookup returns the spec named name.
func (t Table) Lookup(name string) (FieldSpec, bool) {
	for _, s := range t {
		if s.Name == name {
			return s, true
		}
	}
	return FieldSpec{}, false
}

// FirstPlausible scans the window of spec over row and returns the first
// accepted token with its index. Windows are clipped to the row length.
func FirstPlausible(row []string, spec FieldSpec) (string, int, bool) {
	if len(row) == 0 || spec.Accept == nil {
		return "", -1, false
	}
	from, to := spec.From, spec.To
	if to < 0 || to >= len(row) {
		to = len(row) - 1
	}
	if from < 0 {
		from = 0
	}
	if from > to {
		return "", -1, false
	}

	if spec.Reverse {
		for i := to; i >= from; i-- {
			if spec.Accept(row[i]) {
				return row[i], i, true
			}
		}
		return "", -1, false
	}
	for i := from; i <= to; i++ {
		if spec.Accept(row[i]) {
			return row[i], i, true
		}
	}
	return "", -1, false
}
