package content

import "strconv"

// Selector addresses a section or image either by semantic key or by
// position in the list. Positional addressing exists for legacy anonymous
// sections and is fragile; keyed addressing is the normal mode.
type Selector struct {
	key     string
	index   int
	byIndex bool
}

// ByKey selects by semantic key.
func ByKey(key string) Selector {
	return Selector{key: key}
}

// ByIndex selects by list position.
func ByIndex(i int) Selector {
	return Selector{index: i, byIndex: true}
}

// Key returns the semantic key and true for keyed selectors.
func (s Selector) Key() (string, bool) {
	if s.byIndex {
		return "", false
	}
	return s.key, true
}

// Index returns the position and true for positional selectors.
func (s Selector) Index() (int, bool) {
	if !s.byIndex {
		return 0, false
	}
	return s.index, true
}

// String renders the selector the way it entered the lookup, which is also
// the form the placeholder-token suppression check compares against.
func (s Selector) String() string {
	if s.byIndex {
		return strconv.Itoa(s.index)
	}
	return s.key
}
