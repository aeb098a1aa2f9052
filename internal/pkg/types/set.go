package types

// Set is a generic hash set for comparable types backed by map[T]struct{}.
//
// The zero value is not usable; create sets with NewSet. Sets are mutable and
// not safe for concurrent use.
type Set[T comparable] map[T]struct{}

// NewSet creates an empty Set.
func NewSet[T comparable]() Set[T] {
	return make(Set[T])
}

// Insert adds val to the set and reports whether it was absent before the call,
// letting the first occurrence of a value through and rejecting the repeats.
func (s Set[T]) Insert(val T) bool {
	if _, ok := s[val]; ok {
		return false
	}

	s[val] = struct{}{}
	return true
}
