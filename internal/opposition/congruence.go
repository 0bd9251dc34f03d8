package opposition

type valuePair struct{ lo, hi string }

// congruentPairs holds the unordered pairs treated as equal, stored with
// lo < hi.
var congruentPairs = map[valuePair]struct{}{
	{"bilabial", "labio-dental"}: {},
	{"alveolar", "dental"}:       {},
}

// Congruent reports whether two scalar feature values count as the same
// for opposition purposes.
func Congruent(v1, v2 string) bool {
	if v1 == v2 {
		return true
	}
	if v2 < v1 {
		v1, v2 = v2, v1
	}
	_, ok := congruentPairs[valuePair{v1, v2}]
	return ok
}
