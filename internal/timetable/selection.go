package timetable

// SelectionPolicy names the tie-break rule used when several rooms remain
// available. The exact rule is configuration rather than load-bearing logic.
type SelectionPolicy string

const (
	// SelectFirst picks the lexicographically first available room.
	SelectFirst SelectionPolicy = "first"
	// SelectRandom picks a uniformly random available room.
	SelectRandom SelectionPolicy = "random"
)

// Valid reports whether the policy is one of the supported rules.
func (p SelectionPolicy) Valid() bool {
	return p == SelectFirst || p == SelectRandom
}

// SelectRoom applies the policy to a sorted available set. The intn function
// supplies randomness for SelectRandom; a nil intn degrades to SelectFirst so
// selection always stays inside the available set. Returns false when the set
// is empty.
func SelectRoom(available []string, policy SelectionPolicy, intn func(n int) int) (string, bool) {
	if len(available) == 0 {
		return "", false
	}

	if policy == SelectRandom && intn != nil {
		if idx := intn(len(available)); idx >= 0 && idx < len(available) {
			return available[idx], true
		}
	}

	return available[0], true
}
