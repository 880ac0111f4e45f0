package consistent

// A token is one virtual position on the ring, owned by a member.
type token struct {
	member   string
	position uint64
}

// tokens is the ring's position set, ordered by position with ties broken
// by member name. Must be sorted at all times.
type tokens []token

func (ts tokens) Len() int      { return len(ts) }
func (ts tokens) Swap(i, j int) { ts[i], ts[j] = ts[j], ts[i] }

func (ts tokens) Less(i, j int) bool {
	if ts[i].position == ts[j].position {
		return ts[i].member < ts[j].member
	}
	return ts[i].position < ts[j].position
}
