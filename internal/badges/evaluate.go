package badges

// Evaluate returns the ids of badges in catalog that s satisfies and that
// are not in earned, in catalog order.
//
// Every badge is judged on its own; a threshold of zero always holds so
// enrollment-time badges unlock on an empty snapshot. Evaluate reads its
// inputs only and performs no I/O.
func Evaluate(s Snapshot, earned EarnedSet, catalog []Badge) []string {
	var newly []string
	for _, b := range catalog {
		if earned.Has(b.ID) || b.Unlock == nil {
			continue
		}
		if b.Unlock.satisfiedBy(s) {
			newly = append(newly, b.ID)
		}
	}
	return newly
}

// Status is a badge's standing for one snapshot, used by listings.
type Status struct {
	Badge    Badge
	Unlocked bool
	Current  int64
	Target   int64
}

// Progress reports how far s is from unlocking b. Current is capped at
// Target so listings never show more than 100%.
func Progress(b Badge, s Snapshot) Status {
	st := Status{Badge: b}
	if b.Unlock == nil {
		return st
	}
	st.Target = b.Unlock.Value()
	st.Current = b.Unlock.Current(s)
	if st.Current > st.Target {
		st.Current = st.Target
	}
	st.Unlocked = b.Unlock.satisfiedBy(s)
	return st
}
