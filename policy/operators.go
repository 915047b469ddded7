package policy

// And passes when every predicate passes.
func And(preds ...Predicate) Predicate {
	return func(r Request) bool {
		for _, p := range preds {
			if !p(r) {
				return false
			}
		}
		return true
	}
}

// Or passes when any predicate passes.
func Or(preds ...Predicate) Predicate {
	return func(r Request) bool {
		for _, p := range preds {
			if p(r) {
				return true
			}
		}
		return false
	}
}

// Not inverts a predicate.
func Not(p Predicate) Predicate {
	return func(r Request) bool {
		return !p(r)
	}
}
