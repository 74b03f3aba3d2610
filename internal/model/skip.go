package model

// Skip removes every item whose name is in names, at any depth. A removed
// module's children go with it. Applying the same names twice is a no-op.
func (m *Module) Skip(names []string) {
	if len(names) == 0 {
		return
	}
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	m.skip(set)
}

func (m *Module) skip(set map[string]struct{}) {
	var kept []Item
	for _, it := range m.Items {
		if _, drop := set[it.ItemName()]; drop {
			continue
		}
		if sub, ok := it.(*Module); ok {
			sub.skip(set)
		}
		kept = append(kept, it)
	}
	m.Items = kept
}
