package relation

// Credit is a person and the titles of the films they appear in.
type Credit struct {
	Person string
	Titles []string
}

// Build joins roster and credits. Every roster title becomes a key, in
// roster order, and each credited person is added to the titles of their
// films that are in the roster.
func Build(roster []string, credits []Credit) *Table {
	t := NewTable()
	for _, title := range roster {
		t.ensure(title)
	}
	for _, c := range credits {
		for _, title := range c.Titles {
			t.add(title, c.Person)
		}
	}
	return t
}

// Unmatched returns the credited titles that are not in roster, deduplicated
// in first-seen order.
func Unmatched(roster []string, credits []Credit) []string {
	known := make(map[string]bool, len(roster))
	for _, title := range roster {
		known[title] = true
	}

	var out []string
	seen := make(map[string]bool)
	for _, c := range credits {
		for _, title := range c.Titles {
			if known[title] || seen[title] {
				continue
			}
			seen[title] = true
			out = append(out, title)
		}
	}
	return out
}
