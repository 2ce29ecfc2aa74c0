// Package relation joins the film roster with people filmographies into a
// movie to people table and renders it for clients.
package relation

import "strings"

// Separator joins person names in the rendered people field.
const Separator = ","

// Entry is one movie and the people associated with it, in first-seen order.
type Entry struct {
	Title  string
	People []string
}

// Table maps movie titles to the people appearing in them. Titles iterate in
// insertion order. A title with no people is present with an empty list.
// A Table is not safe for concurrent use.
type Table struct {
	entries []Entry
	index   map[string]int
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{index: make(map[string]int)}
}

// Len returns the number of titles.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Has reports whether title is a key.
func (t *Table) Has(title string) bool {
	if t == nil {
		return false
	}
	_, ok := t.index[title]
	return ok
}

// Titles returns the keys in insertion order.
func (t *Table) Titles() []string {
	if t == nil {
		return nil
	}
	titles := make([]string, len(t.entries))
	for i, e := range t.entries {
		titles[i] = e.Title
	}
	return titles
}

// Members returns the people associated with title.
// The second result is false if title is not a key.
func (t *Table) Members(title string) ([]string, bool) {
	if t == nil {
		return nil, false
	}
	i, ok := t.index[title]
	if !ok {
		return nil, false
	}
	return append([]string(nil), t.entries[i].People...), true
}

// People returns the comma-joined people for title, or "" if it has none.
func (t *Table) People(title string) string {
	people, _ := t.Members(title)
	return strings.Join(people, Separator)
}

// Entries returns a copy of every entry in insertion order.
func (t *Table) Entries() []Entry {
	if t == nil {
		return nil
	}
	out := make([]Entry, len(t.entries))
	for i, e := range t.entries {
		out[i] = Entry{Title: e.Title, People: append([]string(nil), e.People...)}
	}
	return out
}

// Clone returns a deep copy of t.
func (t *Table) Clone() *Table {
	c := NewTable()
	if t == nil {
		return c
	}
	c.entries = t.Entries()
	for title, i := range t.index {
		c.index[title] = i
	}
	return c
}

// Merge upserts every entry of other into t. Existing titles keep their
// position and take other's people; new titles are appended. Nothing is
// removed.
func (t *Table) Merge(other *Table) {
	t.init()
	for _, e := range other.Entries() {
		if i, ok := t.index[e.Title]; ok {
			t.entries[i].People = e.People
			continue
		}
		t.index[e.Title] = len(t.entries)
		t.entries = append(t.entries, e)
	}
}

// ensure adds title with no people if it is not already a key.
func (t *Table) ensure(title string) {
	t.init()
	if _, ok := t.index[title]; ok {
		return
	}
	t.index[title] = len(t.entries)
	t.entries = append(t.entries, Entry{Title: title, People: []string{}})
}

// add associates person with title. Unknown titles and people already
// present are ignored. Reports whether title is a key.
func (t *Table) add(title, person string) bool {
	i, ok := t.index[title]
	if !ok {
		return false
	}
	for _, p := range t.entries[i].People {
		if p == person {
			return true
		}
	}
	t.entries[i].People = append(t.entries[i].People, person)
	return true
}

func (t *Table) init() {
	if t.index == nil {
		t.index = make(map[string]int)
	}
}
