// Package vocabulary provides vocabulary entries, lessons and the sources they are read from.
package vocabulary

// Entry is a single vocabulary item.
type Entry struct {
	Source          string `yaml:"source" json:"source" db:"source" validate:"required"`
	Transliteration string `yaml:"transliteration" json:"transliteration" db:"transliteration"`
	Translation     string `yaml:"translation" json:"translation" db:"translation"`
	Optional        bool   `yaml:"optional,omitempty" json:"optional,omitempty" db:"optional"`
}

// Key identifies an entry for deduplication. Two entries with the same
// source and transliteration are the same word even when translations differ.
type Key struct {
	Source          string
	Transliteration string
}

func (e Entry) Key() Key {
	return Key{Source: e.Source, Transliteration: e.Transliteration}
}

// Set is an insertion-ordered set of entries deduplicated by Key.
// The zero value is not usable; create one with NewSet.
type Set struct {
	index   map[Key]int
	entries []Entry
}

func NewSet(entries ...Entry) *Set {
	s := &Set{
		index: make(map[Key]int, len(entries)),
	}
	for _, e := range entries {
		s.Add(e)
	}
	return s
}

// Add appends the entry unless an entry with the same key already exists.
// It reports whether the entry was added.
func (s *Set) Add(e Entry) bool {
	if _, ok := s.index[e.Key()]; ok {
		return false
	}
	s.index[e.Key()] = len(s.entries)
	s.entries = append(s.entries, e)
	return true
}

// Remove deletes the entry with the same key and reports whether it was present.
func (s *Set) Remove(e Entry) bool {
	i, ok := s.index[e.Key()]
	if !ok {
		return false
	}
	s.entries = append(s.entries[:i], s.entries[i+1:]...)
	delete(s.index, e.Key())
	for j := i; j < len(s.entries); j++ {
		s.index[s.entries[j].Key()] = j
	}
	return true
}

func (s *Set) Contains(e Entry) bool {
	_, ok := s.index[e.Key()]
	return ok
}

func (s *Set) Len() int {
	return len(s.entries)
}

// Entries returns a copy of the entries in insertion order.
func (s *Set) Entries() []Entry {
	result := make([]Entry, len(s.entries))
	copy(result, s.entries)
	return result
}
