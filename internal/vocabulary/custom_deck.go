package vocabulary

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
)

// CustomDeckPrefix marks lesson IDs that refer to user-defined decks.
const CustomDeckPrefix = "custom_"

var ErrInvalidDeckName = errors.New("invalid deck name")

// CustomDeckStore keeps user-defined decks in a single YAML file keyed by deck name.
type CustomDeckStore struct {
	path string
}

func NewCustomDeckStore(path string) *CustomDeckStore {
	return &CustomDeckStore{path: path}
}

// Load returns all decks. A missing file means there are no decks.
func (s *CustomDeckStore) Load() (map[string][]Entry, error) {
	if s.path == "" {
		return map[string][]Entry{}, nil
	}
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return map[string][]Entry{}, nil
	}
	decks, err := ReadYamlFile[map[string][]Entry](s.path)
	if err != nil {
		return nil, fmt.Errorf("ReadYamlFile(%s) > %w", s.path, err)
	}
	if decks == nil {
		decks = map[string][]Entry{}
	}
	return decks, nil
}

// Names returns deck names in alphabetical order.
func (s *CustomDeckStore) Names() ([]string, error) {
	decks, err := s.Load()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(decks))
	for name := range decks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Add merges entries into the named deck, skipping entries already in it,
// and returns the number of entries added.
func (s *CustomDeckStore) Add(name string, entries []Entry) (int, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, "/\\") {
		return 0, fmt.Errorf("%q: %w", name, ErrInvalidDeckName)
	}
	decks, err := s.Load()
	if err != nil {
		return 0, err
	}

	set := NewSet(decks[name]...)
	added := 0
	for _, e := range entries {
		if set.Add(e) {
			added++
		}
	}
	decks[name] = set.Entries()
	if err := WriteYamlFile(s.path, decks); err != nil {
		return 0, fmt.Errorf("WriteYamlFile(%s) > %w", s.path, err)
	}
	return added, nil
}

// Delete removes the named deck. Deleting a missing deck is not an error.
func (s *CustomDeckStore) Delete(name string) error {
	decks, err := s.Load()
	if err != nil {
		return err
	}
	if _, ok := decks[name]; !ok {
		return nil
	}
	delete(decks, name)
	if err := WriteYamlFile(s.path, decks); err != nil {
		return fmt.Errorf("WriteYamlFile(%s) > %w", s.path, err)
	}
	return nil
}

// Catalog exposes lessons from a Source together with custom decks.
// Custom decks are addressed as "custom_<name>".
type Catalog struct {
	lessons Source
	decks   *CustomDeckStore
}

func NewCatalog(lessons Source, decks *CustomDeckStore) *Catalog {
	return &Catalog{
		lessons: lessons,
		decks:   decks,
	}
}

func IsCustomDeck(id string) bool {
	return strings.HasPrefix(id, CustomDeckPrefix)
}

func (c *Catalog) LessonIDs() []string {
	ids := c.lessons.LessonIDs()
	if c.decks == nil {
		return ids
	}
	names, err := c.decks.Names()
	if err != nil {
		return ids
	}
	for _, name := range names {
		ids = append(ids, CustomDeckPrefix+name)
	}
	return ids
}

func (c *Catalog) Lesson(id string) (Lesson, error) {
	if !IsCustomDeck(id) || c.decks == nil {
		return c.lessons.Lesson(id)
	}

	name := strings.TrimPrefix(id, CustomDeckPrefix)
	decks, err := c.decks.Load()
	if err != nil {
		return Lesson{}, fmt.Errorf("load custom decks > %w", err)
	}
	entries, ok := decks[name]
	if !ok {
		return Lesson{}, fmt.Errorf("custom deck %q: %w", name, ErrLessonNotFound)
	}
	return Lesson{
		ID:      id,
		Title:   name,
		Entries: entries,
	}, nil
}
