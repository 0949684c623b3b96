package vocabulary

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

var ErrLessonNotFound = errors.New("lesson not found")

// Lesson is a named, ordered list of entries.
type Lesson struct {
	ID      string  `yaml:"id" json:"id"`
	Title   string  `yaml:"title,omitempty" json:"title,omitempty"`
	Order   int     `yaml:"order,omitempty" json:"order,omitempty"`
	Entries []Entry `yaml:"entries" json:"entries"`
}

// Name returns the title, or the ID when the lesson has no title.
func (l Lesson) Name() string {
	if l.Title != "" {
		return l.Title
	}
	return l.ID
}

// MainEntries returns the entries that are not optional, in order.
func (l Lesson) MainEntries() []Entry {
	return filterEntries(l.Entries, false)
}

// OptionalEntries returns the optional entries, in order.
func (l Lesson) OptionalEntries() []Entry {
	return filterEntries(l.Entries, true)
}

func filterEntries(entries []Entry, optional bool) []Entry {
	var result []Entry
	for _, e := range entries {
		if e.Optional == optional {
			result = append(result, e)
		}
	}
	return result
}

// Source resolves lesson identifiers to their entries.
type Source interface {
	LessonIDs() []string
	Lesson(id string) (Lesson, error)
}

// Reader reads lessons from YAML files under one or more directories.
type Reader struct {
	lessons map[string]Lesson
}

func NewReader(directories []string) (*Reader, error) {
	lessons := make(map[string]Lesson)
	paths := make(map[string]string)
	for _, dir := range directories {
		files, err := loadYamlFiles[Lesson](dir)
		if err != nil {
			return nil, fmt.Errorf("loadYamlFiles(%s) > %w", dir, err)
		}
		for _, file := range files {
			lesson := file.contents
			if lesson.ID == "" {
				base := filepath.Base(file.path)
				lesson.ID = strings.TrimSuffix(base, filepath.Ext(base))
			}
			if existing, ok := paths[lesson.ID]; ok {
				return nil, fmt.Errorf("duplicate lesson id %q in %s and %s", lesson.ID, existing, file.path)
			}
			paths[lesson.ID] = file.path
			lessons[lesson.ID] = lesson
		}
	}
	return &Reader{lessons: lessons}, nil
}

// LessonIDs returns lesson IDs sorted by their order, then by ID.
func (r *Reader) LessonIDs() []string {
	ids := make([]string, 0, len(r.lessons))
	for id := range r.lessons {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := r.lessons[ids[i]], r.lessons[ids[j]]
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		return a.ID < b.ID
	})
	return ids
}

func (r *Reader) Lesson(id string) (Lesson, error) {
	lesson, ok := r.lessons[id]
	if !ok {
		return Lesson{}, fmt.Errorf("lesson %q: %w", id, ErrLessonNotFound)
	}
	return lesson, nil
}

// WriteLesson writes the lesson to <dir>/<id>.yml and returns the path.
func WriteLesson(dir string, lesson Lesson) (string, error) {
	if lesson.ID == "" {
		return "", fmt.Errorf("lesson id is empty")
	}
	path := filepath.Join(dir, lesson.ID+".yml")
	if err := WriteYamlFile(path, lesson); err != nil {
		return "", fmt.Errorf("WriteYamlFile(%s) > %w", path, err)
	}
	return path, nil
}
