package review

import (
	"context"
	"fmt"
	"os"

	"github.com/at-ishikawa/shokyuu/internal/vocabulary"
)

// FileStore keeps the ledger in a YAML file on the device.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the ledger. A missing file is an empty ledger.
func (s *FileStore) Load(_ context.Context) (Decks, error) {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return Decks{}, nil
	}
	decks, err := vocabulary.ReadYamlFile[Decks](s.path)
	if err != nil {
		return nil, fmt.Errorf("vocabulary.ReadYamlFile(%s) > %w", s.path, err)
	}
	if decks == nil {
		decks = Decks{}
	}
	return decks, nil
}

func (s *FileStore) Save(_ context.Context, decks Decks) error {
	if err := vocabulary.WriteYamlFile(s.path, decks); err != nil {
		return fmt.Errorf("vocabulary.WriteYamlFile(%s) > %w", s.path, err)
	}
	return nil
}
