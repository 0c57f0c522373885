package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/stateprop/pkg/domain"
)

// ErrInvalidID is returned for IDs that are empty or would escape the base directory.
var ErrInvalidID = errors.New("invalid counterexample id")

// Store implements ports.CounterexampleStore using the local filesystem.
// It stores counterexamples as JSON files in a configured directory.
type Store struct {
	BasePath string
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".stateprop/counterexamples".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".stateprop", "counterexamples")
	}
	return &Store{BasePath: basePath}
}

func (s *Store) path(id string) (string, error) {
	if id == "" || strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return filepath.Join(s.BasePath, id+".json"), nil
}

// Save writes the counterexample atomically: a temp file in the same
// directory is synced, closed and renamed over the destination.
func (s *Store) Save(ctx context.Context, ce *domain.Counterexample) error {
	destPath, err := s.path(ce.ID)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure counterexample directory: %w", err)
	}

	data, err := json.MarshalIndent(ce, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal counterexample: %w", err)
	}

	tmpFile, err := os.CreateTemp(s.BasePath, ce.ID+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Windows cannot rename an open file.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// Load reads a counterexample by ID.
func (s *Store) Load(ctx context.Context, id string) (*domain.Counterexample, error) {
	filePath, err := s.path(id)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrCounterexampleNotFound
		}
		return nil, fmt.Errorf("failed to read counterexample file: %w", err)
	}

	var ce domain.Counterexample
	if err := json.Unmarshal(data, &ce); err != nil {
		return nil, fmt.Errorf("failed to unmarshal counterexample: %w", err)
	}
	return &ce, nil
}

// Delete removes the counterexample file.
func (s *Store) Delete(ctx context.Context, id string) error {
	filePath, err := s.path(id)
	if err != nil {
		return err
	}

	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete counterexample file: %w", err)
	}
	return nil
}

// List returns all stored IDs in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list counterexamples: %w", err)
	}

	ids := []string{}
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".json" {
			ids = append(ids, strings.TrimSuffix(entry.Name(), ".json"))
		}
	}
	sort.Strings(ids)
	return ids, nil
}
