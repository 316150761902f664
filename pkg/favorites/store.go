package favorites

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Store reads and writes favorite files in one directory.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir. The directory is created lazily
// on the first save.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Save writes the favorite to a timestamped JSON file and returns its path.
func (s *Store) Save(fav Favorite) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("creating favorites directory: %w", err)
	}

	data, err := json.MarshalIndent(fav, "", "\t")
	if err != nil {
		return "", fmt.Errorf("encoding favorite: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(s.dir, fmt.Sprintf("favorite_%s.json", timestamp))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing favorite: %w", err)
	}

	return path, nil
}

// Load reads a favorite file written by Save.
func (s *Store) Load(path string) (Favorite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Favorite{}, fmt.Errorf("reading favorite: %w", err)
	}

	var fav Favorite
	if err := json.Unmarshal(data, &fav); err != nil {
		return Favorite{}, fmt.Errorf("decoding favorite %s: %w", path, err)
	}

	return fav, nil
}

// List returns the paths of all favorite files in the store, sorted by
// name, which is also chronological because of the timestamped filenames.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing favorites: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		paths = append(paths, filepath.Join(s.dir, entry.Name()))
	}
	sort.Strings(paths)

	return paths, nil
}
