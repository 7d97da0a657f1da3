package venue

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Loader reads venue files from a directory tree.
type Loader struct {
	Root string
}

// NewLoader creates a loader rooted at root.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll walks Root and loads every YAML venue. Invalid files are
// skipped. The result is sorted by ID.
func (l *Loader) LoadAll() ([]Venue, error) {
	var out []Venue

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
		default:
			return nil
		}

		v, err := l.LoadFile(path)
		if err != nil {
			return nil
		}
		out = append(out, v)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("venue: walking %s: %w", l.Root, err)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// LoadFile loads a single venue file.
func (l *Loader) LoadFile(path string) (Venue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Venue{}, fmt.Errorf("venue: reading %s: %w", path, err)
	}
	v, err := Parse(data)
	if err != nil {
		return Venue{}, fmt.Errorf("venue: %s: %w", path, err)
	}
	v.FilePath = path
	return v, nil
}

// RegisterAll loads every venue under Root and registers the ones whose
// IDs are not taken yet. It returns how many were added.
func (l *Loader) RegisterAll() (int, error) {
	loaded, err := l.LoadAll()
	if err != nil {
		return 0, err
	}
	n := 0
	for _, v := range loaded {
		if Exists(v.ID) {
			continue
		}
		Register(v)
		n++
	}
	return n, nil
}
