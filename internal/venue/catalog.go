package venue

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"sync"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Info is the catalog listing for a venue.
type Info struct {
	ID        string
	Name      string
	FieldSize int
	Stages    int
}

var (
	venues = make(map[string]Venue)
	mu     sync.RWMutex
)

func init() {
	files, err := fs.Glob(builtinFS, "builtin/*.yaml")
	if err != nil {
		panic(err)
	}
	for _, name := range files {
		data, err := builtinFS.ReadFile(name)
		if err != nil {
			panic(err)
		}
		v, err := Parse(data)
		if err != nil {
			panic(fmt.Sprintf("venue: builtin %s: %v", name, err))
		}
		v.FilePath = name
		Register(v)
	}
}

// Register adds a venue to the catalog.
// Panics if a venue with the same ID is already registered.
func Register(v Venue) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := venues[v.ID]; exists {
		panic(fmt.Sprintf("venue: %q already registered", v.ID))
	}
	venues[v.ID] = v
}

// List returns every registered venue, sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(venues))
	for _, v := range venues {
		result = append(result, Info{
			ID:        v.ID,
			Name:      v.Name,
			FieldSize: v.FieldSize,
			Stages:    len(v.Stages),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Lookup returns the venue registered under id.
func Lookup(id string) (Venue, error) {
	mu.RLock()
	defer mu.RUnlock()

	v, ok := venues[id]
	if !ok {
		return Venue{}, fmt.Errorf("%w %q", ErrUnknownVenue, id)
	}
	return v, nil
}

// Exists checks if a venue with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := venues[id]
	return ok
}
