package venue

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBuiltinVenuesRegistered(t *testing.T) {
	list := List()
	if len(list) < 3 {
		t.Fatalf("List() returned %d venues, expected the builtins", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Errorf("List() not sorted: %q before %q", list[i-1].ID, list[i].ID)
		}
	}
	for _, id := range []string{"arena", "club", "festival"} {
		v, err := Lookup(id)
		if err != nil {
			t.Errorf("Lookup(%q) error = %v", id, err)
			continue
		}
		if err := v.Validate(); err != nil {
			t.Errorf("builtin %q invalid: %v", id, err)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, err := Lookup("warehouse"); !errors.Is(err, ErrUnknownVenue) {
		t.Errorf("Lookup error = %v, expected ErrUnknownVenue", err)
	}
	if Exists("warehouse") {
		t.Error("Exists should be false for unknown venue")
	}
}

func TestParseDefaultsScale(t *testing.T) {
	v, err := Parse([]byte("id: tiny\nfield_size: 10\nspawns:\n  - {x: 4, y: 4}\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if v.Scale != 1 {
		t.Errorf("Scale = %g, expected default 1", v.Scale)
	}
	if got := v.Spawn(3); got.X != 4 || got.Y != 4 {
		t.Errorf("Spawn(3) = %v, expected wrap to {4 4}", got)
	}
}

func TestValidateRejectsBadLayouts(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"missing id", "field_size: 10\nspawns: [{x: 4, y: 4}]", "missing id"},
		{"small field", "id: a\nfield_size: 4\nspawns: [{x: 2, y: 2}]", "field_size"},
		{"no spawns", "id: a\nfield_size: 10", "spawn"},
		{"spawn on edge", "id: a\nfield_size: 10\nspawns: [{x: 0.5, y: 4}]", "off the floor"},
		{"stage outside", "id: a\nfield_size: 10\nstages: [{x1: 5, y1: 5, x2: 12, y2: 8}]\nspawns: [{x: 2, y: 2}]", "leaves the field"},
		{"spawn on stage", "id: a\nfield_size: 10\nstages: [{x1: 3, y1: 3, x2: 6, y2: 6}]\nspawns: [{x: 4, y: 4}]", "on a stage"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Parse() error = %v, expected mention of %q", err, tc.want)
			}
			if !errors.Is(err, ErrInvalidVenue) {
				t.Errorf("Parse() error = %v, expected ErrInvalidVenue", err)
			}
		})
	}
}

func TestLoaderRegistersDirectory(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"pub.yaml":      "id: test-pub\nname: Pub\nfield_size: 16\nspawns: [{x: 8, y: 8}]\n",
		"nested/a.yml":  "id: test-yard\nfield_size: 12\nspawns: [{x: 6, y: 6}]\n",
		"broken.yaml":   "id: [",
		"notes.txt":     "id: ignored",
		"club-dup.yaml": "id: club\nfield_size: 16\nspawns: [{x: 8, y: 8}]\n",
	}
	for name, body := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	l := NewLoader(dir)
	loaded, err := l.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(loaded) != 3 {
		t.Fatalf("LoadAll() loaded %d venues, expected 3", len(loaded))
	}

	n, err := l.RegisterAll()
	if err != nil {
		t.Fatalf("RegisterAll() error = %v", err)
	}
	if n != 2 {
		t.Errorf("RegisterAll() = %d, expected 2 (club is taken)", n)
	}
	v, err := Lookup("test-pub")
	if err != nil {
		t.Fatalf("Lookup(test-pub) error = %v", err)
	}
	if v.FilePath == "" || v.Name != "Pub" {
		t.Errorf("registered venue = %+v", v)
	}
	club, _ := Lookup("club")
	if club.FieldSize != 32 {
		t.Error("directory venues must not replace builtins")
	}
}
