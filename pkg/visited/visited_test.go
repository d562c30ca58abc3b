package visited

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func tempPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "state", "visited.json")
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	s := Load(tempPath(t))
	if s.Len() != 0 {
		t.Fatalf("Len = %d, want 0", s.Len())
	}
	if s.Contains("anything") {
		t.Fatal("empty set contains an ID")
	}
}

func TestAddPersistsAcrossLoads(t *testing.T) {
	path := tempPath(t)
	s := Load(path)
	for _, id := range []string{"notes/a", "notes/b", "notes/a", ""} {
		if err := s.Add(id); err != nil {
			t.Fatal(err)
		}
	}
	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2 (duplicates and empty IDs ignored)", s.Len())
	}

	re := Load(path)
	if re.Len() != 2 || !re.Contains("notes/a") || !re.Contains("notes/b") {
		t.Fatalf("reloaded set lost entries: len=%d", re.Len())
	}
}

func TestLoadMalformedFileIsEmpty(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"not json", "{{{"},
		{"wrong top-level type", `["a","b"]`},
		{"key missing", `{"other": ["a"]}`},
		{"wrong value type", `{"` + StorageKey + `": "a"}`},
		{"numbers in array", `{"` + StorageKey + `": [1,2]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := tempPath(t)
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				t.Fatal(err)
			}
			if err := os.WriteFile(path, []byte(tc.data), 0o644); err != nil {
				t.Fatal(err)
			}
			s := Load(path)
			if s.Len() != 0 {
				t.Fatalf("Len = %d for %s, want 0", s.Len(), tc.name)
			}
			// A malformed store must still accept new entries.
			if err := s.Add("fresh"); err != nil {
				t.Fatal(err)
			}
			if !Load(path).Contains("fresh") {
				t.Fatal("recovered store did not persist")
			}
		})
	}
}

func TestStorageKeyIsStable(t *testing.T) {
	path := tempPath(t)
	s := Load(path)
	if err := s.Add("id"); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := `"` + StorageKey + `"`
	if !strings.Contains(string(data), want) {
		t.Fatalf("file %s does not use storage key %s", data, want)
	}
}
