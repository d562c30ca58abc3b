// Package visited persists the set of content IDs the user has navigated
// to, so the renderer can tint already-seen nodes.
//
// The set is stored as a JSON object holding an array of IDs under a
// fixed key, in the XDG state directory:
//   - State: ~/.local/state/cortex/visited.json
package visited

import (
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
)

// StorageKey is the fixed key the ID array is stored under.
const StorageKey = "cortex.visited"

// Set is the persisted visited set. Mutations write through to disk.
type Set struct {
	path string
	ids  map[string]bool
	// order preserves insertion order so the file stays stable across
	// load/save cycles.
	order []string
}

// StatePath returns the default storage path in the XDG state directory,
// or "" when no home directory can be determined.
func StatePath() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "cortex", "visited.json")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", "cortex", "visited.json")
}

// Load reads the set from path. A missing, malformed or wrongly-typed
// file yields an empty set; reading never fails.
func Load(path string) *Set {
	s := &Set{path: path, ids: make(map[string]bool)}
	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return s
	}
	var ids []string
	if err := json.Unmarshal(raw[StorageKey], &ids); err != nil {
		return s
	}
	for _, id := range ids {
		if id == "" || s.ids[id] {
			continue
		}
		s.ids[id] = true
		s.order = append(s.order, id)
	}
	return s
}

// Contains reports whether id has been visited.
func (s *Set) Contains(id string) bool { return s.ids[id] }

// Len returns the number of visited IDs.
func (s *Set) Len() int { return len(s.order) }

// Add records id and saves the set. Adding an already-present or empty
// ID is a no-op.
func (s *Set) Add(id string) error {
	if id == "" || s.ids[id] {
		return nil
	}
	s.ids[id] = true
	s.order = append(s.order, id)
	return s.save()
}

func (s *Set) save() error {
	if s.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}
	data, err := json.Marshal(map[string][]string{StorageKey: s.order})
	if err != nil {
		return fmt.Errorf("marshaling visited set: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing visited set: %w", err)
	}
	return nil
}
