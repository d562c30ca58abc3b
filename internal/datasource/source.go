// Package datasource detects and loads content indexes. It selects the
// freshest valid source between a JSON index file and a SQLite index
// database, then loads it into the shared model.
package datasource

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/vanderheijden86/cortex/pkg/model"
)

// SourceType identifies the type of index source.
type SourceType string

const (
	// SourceTypeSQLite is a SQLite index database (index.db).
	SourceTypeSQLite SourceType = "sqlite"
	// SourceTypeJSON is a JSON index file (index.json).
	SourceTypeJSON SourceType = "json"
)

// Priority values for source types (higher = preferred on equal mtime).
const (
	PrioritySQLite = 100
	PriorityJSON   = 50
)

// Source is a potential index source.
type Source struct {
	Type     SourceType
	Path     string
	Priority int
	ModTime  time.Time
	Size     int64
}

func (s Source) String() string {
	return fmt.Sprintf("%s (%s, priority=%d, mod=%s)",
		s.Path, s.Type, s.Priority, s.ModTime.Format(time.RFC3339))
}

// Detect classifies a path by extension. ".db"/".sqlite"/".sqlite3" are
// SQLite, everything else is treated as JSON.
func Detect(path string) SourceType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return SourceTypeSQLite
	default:
		return SourceTypeJSON
	}
}

// Discover finds index sources in dir: index.json and index.db. Results
// are sorted freshest first; on equal mtime SQLite wins.
func Discover(dir string) ([]Source, error) {
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolving working directory: %w", err)
		}
	}

	candidates := []struct {
		name     string
		typ      SourceType
		priority int
	}{
		{"index.db", SourceTypeSQLite, PrioritySQLite},
		{"index.json", SourceTypeJSON, PriorityJSON},
	}

	var sources []Source
	for _, c := range candidates {
		path := filepath.Join(dir, c.name)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		sources = append(sources, Source{
			Type:     c.typ,
			Path:     path,
			Priority: c.priority,
			ModTime:  info.ModTime(),
			Size:     info.Size(),
		})
	}

	sort.Slice(sources, func(i, j int) bool {
		if sources[i].ModTime.Equal(sources[j].ModTime) {
			return sources[i].Priority > sources[j].Priority
		}
		return sources[i].ModTime.After(sources[j].ModTime)
	})
	return sources, nil
}

// Load reads the content index behind a source.
func Load(s Source) (model.ContentIndex, error) {
	switch s.Type {
	case SourceTypeSQLite:
		r, err := NewSQLiteReader(s.Path)
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return r.LoadIndex()
	case SourceTypeJSON:
		return LoadJSON(s.Path)
	default:
		return nil, fmt.Errorf("unknown source type: %s", s.Type)
	}
}

// LoadPath loads the index at an explicit path, detecting its type.
func LoadPath(path string) (model.ContentIndex, error) {
	return Load(Source{Type: Detect(path), Path: path})
}
