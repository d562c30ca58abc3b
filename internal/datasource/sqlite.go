package datasource

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/vanderheijden86/cortex/pkg/model"
)

// SQLiteReader provides read access to a SQLite index database with the
// schema:
//
//	nodes(id TEXT PRIMARY KEY, title TEXT, region TEXT)
//	node_tags(node_id TEXT, tag TEXT)
//	links(source_id TEXT, target_id TEXT)
type SQLiteReader struct {
	db   *sql.DB
	path string
}

// NewSQLiteReader opens an index database for reading.
func NewSQLiteReader(path string) (*SQLiteReader, error) {
	dsn := fmt.Sprintf("file:%s?mode=ro&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}
	return &SQLiteReader{db: db, path: path}, nil
}

// Close closes the database connection.
func (r *SQLiteReader) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// LoadIndex reads the full content index.
func (r *SQLiteReader) LoadIndex() (model.ContentIndex, error) {
	idx := model.ContentIndex{}

	rows, err := r.db.Query(`SELECT id, title, region FROM nodes`)
	if err != nil {
		return nil, fmt.Errorf("querying nodes: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		var title, region sql.NullString
		if err := rows.Scan(&id, &title, &region); err != nil {
			continue
		}
		idx[id] = model.IndexEntry{
			Title:  title.String,
			Region: region.String,
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating nodes: %w", err)
	}

	if err := r.loadTags(idx); err != nil {
		return nil, err
	}
	if err := r.loadLinks(idx); err != nil {
		return nil, err
	}
	return idx, nil
}

func (r *SQLiteReader) loadTags(idx model.ContentIndex) error {
	rows, err := r.db.Query(`SELECT node_id, tag FROM node_tags ORDER BY node_id, tag`)
	if err != nil {
		return fmt.Errorf("querying tags: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var nodeID, tag string
		if err := rows.Scan(&nodeID, &tag); err != nil {
			continue
		}
		entry, ok := idx[nodeID]
		if !ok || tag == "" {
			continue
		}
		entry.Tags = append(entry.Tags, tag)
		idx[nodeID] = entry
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating tags: %w", err)
	}
	return nil
}

func (r *SQLiteReader) loadLinks(idx model.ContentIndex) error {
	rows, err := r.db.Query(`SELECT source_id, target_id FROM links ORDER BY source_id, target_id`)
	if err != nil {
		return fmt.Errorf("querying links: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var src, dst string
		if err := rows.Scan(&src, &dst); err != nil {
			continue
		}
		entry, ok := idx[src]
		if !ok || dst == "" {
			continue
		}
		entry.Links = append(entry.Links, dst)
		idx[src] = entry
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating links: %w", err)
	}
	return nil
}

// CountNodes returns the number of indexed nodes.
func (r *SQLiteReader) CountNodes() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM nodes`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// GetLastModified returns the most recent update time when the schema
// carries an updated_at column, or the zero time.
func (r *SQLiteReader) GetLastModified() (time.Time, error) {
	var updatedAt sql.NullTime
	err := r.db.QueryRow(`SELECT MAX(updated_at) FROM nodes`).Scan(&updatedAt)
	if err != nil || !updatedAt.Valid {
		return time.Time{}, nil
	}
	return updatedAt.Time, nil
}
