package datasource

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/cortex/pkg/model"
)

// LoadJSON reads a JSON content index: an object mapping node IDs to
// their metadata.
func LoadJSON(path string) (model.ContentIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading index: %w", err)
	}
	var idx model.ContentIndex
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("parsing index %s: %w", path, err)
	}
	if idx == nil {
		idx = model.ContentIndex{}
	}
	return idx, nil
}
