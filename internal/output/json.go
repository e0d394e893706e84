// Package output exports fetch results to files.
package output

import (
	"encoding/json"
	"os"

	"github.com/cityrent/zufang/pkg/models"
)

// SaveJSON writes an indented JSON export of the fetch result, including the
// per-page outcomes, to filepath.
func SaveJSON(result *models.FetchResult, filepath string) error {
	content, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, content, 0644)
}
