package history

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/tatianab/spirit-tracker/internal/models"
)

// ErrImportFormat is returned for import data that is not a JSON array.
var ErrImportFormat = errors.New("import file must contain a JSON array of games")

// ParseImport decodes an exported history. Nothing is merged here, so a
// rejected file never partially changes the history.
func ParseImport(data []byte) ([]models.GameResult, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrImportFormat
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImportFormat, err)
	}
	out := make([]models.GameResult, 0, len(raw))
	for _, item := range raw {
		var r models.GameResult
		// Entries that are not objects are dropped like entries without an id.
		if err := json.Unmarshal(item, &r); err != nil {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// ReadImportFile reads and parses an exported history file.
func ReadImportFile(path string) ([]models.GameResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseImport(data)
}

// Export writes the history as an indented JSON array.
func (s *Store) Export(w io.Writer) error {
	results := s.results
	if results == nil {
		results = []models.GameResult{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

// ExportFileName names an export made at now.
func ExportFileName(now time.Time) string {
	return fmt.Sprintf("%s-%s.json", RecordName, now.Format(time.DateOnly))
}

// ExportFile writes the history into dir and returns the file path.
func (s *Store) ExportFile(dir string, now time.Time) (string, error) {
	var buf bytes.Buffer
	if err := s.Export(&buf); err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, ExportFileName(now))
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", err
	}
	return path, nil
}
