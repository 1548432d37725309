// Package history keeps the newest-first list of completed games and
// persists it through a named record store.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/tatianab/spirit-tracker/internal/models"
	"github.com/tatianab/spirit-tracker/internal/storage"
)

// RecordName is the name the history is stored under.
const RecordName = "spirit-island-history"

// Store is the in-memory history backed by a record store. It is owned by a
// single goroutine, the UI event loop.
type Store struct {
	records storage.RecordStore
	results []models.GameResult
	logger  *slog.Logger
}

// Open loads the history from records. A missing record yields an empty
// history; a malformed one is logged and treated as empty.
func Open(ctx context.Context, records storage.RecordStore, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{records: records, logger: logger}

	data, err := records.Load(ctx, RecordName)
	if errors.Is(err, storage.ErrNotFound) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	if err := json.Unmarshal(data, &s.results); err != nil {
		logger.Error("failed to parse history", "error", err)
		s.results = nil
	}
	return s, nil
}

// List returns a copy of the history, newest first.
func (s *Store) List() []models.GameResult {
	return slices.Clone(s.results)
}

// Len returns the number of stored games.
func (s *Store) Len() int {
	return len(s.results)
}

// Get returns the game with id.
func (s *Store) Get(id string) (models.GameResult, bool) {
	for _, r := range s.results {
		if r.ID == id {
			return r, true
		}
	}
	return models.GameResult{}, false
}

// Append prepends result and persists the history. On a save error the
// history is unchanged.
func (s *Store) Append(ctx context.Context, result models.GameResult) error {
	next := slices.Insert(slices.Clone(s.results), 0, result)
	return s.commit(ctx, next)
}

// Delete removes the game with id and persists the history.
func (s *Store) Delete(ctx context.Context, id string) error {
	next := slices.DeleteFunc(slices.Clone(s.results), func(r models.GameResult) bool { return r.ID == id })
	return s.commit(ctx, next)
}

// MergeImport prepends the candidates whose id is set and not yet known,
// keeping their order, and returns how many were added.
func (s *Store) MergeImport(ctx context.Context, candidates []models.GameResult) (int, error) {
	known := make(map[string]bool, len(s.results))
	for _, r := range s.results {
		known[r.ID] = true
	}
	var added []models.GameResult
	for _, c := range candidates {
		if c.ID == "" || known[c.ID] {
			continue
		}
		known[c.ID] = true
		added = append(added, c)
	}
	next := append(added, s.results...)
	if err := s.commit(ctx, next); err != nil {
		return 0, err
	}
	return len(added), nil
}

// commit saves results and makes them current only once the save succeeded.
func (s *Store) commit(ctx context.Context, results []models.GameResult) error {
	if err := s.save(ctx, results); err != nil {
		return err
	}
	s.results = results
	return nil
}

func (s *Store) save(ctx context.Context, results []models.GameResult) error {
	data, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := s.records.Save(ctx, RecordName, data); err != nil {
		s.logger.Error("failed to save history", "error", err)
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}
