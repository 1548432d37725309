package history

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tatianab/spirit-tracker/internal/models"
	"github.com/tatianab/spirit-tracker/internal/storage"
)

func result(id string, score int) models.GameResult {
	return models.GameResult{ID: id, Outcome: models.Victory, Score: score, PlayerCount: 1}
}

func openStore(t *testing.T, records storage.RecordStore) *Store {
	t.Helper()
	s, err := Open(context.Background(), records, nil)
	if err != nil {
		t.Fatalf("Failed to open history: %v", err)
	}
	return s
}

func ids(results []models.GameResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.ID
	}
	return out
}

func TestAppendIsNewestFirstAndPersisted(t *testing.T) {
	ctx := context.Background()
	records := storage.NewMemoryStore()
	s := openStore(t, records)

	for _, id := range []string{"a", "b", "c"} {
		if err := s.Append(ctx, result(id, 1)); err != nil {
			t.Fatalf("Failed to append: %v", err)
		}
	}
	if got := ids(s.List()); len(got) != 3 || got[0] != "c" || got[2] != "a" {
		t.Errorf("Expected [c b a], got %v", got)
	}

	reloaded := openStore(t, records)
	if got := ids(reloaded.List()); len(got) != 3 || got[0] != "c" {
		t.Errorf("Expected persisted [c b a], got %v", got)
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	records := storage.NewMemoryStore()
	s := openStore(t, records)
	_ = s.Append(ctx, result("a", 1))
	_ = s.Append(ctx, result("b", 2))

	if err := s.Delete(ctx, "a"); err != nil {
		t.Fatalf("Failed to delete: %v", err)
	}
	if _, ok := s.Get("a"); ok {
		t.Error("Expected a to be gone")
	}
	if openStore(t, records).Len() != 1 {
		t.Error("Expected the deletion to be persisted")
	}
	if err := s.Delete(ctx, "missing"); err != nil {
		t.Errorf("Expected deleting an unknown id to be a no-op, got %v", err)
	}
}

func TestMergeImport(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, storage.NewMemoryStore())
	_ = s.Append(ctx, result("old", 1))

	imported := []models.GameResult{result("n1", 5), {Score: 9}, result("old", 99), result("n2", 6), result("n1", 7)}
	added, err := s.MergeImport(ctx, imported)
	if err != nil {
		t.Fatalf("Failed to merge: %v", err)
	}
	if added != 2 {
		t.Errorf("Expected 2 new games, got %d", added)
	}
	if got := ids(s.List()); len(got) != 3 || got[0] != "n1" || got[1] != "n2" || got[2] != "old" {
		t.Errorf("Expected [n1 n2 old], got %v", got)
	}
	if old, _ := s.Get("old"); old.Score != 1 {
		t.Errorf("Expected the existing record to win, got score %d", old.Score)
	}

	again, err := s.MergeImport(ctx, imported)
	if err != nil {
		t.Fatalf("Failed to merge again: %v", err)
	}
	if again != 0 || s.Len() != 3 {
		t.Errorf("Expected an idempotent second import, got %d added and %d total", again, s.Len())
	}
}

func TestOpenToleratesMalformedHistory(t *testing.T) {
	records := storage.NewMemoryStore()
	_ = records.Save(context.Background(), RecordName, []byte("{not json"))

	s := openStore(t, records)
	if s.Len() != 0 {
		t.Errorf("Expected an empty history, got %d games", s.Len())
	}
}

type failingStore struct{ storage.MemoryStore }

func (f *failingStore) Load(context.Context, string) ([]byte, error) {
	return nil, errors.New("disk on fire")
}

func TestOpenReportsStoreErrors(t *testing.T) {
	if _, err := Open(context.Background(), &failingStore{}, nil); err == nil {
		t.Error("Expected the load error to be returned")
	}
}

// flakyStore fails every Save while down is set.
type flakyStore struct {
	*storage.MemoryStore
	down bool
}

func (f *flakyStore) Save(ctx context.Context, name string, data []byte) error {
	if f.down {
		return errors.New("disk full")
	}
	return f.MemoryStore.Save(ctx, name, data)
}

func TestFailedSaveLeavesHistoryUnchanged(t *testing.T) {
	ctx := context.Background()
	records := &flakyStore{MemoryStore: storage.NewMemoryStore()}
	s := openStore(t, records)
	if err := s.Append(ctx, result("a", 1)); err != nil {
		t.Fatalf("Failed to append: %v", err)
	}

	records.down = true
	if err := s.Append(ctx, result("b", 2)); err == nil {
		t.Error("Expected the append to fail")
	}
	if err := s.Delete(ctx, "a"); err == nil {
		t.Error("Expected the delete to fail")
	}
	added, err := s.MergeImport(ctx, []models.GameResult{result("c", 3), result("d", 4)})
	if err == nil || added != 0 {
		t.Errorf("Expected the merge to fail with 0 added, got %d, %v", added, err)
	}
	if got := ids(s.List()); len(got) != 1 || got[0] != "a" {
		t.Errorf("Expected [a] after failed saves, got %v", got)
	}

	records.down = false
	added, err = s.MergeImport(ctx, []models.GameResult{result("c", 3), result("d", 4)})
	if err != nil {
		t.Fatalf("Failed to merge: %v", err)
	}
	if added != 2 || s.Len() != 3 {
		t.Errorf("Expected the retry to add 2 games, got %d added and %d total", added, s.Len())
	}
}

func TestParseImport(t *testing.T) {
	games, err := ParseImport([]byte(`[{"id":"x","outcome":"defeat","score":3}, 42, {"score":1}]`))
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	if len(games) != 2 || games[0].ID != "x" || games[0].Outcome != models.Defeat {
		t.Errorf("Unexpected games %+v", games)
	}

	for _, bad := range []string{`{"id":"x"}`, `not json`, ``, `[1,`} {
		if _, err := ParseImport([]byte(bad)); !errors.Is(err, ErrImportFormat) {
			t.Errorf("ParseImport(%q): expected ErrImportFormat, got %v", bad, err)
		}
	}
}

func TestExportRoundTripsThroughImport(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, storage.NewMemoryStore())
	_ = s.Append(ctx, result("a", 1))
	_ = s.Append(ctx, result("b", 2))

	dir := t.TempDir()
	now := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)
	path, err := s.ExportFile(dir, now)
	if err != nil {
		t.Fatalf("Failed to export: %v", err)
	}
	if filepath.Base(path) != "spirit-island-history-2026-03-04.json" {
		t.Errorf("Unexpected export name %s", filepath.Base(path))
	}

	games, err := ReadImportFile(path)
	if err != nil {
		t.Fatalf("Failed to read export: %v", err)
	}
	fresh := openStore(t, storage.NewMemoryStore())
	if added, _ := fresh.MergeImport(ctx, games); added != 2 {
		t.Errorf("Expected 2 imported games, got %d", added)
	}
	if got := ids(fresh.List()); got[0] != "b" {
		t.Errorf("Expected newest-first order preserved, got %v", got)
	}
}

func TestExportEmptyHistory(t *testing.T) {
	var buf bytes.Buffer
	if err := openStore(t, storage.NewMemoryStore()).Export(&buf); err != nil {
		t.Fatalf("Failed to export: %v", err)
	}
	if got := bytes.TrimSpace(buf.Bytes()); string(got) != "[]" {
		t.Errorf("Expected [], got %s", got)
	}
	if _, err := ReadImportFile(filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected a not-exist error, got %v", err)
	}
}
