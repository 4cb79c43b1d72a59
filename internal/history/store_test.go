package history

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/tubefetch/tube-downloader/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "test.db"))
}

func TestEnsureTableIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.EnsureTable(ctx, TableCompleted); err != nil {
		t.Fatalf("EnsureTable failed: %v", err)
	}
	if err := store.EnsureTable(ctx, TableCompleted); err != nil {
		t.Fatalf("Second EnsureTable failed: %v", err)
	}
}

func TestInsertDeleteFetch(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.EnsureTable(ctx, TableCompleted); err != nil {
		t.Fatalf("EnsureTable failed: %v", err)
	}

	rec := model.CompletedRecord("My Video.mp4", 52428800)
	if err := store.Insert(ctx, TableCompleted, rec); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	records, err := store.FetchAll(ctx, TableCompleted)
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	if records[0].Filename != "My Video.mp4" || records[0].Status != "Completed" {
		t.Errorf("Unexpected record: %+v", records[0])
	}

	if err := store.DeleteByFilename(ctx, TableCompleted, "My Video.mp4"); err != nil {
		t.Fatalf("DeleteByFilename failed: %v", err)
	}

	records, err = store.FetchAll(ctx, TableCompleted)
	if err != nil {
		t.Fatalf("FetchAll after delete failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Expected empty table after delete, got %d rows", len(records))
	}
}

func TestDeleteRemovesDuplicates(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.EnsureTable(ctx, TableCompleted); err != nil {
		t.Fatalf("EnsureTable failed: %v", err)
	}

	// Duplicate filenames are permitted by the schema
	rec := model.CompletedRecord("dup.mp4", 1024*1024)
	if err := store.Insert(ctx, TableCompleted, rec); err != nil {
		t.Fatalf("First insert failed: %v", err)
	}
	if err := store.Insert(ctx, TableCompleted, rec); err != nil {
		t.Fatalf("Second insert failed: %v", err)
	}

	records, err := store.FetchAll(ctx, TableCompleted)
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(records))
	}

	// Deleting the filename removes both rows
	if err := store.DeleteByFilename(ctx, TableCompleted, "dup.mp4"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	records, err = store.FetchAll(ctx, TableCompleted)
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Expected both duplicates removed, got %d rows", len(records))
	}
}

func TestDeleteByFilenamesBulk(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.EnsureTable(ctx, TableCompleted); err != nil {
		t.Fatalf("EnsureTable failed: %v", err)
	}

	for _, name := range []string{"a.mp4", "b.mp4", "c.mp4"} {
		if err := store.Insert(ctx, TableCompleted, model.CompletedRecord(name, 1024)); err != nil {
			t.Fatalf("Insert %s failed: %v", name, err)
		}
	}

	if err := store.DeleteByFilenames(ctx, TableCompleted, []string{"a.mp4", "c.mp4"}); err != nil {
		t.Fatalf("Bulk delete failed: %v", err)
	}

	records, err := store.FetchAll(ctx, TableCompleted)
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}
	if len(records) != 1 || records[0].Filename != "b.mp4" {
		t.Errorf("Expected only b.mp4 to remain, got %+v", records)
	}
}

func TestDeleteByFilenamesFailureKeepsRows(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.EnsureTable(ctx, TableCompleted); err != nil {
		t.Fatalf("EnsureTable failed: %v", err)
	}

	names := []string{"a.mp4", "b.mp4", "c.mp4"}
	for _, name := range names {
		if err := store.Insert(ctx, TableCompleted, model.CompletedRecord(name, 1024)); err != nil {
			t.Fatalf("Insert %s failed: %v", name, err)
		}
	}

	// A batch failing partway through must not leave a partial delete; the
	// cancelled context fails the statements inside the transaction.
	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if err := store.DeleteByFilenames(cancelled, TableCompleted, names); err == nil {
		t.Fatal("Expected error from cancelled delete, got nil")
	}

	records, err := store.FetchAll(ctx, TableCompleted)
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}
	if len(records) != len(names) {
		t.Fatalf("Failed delete must keep all %d rows, got %d", len(names), len(records))
	}
}

func TestFetchAllInsertionOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.EnsureTable(ctx, TableCompleted); err != nil {
		t.Fatalf("EnsureTable failed: %v", err)
	}

	names := []string{"first.mp4", "second.mp4", "third.mp4"}
	for _, name := range names {
		if err := store.Insert(ctx, TableCompleted, model.CompletedRecord(name, 1024)); err != nil {
			t.Fatalf("Insert %s failed: %v", name, err)
		}
	}

	records, err := store.FetchAll(ctx, TableCompleted)
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}
	if len(records) != len(names) {
		t.Fatalf("Expected %d rows, got %d", len(names), len(records))
	}
	for i, name := range names {
		if records[i].Filename != name {
			t.Errorf("records[%d].Filename = %s, expected %s", i, records[i].Filename, name)
		}
	}
}

func TestInvalidTableName(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.EnsureTable(ctx, "bad name; drop"); err == nil {
		t.Error("Expected error for invalid table name, got nil")
	}
	if _, err := store.FetchAll(ctx, "1numeric"); err == nil {
		t.Error("Expected error for invalid table name, got nil")
	}
}
