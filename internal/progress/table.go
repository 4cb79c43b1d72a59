package progress

import (
	"sync"

	"github.com/tubefetch/tube-downloader/internal/model"
)

// Row is one UI table row: the in-flight transfer or a persisted completed
// download. Rows are keyed by normalized filename so separate audio and
// video fragments of one download reconcile into a single row.
type Row struct {
	Filename     string
	FileSize     string
	Status       string
	TimeLeft     string
	TransferRate string
}

// Table maintains the ordered row list backing the UI results table. The
// in-flight row is updated in place on every tick; once a transfer finishes
// the row freezes until SetCompleted overwrites it with the final on-disk
// figures. A current-row index is kept as a fast path for follow-up updates;
// it is a cache, not a source of truth, and every lookup falls back to a
// linear scan by normalized filename when it is stale.
type Table struct {
	mu         sync.Mutex
	rows       []Row
	currentRow int
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{currentRow: -1}
}

// Hydrate seeds the table from persisted history at session start.
func (t *Table) Hydrate(records []model.DownloadRecord) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.rows = make([]Row, 0, len(records))
	for _, rec := range records {
		t.rows = append(t.rows, Row{
			Filename:     rec.Filename,
			FileSize:     rec.FileSize,
			Status:       rec.Status,
			TimeLeft:     rec.TimeLeft,
			TransferRate: rec.TransferRate,
		})
	}
	t.currentRow = -1
}

// Rows returns a copy of the current rows for rendering.
func (t *Table) Rows() []Row {
	t.mu.Lock()
	defer t.mu.Unlock()

	rows := make([]Row, len(t.rows))
	copy(rows, t.rows)
	return rows
}

// Len returns the current row count.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.rows)
}

// Apply upserts the row for the view's transfer: located by normalized
// filename, updated in place when present, appended and remembered as the
// current row when absent. Callers must not Apply views of finished
// transfers; the tick skips the table step once the status is Finished.
func (t *Table) Apply(v View) {
	if !v.Active || v.Filename == "" {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	row := Row{
		Filename:     v.Filename,
		FileSize:     v.TotalDisplay,
		Status:       v.StatusDisplay,
		TimeLeft:     v.TimeLeft,
		TransferRate: v.RateDisplay,
	}

	idx := t.locate(v.Filename)
	if idx == -1 {
		t.rows = append(t.rows, row)
		t.currentRow = len(t.rows) - 1
		return
	}
	t.rows[idx] = row
}

// SetCompleted overwrites the transfer's row with the finalized record,
// preferring the current-row cache and recomputing on miss. When no row
// matches (e.g. after a table reset) the record is appended.
func (t *Table) SetCompleted(rec model.DownloadRecord) {
	t.mu.Lock()
	defer t.mu.Unlock()

	row := Row{
		Filename:     rec.Filename,
		FileSize:     rec.FileSize,
		Status:       rec.Status,
		TimeLeft:     rec.TimeLeft,
		TransferRate: rec.TransferRate,
	}

	idx := t.currentRow
	if idx < 0 || idx >= len(t.rows) ||
		model.NormalizeFilename(t.rows[idx].Filename) != model.NormalizeFilename(rec.Filename) {
		idx = t.locate(rec.Filename)
	}

	if idx == -1 {
		t.rows = append(t.rows, row)
	} else {
		t.rows[idx] = row
	}
	t.currentRow = -1
}

// RemoveByFilenames drops every row whose exact filename is in names and
// invalidates the current-row cache.
func (t *Table) RemoveByFilenames(names []string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	drop := make(map[string]bool, len(names))
	for _, name := range names {
		drop[name] = true
	}

	kept := t.rows[:0]
	for _, row := range t.rows {
		if !drop[row.Filename] {
			kept = append(kept, row)
		}
	}
	t.rows = kept
	t.currentRow = -1
}

// locate scans rows by normalized filename. Callers hold the lock.
func (t *Table) locate(filename string) int {
	base := model.NormalizeFilename(filename)
	for i, row := range t.rows {
		if model.NormalizeFilename(row.Filename) == base {
			return i
		}
	}
	return -1
}
