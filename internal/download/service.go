package download

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/tubefetch/tube-downloader/internal/history"
	"github.com/tubefetch/tube-downloader/internal/model"
	"github.com/tubefetch/tube-downloader/internal/platform"
	"github.com/tubefetch/tube-downloader/internal/progress"
)

// Service orchestrates transfers: it validates requests, launches one worker
// per transfer, and moves completed results into persistent history.
type Service struct {
	mu         sync.Mutex
	store      *history.Store
	reconciler *progress.Reconciler
	table      *progress.Table
	historyTbl string
	policy     DuplicatePolicy
	active     *Worker
}

// NewService creates an orchestrator writing completed downloads through the
// given gateway into the completed-downloads table.
func NewService(store *history.Store, reconciler *progress.Reconciler, table *progress.Table) *Service {
	return &Service{
		store:      store,
		reconciler: reconciler,
		table:      table,
		historyTbl: history.TableCompleted,
		policy:     DuplicateKeepBoth,
	}
}

// SetDuplicatePolicy configures what a completion does when history already
// holds a row for the same filename.
func (s *Service) SetDuplicatePolicy(policy DuplicatePolicy) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if policy == DuplicateOverwrite {
		s.policy = DuplicateOverwrite
	} else {
		s.policy = DuplicateKeepBoth
	}
}

// Hydrate seeds the UI table from persisted history, in storage order.
func (s *Service) Hydrate(ctx context.Context) error {
	records, err := s.store.FetchAll(ctx, s.historyTbl)
	if err != nil {
		return err
	}
	s.table.Hydrate(records)
	return nil
}

// Start validates the request and launches the transfer worker. Nothing is
// mutated and no worker is created when validation fails. One transfer runs
// per session; the UI keeps the trigger disabled while one is in flight and
// Start additionally refuses overlap.
func (s *Service) Start(opts Options) (*Worker, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active != nil {
		return nil, ErrTransferActive
	}

	worker := newWorker(opts)
	s.active = worker
	worker.start()

	return worker, nil
}

// Observe feeds a worker snapshot into the reconciler.
func (s *Service) Observe(snapshot model.ProgressSnapshot) {
	s.reconciler.Observe(snapshot)
}

// Tick is the periodic projection step: it renders the latest snapshot into
// a view and, while the transfer is still downloading, upserts the table
// row. Once the engine reports Finished the row stays frozen until Finalize
// overwrites it with the on-disk figures.
func (s *Service) Tick() progress.View {
	view := s.reconciler.Project()
	if view.Active && view.Status != model.TransferStatusFinished {
		s.table.Apply(view)
	}
	return view
}

// Finalize handles a worker's completion: probe the artifact on disk, write
// the history row, and overwrite the frozen table row with the final size
// and status. The in-memory transfer state is reset even on failure so the
// user can retry; a missing artifact skips the history write entirely.
func (s *Service) Finalize(ctx context.Context, artifact string) (model.DownloadRecord, error) {
	s.mu.Lock()
	var dir string
	if s.active != nil {
		dir = s.active.opts.Dir
	}
	s.active = nil
	policy := s.policy
	s.mu.Unlock()

	defer s.reconciler.Reset()

	path := artifact
	if dir != "" {
		path = filepath.Join(dir, artifact)
	}

	size, err := platform.FileSize(path)
	if err != nil {
		return model.DownloadRecord{}, fmt.Errorf("%w: %s", ErrArtifactMissing, path)
	}

	rec := model.CompletedRecord(artifact, size)
	s.table.SetCompleted(rec)

	if policy == DuplicateOverwrite {
		if err := s.store.DeleteByFilename(ctx, s.historyTbl, artifact); err != nil {
			return rec, err
		}
	}
	if err := s.store.Insert(ctx, s.historyTbl, rec); err != nil {
		return rec, err
	}

	logrus.Infof("completed download persisted: %s (%s)", rec.Filename, rec.FileSize)
	return rec, nil
}

// ResetProgress clears the live progress projection without touching the
// active transfer bookkeeping. Used by the UI's Clear action.
func (s *Service) ResetProgress() {
	s.reconciler.Reset()
}

// Fail clears the active transfer after a worker error so the next request
// can start fresh.
func (s *Service) Fail() {
	s.mu.Lock()
	s.active = nil
	s.mu.Unlock()
	s.reconciler.Reset()
}

// Delete removes the filenames from history and from the UI table.
func (s *Service) Delete(ctx context.Context, filenames []string) error {
	if err := s.store.DeleteByFilenames(ctx, s.historyTbl, filenames); err != nil {
		return err
	}
	s.table.RemoveByFilenames(filenames)
	return nil
}

// Busy reports whether a transfer is currently in flight.
func (s *Service) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active != nil
}
