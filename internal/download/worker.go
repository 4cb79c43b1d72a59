package download

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lrstanley/go-ytdlp"
	"github.com/sirupsen/logrus"

	"github.com/tubefetch/tube-downloader/internal/model"
)

// ProgressInterval is the cadence at which the engine reports progress; the
// UI polls the latest snapshot on its own matching timer.
const ProgressInterval = 500 * time.Millisecond

// MergedContainerExt is the container the engine muxes combined audio+video
// downloads into.
const MergedContainerExt = ".mp4"

// DefaultAudioExt is assumed when the engine reports no extension for an
// audio-only download.
const DefaultAudioExt = "m4a"

// Worker owns exactly one engine invocation on its own goroutine. A worker
// is created fresh per transfer and discarded afterwards, never reused. It
// communicates with the UI thread only through three one-way channels:
// progress (many), done (exactly once), err (exactly once, mutually
// exclusive with done). No cancellation exists; a started transfer runs to
// completion or failure.
type Worker struct {
	id   string
	opts Options

	progressCh chan model.ProgressSnapshot
	doneCh     chan string
	errCh      chan error
}

func newWorker(opts Options) *Worker {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the system clock/entropy is broken
		id = uuid.New()
	}
	return &Worker{
		id:         id.String(),
		opts:       opts,
		progressCh: make(chan model.ProgressSnapshot, 1),
		doneCh:     make(chan string, 1),
		errCh:      make(chan error, 1),
	}
}

// ID returns the worker's transfer id.
func (w *Worker) ID() string { return w.id }

// Progress delivers snapshots, latest-wins: the engine may emit many times
// per second and a slow receiver only ever sees the newest one.
func (w *Worker) Progress() <-chan model.ProgressSnapshot { return w.progressCh }

// Done delivers the final artifact's filename, exactly once.
func (w *Worker) Done() <-chan string { return w.doneCh }

// Err delivers the terminal error, exactly once, only when Done never fires.
func (w *Worker) Err() <-chan error { return w.errCh }

func (w *Worker) start() {
	go w.run()
}

func (w *Worker) run() {
	dl := ytdlp.New().
		Format(w.opts.Tier.FormatExpr()).
		Output(w.opts.outputTemplate())

	if w.opts.Playlist {
		dl = dl.YesPlaylist()
	} else {
		dl = dl.NoPlaylist()
	}

	dl.ProgressFunc(ProgressInterval, func(update ytdlp.ProgressUpdate) {
		w.publish(snapshotFromUpdate(update))
	})

	logrus.Infof("worker %s: starting transfer for %s (format %q)", w.id, w.opts.URL, w.opts.Tier.FormatExpr())

	result, err := dl.Run(context.Background(), w.opts.URL)
	if err != nil {
		diagnostic := err.Error()
		if result != nil && strings.TrimSpace(result.Stderr) != "" {
			diagnostic = result.Stderr
		}
		logrus.Errorf("worker %s: transfer failed: %v", w.id, err)
		w.errCh <- fmt.Errorf("%s", diagnostic)
		return
	}

	artifact, err := w.finalArtifact(result)
	if err != nil {
		w.errCh <- err
		return
	}

	logrus.Infof("worker %s: transfer finished: %s", w.id, artifact)
	w.doneCh <- artifact
}

// finalArtifact determines the final output filename: combined audio+video
// downloads end up in the merged container, audio-only downloads keep the
// engine's audio extension.
func (w *Worker) finalArtifact(result *ytdlp.Result) (string, error) {
	info, err := result.GetExtractedInfo()
	if err != nil || len(info) == 0 {
		return "", fmt.Errorf("transfer finished but no extraction metadata was returned")
	}

	first := info[0]
	title := ""
	if first.Title != nil {
		title = *first.Title
	}
	if title == "" && first.Filename != nil {
		return filepath.Base(*first.Filename), nil
	}

	if !w.opts.Tier.IsAudio() {
		return title + MergedContainerExt, nil
	}

	ext := DefaultAudioExt
	if first.Extension != "" {
		ext = first.Extension
	}
	return title + "." + ext, nil
}

// publish pushes a snapshot without ever blocking the engine callback: a
// pending older snapshot is dropped in favor of the new one.
func (w *Worker) publish(snapshot model.ProgressSnapshot) {
	for {
		select {
		case w.progressCh <- snapshot:
			return
		default:
			select {
			case <-w.progressCh:
			default:
			}
		}
	}
}

// snapshotFromUpdate converts an engine progress update into an immutable
// snapshot. Missing fields default to zero; the rate is derived from bytes
// over elapsed time since the engine does not report one directly.
func snapshotFromUpdate(update ytdlp.ProgressUpdate) model.ProgressSnapshot {
	snapshot := model.ProgressSnapshot{
		Status:          model.TransferStatusDownloading,
		DownloadedBytes: int64(update.DownloadedBytes),
		TotalBytes:      int64(update.TotalBytes),
	}

	if update.Status == ytdlp.ProgressStatusFinished {
		snapshot.Status = model.TransferStatusFinished
	}

	if !update.Started.IsZero() {
		if elapsed := time.Since(update.Started); elapsed.Seconds() > 0 {
			snapshot.Rate = float64(snapshot.DownloadedBytes) / elapsed.Seconds()
		}
	}

	if eta := update.ETA(); eta > 0 {
		snapshot.ETASec = int(eta.Seconds())
	}

	if update.Info != nil && update.Info.Filename != nil {
		snapshot.Filename = filepath.Base(*update.Info.Filename)
	}

	return snapshot
}
