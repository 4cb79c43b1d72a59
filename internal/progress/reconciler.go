package progress

import (
	"fmt"
	"sync"

	"github.com/tubefetch/tube-downloader/internal/model"
)

// View is the projection of the current snapshot into UI-visible display
// fields. It is recomputed on every periodic tick; snapshots may arrive far
// faster than ticks and only the latest one is ever projected.
type View struct {
	Active            bool
	Status            model.TransferStatus
	Filename          string
	DownloadedDisplay string
	TotalDisplay      string
	Percent           int    // 0..100
	StatusDisplay     string // "42.10%" while in flight, "Completed" at 100
	TimeLeft          string
	RateDisplay       string
}

// Reconciler holds the single authoritative snapshot for the in-flight
// transfer. Snapshots arrive from the worker goroutine and are replaced
// wholesale; the UI thread projects the latest one on its own cadence.
// At most one snapshot is current at any instant.
type Reconciler struct {
	mu      sync.Mutex
	current *model.ProgressSnapshot
}

// NewReconciler creates an idle reconciler.
func NewReconciler() *Reconciler {
	return &Reconciler{}
}

// Observe replaces the current snapshot. Older snapshots are discarded, not
// merged: fields absent from the new snapshot stay at their zero defaults.
func (r *Reconciler) Observe(snapshot model.ProgressSnapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if snapshot.Status == model.TransferStatusFinished {
		// Terminal snapshot: downloaded catches up to total, rate and ETA drop
		snapshot.DownloadedBytes = snapshot.TotalBytes
		snapshot.Rate = 0
		snapshot.ETASec = 0
	}
	r.current = &snapshot
}

// Reset clears the snapshot, returning the reconciler to idle. The next
// tick projects zeroed figures without error.
func (r *Reconciler) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = nil
}

// Filename returns the latest snapshot's filename, empty when idle.
func (r *Reconciler) Filename() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == nil {
		return ""
	}
	return r.current.Filename
}

// Project computes the display view of the latest snapshot. Idle yields an
// inactive view with zeroed figures. Missing totals project percent 0,
// never a division fault.
func (r *Reconciler) Project() View {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current == nil {
		return View{
			Status:            model.TransferStatusIdle,
			DownloadedDisplay: model.MiBString(0),
			TotalDisplay:      model.MiBString(0),
			TimeLeft:          model.CompletedTimeLeft,
			RateDisplay:       model.RateString(0),
		}
	}

	s := r.current
	percent := s.Percent()

	statusDisplay := fmt.Sprintf("%.2f%%", percent)
	if percent >= 100 {
		statusDisplay = model.TransferStatusCompleted.String()
	}

	return View{
		Active:            true,
		Status:            s.Status,
		Filename:          s.Filename,
		DownloadedDisplay: model.MiBString(s.DownloadedBytes),
		TotalDisplay:      model.MiBString(s.TotalBytes),
		Percent:           clampPercent(int(percent)),
		StatusDisplay:     statusDisplay,
		TimeLeft:          s.ETAString(),
		RateDisplay:       model.RateString(s.Rate),
	}
}

func clampPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
