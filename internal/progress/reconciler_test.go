package progress

import (
	"testing"

	"github.com/tubefetch/tube-downloader/internal/model"
)

func TestProjectIdle(t *testing.T) {
	r := NewReconciler()

	view := r.Project()
	if view.Active {
		t.Error("Idle reconciler should project an inactive view")
	}
	if view.Percent != 0 {
		t.Errorf("Idle percent = %d, expected 0", view.Percent)
	}
	if view.DownloadedDisplay != "0.00 MB" || view.TotalDisplay != "0.00 MB" {
		t.Errorf("Idle figures not zeroed: %s / %s", view.DownloadedDisplay, view.TotalDisplay)
	}
}

func TestObserveReplacesWholesale(t *testing.T) {
	r := NewReconciler()

	r.Observe(model.ProgressSnapshot{
		Status:          model.TransferStatusDownloading,
		DownloadedBytes: 50,
		TotalBytes:      100,
		Rate:            1024,
		ETASec:          30,
		Filename:        "clip.f137.mp4",
	})
	// New snapshot with no rate or ETA: absent fields stay zero, they are
	// not filled from the prior snapshot
	r.Observe(model.ProgressSnapshot{
		Status:          model.TransferStatusDownloading,
		DownloadedBytes: 80,
		TotalBytes:      100,
		Filename:        "clip.f137.mp4",
	})

	view := r.Project()
	if view.RateDisplay != "0.00 MB/s" {
		t.Errorf("RateDisplay = %s, expected 0.00 MB/s (no carry-over)", view.RateDisplay)
	}
	if view.TimeLeft != "N/A" {
		t.Errorf("TimeLeft = %s, expected N/A (no carry-over)", view.TimeLeft)
	}
	if view.Percent != 80 {
		t.Errorf("Percent = %d, expected 80", view.Percent)
	}
}

func TestSnapshotSequenceProjection(t *testing.T) {
	r := NewReconciler()

	r.Observe(model.ProgressSnapshot{
		Status:          model.TransferStatusDownloading,
		DownloadedBytes: 50,
		TotalBytes:      100,
		Filename:        "vid.mp4",
	})
	view := r.Project()
	if view.Percent != 50 || view.StatusDisplay != "50.00%" {
		t.Errorf("First projection = %d%% %q, expected 50%% \"50.00%%\"", view.Percent, view.StatusDisplay)
	}

	r.Observe(model.ProgressSnapshot{
		Status:          model.TransferStatusDownloading,
		DownloadedBytes: 100,
		TotalBytes:      100,
		Filename:        "vid.mp4",
	})
	view = r.Project()
	if view.Percent != 100 || view.StatusDisplay != "Completed" {
		t.Errorf("Second projection = %d%% %q, expected 100%% \"Completed\"", view.Percent, view.StatusDisplay)
	}

	r.Observe(model.ProgressSnapshot{
		Status:     model.TransferStatusFinished,
		TotalBytes: 100,
		Filename:   "vid.mp4",
	})
	view = r.Project()
	if view.Status != model.TransferStatusFinished {
		t.Errorf("Status = %s, expected Finished", view.Status)
	}
	// Terminal snapshot: downloaded snaps to total, rate and ETA drop
	if view.DownloadedDisplay != view.TotalDisplay {
		t.Errorf("Downloaded %s != total %s after finish", view.DownloadedDisplay, view.TotalDisplay)
	}
	if view.RateDisplay != "0.00 MB/s" || view.TimeLeft != "N/A" {
		t.Errorf("Rate/ETA not zeroed after finish: %s / %s", view.RateDisplay, view.TimeLeft)
	}
}

func TestProjectUnknownTotal(t *testing.T) {
	r := NewReconciler()

	r.Observe(model.ProgressSnapshot{
		Status:          model.TransferStatusDownloading,
		DownloadedBytes: 1024,
		Filename:        "vid.mp4",
	})

	view := r.Project()
	if view.Percent != 0 {
		t.Errorf("Percent with unknown total = %d, expected 0", view.Percent)
	}
}

func TestReset(t *testing.T) {
	r := NewReconciler()

	r.Observe(model.ProgressSnapshot{
		Status:          model.TransferStatusDownloading,
		DownloadedBytes: 50,
		TotalBytes:      100,
		Filename:        "vid.mp4",
	})
	r.Reset()

	view := r.Project()
	if view.Active {
		t.Error("Reconciler should be idle after Reset")
	}
	if r.Filename() != "" {
		t.Errorf("Filename after reset = %q, expected empty", r.Filename())
	}
}
