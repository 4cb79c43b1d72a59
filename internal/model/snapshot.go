package model

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// TransferStatus represents the status of an in-flight or finished transfer
type TransferStatus string

const (
	// TransferStatusIdle means no transfer is active
	TransferStatusIdle TransferStatus = "Idle"

	// TransferStatusDownloading means bytes are being received
	TransferStatusDownloading TransferStatus = "Downloading"

	// TransferStatusFinished means the engine reported the transfer done;
	// post-processing (merge) may still follow before the artifact exists
	TransferStatusFinished TransferStatus = "Finished"

	// TransferStatusCompleted is the terminal display status written to history
	TransferStatusCompleted TransferStatus = "Completed"
)

// String returns the string representation of TransferStatus
func (ts TransferStatus) String() string {
	return string(ts)
}

// IsActive returns true while the engine is still moving bytes
func (ts TransferStatus) IsActive() bool {
	return ts == TransferStatusDownloading
}

// IsDone returns true once the engine reported a terminal state
func (ts TransferStatus) IsDone() bool {
	return ts == TransferStatusFinished || ts == TransferStatusCompleted
}

// ProgressSnapshot is one progress update describing a transfer's momentary
// state. Snapshots are immutable once built; the reconciler only ever replaces
// the current snapshot wholesale, never merges fields from an older one.
// Absent fields default to zero rather than carrying over prior values.
type ProgressSnapshot struct {
	Status          TransferStatus
	DownloadedBytes int64
	TotalBytes      int64   // 0 when unknown
	Rate            float64 // bytes per second, 0 when unknown
	ETASec          int     // seconds, 0 when unknown
	Filename        string
}

// Percent returns download completion in [0,100]. Unknown total yields 0,
// never a division fault.
func (ps ProgressSnapshot) Percent() float64 {
	if ps.TotalBytes <= 0 {
		return 0
	}
	percent := float64(ps.DownloadedBytes) / float64(ps.TotalBytes) * 100
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}

// ETAString renders the ETA as H:MM:SS with no sub-second part, or "N/A"
// when unknown.
func (ps ProgressSnapshot) ETAString() string {
	if ps.ETASec <= 0 {
		return "N/A"
	}
	d := time.Duration(ps.ETASec) * time.Second
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
}

// formatCodeSuffix matches the synthetic suffix the engine appends to
// fragment names before muxing, e.g. ".f137" or ".f140".
var formatCodeSuffix = regexp.MustCompile(`\.f\d+$`)

// mediaExtensions lists container extensions stripped during normalization.
// Only known extensions are removed so titles containing dots survive.
var mediaExtensions = map[string]bool{
	".mp4": true, ".m4a": true, ".webm": true, ".mkv": true,
	".mp3": true, ".opus": true, ".ogg": true, ".wav": true,
	".flac": true,
}

// NormalizeFilename strips the engine's in-flight ".part" marker, the media
// file extension, and exactly one trailing format-code suffix segment,
// leaving the title as the equality key for table rows. A ".part" fragment
// and its finished sibling normalize to the same key, so each transfer
// occupies a single row. Idempotent: normalizing a normalized name is a
// no-op.
func NormalizeFilename(filename string) string {
	base := strings.TrimSuffix(filename, ".part")
	if ext := filepath.Ext(base); mediaExtensions[strings.ToLower(ext)] {
		base = strings.TrimSuffix(base, ext)
	}
	return formatCodeSuffix.ReplaceAllString(base, "")
}
