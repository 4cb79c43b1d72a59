package download

import (
	"errors"
	"strings"

	"github.com/tubefetch/tube-downloader/internal/model"
)

// User-facing validation and completion errors. The UI classifies these into
// its modal categories.
var (
	// ErrEmptyURL means the user did not enter a URL
	ErrEmptyURL = errors.New("please enter a valid URL")

	// ErrNoSelection means no valid quality tier was selected
	ErrNoSelection = errors.New("please select a valid format")

	// ErrTransferActive means a transfer is already running this session
	ErrTransferActive = errors.New("a download is already in progress")

	// ErrArtifactMissing means the expected output file was not found on
	// disk after the engine reported completion
	ErrArtifactMissing = errors.New("downloaded file not found on disk")
)

// DuplicatePolicy decides what happens when a new completion carries a
// filename that already has a completed history row.
type DuplicatePolicy string

const (
	// DuplicateKeepBoth inserts a second row alongside the existing one
	DuplicateKeepBoth DuplicatePolicy = "duplicate"

	// DuplicateOverwrite deletes the existing rows before inserting
	DuplicateOverwrite DuplicatePolicy = "overwrite"
)

// DefaultOutputTemplate is the engine output filename template.
const DefaultOutputTemplate = "%(title)s.%(ext)s"

// Options describes one requested transfer.
type Options struct {
	URL            string
	Tier           model.Tier
	Playlist       bool
	Dir            string // destination directory, empty for the working dir
	OutputTemplate string // engine filename template, defaulted when empty
}

// Validate rejects requests that must never reach the engine: an empty URL
// or a selection that maps to no quality tier. No state is mutated on
// rejection.
func (o *Options) Validate() error {
	if strings.TrimSpace(o.URL) == "" {
		return ErrEmptyURL
	}
	if o.Tier == model.TierNone || o.Tier.FormatExpr() == "" {
		return ErrNoSelection
	}
	return nil
}

// outputTemplate returns the engine output template, prefixed with the
// destination directory when one was chosen.
func (o *Options) outputTemplate() string {
	template := o.OutputTemplate
	if template == "" {
		template = DefaultOutputTemplate
	}
	if o.Dir != "" {
		return o.Dir + "/" + template
	}
	return template
}
