package config

import (
	"fyne.io/fyne/v2"

	"github.com/tubefetch/tube-downloader/internal/download"
	"github.com/tubefetch/tube-downloader/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyDownloadDir      = "download_directory"
	KeyFilenameTemplate = "filename_template"
	KeyDuplicatePolicy  = "duplicate_policy"
	KeyIncludePlaylist  = "include_playlist"
)

// Default values
const (
	DefaultFilenameTemplate = download.DefaultOutputTemplate
	DefaultDuplicatePolicy  = download.DuplicateKeepBoth
)

// Settings manages application configuration backed by Fyne preferences.
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetDownloadDirectory returns the configured download directory
func (s *Settings) GetDownloadDirectory() string {
	dir := s.app.Preferences().String(KeyDownloadDir)
	if dir == "" {
		defaultDir, err := platform.DefaultDownloadsDir()
		if err != nil {
			defaultDir = "."
		}
		s.SetDownloadDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.app.Preferences().SetString(KeyDownloadDir, dir)
}

// GetFilenameTemplate returns the engine output filename template
func (s *Settings) GetFilenameTemplate() string {
	template := s.app.Preferences().String(KeyFilenameTemplate)
	if template == "" {
		s.SetFilenameTemplate(DefaultFilenameTemplate)
		return DefaultFilenameTemplate
	}
	return template
}

// SetFilenameTemplate sets the filename template
func (s *Settings) SetFilenameTemplate(template string) {
	if template == "" {
		template = DefaultFilenameTemplate
	}
	s.app.Preferences().SetString(KeyFilenameTemplate, template)
}

// GetDuplicatePolicy returns what a new completion does when history already
// holds a completed row for the same filename.
func (s *Settings) GetDuplicatePolicy() download.DuplicatePolicy {
	policy := download.DuplicatePolicy(s.app.Preferences().String(KeyDuplicatePolicy))
	if policy != download.DuplicateOverwrite && policy != download.DuplicateKeepBoth {
		s.SetDuplicatePolicy(DefaultDuplicatePolicy)
		return DefaultDuplicatePolicy
	}
	return policy
}

// SetDuplicatePolicy sets the duplicate handling policy
func (s *Settings) SetDuplicatePolicy(policy download.DuplicatePolicy) {
	if policy != download.DuplicateOverwrite {
		policy = download.DuplicateKeepBoth
	}
	s.app.Preferences().SetString(KeyDuplicatePolicy, string(policy))
}

// GetDuplicatePolicyOptions returns the selectable duplicate policies
func (s *Settings) GetDuplicatePolicyOptions() []download.DuplicatePolicy {
	return []download.DuplicatePolicy{download.DuplicateKeepBoth, download.DuplicateOverwrite}
}

// GetIncludePlaylist returns whether playlists are included by default
func (s *Settings) GetIncludePlaylist() bool {
	return s.app.Preferences().BoolWithFallback(KeyIncludePlaylist, false)
}

// SetIncludePlaylist sets the playlist inclusion default
func (s *Settings) SetIncludePlaylist(include bool) {
	s.app.Preferences().SetBool(KeyIncludePlaylist, include)
}

// HistoryBasePath returns the directory the history database lives under.
func (s *Settings) HistoryBasePath() string {
	if root := s.app.Storage().RootURI(); root != nil {
		return root.Path()
	}
	return "."
}
