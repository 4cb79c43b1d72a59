package config

import (
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/tubefetch/tube-downloader/internal/download"
)

func TestNewSettings(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.app != app {
		t.Error("Settings app reference should match provided app")
	}
}

func TestDownloadDirectory(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	dir := settings.GetDownloadDirectory()
	if dir == "" {
		t.Error("Download directory should not be empty")
	}

	// Test setting custom value
	customDir := "/custom/downloads"
	settings.SetDownloadDirectory(customDir)

	retrievedDir := settings.GetDownloadDirectory()
	if retrievedDir != customDir {
		t.Errorf("Expected download directory %s, got %s", customDir, retrievedDir)
	}
}

func TestFilenameTemplate(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if template := settings.GetFilenameTemplate(); template != DefaultFilenameTemplate {
		t.Errorf("Expected default template %s, got %s", DefaultFilenameTemplate, template)
	}

	settings.SetFilenameTemplate("%(id)s.%(ext)s")
	if template := settings.GetFilenameTemplate(); template != "%(id)s.%(ext)s" {
		t.Errorf("Expected custom template, got %s", template)
	}

	// Empty resets to default
	settings.SetFilenameTemplate("")
	if template := settings.GetFilenameTemplate(); template != DefaultFilenameTemplate {
		t.Errorf("Expected default template after empty set, got %s", template)
	}
}

func TestDuplicatePolicy(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if policy := settings.GetDuplicatePolicy(); policy != download.DuplicateKeepBoth {
		t.Errorf("Expected default policy %s, got %s", download.DuplicateKeepBoth, policy)
	}

	settings.SetDuplicatePolicy(download.DuplicateOverwrite)
	if policy := settings.GetDuplicatePolicy(); policy != download.DuplicateOverwrite {
		t.Errorf("Expected overwrite policy, got %s", policy)
	}

	// Unknown values fall back to keep-both
	settings.SetDuplicatePolicy(download.DuplicatePolicy("bogus"))
	if policy := settings.GetDuplicatePolicy(); policy != download.DuplicateKeepBoth {
		t.Errorf("Expected keep-both for unknown policy, got %s", policy)
	}
}

func TestIncludePlaylist(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.GetIncludePlaylist() {
		t.Error("Playlist inclusion should default to false")
	}

	settings.SetIncludePlaylist(true)
	if !settings.GetIncludePlaylist() {
		t.Error("Playlist inclusion should be true after set")
	}
}
