package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/tubefetch/tube-downloader/internal/config"
	"github.com/tubefetch/tube-downloader/internal/download"
)

// ShowSettingsDialog displays the settings dialog. onSaved runs after the
// user confirms and the preferences were written.
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, onSaved func()) {
	downloadDirEntry := widget.NewEntry()
	downloadDirEntry.SetText(settings.GetDownloadDirectory())

	templateEntry := widget.NewEntry()
	templateEntry.SetPlaceHolder(config.DefaultFilenameTemplate)
	templateEntry.SetText(settings.GetFilenameTemplate())

	policyOptions := []string{}
	for _, policy := range settings.GetDuplicatePolicyOptions() {
		policyOptions = append(policyOptions, string(policy))
	}
	policySelect := widget.NewSelect(policyOptions, nil)
	policySelect.SetSelected(string(settings.GetDuplicatePolicy()))

	playlistCheck := widget.NewCheck("Include playlists by default", nil)
	playlistCheck.SetChecked(settings.GetIncludePlaylist())

	form := container.NewVBox(
		widget.NewForm(
			widget.NewFormItem("Download Directory", downloadDirEntry),
			widget.NewFormItem("Filename Template", templateEntry),
			widget.NewFormItem("On Duplicate Filename", policySelect),
		),
		playlistCheck,
	)

	dialog.ShowCustomConfirm("Settings", "Save", "Cancel", form, func(save bool) {
		if !save {
			return
		}
		settings.SetDownloadDirectory(downloadDirEntry.Text)
		settings.SetFilenameTemplate(templateEntry.Text)
		settings.SetDuplicatePolicy(download.DuplicatePolicy(policySelect.Selected))
		settings.SetIncludePlaylist(playlistCheck.Checked)
		if onSaved != nil {
			onSaved()
		}
	}, window)
}
