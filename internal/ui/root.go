package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"github.com/tubefetch/tube-downloader/internal/config"
	"github.com/tubefetch/tube-downloader/internal/download"
	"github.com/tubefetch/tube-downloader/internal/model"
	"github.com/tubefetch/tube-downloader/internal/platform"
	"github.com/tubefetch/tube-downloader/internal/progress"
)

// UI constants
const (
	UpdateInterval    = 500 * time.Millisecond
	FormatPlaceholder = "Select Format"

	HistoryColumns = 5
)

// Column widths for the history table
var historyColumnWidths = []float32{280, 90, 100, 90, 100}

// Column headers for the history table
var historyHeaders = []string{"Filename", "File Size", "Status", "Time Left", "Transfer Rate"}

// RootUI represents the main window: URL input, format selection, live
// progress, and the completed-downloads history table.
type RootUI struct {
	window   fyne.Window
	settings *config.Settings
	svc      *download.Service
	lister   *platform.FormatLister
	rows     *progress.Table

	urlEntry      *widget.Entry
	formatsBtn    *widget.Button
	formatSelect  *widget.Select
	playlistCheck *widget.Check
	downloadBtn   *widget.Button
	clearBtn      *widget.Button

	progressBar     *widget.ProgressBar
	downloadedLabel *widget.Label
	fileSizeLabel   *widget.Label
	fileNameLabel   *widget.Label
	destLabel       *widget.Label

	historyTable *widget.Table
	selected     map[int]bool
	deleteBtn    *widget.Button

	downloadDir string
	stopTicker  chan struct{}
}

// NewRootUI creates and wires the main window.
func NewRootUI(window fyne.Window, svc *download.Service, settings *config.Settings, rows *progress.Table) *RootUI {
	ui := &RootUI{
		window:      window,
		settings:    settings,
		svc:         svc,
		lister:      platform.NewFormatLister(),
		rows:        rows,
		selected:    make(map[int]bool),
		downloadDir: settings.GetDownloadDirectory(),
		stopTicker:  make(chan struct{}),
	}

	svc.SetDuplicatePolicy(settings.GetDuplicatePolicy())
	ui.buildWidgets()
	window.SetContent(ui.buildLayout())
	window.SetOnClosed(func() { close(ui.stopTicker) })

	ui.startTicker()
	return ui
}

func (ui *RootUI) buildWidgets() {
	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder("Paste a media URL")

	ui.formatsBtn = widget.NewButton("Get Formats", ui.onGetFormats)
	ui.formatSelect = widget.NewSelect(nil, nil)
	ui.formatSelect.PlaceHolder = FormatPlaceholder
	ui.playlistCheck = widget.NewCheck("Playlist", nil)
	ui.playlistCheck.SetChecked(ui.settings.GetIncludePlaylist())

	ui.downloadBtn = widget.NewButton("Download", ui.onDownload)
	ui.clearBtn = widget.NewButton("Clear", ui.onClear)

	ui.progressBar = widget.NewProgressBar()
	ui.downloadedLabel = widget.NewLabel("Downloaded: 0.00 MB")
	ui.fileSizeLabel = widget.NewLabel("File Size: 0.00 MB")
	ui.fileNameLabel = widget.NewLabel("File Name: None")
	ui.destLabel = widget.NewLabel("Destination Folder: " + ui.downloadDir)

	ui.deleteBtn = widget.NewButton("Delete Selected", ui.onDeleteSelected)
	ui.buildHistoryTable()
}

func (ui *RootUI) buildHistoryTable() {
	ui.historyTable = widget.NewTableWithHeaders(
		func() (int, int) {
			return ui.rows.Len(), HistoryColumns
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("")
		},
		func(id widget.TableCellID, obj fyne.CanvasObject) {
			label := obj.(*widget.Label)
			rows := ui.rows.Rows()
			if id.Row < 0 || id.Row >= len(rows) {
				label.SetText("")
				return
			}
			row := rows[id.Row]
			text := cellText(row, id.Col)
			if id.Col == 0 && ui.selected[id.Row] {
				text = "✓ " + text
			}
			label.SetText(text)
		},
	)

	ui.historyTable.CreateHeader = func() fyne.CanvasObject {
		return widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	}
	ui.historyTable.UpdateHeader = func(id widget.TableCellID, obj fyne.CanvasObject) {
		label := obj.(*widget.Label)
		if id.Row == -1 && id.Col >= 0 && id.Col < len(historyHeaders) {
			label.SetText(historyHeaders[id.Col])
		} else {
			label.SetText("")
		}
	}

	for col, width := range historyColumnWidths {
		ui.historyTable.SetColumnWidth(col, width)
	}

	// Tapping any cell toggles its row in the delete selection
	ui.historyTable.OnSelected = func(id widget.TableCellID) {
		if id.Row < 0 {
			return
		}
		if ui.selected[id.Row] {
			delete(ui.selected, id.Row)
		} else {
			ui.selected[id.Row] = true
		}
		ui.historyTable.UnselectAll()
		ui.historyTable.Refresh()
	}
}

func cellText(row progress.Row, col int) string {
	switch col {
	case 0:
		return row.Filename
	case 1:
		return row.FileSize
	case 2:
		return row.Status
	case 3:
		return row.TimeLeft
	case 4:
		return row.TransferRate
	default:
		return ""
	}
}

func (ui *RootUI) buildLayout() fyne.CanvasObject {
	urlRow := container.NewBorder(nil, nil, nil, ui.formatsBtn, ui.urlEntry)

	folderBtn := widget.NewButton("Choose Folder", ui.onChooseFolder)
	openBtn := widget.NewButton("Open Folder", ui.onOpenFolder)
	settingsBtn := widget.NewButton("Settings", ui.onShowSettings)
	controls := container.NewHBox(ui.formatSelect, ui.playlistCheck, ui.downloadBtn, ui.clearBtn, folderBtn, openBtn, settingsBtn)

	progressBox := container.NewVBox(
		ui.progressBar,
		container.NewHBox(ui.downloadedLabel, ui.fileSizeLabel),
		ui.fileNameLabel,
		ui.destLabel,
	)

	top := container.NewVBox(urlRow, controls, progressBox, ui.deleteBtn)
	return container.NewBorder(top, nil, nil, nil, ui.historyTable)
}

// startTicker runs the periodic projection loop: every tick re-renders the
// latest progress snapshot. Rendering is polled at a fixed cadence no matter
// how fast the engine emits events.
func (ui *RootUI) startTicker() {
	go func() {
		ticker := time.NewTicker(UpdateInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				view := ui.svc.Tick()
				fyne.Do(func() { ui.render(view) })
			case <-ui.stopTicker:
				return
			}
		}
	}()
}

// render applies one projected view to the widgets. Runs on the UI thread.
func (ui *RootUI) render(view progress.View) {
	ui.progressBar.SetValue(float64(view.Percent) / 100)
	ui.downloadedLabel.SetText("Downloaded: " + view.DownloadedDisplay)
	ui.fileSizeLabel.SetText("File Size: " + view.TotalDisplay)
	if view.Active && view.Filename != "" {
		ui.fileNameLabel.SetText("Downloading: " + model.NormalizeFilename(view.Filename))
	}
	ui.historyTable.Refresh()
}

func (ui *RootUI) onGetFormats() {
	url := strings.TrimSpace(ui.urlEntry.Text)
	if url == "" {
		dialog.ShowInformation("Input Error", "Please enter a valid URL.", ui.window)
		return
	}

	ui.formatsBtn.Disable()
	lazyPlaylist := ui.playlistCheck.Checked

	go func() {
		output, err := ui.lister.ListFormats(context.Background(), url, lazyPlaylist)
		fyne.Do(func() {
			ui.formatsBtn.Enable()
			if err != nil {
				dialog.ShowError(err, ui.window)
				return
			}
			catalog := platform.ParseFormats(output)
			ui.formatSelect.SetOptions(catalog.Options())
			ui.formatSelect.ClearSelected()
		})
	}()
}

func (ui *RootUI) onDownload() {
	opts := download.Options{
		URL:            strings.TrimSpace(ui.urlEntry.Text),
		Tier:           model.TierForSelection(ui.formatSelect.Selected),
		Playlist:       ui.playlistCheck.Checked,
		Dir:            ui.downloadDir,
		OutputTemplate: ui.settings.GetFilenameTemplate(),
	}

	worker, err := ui.svc.Start(opts)
	if err != nil {
		ui.showClassifiedError(err)
		return
	}

	ui.downloadBtn.Disable()
	logrus.Infof("download started: %s", opts.URL)

	go ui.consume(worker)
}

// consume relays the worker's three notification channels back into UI
// state. It exits after the single terminal event.
func (ui *RootUI) consume(worker *download.Worker) {
	for {
		select {
		case snapshot := <-worker.Progress():
			ui.svc.Observe(snapshot)

		case artifact := <-worker.Done():
			rec, err := ui.svc.Finalize(context.Background(), artifact)
			fyne.Do(func() {
				ui.downloadBtn.Enable()
				if err != nil {
					ui.showClassifiedError(err)
				} else {
					ui.fileNameLabel.SetText("File Name: " + rec.Filename)
					dialog.ShowInformation("Download Finished", "The download is complete!", ui.window)
				}
				ui.historyTable.Refresh()
			})
			return

		case err := <-worker.Err():
			ui.svc.Fail()
			fyne.Do(func() {
				ui.downloadBtn.Enable()
				dialog.ShowError(fmt.Errorf("an error occurred: %s", err), ui.window)
			})
			return
		}
	}
}

func (ui *RootUI) onClear() {
	ui.urlEntry.SetText("")
	ui.formatSelect.SetOptions(nil)
	ui.formatSelect.ClearSelected()
	ui.svc.ResetProgress()
	ui.progressBar.SetValue(0)
	ui.downloadedLabel.SetText("Downloaded: 0.00 MB")
	ui.fileSizeLabel.SetText("File Size: 0.00 MB")
	ui.fileNameLabel.SetText("File Name: None")
}

func (ui *RootUI) onDeleteSelected() {
	if len(ui.selected) == 0 {
		return
	}

	rows := ui.rows.Rows()
	var filenames []string
	for idx := range ui.selected {
		if idx >= 0 && idx < len(rows) {
			filenames = append(filenames, rows[idx].Filename)
		}
	}

	if err := ui.svc.Delete(context.Background(), filenames); err != nil {
		dialog.ShowError(err, ui.window)
		return
	}
	ui.selected = make(map[int]bool)
	ui.historyTable.Refresh()
}

func (ui *RootUI) onChooseFolder() {
	dialog.ShowFolderOpen(func(dir fyne.ListableURI, err error) {
		if err != nil {
			dialog.ShowError(fmt.Errorf("failed to select a directory: %w", err), ui.window)
			return
		}
		if dir == nil {
			return
		}
		ui.downloadDir = dir.Path()
		ui.settings.SetDownloadDirectory(ui.downloadDir)
		ui.destLabel.SetText("Destination Folder: " + ui.downloadDir)
	}, ui.window)
}

func (ui *RootUI) onOpenFolder() {
	if err := platform.OpenFolder(ui.downloadDir); err != nil {
		dialog.ShowError(err, ui.window)
	}
}

func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, func() {
		ui.svc.SetDuplicatePolicy(ui.settings.GetDuplicatePolicy())
		ui.downloadDir = ui.settings.GetDownloadDirectory()
		ui.destLabel.SetText("Destination Folder: " + ui.downloadDir)
	})
}

// showClassifiedError maps the error taxonomy onto modal titles.
func (ui *RootUI) showClassifiedError(err error) {
	switch {
	case errors.Is(err, download.ErrEmptyURL), errors.Is(err, download.ErrNoSelection):
		dialog.ShowInformation("Input Error", cap1(err.Error()), ui.window)
	case errors.Is(err, download.ErrTransferActive):
		dialog.ShowInformation("Download In Progress", cap1(err.Error()), ui.window)
	case errors.Is(err, download.ErrArtifactMissing):
		dialog.ShowError(fmt.Errorf("download finished but the file could not be found: %w", err), ui.window)
	default:
		dialog.ShowError(fmt.Errorf("an error occurred while saving to the database: %w", err), ui.window)
	}
}

func cap1(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
