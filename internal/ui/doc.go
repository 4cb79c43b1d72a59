package ui

// Package ui contains the Fyne-based desktop user interface: the main
// window wiring user input to the download service, the history table, the
// settings dialog, and the application theme. All cross-thread UI mutation
// goes through fyne.Do.
