package main

import (
	"context"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/sirupsen/logrus"

	"github.com/tubefetch/tube-downloader/internal/config"
	"github.com/tubefetch/tube-downloader/internal/download"
	"github.com/tubefetch/tube-downloader/internal/history"
	"github.com/tubefetch/tube-downloader/internal/platform"
	"github.com/tubefetch/tube-downloader/internal/progress"
	"github.com/tubefetch/tube-downloader/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.tubefetch.tube-downloader"
	AppName = "Tube Downloader"

	WindowWidth  = 860
	WindowHeight = 600
)

func main() {
	logrus.SetOutput(os.Stdout)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.Infof("%s v%s starting", AppName, version)

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewAppTheme())

	myWindow := myApp.NewWindow(AppName + " v" + version)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	settings := config.NewSettings(myApp)
	downloadsDir := settings.GetDownloadDirectory()
	if err := platform.EnsureDir(downloadsDir); err != nil {
		logrus.Errorf("failed to ensure downloads dir: %v", err)
	}

	dbPath, err := history.DefaultPath(settings.HistoryBasePath())
	if err != nil {
		logrus.Fatalf("failed to prepare history location: %v", err)
	}
	store := history.NewStore(dbPath)
	if err := store.EnsureTable(context.Background(), history.TableCompleted); err != nil {
		logrus.Fatalf("failed to ensure history table: %v", err)
	}

	rows := progress.NewTable()
	svc := download.NewService(store, progress.NewReconciler(), rows)
	if err := svc.Hydrate(context.Background()); err != nil {
		logrus.Errorf("failed to hydrate history: %v", err)
	}

	ui.NewRootUI(myWindow, svc, settings, rows)

	myWindow.ShowAndRun()
}
