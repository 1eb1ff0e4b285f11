package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/clip-downloader/internal/config"
	"github.com/ytget/clip-downloader/internal/download"
	"github.com/ytget/clip-downloader/internal/medal"
	"github.com/ytget/clip-downloader/internal/metrics"
	"github.com/ytget/clip-downloader/internal/submit"
	"github.com/ytget/clip-downloader/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.clip-downloader"
	AppName = "Clip Downloader"

	WindowWidth  = 720
	WindowHeight = 480
)

func main() {
	fmt.Printf("Clip Downloader v%s starting...\n", version)

	if err := config.LoadEnv(); err != nil {
		log.Printf("no .env loaded: %v", err)
	}

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	// Saver, file name and timeout are applied from settings by the UI
	lookupTimeout := config.GetEnvInt(config.EnvLookupTimeoutSec, int(medal.DefaultHTTPTimeout/time.Second))
	lookupClient := &http.Client{Timeout: time.Duration(lookupTimeout) * time.Second}
	resolver := medal.NewResolver(lookupClient, config.GetEnv(config.EnvAPIBaseURL, medal.DefaultBaseURL))
	downloadSvc := download.NewService(nil, nil)
	controller := submit.NewController(resolver, downloadSvc)

	m := metrics.New()
	controller.SetRecorder(m)
	if addr := config.GetEnv(config.EnvMetricsAddr, ""); addr != "" {
		go serveMetrics(addr, m)
	}

	ui.NewRootUI(myWindow, myApp, controller, downloadSvc)

	myWindow.ShowAndRun()
}

func serveMetrics(addr string, m *metrics.Metrics) {
	srv := &http.Server{
		Addr:              addr,
		Handler:           metrics.NewRouter(m),
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Printf("metrics listening on %s%s", addr, metrics.MetricsPath)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("metrics server stopped: %v", err)
	}
}
