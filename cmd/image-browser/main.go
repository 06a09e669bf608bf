package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"

	"image-browser/internal/config"
	"image-browser/internal/controllers"
	"image-browser/internal/logger"
	"image-browser/internal/opencv"
	"image-browser/internal/services"
	"image-browser/internal/shutdown"
	apptheme "image-browser/internal/theme"
	"image-browser/internal/views"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

const (
	AppName    = "Image Browser"
	AppID      = "com.example.image-browser"
	AppVersion = "1.0.0"
)

// Application holds the window and the components that outlive it.
type Application struct {
	fyneApp  fyne.App
	window   fyne.Window
	logger   logger.Logger
	cfg      *config.Config
	shutdown *shutdown.Manager

	controller *controllers.MainController
	view       *views.MainView
}

func main() {
	configPath := flag.String("config", config.DefaultPath(), "path to the YAML configuration file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-config file] [image or directory ...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Configuration failed: %v", err)
	}

	application, err := NewApplication(cfg)
	if err != nil {
		log.Fatalf("Application initialization failed: %v", err)
	}

	application.Run(flag.Args())
}

// NewApplication builds the window and wires controllers and views.
func NewApplication(cfg *config.Config) (*Application, error) {
	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	appLogger := logger.New(cfg.Log.Format, level)

	fyneApp := app.NewWithID(AppID)
	fyneApp.SetMetadata(&fyne.AppMetadata{
		ID:      AppID,
		Name:    AppName,
		Version: AppVersion,
	})

	th, err := apptheme.New(cfg.Theme)
	if err != nil {
		return nil, err
	}
	fyneApp.Settings().SetTheme(th)

	window := fyneApp.NewWindow(AppName)
	window.Resize(fyne.NewSize(cfg.Window.Width, cfg.Window.Height))
	window.CenterOnScreen()
	window.SetMaster()

	decoder, scaler := backend(cfg.Decoder)

	appLogger.Info("Application", "starting application", map[string]interface{}{
		"version":    AppVersion,
		"decoder":    cfg.Decoder,
		"formats":    services.SupportedSuffixes(decoder),
		"go_version": runtime.Version(),
		"window":     fmt.Sprintf("%.0fx%.0f", cfg.Window.Width, cfg.Window.Height),
	})

	controller := controllers.NewMainController(cfg, decoder, scaler, fyne.Do, appLogger)
	view := views.NewMainView(window, controller.Scene(), cfg, controller.ToolbarOptions())
	controller.SetMainView(view)

	manager := shutdown.NewManager(appLogger)
	manager.Register("controller", controller)

	application := &Application{
		fyneApp:    fyneApp,
		window:     window,
		logger:     appLogger,
		cfg:        cfg,
		shutdown:   manager,
		controller: controller,
		view:       view,
	}
	application.setupWindowEvents()

	return application, nil
}

func backend(name string) (services.Decoder, services.Scaler) {
	if name == config.DecoderOpenCV {
		return opencv.Decoder{}, opencv.Scaler{}
	}
	return services.StandardDecoder{}, services.DrawScaler{}
}

func (a *Application) setupWindowEvents() {
	a.window.SetCloseIntercept(func() {
		a.logger.Info("Application", "shutdown requested", nil)
		a.shutdown.Shutdown()
		a.window.Close()
	})
	a.shutdown.Listen(func() {
		fyne.Do(a.fyneApp.Quit)
	})
}

// Run opens paths, shows the window and blocks until the UI exits.
func (a *Application) Run(paths []string) {
	if len(paths) > 0 {
		a.fyneApp.Lifecycle().SetOnStarted(func() {
			if err := a.controller.OpenPaths(paths); err != nil {
				a.logger.Warning("Application", "some arguments were skipped", map[string]interface{}{
					"error": err.Error(),
				})
			}
		})
	}

	a.window.Show()
	a.fyneApp.Run()
	a.shutdown.Shutdown()
	a.logger.Info("Application", "terminated", nil)
}
