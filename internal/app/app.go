// internal/app/app.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/cmkfilmes/leanfilmdesign/internal/config"
	"github.com/cmkfilmes/leanfilmdesign/internal/di"
	"github.com/cmkfilmes/leanfilmdesign/internal/services"
	"github.com/cmkfilmes/leanfilmdesign/internal/storage"
	"github.com/cmkfilmes/leanfilmdesign/internal/utils"
)

// serverInterface abstracts the HTTP server so tests can swap it out.
type serverInterface interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// App holds the process-wide state: configuration, router, server and
// the shutdown plumbing.
type App struct {
	config    *config.AppConfig
	router    http.Handler
	server    serverInterface
	stopChan  chan os.Signal
	trashStop chan struct{}
}

var instance *App

// GetApp returns the application singleton.
func GetApp() *App {
	if instance == nil {
		instance = &App{
			stopChan:  make(chan os.Signal, 1),
			trashStop: make(chan struct{}),
		}
	}
	return instance
}

// GetConfig returns the loaded application configuration.
func (a *App) GetConfig() *config.AppConfig {
	return a.config
}

// GetDIContainer exposes the service container.
func GetDIContainer() *di.Container {
	return di.GetContainer()
}

// IsDebugMode reports whether the app runs with debug logging enabled.
func IsDebugMode() bool {
	if instance == nil || instance.config == nil {
		return false
	}
	return instance.config.DebugMode
}

// Initialize loads configuration, sets up logging and builds every
// service in dependency order.
func Initialize(dataDir string) error {
	app := GetApp()

	if err := config.InitConfig(dataDir); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}

	cfg := config.GetCurrentConfig()
	app.config = cfg

	if err := initLogger(cfg.LogDir); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	if cfg.DebugMode {
		utils.GetLogger().SetLogLevel(utils.DEBUG)
	}

	if err := InitServices(); err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	return nil
}

// initLogger prepares the log directory and points the logger at a
// dated file.
func initLogger(logDir string) error {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	logFile := filepath.Join(logDir, fmt.Sprintf("app-%s.log", time.Now().Format("2006-01-02")))
	return utils.InitLogger(logFile)
}

// InitServices builds and registers every service in dependency order.
// The project store comes first, the gateway next, then the feature
// services that need both.
func InitServices() error {
	app := GetApp()
	container := di.GetContainer()
	cfg := config.GetCurrentConfig()

	fileStorage, err := storage.NewFileStorage(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	container.Register("storage", fileStorage)

	projectService, err := services.NewProjectService(fileStorage)
	if err != nil {
		return fmt.Errorf("failed to initialize project service: %w", err)
	}
	container.Register("projects", projectService)
	projectService.StartTrashCleanup(app.trashStop)

	gatewayService := services.NewGatewayService()
	container.Register("gateway", gatewayService)

	settingsService := services.NewSettingsService(gatewayService)
	settingsService.RestoreProvider()
	container.Register("settings", settingsService)

	container.Register("themes", services.NewThemeService(projectService, gatewayService))
	container.Register("characters", services.NewCharacterService(projectService, gatewayService))
	container.Register("narrative", services.NewNarrativeService(projectService, gatewayService))
	container.Register("consolidation", services.NewConsolidationService(projectService, gatewayService))
	container.Register("script", services.NewScriptService(projectService, gatewayService))
	container.Register("pitching", services.NewPitchingService(projectService, gatewayService))
	container.Register("analysis", services.NewAnalysisService(projectService, gatewayService))
	container.Register("export", services.NewExportService(projectService))

	chatService, err := services.NewChatService(projectService, gatewayService, fileStorage)
	if err != nil {
		return fmt.Errorf("failed to initialize chat service: %w", err)
	}
	container.Register("chat", chatService)

	userService, err := services.NewUserService(fileStorage)
	if err != nil {
		return fmt.Errorf("failed to initialize user service: %w", err)
	}
	container.Register("user", userService)

	return nil
}

// SetRouter installs the HTTP handler the server will run.
func (a *App) SetRouter(router http.Handler) {
	a.router = router
}

// Run starts the HTTP server and blocks until a termination signal
// arrives, then shuts everything down gracefully.
func Run() error {
	app := GetApp()
	logger := utils.GetLogger()

	if app.server == nil {
		app.server = &http.Server{
			Addr:    ":" + app.config.Port,
			Handler: app.router,
		}
	}

	go func() {
		if err := app.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	logger.Infof("server listening on port %s", app.config.Port)

	signal.Notify(app.stopChan, syscall.SIGINT, syscall.SIGTERM)
	<-app.stopChan

	logger.Info("shutting down server", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("forced server shutdown: %w", err)
	}

	app.cleanup()
	logger.Info("server stopped", nil)

	return nil
}

// cleanup releases background resources on shutdown.
func (a *App) cleanup() {
	if a.trashStop != nil {
		close(a.trashStop)
		a.trashStop = nil
	}
}
