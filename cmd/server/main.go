// cmd/server/main.go
package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/cmkfilmes/leanfilmdesign/internal/api"
	"github.com/cmkfilmes/leanfilmdesign/internal/app"
	"github.com/cmkfilmes/leanfilmdesign/internal/config"

	_ "github.com/cmkfilmes/leanfilmdesign/internal/llm/providers/google"
)

func main() {
	baseConfig, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	createDirectories(baseConfig)

	if err := app.Initialize(baseConfig.DataDir); err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	router, err := api.SetupRouter()
	if err != nil {
		log.Fatalf("failed to set up routes: %v", err)
	}
	app.GetApp().SetRouter(router)

	log.Printf("workspace available at http://localhost:%s", baseConfig.Port)

	if err := app.Run(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// createDirectories makes sure the data layout exists before any
// service touches it.
func createDirectories(cfg *config.Config) {
	dirs := []string{
		cfg.DataDir,
		filepath.Join(cfg.DataDir, "projects"),
		filepath.Join(cfg.DataDir, "trash"),
		filepath.Join(cfg.DataDir, "conversations"),
		filepath.Join(cfg.DataDir, "users"),
		cfg.LogDir,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("failed to create directory %s: %v", dir, err)
		}
	}
}
