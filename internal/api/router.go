// internal/api/router.go
package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cmkfilmes/leanfilmdesign/internal/config"
	"github.com/cmkfilmes/leanfilmdesign/internal/di"
	"github.com/cmkfilmes/leanfilmdesign/internal/services"
)

// SetupRouter wires the HTTP routes. Services come from the container;
// the router never creates its own instances.
func SetupRouter() (*gin.Engine, error) {
	cfg := config.GetCurrentConfig()

	if !cfg.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	container := di.GetContainer()

	projectService, ok := container.Get("projects").(*services.ProjectService)
	if !ok {
		return nil, fmt.Errorf("project service not initialized")
	}

	gatewayService, ok := container.Get("gateway").(*services.GatewayService)
	if !ok {
		return nil, fmt.Errorf("gateway service not initialized")
	}

	themeService, ok := container.Get("themes").(*services.ThemeService)
	if !ok {
		return nil, fmt.Errorf("theme service not initialized")
	}

	characterService, ok := container.Get("characters").(*services.CharacterService)
	if !ok {
		return nil, fmt.Errorf("character service not initialized")
	}

	narrativeService, ok := container.Get("narrative").(*services.NarrativeService)
	if !ok {
		return nil, fmt.Errorf("narrative service not initialized")
	}

	consolidationService, ok := container.Get("consolidation").(*services.ConsolidationService)
	if !ok {
		return nil, fmt.Errorf("consolidation service not initialized")
	}

	scriptService, ok := container.Get("script").(*services.ScriptService)
	if !ok {
		return nil, fmt.Errorf("script service not initialized")
	}

	pitchingService, ok := container.Get("pitching").(*services.PitchingService)
	if !ok {
		return nil, fmt.Errorf("pitching service not initialized")
	}

	analysisService, ok := container.Get("analysis").(*services.AnalysisService)
	if !ok {
		return nil, fmt.Errorf("analysis service not initialized")
	}

	chatService, ok := container.Get("chat").(*services.ChatService)
	if !ok {
		return nil, fmt.Errorf("chat service not initialized")
	}

	exportService, ok := container.Get("export").(*services.ExportService)
	if !ok {
		return nil, fmt.Errorf("export service not initialized")
	}

	settingsService, ok := container.Get("settings").(*services.SettingsService)
	if !ok {
		return nil, fmt.Errorf("settings service not initialized")
	}

	userService, ok := container.Get("user").(*services.UserService)
	if !ok {
		return nil, fmt.Errorf("user service not initialized")
	}

	handler := NewHandler(
		projectService,
		gatewayService,
		themeService,
		characterService,
		narrativeService,
		consolidationService,
		scriptService,
		pitchingService,
		analysisService,
		chatService,
		exportService,
		settingsService,
		userService,
	)

	r := gin.Default()

	r.Use(corsMiddleware())
	r.Use(requestIDMiddleware())
	r.Use(DefaultRateLimit())

	// Workspace event stream
	r.GET("/ws/workspace", handler.WorkspaceWebSocket)

	api := r.Group("/api")
	{
		// ===============================
		// Projects and files
		// ===============================
		projectsGroup := api.Group("/projects")
		{
			projectsGroup.GET("", handler.ListProjects)
			projectsGroup.POST("", handler.CreateProject)
			projectsGroup.GET("/:id", handler.GetProject)
			projectsGroup.PUT("/:id", handler.RenameProject)
			projectsGroup.DELETE("/:id", handler.DeleteProject)
			projectsGroup.POST("/:id/open", handler.OpenProject)

			filesGroup := projectsGroup.Group("/:id/files")
			{
				filesGroup.POST("", handler.CreateFile)
				filesGroup.GET("/:file_id", handler.GetFile)
				filesGroup.PUT("/:file_id", handler.RenameFile)
				filesGroup.DELETE("/:file_id", handler.DeleteFile)
				filesGroup.POST("/:file_id/open", handler.OpenFile)
				filesGroup.PUT("/:file_id/link", handler.SetArgumentLink)
				filesGroup.GET("/:file_id/linked-argument", handler.GetLinkedArgument)

				// Argument builder tabs
				argumentGroup := filesGroup.Group("/:file_id/argument")
				{
					argumentGroup.POST("/themes", GenerationRateLimit(), handler.GenerateThemes)
					argumentGroup.POST("/themes/:sub_theme_id/regenerate", GenerationRateLimit(), handler.RegenerateSubTheme)
					argumentGroup.POST("/themes/:sub_theme_id/toggle", handler.ToggleSubTheme)

					argumentGroup.PUT("/characters/:role", handler.UpdateCharacterProfile)
					argumentGroup.POST("/characters/:role/summary", GenerationRateLimit(), handler.GenerateCharacterSummary)

					argumentGroup.PUT("/narrative", handler.UpdateNarrative)
					argumentGroup.POST("/narrative/summary", GenerationRateLimit(), handler.GenerateNarrativeSummary)

					argumentGroup.POST("/consolidated", GenerationRateLimit(), handler.GenerateConsolidated)
					argumentGroup.PUT("/consolidated", handler.UpdateConsolidated)
				}

				// Screenplay editor
				scriptGroup := filesGroup.Group("/:file_id/script")
				{
					scriptGroup.PUT("", handler.UpdateScript)
					scriptGroup.POST("/format", handler.InsertFormat)
					scriptGroup.POST("/improve", GenerationRateLimit(), handler.ImproveSelection)
					scriptGroup.POST("/scene", GenerationRateLimit(), handler.GenerateScene)
					scriptGroup.GET("/stats", handler.GetScriptStats)
				}

				// Pitching
				filesGroup.POST("/:file_id/pitching", GenerationRateLimit(), handler.GeneratePitchingSection)

				// Script analysis screens
				analysisGroup := filesGroup.Group("/:file_id/analysis")
				{
					analysisGroup.POST("/criterion", GenerationRateLimit(), handler.AnalyzeCriterion)
					analysisGroup.POST("/journey", GenerationRateLimit(), handler.AnalyzeJourneyStep)
					analysisGroup.POST("/dramaturgy", GenerationRateLimit(), handler.AnalyzeDramaturgyPoint)
					analysisGroup.POST("/character", GenerationRateLimit(), handler.AnalyzeCharacterPoint)
					analysisGroup.POST("/market", GenerationRateLimit(), handler.AnalyzeMarketPoint)
				}

				// Export
				exportGroup := filesGroup.Group("/:file_id/export")
				{
					exportGroup.GET("/script", handler.ExportScript)
					exportGroup.GET("/consolidated", handler.ExportConsolidated)
				}
			}
		}

		// ===============================
		// Workspace state and trash
		// ===============================
		api.GET("/workspace/selection", handler.GetActiveSelection)

		trashGroup := api.Group("/trash")
		{
			trashGroup.GET("", handler.ListTrash)
			trashGroup.DELETE("", handler.EmptyTrash)
			trashGroup.POST("/:id/restore", handler.RestoreTrashItem)
			trashGroup.DELETE("/:id", handler.DeleteTrashItem)
		}

		// ===============================
		// Static catalogs
		// ===============================
		api.GET("/script/tools", handler.GetFormatTools)
		api.GET("/pitching/sections", handler.GetPitchingSections)
		api.GET("/analysis/boards", handler.GetAnalysisBoards)

		// ===============================
		// Chat consultant
		// ===============================
		chatGroup := api.Group("/chat")
		{
			chatGroup.POST("", GenerationRateLimit(), handler.SendChatMessage)
			chatGroup.GET("/conversations", handler.ListConversations)
			chatGroup.GET("/conversations/:id", handler.GetConversation)
			chatGroup.DELETE("/conversations/:id", handler.DeleteConversation)
		}

		// ===============================
		// Settings and account
		// ===============================
		settingsGroup := api.Group("/settings")
		{
			settingsGroup.GET("", handler.GetSettings)
			settingsGroup.POST("", handler.SaveSettings)
		}

		userGroup := api.Group("/user")
		{
			userGroup.GET("/profile", handler.GetUserProfile)
			userGroup.PUT("/profile", handler.UpdateUserProfile)
			userGroup.POST("/password", handler.ChangePassword)
		}

		// Debug
		api.GET("/ws/status", handler.GetWebSocketStatus)
	}

	return r, nil
}

// corsMiddleware enables cross-origin requests from the workspace UI.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
