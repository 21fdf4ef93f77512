// internal/api/handlers.go
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/cmkfilmes/leanfilmdesign/internal/models"
	"github.com/cmkfilmes/leanfilmdesign/internal/services"
)

// Handler carries the services behind the HTTP surface.
type Handler struct {
	Projects      *services.ProjectService
	Gateway       *services.GatewayService
	Themes        *services.ThemeService
	Characters    *services.CharacterService
	Narrative     *services.NarrativeService
	Consolidation *services.ConsolidationService
	Script        *services.ScriptService
	Pitching      *services.PitchingService
	Analysis      *services.AnalysisService
	Chat          *services.ChatService
	Export        *services.ExportService
	Settings      *services.SettingsService
	Users         *services.UserService
	Response      *ResponseHelper
}

func NewHandler(
	projects *services.ProjectService,
	gateway *services.GatewayService,
	themes *services.ThemeService,
	characters *services.CharacterService,
	narrative *services.NarrativeService,
	consolidation *services.ConsolidationService,
	script *services.ScriptService,
	pitching *services.PitchingService,
	analysis *services.AnalysisService,
	chat *services.ChatService,
	export *services.ExportService,
	settings *services.SettingsService,
	users *services.UserService,
) *Handler {
	return &Handler{
		Projects:      projects,
		Gateway:       gateway,
		Themes:        themes,
		Characters:    characters,
		Narrative:     narrative,
		Consolidation: consolidation,
		Script:        script,
		Pitching:      pitching,
		Analysis:      analysis,
		Chat:          chat,
		Export:        export,
		Settings:      settings,
		Users:         users,
		Response:      NewResponseHelper(),
	}
}

// handleServiceError maps the service sentinels onto HTTP responses.
func (h *Handler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectNotFound):
		h.Response.NotFound(c, ErrorProjectNotFound, "Projeto não encontrado", err.Error())
	case errors.Is(err, services.ErrFileNotFound):
		h.Response.NotFound(c, ErrorFileNotFound, "Arquivo não encontrado", err.Error())
	case errors.Is(err, services.ErrTrashNotFound):
		h.Response.NotFound(c, ErrorTrashNotFound, "Item da lixeira não encontrado", err.Error())
	case errors.Is(err, services.ErrConversationNotFound):
		h.Response.NotFound(c, ErrorConversationNotFound, "Conversa não encontrada", err.Error())
	case errors.Is(err, services.ErrSubThemeNotFound):
		h.Response.NotFound(c, ErrorSubThemeNotFound, "Subtema não encontrado", err.Error())
	case errors.Is(err, services.ErrEmptyName):
		h.Response.Error(c, http.StatusBadRequest, ErrorEmptyName, "O nome não pode ser vazio")
	case errors.Is(err, services.ErrWrongFileType):
		h.Response.Error(c, http.StatusBadRequest, ErrorWrongFileType, "Operação não suportada para este tipo de arquivo")
	case errors.Is(err, services.ErrInvalidRange):
		h.Response.Error(c, http.StatusBadRequest, ErrorInvalidRange, "Intervalo de seleção inválido")
	case errors.Is(err, services.ErrEmptyMessage):
		h.Response.Error(c, http.StatusBadRequest, ErrorEmptyMessage, "A mensagem não pode ser vazia")
	case errors.Is(err, services.ErrUnknownSection):
		h.Response.Error(c, http.StatusBadRequest, ErrorUnknownSection, "Seção desconhecida", err.Error())
	case errors.Is(err, services.ErrUnknownCriterion):
		h.Response.Error(c, http.StatusBadRequest, ErrorUnknownCriterion, "Critério desconhecido", err.Error())
	case errors.Is(err, services.ErrUnknownStep):
		h.Response.Error(c, http.StatusBadRequest, ErrorUnknownStep, "Passo desconhecido", err.Error())
	case errors.Is(err, services.ErrUnknownPoint):
		h.Response.Error(c, http.StatusBadRequest, ErrorUnknownPoint, "Ponto de análise desconhecido", err.Error())
	case errors.Is(err, services.ErrPasswordMismatch):
		h.Response.Error(c, http.StatusBadRequest, ErrorPasswordMismatch, "A confirmação da senha não confere")
	case errors.Is(err, services.ErrWrongPassword):
		h.Response.Forbidden(c, "Senha atual incorreta")
	default:
		var validationErrors validation.Errors
		if errors.As(err, &validationErrors) {
			h.Response.BadRequest(c, "Dados inválidos", err.Error())
			return
		}
		h.Response.InternalError(c, "Erro interno", err.Error())
	}
}

// parseRole maps a URL segment onto a character role.
func parseRole(raw string) (models.CharacterRole, bool) {
	switch raw {
	case string(models.RoleProtagonist):
		return models.RoleProtagonist, true
	case string(models.RoleAntagonist):
		return models.RoleAntagonist, true
	}
	return "", false
}

// ========================================
// Projects and files
// ========================================

type nameRequest struct {
	Name string `json:"name"`
}

func (h *Handler) ListProjects(c *gin.Context) {
	h.Response.Success(c, h.Projects.ListProjects())
}

func (h *Handler) CreateProject(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Response.BadRequest(c, "Corpo da requisição inválido", err.Error())
		return
	}

	project, err := h.Projects.CreateProject(req.Name)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.Response.Created(c, project, "Projeto criado")
}

func (h *Handler) GetProject(c *gin.Context) {
	project, err := h.Projects.GetProject(c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.Response.Success(c, project)
}

func (h *Handler) RenameProject(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Response.BadRequest(c, "Corpo da requisição inválido", err.Error())
		return
	}

	if err := h.Projects.RenameProject(c.Param("id"), req.Name); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.Response.Success(c, nil, "Projeto renomeado")
}

func (h *Handler) DeleteProject(c *gin.Context) {
	item, err := h.Projects.DeleteProject(c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.Response.Success(c, item, "Projeto movido para a lixeira")
}

func (h *Handler) OpenProject(c *gin.Context) {
	if err := h.Projects.SetActiveProject(c.Param("id")); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.Response.Success(c, nil)
}

type createFileRequest struct {
	Name     string              `json:"name"`
	Type     string              `json:"type"`
	Metadata models.FileMetadata `json:"metadata"`
}

func (h *Handler) CreateFile(c *gin.Context) {
	var req createFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Response.BadRequest(c, "Corpo da requisição inválido", err.Error())
		return
	}

	fileType := models.FileType(req.Type)
	if fileType != models.FileTypeScript && fileType != models.FileTypeArgument {
		h.Response.BadRequest(c, "Tipo de arquivo inválido", req.Type)
		return
	}

	file, err := h.Projects.CreateFile(c.Param("id"), req.Name, fileType, req.Metadata)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.Response.Created(c, file, "Arquivo criado")
}

func (h *Handler) GetFile(c *gin.Context) {
	file, err := h.Projects.GetFile(c.Param("id"), c.Param("file_id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.Response.Success(c, file)
}

func (h *Handler) RenameFile(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Response.BadRequest(c, "Corpo da requisição inválido", err.Error())
		return
	}

	if err := h.Projects.RenameFile(c.Param("id"), c.Param("file_id"), req.Name); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.Response.Success(c, nil, "Arquivo renomeado")
}

func (h *Handler) DeleteFile(c *gin.Context) {
	item, err := h.Projects.DeleteFile(c.Param("id"), c.Param("file_id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.Response.Success(c, item, "Arquivo movido para a lixeira")
}

func (h *Handler) OpenFile(c *gin.Context) {
	if err := h.Projects.SetActiveProject(c.Param("id")); err != nil {
		h.handleServiceError(c, err)
		return
	}
	if err := h.Projects.SetActiveFile(c.Param("file_id")); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.Response.Success(c, nil)
}

func (h *Handler) GetActiveSelection(c *gin.Context) {
	projectID, fileID := h.Projects.ActiveSelection()
	h.Response.Success(c, gin.H{
		"project_id": projectID,
		"file_id":    fileID,
	})
}

type scriptContentRequest struct {
	Content string `json:"content"`
}

func (h *Handler) UpdateScript(c *gin.Context) {
	var req scriptContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Response.BadRequest(c, "Corpo da requisição inválido", err.Error())
		return
	}

	if err := h.Projects.UpdateScriptContent(c.Param("id"), c.Param("file_id"), req.Content); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.Response.Success(c, nil)
}

type argumentLinkRequest struct {
	ArgumentID string `json:"argument_id"`
}

func (h *Handler) SetArgumentLink(c *gin.Context) {
	var req argumentLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Response.BadRequest(c, "Corpo da requisição inválido", err.Error())
		return
	}

	if err := h.Projects.SetArgumentLink(c.Param("id"), c.Param("file_id"), req.ArgumentID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.Response.Success(c, nil, "Vínculo atualizado")
}

func (h *Handler) GetLinkedArgument(c *gin.Context) {
	argument, err := h.Projects.LinkedArgument(c.Param("id"), c.Param("file_id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.Response.Success(c, argument)
}

// ========================================
// Trash
// ========================================

func (h *Handler) ListTrash(c *gin.Context) {
	h.Response.Success(c, h.Projects.ListTrash())
}

func (h *Handler) RestoreTrashItem(c *gin.Context) {
	if err := h.Projects.RestoreItem(c.Param("id")); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.Response.Success(c, nil, "Item restaurado")
}

func (h *Handler) DeleteTrashItem(c *gin.Context) {
	if err := h.Projects.DeleteTrashItem(c.Param("id")); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.Response.Success(c, nil, "Item excluído definitivamente")
}

func (h *Handler) EmptyTrash(c *gin.Context) {
	removed := h.Projects.EmptyTrash()
	h.Response.Success(c, gin.H{"removed": removed}, "Lixeira esvaziada")
}

// ========================================
// Argument builder: themes
// ========================================

type generateThemesRequest struct {
	MainTheme string `json:"main_theme"`
}

func (h *Handler) GenerateThemes(c *gin.Context) {
	var req generateThemesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Response.BadRequest(c, "Corpo da requisição inválido", err.Error())
		return
	}

	argument, err := h.Themes.GenerateThemes(c.Request.Context(), c.Param("id"), c.Param("file_id"), req.MainTheme)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	eventHub.Broadcast("themes_generated", map[string]interface{}{
		"project_id": c.Param("id"),
		"file_id":    c.Param("file_id"),
	})

	h.Response.Success(c, argument, "Temas gerados")
}

func (h *Handler) RegenerateSubTheme(c *gin.Context) {
	argument, err := h.Themes.RegenerateSubTheme(c.Request.Context(), c.Param("id"), c.Param("file_id"), c.Param("sub_theme_id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.Response.Success(c, argument, "Subtema regenerado")
}

func (h *Handler) ToggleSubTheme(c *gin.Context) {
	argument, err := h.Themes.ToggleSubTheme(c.Param("id"), c.Param("file_id"), c.Param("sub_theme_id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.Response.Success(c, argument)
}

// ========================================
// Argument builder: characters
// ========================================

func (h *Handler) UpdateCharacterProfile(c *gin.Context) {
	role, ok := parseRole(c.Param("role"))
	if !ok {
		h.Response.BadRequest(c, "Papel de personagem inválido", c.Param("role"))
		return
	}

	var profile models.CharacterProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		h.Response.BadRequest(c, "Corpo da requisição inválido", err.Error())
		return
	}

	if err := h.Characters.UpdateProfile(c.Param("id"), c.Param("file_id"), role, profile); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.Response.Success(c, nil, "Perfil atualizado")
}

func (h *Handler) GenerateCharacterSummary(c *gin.Context) {
	role, ok := parseRole(c.Param("role"))
	if !ok {
		h.Response.BadRequest(c, "Papel de personagem inválido", c.Param("role"))
		return
	}

	summary, err := h.Characters.GenerateSummary(c.Request.Context(), c.Param("id"), c.Param("file_id"), role)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.Response.Success(c, gin.H{"summary": summary}, "Resumo gerado")
}

// ========================================
// Argument builder: narrative
// ========================================

func (h *Handler) UpdateNarrative(c *gin.Context) {
	var elements models.NarrativeElements
	if err := c.ShouldBindJSON(&elements); err != nil {
		h.Response.BadRequest(c, "Corpo da requisição inválido", err.Error())
		return
	}

	if err := h.Narrative.UpdateElements(c.Param("id"), c.Param("file_id"), elements); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.Response.Success(c, nil, "Narrativa atualizada")
}

func (h *Handler) GenerateNarrativeSummary(c *gin.Context) {
	summary, err := h.Narrative.GenerateSummary(c.Request.Context(), c.Param("id"), c.Param("file_id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.Response.Success(c, gin.H{"summary": summary}, "Resumo gerado")
}

// ========================================
// Argument builder: consolidation
// ========================================

func (h *Handler) GenerateConsolidated(c *gin.Context) {
	consolidated, err := h.Consolidation.Generate(c.Request.Context(), c.Param("id"), c.Param("file_id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	eventHub.Broadcast("argument_consolidated", map[string]interface{}{
		"project_id": c.Param("id"),
		"file_id":    c.Param("file_id"),
	})

	h.Response.Success(c, consolidated, "Argumento consolidado")
}

func (h *Handler) UpdateConsolidated(c *gin.Context) {
	var consolidated models.ConsolidatedArgument
	if err := c.ShouldBindJSON(&consolidated); err != nil {
		h.Response.BadRequest(c, "Corpo da requisição inválido", err.Error())
		return
	}

	if err := h.Consolidation.UpdateSections(c.Param("id"), c.Param("file_id"), consolidated); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.Response.Success(c, nil, "Seções atualizadas")
}

// ========================================
// Script editor
// ========================================

func (h *Handler) GetFormatTools(c *gin.Context) {
	h.Response.Success(c, services.FormatTools())
}

type insertFormatRequest struct {
	Start  int    `json:"start"`
	End    int    `json:"end"`
	Format string `json:"format"`
}

func (h *Handler) InsertFormat(c *gin.Context) {
	var req insertFormatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Response.BadRequest(c, "Corpo da requisição inválido", err.Error())
		return
	}

	content, cursor, err := h.Script.InsertFormat(c.Param("id"), c.Param("file_id"), req.Start, req.End, req.Format)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.Response.Success(c, gin.H{
		"content": content,
		"cursor":  cursor,
	})
}

type selectionRequest struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (h *Handler) ImproveSelection(c *gin.Context) {
	var req selectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Response.BadRequest(c, "Corpo da requisição inválido", err.Error())
		return
	}

	content, err := h.Script.ImproveSelection(c.Request.Context(), c.Param("id"), c.Param("file_id"), req.Start, req.End)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.Response.Success(c, gin.H{"content": content}, "Trecho aprimorado")
}

type generateSceneRequest struct {
	Tone      string `json:"tone"`
	Objective string `json:"objective"`
}

func (h *Handler) GenerateScene(c *gin.Context) {
	var req generateSceneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Response.BadRequest(c, "Corpo da requisição inválido", err.Error())
		return
	}

	content, err := h.Script.GenerateScene(c.Request.Context(), c.Param("id"), c.Param("file_id"), req.Tone, req.Objective)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	eventHub.Broadcast("scene_generated", map[string]interface{}{
		"project_id": c.Param("id"),
		"file_id":    c.Param("file_id"),
	})

	h.Response.Success(c, gin.H{"content": content}, "Cena gerada")
}

func (h *Handler) GetScriptStats(c *gin.Context) {
	stats, err := h.Script.Stats(c.Param("id"), c.Param("file_id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.Response.Success(c, stats)
}

// ========================================
// Pitching
// ========================================

func (h *Handler) GetPitchingSections(c *gin.Context) {
	h.Response.Success(c, h.Pitching.Sections())
}

type pitchingSectionRequest struct {
	Section string `json:"section"`
}

func (h *Handler) GeneratePitchingSection(c *gin.Context) {
	var req pitchingSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Response.BadRequest(c, "Corpo da requisição inválido", err.Error())
		return
	}

	content, err := h.Pitching.GenerateSection(c.Request.Context(), c.Param("id"), c.Param("file_id"), req.Section)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.Response.Success(c, gin.H{
		"section": req.Section,
		"content": content,
	})
}

// ========================================
// Analysis
// ========================================

func (h *Handler) GetAnalysisBoards(c *gin.Context) {
	h.Response.Success(c, gin.H{
		"criteria":         h.Analysis.Criteria(),
		"journey_steps":    h.Analysis.JourneySteps(),
		"dramaturgy":       h.Analysis.DramaturgyPoints(),
		"character_points": h.Analysis.CharacterPoints(),
		"market":           h.Analysis.MarketPoints(),
	})
}

type analysisSubjectRequest struct {
	Subject string `json:"subject"`
}

func (h *Handler) AnalyzeCriterion(c *gin.Context) {
	var req analysisSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Response.BadRequest(c, "Corpo da requisição inválido", err.Error())
		return
	}

	paragraphs, err := h.Analysis.AnalyzeCriterion(c.Request.Context(), c.Param("id"), c.Param("file_id"), req.Subject)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.Response.Success(c, paragraphs)
}

type analysisStepRequest struct {
	Step string `json:"step"`
}

func (h *Handler) AnalyzeJourneyStep(c *gin.Context) {
	var req analysisStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Response.BadRequest(c, "Corpo da requisição inválido", err.Error())
		return
	}

	paragraphs, err := h.Analysis.AnalyzeJourneyStep(c.Request.Context(), c.Param("id"), c.Param("file_id"), req.Step)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.Response.Success(c, paragraphs)
}

type analysisTitleRequest struct {
	Title string `json:"title"`
}

func (h *Handler) AnalyzeDramaturgyPoint(c *gin.Context) {
	var req analysisTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Response.BadRequest(c, "Corpo da requisição inválido", err.Error())
		return
	}

	content, err := h.Analysis.AnalyzeDramaturgyPoint(c.Request.Context(), c.Param("id"), c.Param("file_id"), req.Title)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.Response.Success(c, gin.H{"content": content})
}

type analysisCharacterRequest struct {
	Role  string `json:"role"`
	Point string `json:"point"`
}

func (h *Handler) AnalyzeCharacterPoint(c *gin.Context) {
	var req analysisCharacterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Response.BadRequest(c, "Corpo da requisição inválido", err.Error())
		return
	}

	role, ok := parseRole(req.Role)
	if !ok {
		h.Response.BadRequest(c, "Papel de personagem inválido", req.Role)
		return
	}

	content, err := h.Analysis.AnalyzeCharacterPoint(c.Request.Context(), c.Param("id"), c.Param("file_id"), role, req.Point)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.Response.Success(c, gin.H{"content": content})
}

func (h *Handler) AnalyzeMarketPoint(c *gin.Context) {
	var req analysisTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Response.BadRequest(c, "Corpo da requisição inválido", err.Error())
		return
	}

	content, err := h.Analysis.AnalyzeMarketPoint(c.Request.Context(), c.Param("id"), c.Param("file_id"), req.Title)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.Response.Success(c, gin.H{"content": content})
}

// ========================================
// Chat
// ========================================

func (h *Handler) ListConversations(c *gin.Context) {
	h.Response.Success(c, h.Chat.ListConversations())
}

func (h *Handler) GetConversation(c *gin.Context) {
	conversation, err := h.Chat.GetConversation(c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.Response.Success(c, conversation)
}

func (h *Handler) DeleteConversation(c *gin.Context) {
	if err := h.Chat.DeleteConversation(c.Param("id")); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.Response.Success(c, nil, "Conversa excluída")
}

type chatMessageRequest struct {
	ConversationID   string `json:"conversation_id"`
	Text             string `json:"text"`
	ContextProjectID string `json:"context_project_id"`
	ContextFileID    string `json:"context_file_id"`
}

func (h *Handler) SendChatMessage(c *gin.Context) {
	var req chatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Response.BadRequest(c, "Corpo da requisição inválido", err.Error())
		return
	}

	conversation, err := h.Chat.SendMessage(c.Request.Context(), req.ConversationID, req.Text, req.ContextProjectID, req.ContextFileID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	eventHub.Broadcast("chat_reply", map[string]interface{}{
		"conversation_id": conversation.ID,
	})

	h.Response.Success(c, conversation)
}

// ========================================
// Export
// ========================================

func (h *Handler) ExportScript(c *gin.Context) {
	filename, content, err := h.Export.ExportScript(c.Param("id"), c.Param("file_id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.Response.DownloadResponse(c, content, filename, "text/plain; charset=utf-8")
}

func (h *Handler) ExportConsolidated(c *gin.Context) {
	filename, content, err := h.Export.ExportConsolidated(c.Param("id"), c.Param("file_id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.Response.DownloadResponse(c, content, filename, "text/plain; charset=utf-8")
}

// ========================================
// Settings
// ========================================

func (h *Handler) GetSettings(c *gin.Context) {
	h.Response.Success(c, gin.H{
		"settings":  h.Settings.Current(),
		"providers": h.Settings.Providers(),
		"ready":     h.Gateway.Ready(),
	})
}

func (h *Handler) SaveSettings(c *gin.Context) {
	var settings services.LLMSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		h.Response.BadRequest(c, "Corpo da requisição inválido", err.Error())
		return
	}

	if err := h.Settings.Update(settings); err != nil {
		var validationErrors validation.Errors
		if errors.As(err, &validationErrors) {
			h.Response.Error(c, http.StatusBadRequest, ErrorSettingsInvalid, "Configurações inválidas", err.Error())
			return
		}
		h.handleServiceError(c, err)
		return
	}

	h.Response.Success(c, h.Settings.Current(), "Configurações salvas")
}

// ========================================
// Account
// ========================================

func (h *Handler) GetUserProfile(c *gin.Context) {
	h.Response.Success(c, h.Users.GetProfile())
}

func (h *Handler) UpdateUserProfile(c *gin.Context) {
	var update services.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		h.Response.BadRequest(c, "Corpo da requisição inválido", err.Error())
		return
	}

	profile, err := h.Users.UpdateProfile(update)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.Response.Success(c, profile, "Perfil atualizado")
}

func (h *Handler) ChangePassword(c *gin.Context) {
	var change services.PasswordChange
	if err := c.ShouldBindJSON(&change); err != nil {
		h.Response.BadRequest(c, "Corpo da requisição inválido", err.Error())
		return
	}

	if err := h.Users.ChangePassword(change); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.Response.Success(c, nil, "Senha alterada")
}
