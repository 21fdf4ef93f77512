// internal/services/script_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmkfilmes/leanfilmdesign/internal/models"
	"github.com/cmkfilmes/leanfilmdesign/internal/parser"
)

// linesPerPage approximates one screenplay page in the editor.
const linesPerPage = 55

var ErrInvalidRange = errors.New("selection range out of bounds")

// FormatTool is one entry of the screenplay formatting toolbar.
type FormatTool struct {
	Label  string `json:"label"`
	Format string `json:"format"`
}

// FormatTools lists the snippets the editor can insert at the cursor.
func FormatTools() []FormatTool {
	return []FormatTool{
		{Label: "Cena", Format: "\n\nCENA INT. LOCAL - DIA\n\n"},
		{Label: "Ação", Format: "Descrição da ação."},
		{Label: "Personagem", Format: "\n\nPERSONAGEM\n"},
		{Label: "Diálogo", Format: "Fala do personagem."},
		{Label: "Parêntese", Format: "(emoção)\n"},
		{Label: "Transição", Format: "\n\nCORTA PARA:\n"},
	}
}

// ScriptStats is the footer information of the editor.
type ScriptStats struct {
	LineCount int `json:"line_count"`
	PageCount int `json:"page_count"`
}

// ScriptService drives the screenplay editor: formatting inserts, the
// AI improve and scene actions and the editor stats. All offsets are
// byte offsets into the UTF-8 text.
type ScriptService struct {
	projects *ProjectService
	gateway  *GatewayService
}

func NewScriptService(projects *ProjectService, gateway *GatewayService) *ScriptService {
	return &ScriptService{
		projects: projects,
		gateway:  gateway,
	}
}

func (s *ScriptService) scriptSnapshot(projectID, fileID string) (*models.File, error) {
	file, err := s.projects.GetFile(projectID, fileID)
	if err != nil {
		return nil, err
	}
	if file.Type != models.FileTypeScript {
		return nil, ErrWrongFileType
	}
	return file, nil
}

// InsertFormat replaces the [start,end) selection with a formatting
// snippet and collapses any triple blank line the insert produced.
// It returns the new content and the cursor position after the insert.
func (s *ScriptService) InsertFormat(projectID, fileID string, start, end int, format string) (string, int, error) {
	file, err := s.scriptSnapshot(projectID, fileID)
	if err != nil {
		return "", 0, err
	}

	content := file.Script
	if start < 0 || end < start || end > len(content) {
		return "", 0, ErrInvalidRange
	}

	newContent := content[:start] + format + content[end:]
	for strings.Contains(newContent, "\n\n\n") {
		newContent = strings.ReplaceAll(newContent, "\n\n\n", "\n\n")
	}

	if err := s.projects.UpdateScriptContent(projectID, fileID, newContent); err != nil {
		return "", 0, err
	}

	cursor := start + len(format)
	if cursor > len(newContent) {
		cursor = len(newContent)
	}

	return newContent, cursor, nil
}

// ImproveSelection rewrites the [start,end) selection with AI help,
// using the linked argument as context, and replaces exactly that
// range. The generation runs on a snapshot; writing the spliced result
// back makes the latest edit win.
func (s *ScriptService) ImproveSelection(ctx context.Context, projectID, fileID string, start, end int) (string, error) {
	file, err := s.scriptSnapshot(projectID, fileID)
	if err != nil {
		return "", err
	}

	content := file.Script
	if start < 0 || end < start || end > len(content) {
		return "", ErrInvalidRange
	}
	selected := content[start:end]
	if selected == "" {
		return "", ErrInvalidRange
	}

	argumentContext, err := s.argumentContext(projectID, fileID)
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf("Considerando o seguinte roteiro e seu argumento, melhore o trecho selecionado.\n\nArgumento: \"\"\"%s\"\"\"\n\nRoteiro: \"\"\"%s\"\"\"\n\nTrecho selecionado para melhorar: %q\n\nResponda apenas com o texto melhorado.",
		argumentContext, content, selected)

	improved := s.gateway.Generate(ctx, prompt)

	newContent := content[:start] + improved + content[end:]
	if err := s.projects.UpdateScriptContent(projectID, fileID, newContent); err != nil {
		return "", err
	}

	return newContent, nil
}

// GenerateScene appends a new AI-written scene with the requested tone
// and objective.
func (s *ScriptService) GenerateScene(ctx context.Context, projectID, fileID, tone, objective string) (string, error) {
	file, err := s.scriptSnapshot(projectID, fileID)
	if err != nil {
		return "", err
	}

	argumentContext, err := s.argumentContext(projectID, fileID)
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf("Com base no roteiro e argumento, crie uma nova cena.\n\nArgumento: \"\"\"%s\"\"\"\n\nRoteiro: \"\"\"%s\"\"\"\n\nTom da cena: %s\nObjetivo da cena: %s\n\nEscreva a cena completa no formato de roteiro padrão Master Scene. Responda apenas com o texto da cena, sem incluir marcadores como ```screenplay ou [INÍCIO DA CENA].",
		argumentContext, file.Script, tone, objective)

	scene := s.gateway.Generate(ctx, prompt)

	newContent := file.Script + "\n\n" + scene
	if err := s.projects.UpdateScriptContent(projectID, fileID, newContent); err != nil {
		return "", err
	}

	return newContent, nil
}

// Stats reports the line and approximate page count of a script.
func (s *ScriptService) Stats(projectID, fileID string) (ScriptStats, error) {
	file, err := s.scriptSnapshot(projectID, fileID)
	if err != nil {
		return ScriptStats{}, err
	}

	lines := strings.Count(file.Script, "\n") + 1
	pages := (lines + linesPerPage - 1) / linesPerPage

	return ScriptStats{LineCount: lines, PageCount: pages}, nil
}

// argumentContext flattens the linked argument document into prompt
// context: the consolidated full argument when present, otherwise the
// narrative summary. A missing or broken link yields empty context.
func (s *ScriptService) argumentContext(projectID, fileID string) (string, error) {
	argument, err := s.projects.LinkedArgument(projectID, fileID)
	if err != nil {
		return "", err
	}
	if argument == nil {
		return "", nil
	}

	if argument.Consolidated.FullArgument != "" && argument.Consolidated.FullArgument != parser.FallbackFullArgument {
		return argument.Consolidated.FullArgument, nil
	}
	return argument.Narrative.Summary, nil
}
