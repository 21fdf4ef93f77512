// internal/services/script_service_test.go
package services

import (
	"context"
	"strings"
	"testing"

	"github.com/cmkfilmes/leanfilmdesign/internal/models"
)

func sceneFormat(t *testing.T) string {
	t.Helper()
	for _, tool := range FormatTools() {
		if tool.Label == "Cena" {
			return tool.Format
		}
	}
	t.Fatal("scene tool missing")
	return ""
}

func TestInsertFormatCollapsesTripleNewlines(t *testing.T) {
	gateway, _ := newFakeGateway()
	projects, projectID, fileID := newScriptFixture(t)
	svc := NewScriptService(projects, gateway)

	format := sceneFormat(t)

	// Insert the scene heading twice at the end of the scaffold, which
	// already ends in a blank line.
	content, cursor, err := svc.InsertFormat(projectID, fileID, len(models.DefaultScriptScaffold), len(models.DefaultScriptScaffold), format)
	if err != nil {
		t.Fatalf("first insert: %v", err)
	}
	content, _, err = svc.InsertFormat(projectID, fileID, cursor, cursor, format)
	if err != nil {
		t.Fatalf("second insert: %v", err)
	}

	if strings.Contains(content, "\n\n\n") {
		t.Errorf("triple newline survived: %q", content)
	}
	if strings.Count(content, "CENA INT. LOCAL - DIA") != 2 {
		t.Errorf("insert lost a heading: %q", content)
	}
}

func TestInsertFormatRejectsBadRange(t *testing.T) {
	gateway, _ := newFakeGateway()
	projects, projectID, fileID := newScriptFixture(t)
	svc := NewScriptService(projects, gateway)

	if _, _, err := svc.InsertFormat(projectID, fileID, 5, 2, "x"); err != ErrInvalidRange {
		t.Errorf("reversed range: err = %v", err)
	}
	if _, _, err := svc.InsertFormat(projectID, fileID, 0, 10_000, "x"); err != ErrInvalidRange {
		t.Errorf("out-of-bounds range: err = %v", err)
	}
}

func TestImproveSelectionReplacesExactRange(t *testing.T) {
	gateway, provider := newFakeGateway("TRECHO MELHORADO")
	projects, projectID, fileID := newScriptFixture(t)
	svc := NewScriptService(projects, gateway)

	base := "antes MEIO depois"
	if err := projects.UpdateScriptContent(projectID, fileID, base); err != nil {
		t.Fatalf("seed content: %v", err)
	}

	start := strings.Index(base, "MEIO")
	end := start + len("MEIO")

	content, err := svc.ImproveSelection(context.Background(), projectID, fileID, start, end)
	if err != nil {
		t.Fatalf("improve: %v", err)
	}

	if content != "antes TRECHO MELHORADO depois" {
		t.Errorf("content = %q", content)
	}
	if !strings.Contains(provider.lastPrompt(), `"MEIO"`) {
		t.Errorf("prompt missing the selected excerpt: %q", provider.lastPrompt())
	}
}

func TestImproveSelectionEmptyRange(t *testing.T) {
	gateway, _ := newFakeGateway("x")
	projects, projectID, fileID := newScriptFixture(t)
	svc := NewScriptService(projects, gateway)

	if _, err := svc.ImproveSelection(context.Background(), projectID, fileID, 3, 3); err != ErrInvalidRange {
		t.Errorf("err = %v, want ErrInvalidRange", err)
	}
}

func TestGenerateSceneAppendsWithSeparator(t *testing.T) {
	gateway, provider := newFakeGateway("CENA EXT. PRAIA - DIA\n\nOndas quebram na areia.")
	projects, projectID, fileID := newScriptFixture(t)
	svc := NewScriptService(projects, gateway)

	content, err := svc.GenerateScene(context.Background(), projectID, fileID, "Tenso", "Apresentar o vilão")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if !strings.HasPrefix(content, models.DefaultScriptScaffold) {
		t.Errorf("existing content lost: %q", content)
	}
	if !strings.HasSuffix(content, "Ondas quebram na areia.") {
		t.Errorf("scene not appended: %q", content)
	}
	if !strings.Contains(provider.lastPrompt(), "Tom da cena: Tenso") {
		t.Errorf("prompt missing tone: %q", provider.lastPrompt())
	}
	if !strings.Contains(provider.lastPrompt(), "Objetivo da cena: Apresentar o vilão") {
		t.Errorf("prompt missing objective: %q", provider.lastPrompt())
	}
}

func TestImprovePromptCarriesLinkedArgument(t *testing.T) {
	gateway, provider := newFakeGateway("melhorado")
	projects, projectID, scriptID := newScriptFixture(t)
	svc := NewScriptService(projects, gateway)

	arg, err := projects.CreateFile(projectID, "Argumento", models.FileTypeArgument, models.FileMetadata{})
	if err != nil {
		t.Fatalf("create argument: %v", err)
	}
	content := arg.Argument
	content.Consolidated.FullArgument = "O argumento completo da história."
	if err := projects.UpdateArgument(projectID, arg.ID, content); err != nil {
		t.Fatalf("seed argument: %v", err)
	}
	if err := projects.SetArgumentLink(projectID, scriptID, arg.ID); err != nil {
		t.Fatalf("link: %v", err)
	}

	if _, err := svc.ImproveSelection(context.Background(), projectID, scriptID, 0, 4); err != nil {
		t.Fatalf("improve: %v", err)
	}

	if !strings.Contains(provider.lastPrompt(), "O argumento completo da história.") {
		t.Errorf("prompt missing linked argument context: %q", provider.lastPrompt())
	}
}

func TestStatsCountsPagesAt55Lines(t *testing.T) {
	gateway, _ := newFakeGateway()
	projects, projectID, fileID := newScriptFixture(t)
	svc := NewScriptService(projects, gateway)

	projects.UpdateScriptContent(projectID, fileID, strings.Repeat("linha\n", 55)+"linha")

	stats, err := svc.Stats(projectID, fileID)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.LineCount != 56 {
		t.Errorf("lines = %d, want 56", stats.LineCount)
	}
	if stats.PageCount != 2 {
		t.Errorf("pages = %d, want 2", stats.PageCount)
	}
}
