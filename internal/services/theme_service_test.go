// internal/services/theme_service_test.go
package services

import (
	"context"
	"errors"
	"testing"
)

const fourSubThemes = `1. Título: Vingança
Explicação: O desejo de retaliação.
Justificativa: Motor de conflito.
Sugestão de Uso: O protagonista busca vingança.

2. Título: Redenção
Explicação: A busca por perdão.
Justificativa: Humaniza o protagonista.
Sugestão de Uso: Um mentor caído tenta reparar o passado.

3. Título: Sacrifício
Explicação: Abrir mão de algo precioso.
Justificativa: Eleva o que está em jogo.
Sugestão de Uso: A protagonista abandona a carreira.

4. Título: Identidade
Explicação: A descoberta de quem se é.
Justificativa: Dá profundidade ao arco.
Sugestão de Uso: O herói descobre sua origem.
`

func newThemeFixture(t *testing.T, responses ...string) (*ThemeService, string, string) {
	t.Helper()
	gateway, _ := newFakeGateway(responses...)
	projects, projectID, fileID := newArgumentFixture(t)
	return NewThemeService(projects, gateway), projectID, fileID
}

func TestGenerateThemes(t *testing.T) {
	svc, projectID, fileID := newThemeFixture(t, "Um tema sobre perda e memória.", fourSubThemes)

	arg, err := svc.GenerateThemes(context.Background(), projectID, fileID, "Memória")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if arg.MainTheme != "Memória" {
		t.Errorf("main theme = %q", arg.MainTheme)
	}
	if arg.ThemeDescription != "Um tema sobre perda e memória." {
		t.Errorf("description = %q", arg.ThemeDescription)
	}
	if len(arg.SubThemes) != 4 {
		t.Fatalf("sub-themes = %d, want 4", len(arg.SubThemes))
	}
	if len(arg.SelectedSubThemes) != 0 {
		t.Errorf("selection not reset: %d", len(arg.SelectedSubThemes))
	}
}

func TestToggleSubThemePersistsSelection(t *testing.T) {
	svc, projectID, fileID := newThemeFixture(t, "descrição", fourSubThemes)

	arg, err := svc.GenerateThemes(context.Background(), projectID, fileID, "Memória")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	first := arg.SubThemes[0].ID
	third := arg.SubThemes[2].ID

	if _, err := svc.ToggleSubTheme(projectID, fileID, third); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	arg, err = svc.ToggleSubTheme(projectID, fileID, first)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}

	if len(arg.SelectedSubThemes) != 2 {
		t.Fatalf("selected = %d, want 2", len(arg.SelectedSubThemes))
	}
	// Selection order follows card order, not toggle order.
	if arg.SelectedSubThemes[0].ID != first || arg.SelectedSubThemes[1].ID != third {
		t.Errorf("selection order wrong: %v", arg.SelectedSubThemes)
	}

	arg, err = svc.ToggleSubTheme(projectID, fileID, first)
	if err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	if len(arg.SelectedSubThemes) != 1 || arg.SelectedSubThemes[0].ID != third {
		t.Errorf("toggle off left selection %v", arg.SelectedSubThemes)
	}
}

func TestRegenerateSubThemeReplacesOneCard(t *testing.T) {
	regenResponse := `1. Título: Solidão
Explicação: O isolamento.
Justificativa: Contraste emocional.
Sugestão de Uso: O protagonista vive afastado.
`
	svc, projectID, fileID := newThemeFixture(t, "descrição", fourSubThemes, regenResponse)

	arg, err := svc.GenerateThemes(context.Background(), projectID, fileID, "Memória")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	target := arg.SubThemes[1]
	if _, err := svc.ToggleSubTheme(projectID, fileID, target.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	arg, err = svc.RegenerateSubTheme(context.Background(), projectID, fileID, target.ID)
	if err != nil {
		t.Fatalf("regenerate: %v", err)
	}

	if len(arg.SubThemes) != 4 {
		t.Fatalf("card count changed: %d", len(arg.SubThemes))
	}
	if arg.SubThemes[1].Title != "Solidão" {
		t.Errorf("card not replaced in place: %q", arg.SubThemes[1].Title)
	}
	if arg.SubThemes[1].ID == target.ID {
		t.Error("replacement card kept the old id")
	}
	if arg.SubThemes[1].Selected {
		t.Error("replacement card should start unselected")
	}
	if len(arg.SelectedSubThemes) != 0 {
		t.Errorf("selection not rebuilt: %v", arg.SelectedSubThemes)
	}
	if arg.SubThemes[0].Title != "Vingança" || arg.SubThemes[2].Title != "Sacrifício" {
		t.Error("other cards disturbed by regeneration")
	}
}

func TestRegenerateUnknownSubTheme(t *testing.T) {
	svc, projectID, fileID := newThemeFixture(t, "descrição", fourSubThemes)

	if _, err := svc.GenerateThemes(context.Background(), projectID, fileID, "Memória"); err != nil {
		t.Fatalf("generate: %v", err)
	}

	_, err := svc.RegenerateSubTheme(context.Background(), projectID, fileID, "inexistente")
	if !errors.Is(err, ErrSubThemeNotFound) {
		t.Fatalf("err = %v, want ErrSubThemeNotFound", err)
	}
}

func TestGenerateThemesRequiresArgumentFile(t *testing.T) {
	gateway, _ := newFakeGateway("x")
	projects, projectID, scriptID := newScriptFixture(t)
	svc := NewThemeService(projects, gateway)

	_, err := svc.GenerateThemes(context.Background(), projectID, scriptID, "Memória")
	if !errors.Is(err, ErrWrongFileType) {
		t.Fatalf("err = %v, want ErrWrongFileType", err)
	}
}
