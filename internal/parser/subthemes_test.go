// internal/parser/subthemes_test.go
package parser

import (
	"testing"
)

const sampleSubThemes = `Aqui estão quatro temas secundários:

1. Título: Vingança
Explicação: O desejo de retaliação contra quem causou mal.
Justificativa: Adiciona um forte motor de conflito para o protagonista.
Sugestão de Uso: O protagonista busca vingança pela morte de um ente querido.

2. Título: Redenção
Explicação: A busca por perdão depois de um erro grave.
Justificativa: Humaniza o protagonista.
Sugestão de Uso: Um mentor caído tenta reparar o passado.

3. Título: Sacrifício
Explicação: Abrir mão de algo precioso por um bem maior.
Justificativa: Eleva o que está em jogo.
Sugestão de Uso: A protagonista abandona sua carreira para salvar a família.

4. Título: Identidade
Explicação: A descoberta de quem se é de verdade.
Justificativa: Dá profundidade ao arco do personagem.
Sugestão de Uso: O herói descobre uma origem que muda tudo.
`

func TestParseSubThemesOrderAndCount(t *testing.T) {
	themes := ParseSubThemes(sampleSubThemes)

	if len(themes) != 4 {
		t.Fatalf("expected 4 themes, got %d", len(themes))
	}

	wantTitles := []string{"Vingança", "Redenção", "Sacrifício", "Identidade"}
	for i, want := range wantTitles {
		if themes[i].Title != want {
			t.Errorf("theme %d: title = %q, want %q", i, themes[i].Title, want)
		}
	}

	if themes[0].Explanation != "O desejo de retaliação contra quem causou mal." {
		t.Errorf("unexpected explanation: %q", themes[0].Explanation)
	}
	if themes[0].Suggestion != "O protagonista busca vingança pela morte de um ente querido." {
		t.Errorf("unexpected suggestion: %q", themes[0].Suggestion)
	}
}

func TestParseSubThemesUniqueIDs(t *testing.T) {
	themes := ParseSubThemes(sampleSubThemes)

	seen := make(map[string]bool)
	for _, theme := range themes {
		if theme.ID == "" {
			t.Fatal("theme has empty id")
		}
		if seen[theme.ID] {
			t.Fatalf("duplicate theme id %q", theme.ID)
		}
		seen[theme.ID] = true
	}
}

func TestParseSubThemesNoneSelected(t *testing.T) {
	for _, theme := range ParseSubThemes(sampleSubThemes) {
		if theme.Selected {
			t.Fatalf("theme %q parsed as selected", theme.Title)
		}
	}
}

func TestParseSubThemesMissingFieldLeavesOthersIntact(t *testing.T) {
	text := "1. Título: Solidão\nExplicação: O isolamento do protagonista.\nSugestão de Uso: Um personagem que vive afastado de todos.\n"

	themes := ParseSubThemes(text)
	if len(themes) != 1 {
		t.Fatalf("expected 1 theme, got %d", len(themes))
	}

	theme := themes[0]
	if theme.Title != "Solidão" {
		t.Errorf("title = %q, want %q", theme.Title, "Solidão")
	}
	if theme.Justification != "" {
		t.Errorf("justification = %q, want empty", theme.Justification)
	}
	if theme.Explanation == "" || theme.Suggestion == "" {
		t.Errorf("missing justification affected other fields: %+v", theme)
	}
}

func TestParseSubThemesMissingTitle(t *testing.T) {
	// A marker immediately followed by the next field has no title line
	// before "Explicação", so the title captures that whole line too.
	// Only a block without any newline falls back.
	themes := ParseSubThemes("1. Título:")
	if len(themes) != 1 {
		t.Fatalf("expected 1 theme, got %d", len(themes))
	}
	if themes[0].Title != MissingTitle {
		t.Errorf("title = %q, want %q", themes[0].Title, MissingTitle)
	}
}

func TestParseSubThemesNoMarkers(t *testing.T) {
	themes := ParseSubThemes("resposta sem nenhuma lista numerada")
	if len(themes) != 0 {
		t.Fatalf("expected no themes, got %d", len(themes))
	}
}
