// internal/parser/subthemes.go
package parser

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/cmkfilmes/leanfilmdesign/internal/models"
)

// MissingTitle fills in for a sub-theme block whose title line could
// not be read.
const MissingTitle = "Sem Título"

var (
	subThemeSplitRe   = regexp.MustCompile(`\d+\.\s*Título:`)
	titleLineRe       = regexp.MustCompile(`(.*?)\n`)
	explanationRe     = regexp.MustCompile(`Explicação:\s*(.*?)\n`)
	justificationRe   = regexp.MustCompile(`Justificativa:\s*(.*?)\n`)
	usageSuggestionRe = regexp.MustCompile(`(?s)Sugestão de Uso:\s*(.*)`)
)

// ParseSubThemes extracts the numbered sub-theme cards from a raw AI
// response. The text is split on the "N. Título:" markers; anything
// before the first marker is preamble and is dropped. A malformed block
// still yields a card: a missing title becomes MissingTitle and any
// missing field stays empty, so one bad block never hides the others.
func ParseSubThemes(text string) []models.SubTheme {
	blocks := subThemeSplitRe.Split(text, -1)
	if len(blocks) <= 1 {
		return []models.SubTheme{}
	}
	blocks = blocks[1:]

	themes := make([]models.SubTheme, 0, len(blocks))
	for _, block := range blocks {
		theme := models.SubTheme{
			ID:    uuid.NewString(),
			Title: MissingTitle,
		}

		if m := titleLineRe.FindStringSubmatch(block); m != nil {
			theme.Title = strings.TrimSpace(m[1])
		}
		if m := explanationRe.FindStringSubmatch(block); m != nil {
			theme.Explanation = strings.TrimSpace(m[1])
		}
		if m := justificationRe.FindStringSubmatch(block); m != nil {
			theme.Justification = strings.TrimSpace(m[1])
		}
		if m := usageSuggestionRe.FindStringSubmatch(block); m != nil {
			theme.Suggestion = strings.TrimSpace(m[1])
		}

		themes = append(themes, theme)
	}

	return themes
}
