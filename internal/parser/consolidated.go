// internal/parser/consolidated.go
package parser

import (
	"regexp"
	"strings"

	"github.com/cmkfilmes/leanfilmdesign/internal/models"
)

// Per-section fallbacks shown when a marker is missing from the
// response. Each section fails independently.
const (
	FallbackStoryline    = "Não foi possível gerar a storyline."
	FallbackSynopsis     = "Não foi possível gerar a sinopse."
	FallbackFullArgument = "Não foi possível gerar o argumento completo."
)

var (
	storylineRe    = regexp.MustCompile(`(?s)\[STORYLINE\](.*?)(\[SINOPSE\]|$)`)
	synopsisRe     = regexp.MustCompile(`(?s)\[SINOPSE\](.*?)(\[ARGUMENTO\]|$)`)
	fullArgumentRe = regexp.MustCompile(`(?s)\[ARGUMENTO\](.*)`)
)

// ParseConsolidated splits a single AI response into the three final
// document sections using the [STORYLINE], [SINOPSE] and [ARGUMENTO]
// markers. A section whose marker is absent gets its fallback text
// without affecting the others.
func ParseConsolidated(text string) models.ConsolidatedArgument {
	result := models.ConsolidatedArgument{
		Storyline:    FallbackStoryline,
		Synopsis:     FallbackSynopsis,
		FullArgument: FallbackFullArgument,
	}

	if m := storylineRe.FindStringSubmatch(text); m != nil {
		result.Storyline = strings.TrimSpace(m[1])
	}
	if m := synopsisRe.FindStringSubmatch(text); m != nil {
		result.Synopsis = strings.TrimSpace(m[1])
	}
	if m := fullArgumentRe.FindStringSubmatch(text); m != nil {
		result.FullArgument = strings.TrimSpace(m[1])
	}

	return result
}
