// internal/parser/analysis.go
package parser

import (
	"strings"
)

// AnalysisParagraph is one paragraph of an analysis response. Label is
// "Análise" or "Sugestão" for labeled paragraphs and empty otherwise.
type AnalysisParagraph struct {
	Label string `json:"label,omitempty"`
	Text  string `json:"text"`
}

// ParseAnalysis splits an analysis response into paragraphs on blank
// lines. Paragraphs starting with "Análise:" or "Sugestão:" (matched
// case-insensitively) are split into label and body at the first colon;
// colons inside the body are preserved. Other paragraphs pass through
// unlabeled.
func ParseAnalysis(text string) []AnalysisParagraph {
	parts := strings.Split(text, "\n\n")
	paragraphs := make([]AnalysisParagraph, 0, len(parts))

	for _, part := range parts {
		lower := strings.ToLower(part)
		if strings.HasPrefix(lower, "análise:") || strings.HasPrefix(lower, "sugestão:") {
			label, body, _ := strings.Cut(part, ":")
			paragraphs = append(paragraphs, AnalysisParagraph{
				Label: label,
				Text:  strings.TrimSpace(body),
			})
			continue
		}
		paragraphs = append(paragraphs, AnalysisParagraph{Text: part})
	}

	return paragraphs
}
