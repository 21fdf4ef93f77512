// internal/services/narrative_service.go
package services

import (
	"context"
	"fmt"

	"github.com/cmkfilmes/leanfilmdesign/internal/models"
)

// NarrativeService drives the narrative elements tab: the ten story
// pillars and the AI summary that ties them together.
type NarrativeService struct {
	projects *ProjectService
	gateway  *GatewayService
}

func NewNarrativeService(projects *ProjectService, gateway *GatewayService) *NarrativeService {
	return &NarrativeService{
		projects: projects,
		gateway:  gateway,
	}
}

// UpdateElements overwrites the editable narrative fields, keeping the
// generated summary unless the caller replaces it too.
func (s *NarrativeService) UpdateElements(projectID, fileID string, elements models.NarrativeElements) error {
	return applyArgumentUpdate(s.projects, projectID, fileID, func(arg *models.ArgumentContent) {
		summary := arg.Narrative.Summary
		arg.Narrative = elements
		if elements.Summary == "" {
			arg.Narrative.Summary = summary
		}
	})
}

// GenerateSummary weaves the narrative elements and both character
// summaries into one connecting paragraph.
func (s *NarrativeService) GenerateSummary(ctx context.Context, projectID, fileID string) (string, error) {
	snapshot, err := argumentSnapshot(s.projects, projectID, fileID)
	if err != nil {
		return "", err
	}

	n := snapshot.Narrative
	prompt := fmt.Sprintf(`Crie um resumo narrativo em prosa para um filme, integrando de forma coesa os seguintes elementos:
- Tema Principal Geral: %s
- Storyline: %s
- Conceito Fundamental: %s
- Temas: %s
- Objetivo da Trama (Conflito Externo): %s
- Objetivo do Personagem (Conflito Interno): %s
- Plot Twist: %s
- Recurso Narrativo Principal: %s
- Objetos Chave: %s
- Lugares Importantes: %s
- Sentimentos Predominantes: %s
- Resumo do Protagonista: %s
- Resumo do Antagonista: %s

Construa um parágrafo fluído e envolvente que conecte esses pontos, formando a base de uma história. Responda apenas com o texto do resumo.`,
		orDefault(snapshot.MainTheme, notDefined),
		orDefault(n.Storyline, notInformed),
		orDefault(n.CoreConcept, notInformed),
		orDefault(n.Themes, notInformed),
		orDefault(n.PlotGoal, notInformed),
		orDefault(n.CharacterGoal, notInformed),
		orDefault(n.PlotTwist, notInformed),
		orDefault(n.NarrativeDevice, notInformed),
		orDefault(n.KeyObjects, notInformed),
		orDefault(n.KeyPlaces, notInformed),
		orDefault(n.DominantFeelings, notInformed),
		orDefault(snapshot.Characters.Protagonist.Summary, notInformed),
		orDefault(snapshot.Characters.Antagonist.Summary, notInformed))

	summary := s.gateway.Generate(ctx, prompt)

	err = applyArgumentUpdate(s.projects, projectID, fileID, func(arg *models.ArgumentContent) {
		arg.Narrative.Summary = summary
	})
	if err != nil {
		return "", err
	}

	return summary, nil
}
