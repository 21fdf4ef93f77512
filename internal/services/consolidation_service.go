// internal/services/consolidation_service.go
package services

import (
	"context"
	"fmt"

	"github.com/cmkfilmes/leanfilmdesign/internal/models"
	"github.com/cmkfilmes/leanfilmdesign/internal/parser"
)

// ConsolidationService compiles the whole argument document into the
// final storyline, synopsis and full argument, all generated in one
// request and split on section markers.
type ConsolidationService struct {
	projects *ProjectService
	gateway  *GatewayService
}

func NewConsolidationService(projects *ProjectService, gateway *GatewayService) *ConsolidationService {
	return &ConsolidationService{
		projects: projects,
		gateway:  gateway,
	}
}

// Generate builds the consolidated document from everything gathered
// in the other tabs and stores the three sections on the file.
func (s *ConsolidationService) Generate(ctx context.Context, projectID, fileID string) (models.ConsolidatedArgument, error) {
	snapshot, err := argumentSnapshot(s.projects, projectID, fileID)
	if err != nil {
		return models.ConsolidatedArgument{}, err
	}

	n := snapshot.Narrative
	prompt := fmt.Sprintf(`Com base na seguinte compilação de dados de um projeto de filme, gere três seções distintas: STORYLINE, SINOPSE e ARGUMENTO COMPLETO.

### DADOS DO PROJETO:
- **Tema Principal:** %s
- **Resumo do Protagonista:** %s
- **Resumo do Antagonista:** %s
- **Storyline Inicial:** %s
- **Conceito Fundamental:** %s
- **Temas Secundários:** %s
- **Conflito Externo (Objetivo da Trama):** %s
- **Conflito Interno (Objetivo do Personagem):** %s
- **Plot Twist:** %s
- **Recurso Narrativo:** %s
- **Objetos Chave:** %s
- **Lugares Importantes:** %s
- **Sentimentos Predominantes:** %s

### INSTRUÇÕES DE GERAÇÃO:
1.  **[STORYLINE]**: Crie uma storyline de uma frase, concisa e impactante, que resuma a essência da história.
2.  **[SINOPSE]**: Escreva uma sinopse comercial de 3 a 5 parágrafos que desperte o interesse. Apresente o protagonista, seu mundo, o conflito principal e o que está em jogo, sem revelar o final.
3.  **[ARGUMENTO]**: Desenvolva um argumento detalhado de aproximadamente 800 a 1200 palavras, estruturado com um claro **INÍCIO**, **MEIO** e **FIM**. Descreva os principais pontos de virada, o desenvolvimento dos personagens e a resolução do conflito.

Use os marcadores [STORYLINE], [SINOPSE] e [ARGUMENTO] para separar claramente cada seção.`,
		orDefault(snapshot.MainTheme, notDefined),
		orDefault(snapshot.Characters.Protagonist.Summary, notDefined),
		orDefault(snapshot.Characters.Antagonist.Summary, notDefined),
		orDefault(n.Storyline, notInformed),
		orDefault(n.CoreConcept, notInformed),
		orDefault(n.Themes, notInformed),
		orDefault(n.PlotGoal, notInformed),
		orDefault(n.CharacterGoal, notInformed),
		orDefault(n.PlotTwist, notInformed),
		orDefault(n.NarrativeDevice, notInformed),
		orDefault(n.KeyObjects, notInformed),
		orDefault(n.KeyPlaces, notInformed),
		orDefault(n.DominantFeelings, notInformed))

	consolidated := parser.ParseConsolidated(s.gateway.Generate(ctx, prompt))

	err = applyArgumentUpdate(s.projects, projectID, fileID, func(arg *models.ArgumentContent) {
		arg.Consolidated = consolidated
	})
	if err != nil {
		return models.ConsolidatedArgument{}, err
	}

	return consolidated, nil
}

// UpdateSections stores manual edits to the consolidated sections.
func (s *ConsolidationService) UpdateSections(projectID, fileID string, consolidated models.ConsolidatedArgument) error {
	return applyArgumentUpdate(s.projects, projectID, fileID, func(arg *models.ArgumentContent) {
		arg.Consolidated = consolidated
	})
}
