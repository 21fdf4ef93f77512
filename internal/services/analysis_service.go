// internal/services/analysis_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmkfilmes/leanfilmdesign/internal/models"
	"github.com/cmkfilmes/leanfilmdesign/internal/parser"
)

// UnidentifiedStepMessage is shown for hero's journey steps the script
// does not contain. No generation request is made for them.
const UnidentifiedStepMessage = "Passo não identificado no roteiro."

var (
	ErrUnknownCriterion = errors.New("unknown analysis criterion")
	ErrUnknownStep      = errors.New("unknown journey step")
	ErrUnknownPoint     = errors.New("unknown analysis point")
)

// Criterion is one axis of the narrative structure radar.
type Criterion struct {
	Subject  string `json:"subject"`
	Score    int    `json:"score"`
	FullMark int    `json:"fullMark"`
}

// JourneyStep is one of the twelve hero's journey beats with its
// dramatic intensity and whether the script contains it.
type JourneyStep struct {
	Name       string `json:"name"`
	Intensity  int    `json:"intensity"`
	Identified bool   `json:"identified"`
}

// DramaturgyPoint is one block of the dramaturgy canvas.
type DramaturgyPoint struct {
	Title  string `json:"title"`
	prompt string
}

// MarketPoint is one block of the market analysis.
type MarketPoint struct {
	Title  string `json:"title"`
	prompt string
}

var analysisCriteria = []Criterion{
	{Subject: "Equilíbrio", Score: 4, FullMark: 5},
	{Subject: "Tensão", Score: 5, FullMark: 5},
	{Subject: "Unidade", Score: 4, FullMark: 5},
	{Subject: "Contraste", Score: 4, FullMark: 5},
	{Subject: "Direcionalidade", Score: 3, FullMark: 5},
}

var journeySteps = []JourneyStep{
	{Name: "Mundo Comum", Intensity: 2, Identified: true},
	{Name: "Chamado", Intensity: 4, Identified: true},
	{Name: "Recusa", Intensity: 3, Identified: false},
	{Name: "Mentor", Intensity: 5, Identified: true},
	{Name: "Travessia", Intensity: 6, Identified: true},
	{Name: "Testes", Intensity: 5, Identified: true},
	{Name: "Aproximação", Intensity: 7, Identified: true},
	{Name: "Provação", Intensity: 9, Identified: true},
	{Name: "Recompensa", Intensity: 8, Identified: false},
	{Name: "Retorno", Intensity: 6, Identified: true},
	{Name: "Ressurreição", Intensity: 10, Identified: true},
	{Name: "Elixir", Intensity: 7, Identified: true},
}

var dramaturgyPoints = []DramaturgyPoint{
	{Title: "Evento Desencadeador", prompt: `Analise o "Evento Desencadeador" no roteiro a seguir, focando em como ele desestabiliza o protagonista e inicia a trama. Roteiro: %s`},
	{Title: "Questão Dramática Principal", prompt: `Analise a "Questão Dramática Principal" no roteiro a seguir, focando na reação do protagonista e na pressão que ele sofre. Roteiro: %s`},
	{Title: "Objetivo do Protagonista", prompt: `Analise o "Objetivo do Protagonista" que emerge após o evento desencadeador no roteiro a seguir. Roteiro: %s`},
	{Title: "Obstáculos e Conflitos Principais", prompt: `Analise os "Obstáculos e Conflitos Principais" (internos e externos) no roteiro a seguir. Roteiro: %s`},
	{Title: "Clímax", prompt: `Analise o "Clímax" da história no roteiro a seguir, focando na tensão e no confronto decisivo. Roteiro: %s`},
	{Title: "Resolução", prompt: `Analise a "Resolução" e suas consequências para o protagonista no roteiro a seguir. Roteiro: %s`},
	{Title: "Tema Central", prompt: `Analise como o "Tema Central" é explorado e resolvido ao final da jornada do protagonista no roteiro a seguir. Roteiro: %s`},
}

var characterPoints = []string{
	"Perfil Psicológico e Personalidade", "Forças", "Fraquezas", "Motivações", "Sugestões para Melhorar",
}

var marketPoints = []MarketPoint{
	{Title: "Análise do Público-Alvo", prompt: `Para o roteiro a seguir, faça uma análise concisa do público-alvo ideal (demográfico e psicográfico), em um parágrafo. Roteiro: %s`},
	{Title: "Análise de Conteúdo e Tendências", prompt: `Analise o tema principal do roteiro a seguir e compare-o com as tendências atuais do mercado, de forma objetiva. Roteiro: %s`},
	{Title: "Originalidade e Potencial de Mercado", prompt: `Identifique os aspectos de originalidade e o potencial de mercado do roteiro a seguir, de forma resumida. Roteiro: %s`},
	{Title: "Sugestões de Conteúdos Complementares", prompt: `Sugira 3 conteúdos ou produtos complementares para o universo do roteiro a seguir. Roteiro: %s`},
	{Title: "Obras de Referência (Benchmarking)", prompt: `Identifique 2 obras similares ao roteiro a seguir e faça uma breve análise comparativa dos seus pontos fortes e fracos. Roteiro: %s`},
	{Title: "Palavras-chave e Tags Estratégicas", prompt: `Sugira 5 palavras-chave e 5 tags estratégicas para a divulgação do projeto baseado no roteiro a seguir. Roteiro: %s`},
	{Title: "Sugestões de Canais de Distribuição", prompt: `Com base no roteiro a seguir, sugira os 3 canais de distribuição/exibição mais adequados e justifique brevemente. Roteiro: %s`},
	{Title: "Potencial de Apelo Internacional", prompt: `Avalie o potencial de apelo internacional do roteiro a seguir em um parágrafo objetivo. Roteiro: %s`},
}

// AnalysisService runs the script analysis screens: narrative
// structure, hero's journey, dramaturgy canvas, character analysis and
// market analysis.
type AnalysisService struct {
	projects *ProjectService
	gateway  *GatewayService
}

func NewAnalysisService(projects *ProjectService, gateway *GatewayService) *AnalysisService {
	return &AnalysisService{
		projects: projects,
		gateway:  gateway,
	}
}

// Criteria returns the structure radar axes with their scores.
func (s *AnalysisService) Criteria() []Criterion {
	criteria := make([]Criterion, len(analysisCriteria))
	copy(criteria, analysisCriteria)
	return criteria
}

// JourneySteps returns the hero's journey beats for the intensity curve.
func (s *AnalysisService) JourneySteps() []JourneyStep {
	steps := make([]JourneyStep, len(journeySteps))
	copy(steps, journeySteps)
	return steps
}

// DramaturgyPoints lists the canvas block titles.
func (s *AnalysisService) DramaturgyPoints() []string {
	titles := make([]string, len(dramaturgyPoints))
	for i, p := range dramaturgyPoints {
		titles[i] = p.Title
	}
	return titles
}

// CharacterPoints lists the per-role character analysis topics.
func (s *AnalysisService) CharacterPoints() []string {
	points := make([]string, len(characterPoints))
	copy(points, characterPoints)
	return points
}

// MarketPoints lists the market analysis block titles.
func (s *AnalysisService) MarketPoints() []string {
	titles := make([]string, len(marketPoints))
	for i, p := range marketPoints {
		titles[i] = p.Title
	}
	return titles
}

func (s *AnalysisService) scriptContent(projectID, fileID string) (string, error) {
	file, err := s.projects.GetFile(projectID, fileID)
	if err != nil {
		return "", err
	}
	if file.Type != models.FileTypeScript {
		return "", ErrWrongFileType
	}
	return file.Script, nil
}

// AnalyzeCriterion analyses one structure criterion and returns the
// labeled analysis/suggestion paragraphs.
func (s *AnalysisService) AnalyzeCriterion(ctx context.Context, projectID, fileID, subject string) ([]parser.AnalysisParagraph, error) {
	known := false
	for _, c := range analysisCriteria {
		if c.Subject == subject {
			known = true
			break
		}
	}
	if !known {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCriterion, subject)
	}

	content, err := s.scriptContent(projectID, fileID)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(`Para o roteiro a seguir, forneça uma análise e uma sugestão para o critério narrativo de "%s". Seja conciso e objetivo. Use o formato: 'Análise: [texto] `+"\n\n"+` Sugestão: [texto]'. Roteiro: %s`, subject, content)

	return parser.ParseAnalysis(s.gateway.Generate(ctx, prompt)), nil
}

// AnalyzeJourneyStep analyses one hero's journey beat. Steps the
// script does not contain answer with UnidentifiedStepMessage and no
// generation request is made.
func (s *AnalysisService) AnalyzeJourneyStep(ctx context.Context, projectID, fileID, stepName string) ([]parser.AnalysisParagraph, error) {
	var step *JourneyStep
	for i := range journeySteps {
		if journeySteps[i].Name == stepName {
			step = &journeySteps[i]
			break
		}
	}
	if step == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStep, stepName)
	}

	content, err := s.scriptContent(projectID, fileID)
	if err != nil {
		return nil, err
	}

	if !step.Identified {
		return []parser.AnalysisParagraph{{Text: UnidentifiedStepMessage}}, nil
	}

	prompt := fmt.Sprintf(`Para o roteiro a seguir, identifique a seção que corresponde ao passo "%s" da Jornada do Herói. Faça uma breve análise e dê uma sugestão para melhorá-lo. Seja conciso e use o formato: 'Análise: [texto] `+"\n\n"+` Sugestão: [texto]'. Roteiro: %s`, stepName, content)

	return parser.ParseAnalysis(s.gateway.Generate(ctx, prompt)), nil
}

// AnalyzeDramaturgyPoint analyses one canvas block.
func (s *AnalysisService) AnalyzeDramaturgyPoint(ctx context.Context, projectID, fileID, title string) (string, error) {
	var point *DramaturgyPoint
	for i := range dramaturgyPoints {
		if dramaturgyPoints[i].Title == title {
			point = &dramaturgyPoints[i]
			break
		}
	}
	if point == nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownPoint, title)
	}

	content, err := s.scriptContent(projectID, fileID)
	if err != nil {
		return "", err
	}

	return s.gateway.Generate(ctx, fmt.Sprintf(point.prompt, content)), nil
}

// AnalyzeCharacterPoint analyses one topic for the protagonist or
// antagonist as found in the script itself.
func (s *AnalysisService) AnalyzeCharacterPoint(ctx context.Context, projectID, fileID string, role models.CharacterRole, point string) (string, error) {
	known := false
	for _, candidate := range characterPoints {
		if candidate == point {
			known = true
			break
		}
	}
	if !known {
		return "", fmt.Errorf("%w: %q", ErrUnknownPoint, point)
	}

	content, err := s.scriptContent(projectID, fileID)
	if err != nil {
		return "", err
	}

	roleName := "protagonista"
	if role == models.RoleAntagonist {
		roleName = "antagonista"
	}

	prompt := fmt.Sprintf(`Para o %s do roteiro a seguir, faça uma análise sobre o seguinte ponto: "%s". Seja objetivo e limite a 1500 caracteres. Roteiro: %s`, roleName, point, content)

	return s.gateway.Generate(ctx, prompt), nil
}

// AnalyzeMarketPoint analyses one market block.
func (s *AnalysisService) AnalyzeMarketPoint(ctx context.Context, projectID, fileID, title string) (string, error) {
	var point *MarketPoint
	for i := range marketPoints {
		if marketPoints[i].Title == title {
			point = &marketPoints[i]
			break
		}
	}
	if point == nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownPoint, title)
	}

	content, err := s.scriptContent(projectID, fileID)
	if err != nil {
		return "", err
	}

	return s.gateway.Generate(ctx, fmt.Sprintf(point.prompt, content)), nil
}
