// internal/services/theme_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmkfilmes/leanfilmdesign/internal/models"
	"github.com/cmkfilmes/leanfilmdesign/internal/parser"
)

var ErrSubThemeNotFound = errors.New("sub-theme not found")

// ThemeService drives the themes tab of the argument builder: the main
// theme description, the four suggested sub-theme cards, per-card
// regeneration and selection.
type ThemeService struct {
	projects *ProjectService
	gateway  *GatewayService
}

func NewThemeService(projects *ProjectService, gateway *GatewayService) *ThemeService {
	return &ThemeService{
		projects: projects,
		gateway:  gateway,
	}
}

// GenerateThemes describes the main theme and suggests four sub-theme
// cards for it. Both generations run outside the store lock; the
// result is applied to the file by id afterwards, replacing any earlier
// cards and clearing the selection.
func (s *ThemeService) GenerateThemes(ctx context.Context, projectID, fileID, mainTheme string) (*models.ArgumentContent, error) {
	if mainTheme == "" {
		return nil, ErrEmptyName
	}
	if _, err := s.argumentSnapshot(projectID, fileID); err != nil {
		return nil, err
	}

	descPrompt := fmt.Sprintf(`Descreva de forma objetiva e concisa, em um parágrafo, o seguinte tema para um filme: "%s".`, mainTheme)
	description := s.gateway.Generate(ctx, descPrompt)

	subThemesPrompt := fmt.Sprintf(`Para o tema de filme principal: "%s", gere 4 temas secundários relevantes. Para cada um, forneça "Título", "Explicação", "Justificativa" e "Sugestão de Uso". Formate a resposta como uma lista numerada, separando cada campo claramente. Exemplo para um tema:
1. Título: Vingança
Explicação: O desejo de retaliação contra quem causou mal.
Justificativa: Adiciona um forte motor de conflito para o protagonista.
Sugestão de Uso: O protagonista busca vingança pela morte de um ente querido, mas questiona o custo moral.`, mainTheme)
	subThemes := parser.ParseSubThemes(s.gateway.Generate(ctx, subThemesPrompt))

	var updated *models.ArgumentContent
	err := s.applyArgumentUpdate(projectID, fileID, func(arg *models.ArgumentContent) {
		arg.MainTheme = mainTheme
		arg.ThemeDescription = description
		arg.SubThemes = subThemes
		arg.SelectedSubThemes = []models.SubTheme{}
		updated = arg.Clone()
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// RegenerateSubTheme replaces a single card with a freshly generated
// one that differs from the remaining cards. The new card starts
// unselected and the selected list is rebuilt.
func (s *ThemeService) RegenerateSubTheme(ctx context.Context, projectID, fileID, subThemeID string) (*models.ArgumentContent, error) {
	snapshot, err := s.argumentSnapshot(projectID, fileID)
	if err != nil {
		return nil, err
	}

	var otherTitles []string
	found := false
	for _, theme := range snapshot.SubThemes {
		if theme.ID == subThemeID {
			found = true
			continue
		}
		otherTitles = append(otherTitles, theme.Title)
	}
	if !found {
		return nil, ErrSubThemeNotFound
	}

	regenPrompt := fmt.Sprintf(`Para o tema de filme principal: "%s", gere um novo tema secundário relevante que seja diferente de: %s. Forneça "Título", "Explicação", "Justificativa" e "Sugestão de Uso" no mesmo formato da lista anterior. Comece com "1. Título: ...".`,
		snapshot.MainTheme, strings.Join(otherTitles, ", "))

	candidates := parser.ParseSubThemes(s.gateway.Generate(ctx, regenPrompt))
	if len(candidates) == 0 {
		return nil, fmt.Errorf("regeneration produced no usable sub-theme")
	}
	replacement := candidates[0]

	var updated *models.ArgumentContent
	err = s.applyArgumentUpdate(projectID, fileID, func(arg *models.ArgumentContent) {
		for i, theme := range arg.SubThemes {
			if theme.ID == subThemeID {
				arg.SubThemes[i] = replacement
				break
			}
		}
		arg.SelectedSubThemes = selectedThemes(arg.SubThemes)
		updated = arg.Clone()
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// ToggleSubTheme flips one card's selection and rebuilds the selected
// list in card order.
func (s *ThemeService) ToggleSubTheme(projectID, fileID, subThemeID string) (*models.ArgumentContent, error) {
	var updated *models.ArgumentContent
	found := false

	err := s.applyArgumentUpdate(projectID, fileID, func(arg *models.ArgumentContent) {
		for i, theme := range arg.SubThemes {
			if theme.ID == subThemeID {
				arg.SubThemes[i].Selected = !theme.Selected
				found = true
				break
			}
		}
		arg.SelectedSubThemes = selectedThemes(arg.SubThemes)
		updated = arg.Clone()
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrSubThemeNotFound
	}

	return updated, nil
}

func selectedThemes(themes []models.SubTheme) []models.SubTheme {
	selected := []models.SubTheme{}
	for _, theme := range themes {
		if theme.Selected {
			selected = append(selected, theme)
		}
	}
	return selected
}

func (s *ThemeService) argumentSnapshot(projectID, fileID string) (*models.ArgumentContent, error) {
	return argumentSnapshot(s.projects, projectID, fileID)
}

func (s *ThemeService) applyArgumentUpdate(projectID, fileID string, mutate func(*models.ArgumentContent)) error {
	return applyArgumentUpdate(s.projects, projectID, fileID, mutate)
}
