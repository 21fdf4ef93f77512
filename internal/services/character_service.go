// internal/services/character_service.go
package services

import (
	"context"
	"fmt"

	"github.com/cmkfilmes/leanfilmdesign/internal/models"
)

const (
	notInformed = "Não informado"
	notDefined  = "Não definido"
)

// CharacterService drives the characters tab: the protagonist and
// antagonist trait forms and their AI-generated prose summaries.
type CharacterService struct {
	projects *ProjectService
	gateway  *GatewayService
}

func NewCharacterService(projects *ProjectService, gateway *GatewayService) *CharacterService {
	return &CharacterService{
		projects: projects,
		gateway:  gateway,
	}
}

// RoleTitle returns the display name of a character role.
func RoleTitle(role models.CharacterRole) string {
	if role == models.RoleAntagonist {
		return "Antagonista"
	}
	return "Protagonista"
}

// UpdateProfile overwrites the editable trait fields of one role,
// keeping the generated summary unless the caller replaces it too.
func (s *CharacterService) UpdateProfile(projectID, fileID string, role models.CharacterRole, profile models.CharacterProfile) error {
	return applyArgumentUpdate(s.projects, projectID, fileID, func(arg *models.ArgumentContent) {
		target := arg.Characters.Profile(role)
		summary := target.Summary
		*target = profile
		if profile.Summary == "" {
			target.Summary = summary
		}
	})
}

// GenerateSummary builds a prose summary from the traits of one role.
// The prompt is assembled from a snapshot; the generated text is then
// written back to whatever the profile holds at that moment, so the
// latest generation wins.
func (s *CharacterService) GenerateSummary(ctx context.Context, projectID, fileID string, role models.CharacterRole) (string, error) {
	snapshot, err := argumentSnapshot(s.projects, projectID, fileID)
	if err != nil {
		return "", err
	}

	profile := snapshot.Characters.Profile(role)
	prompt := fmt.Sprintf(`Crie um resumo em prosa para um personagem (%s) de um filme com base nas seguintes características. Integre as informações de forma natural e coesa.
- Tema principal da história: %s
- Perfil Psicológico: %s
- Forças: %s
- Fraquezas: %s
- Motivação Interna: %s
- Motivação Externa: %s
- Motivação Social: %s

Responda apenas com o texto do resumo.`,
		RoleTitle(role),
		orDefault(snapshot.MainTheme, notDefined),
		orDefault(profile.Psychological, notInformed),
		orDefault(profile.Strengths, notInformed),
		orDefault(profile.Weaknesses, notInformed),
		orDefault(profile.InnerMotivation, notInformed),
		orDefault(profile.OuterMotivation, notInformed),
		orDefault(profile.SocialMotivation, notInformed))

	summary := s.gateway.Generate(ctx, prompt)

	err = applyArgumentUpdate(s.projects, projectID, fileID, func(arg *models.ArgumentContent) {
		arg.Characters.Profile(role).Summary = summary
	})
	if err != nil {
		return "", err
	}

	return summary, nil
}
