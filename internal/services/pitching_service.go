// internal/services/pitching_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmkfilmes/leanfilmdesign/internal/models"
)

var ErrUnknownSection = errors.New("unknown pitching section")

// pitchingSections are the Film Design Document sections, in the order
// they are presented. Budget detail is deliberately excluded from the
// generated content.
var pitchingSections = []string{
	"Sinopse", "Tema", "Formato", "Público-Alvo", "Justificativa",
	"Tom e Estilo", "Arco da História", "Produtos Relacionados",
	"Cronograma", "Estratégias de Lançamento", "Distribuição",
}

// PitchingService generates the sections of a Film Design Document
// from a screenplay, one section per request.
type PitchingService struct {
	projects *ProjectService
	gateway  *GatewayService
}

func NewPitchingService(projects *ProjectService, gateway *GatewayService) *PitchingService {
	return &PitchingService{
		projects: projects,
		gateway:  gateway,
	}
}

// Sections lists the available document sections in display order.
func (s *PitchingService) Sections() []string {
	sections := make([]string, len(pitchingSections))
	copy(sections, pitchingSections)
	return sections
}

// GenerateSection produces the content of one named section for the
// given script.
func (s *PitchingService) GenerateSection(ctx context.Context, projectID, fileID, section string) (string, error) {
	known := false
	for _, candidate := range pitchingSections {
		if candidate == section {
			known = true
			break
		}
	}
	if !known {
		return "", fmt.Errorf("%w: %q", ErrUnknownSection, section)
	}

	file, err := s.projects.GetFile(projectID, fileID)
	if err != nil {
		return "", err
	}
	if file.Type != models.FileTypeScript {
		return "", ErrWrongFileType
	}

	prompt := fmt.Sprintf(`Para o roteiro a seguir, gere o conteúdo para a seção "%s" de um Film Design Document. Seja objetivo e profissional. Não inclua detalhes de orçamento. Roteiro: %s`,
		section, file.Script)

	return s.gateway.Generate(ctx, prompt), nil
}
