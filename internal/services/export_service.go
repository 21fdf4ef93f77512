// internal/services/export_service.go
package services

import (
	"fmt"
	"strings"

	"github.com/cmkfilmes/leanfilmdesign/internal/models"
)

// ConsolidatedExportName is the download name of the consolidated
// argument export.
const ConsolidatedExportName = "argumento_consolidado.txt"

// ExportService renders files as plain-text downloads.
type ExportService struct {
	projects *ProjectService
}

func NewExportService(projects *ProjectService) *ExportService {
	return &ExportService{projects: projects}
}

// ExportScript returns the download filename and the raw screenplay
// text. Spaces in the file name become underscores.
func (s *ExportService) ExportScript(projectID, fileID string) (filename, content string, err error) {
	file, err := s.projects.GetFile(projectID, fileID)
	if err != nil {
		return "", "", err
	}
	if file.Type != models.FileTypeScript {
		return "", "", ErrWrongFileType
	}

	filename = strings.ReplaceAll(file.Name, " ", "_") + ".txt"
	return filename, file.Script, nil
}

// ExportConsolidated renders the three consolidated sections under
// underlined headings.
func (s *ExportService) ExportConsolidated(projectID, fileID string) (filename, content string, err error) {
	file, err := s.projects.GetFile(projectID, fileID)
	if err != nil {
		return "", "", err
	}
	if file.Type != models.FileTypeArgument || file.Argument == nil {
		return "", "", ErrWrongFileType
	}

	c := file.Argument.Consolidated
	content = fmt.Sprintf("STORYLINE\n=========\n%s\n\n\nSINOPSE\n=======\n%s\n\n\nARGUMENTO COMPLETO\n===================\n%s",
		c.Storyline, c.Synopsis, c.FullArgument)

	return ConsolidatedExportName, content, nil
}
