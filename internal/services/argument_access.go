// internal/services/argument_access.go
package services

import (
	"github.com/cmkfilmes/leanfilmdesign/internal/models"
)

// argumentSnapshot returns a deep copy of the structured document of
// an argument file. Tab services read the snapshot, run generation
// outside the store lock and then apply results by id.
func argumentSnapshot(projects *ProjectService, projectID, fileID string) (*models.ArgumentContent, error) {
	file, err := projects.GetFile(projectID, fileID)
	if err != nil {
		return nil, err
	}
	if file.Type != models.FileTypeArgument || file.Argument == nil {
		return nil, ErrWrongFileType
	}
	return file.Argument, nil
}

// applyArgumentUpdate mutates the live argument document under the
// store lock.
func applyArgumentUpdate(projects *ProjectService, projectID, fileID string, mutate func(*models.ArgumentContent)) error {
	var typeErr error
	err := projects.ApplyFileUpdate(projectID, fileID, func(f *models.File) {
		if f.Type != models.FileTypeArgument || f.Argument == nil {
			typeErr = ErrWrongFileType
			return
		}
		mutate(f.Argument)
	})
	if err != nil {
		return err
	}
	return typeErr
}

// orDefault substitutes a placeholder for empty prompt fields so the
// model never sees a blank value.
func orDefault(value, placeholder string) string {
	if value == "" {
		return placeholder
	}
	return value
}
