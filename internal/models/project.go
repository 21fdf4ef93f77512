// internal/models/project.go
package models

import (
	"time"
)

// Project is the top-level container for a writer's files. Files keep
// their insertion order for list display; nothing else depends on it.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Files     []*File   `json:"files"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"last_updated"`
}

// FindFile returns the file with the given id, or nil.
func (p *Project) FindFile(fileID string) *File {
	for _, f := range p.Files {
		if f.ID == fileID {
			return f
		}
	}
	return nil
}

// RemoveFile detaches the file with the given id from the project and
// returns it, or nil when the project does not hold it.
func (p *Project) RemoveFile(fileID string) *File {
	for i, f := range p.Files {
		if f.ID == fileID {
			p.Files = append(p.Files[:i], p.Files[i+1:]...)
			return f
		}
	}
	return nil
}

// Clone returns a deep copy of the project and all of its files.
func (p *Project) Clone() *Project {
	if p == nil {
		return nil
	}
	clone := *p
	clone.Files = make([]*File, len(p.Files))
	for i, f := range p.Files {
		clone.Files[i] = f.Clone()
	}
	return &clone
}

// Metadata returns the listing shape for the project.
func (p *Project) Metadata() ProjectMetadata {
	return ProjectMetadata{
		ID:        p.ID,
		Name:      p.Name,
		FileCount: len(p.Files),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// ProjectMetadata is the shape used for project listings.
type ProjectMetadata struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	FileCount int       `json:"file_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"last_updated"`
}
