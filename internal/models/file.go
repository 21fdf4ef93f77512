// internal/models/file.go
package models

import (
	"time"
)

// FileType discriminates the two document kinds a project can hold.
type FileType string

const (
	FileTypeScript   FileType = "script"
	FileTypeArgument FileType = "argument"
)

// DefaultScriptScaffold is the content every new screenplay starts with.
const DefaultScriptScaffold = "CENA INT. NOVO CENÁRIO - DIA\n\n"

// File is a single document inside a project. The content shape depends
// on Type: ScriptContent carries the screenplay text for script files,
// Argument carries the structured story document for argument files.
// The unused side stays zero-valued.
//
// ArgumentID links a script to an argument document in the same project
// by id, so renaming the argument never breaks the link.
type File struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Type       FileType         `json:"type"`
	Metadata   FileMetadata     `json:"metadata,omitempty"`
	ArgumentID string           `json:"argument_id,omitempty"`
	Script     string           `json:"script_content,omitempty"`
	Argument   *ArgumentContent `json:"argument_content,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"last_updated"`
}

// FileMetadata holds the production facts collected when a file is
// created. All fields are optional free text.
type FileMetadata struct {
	Version          string `json:"version,omitempty"`
	Language         string `json:"language,omitempty"`
	Format           string `json:"format,omitempty"`
	Duration         string `json:"duration,omitempty"`
	MainGenre        string `json:"main_genre,omitempty"`
	SecondaryGenre   string `json:"secondary_genre,omitempty"`
	TargetAudience   string `json:"target_audience,omitempty"`
	ExhibitionWindow string `json:"exhibition_window,omitempty"`
}

// Clone returns a deep copy of the file. Callers edit the copy and
// commit it back through the store's update operation.
func (f *File) Clone() *File {
	if f == nil {
		return nil
	}
	clone := *f
	if f.Argument != nil {
		arg := f.Argument.Clone()
		clone.Argument = arg
	}
	return &clone
}
