// internal/models/trash.go
package models

import (
	"time"
)

// TrashItemType tags what kind of snapshot a trash item holds.
type TrashItemType string

const (
	TrashItemProject TrashItemType = "project"
	TrashItemFile    TrashItemType = "file"
)

// TrashRetention is how long soft-deleted items survive before the
// store purges them.
const TrashRetention = 30 * 24 * time.Hour

// TrashItem is a soft-deleted project or file. Exactly one of Project
// and File is set, matching ItemType. For files, ProjectID records the
// owning project so a restore can put the file back where it came from.
type TrashItem struct {
	ID        string        `json:"id"`
	ItemType  TrashItemType `json:"itemType"`
	Name      string        `json:"name"`
	ProjectID string        `json:"projectId,omitempty"`
	Project   *Project      `json:"project,omitempty"`
	File      *File         `json:"file,omitempty"`
	DeletedAt time.Time     `json:"deletedAt"`
}

// Clone returns a deep copy, including the snapshotted project or file.
func (t *TrashItem) Clone() *TrashItem {
	if t == nil {
		return nil
	}
	copied := *t
	copied.Project = t.Project.Clone()
	copied.File = t.File.Clone()
	return &copied
}

// Expired reports whether the item has outlived the given retention.
func (t *TrashItem) Expired(retention time.Duration, now time.Time) bool {
	return now.Sub(t.DeletedAt) > retention
}
