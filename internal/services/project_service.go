// internal/services/project_service.go
package services

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cmkfilmes/leanfilmdesign/internal/models"
	"github.com/cmkfilmes/leanfilmdesign/internal/storage"
	"github.com/cmkfilmes/leanfilmdesign/internal/utils"
)

const (
	projectsDir = "projects"
	trashDir    = "trash"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrFileNotFound    = errors.New("file not found")
	ErrTrashNotFound   = errors.New("trash item not found")
	ErrEmptyName       = errors.New("name must not be empty")
	ErrWrongFileType   = errors.New("operation does not apply to this file type")
)

// ProjectService owns the project, file and trash state. All reads
// return deep copies and all mutations go through the service lock, so
// a caller holding a snapshot never sees later edits and concurrent
// updates resolve to last-write-wins.
type ProjectService struct {
	mu       sync.RWMutex
	projects map[string]*models.Project
	trash    map[string]*models.TrashItem

	activeProjectID string
	activeFileID    string

	retention time.Duration
	storage   *storage.FileStorage
	logger    *utils.Logger
}

// NewProjectService loads persisted projects and trash from storage
// and purges trash items past the retention window.
func NewProjectService(fs *storage.FileStorage) (*ProjectService, error) {
	s := &ProjectService{
		projects:  make(map[string]*models.Project),
		trash:     make(map[string]*models.TrashItem),
		retention: models.TrashRetention,
		storage:   fs,
		logger:    utils.GetLogger(),
	}

	if err := s.loadAll(); err != nil {
		return nil, err
	}

	if purged := s.PurgeExpired(time.Now()); purged > 0 {
		s.logger.Infof("purged %d expired trash items on startup", purged)
	}

	return s, nil
}

func (s *ProjectService) loadAll() error {
	projectFiles, err := s.storage.ListFiles(projectsDir)
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}
	for _, name := range projectFiles {
		var project models.Project
		if err := s.storage.LoadJSONFile(projectsDir, name, &project); err != nil {
			s.logger.Warnf("skipping unreadable project file %s: %v", name, err)
			continue
		}
		s.projects[project.ID] = &project
	}

	trashFiles, err := s.storage.ListFiles(trashDir)
	if err != nil {
		return fmt.Errorf("failed to list trash: %w", err)
	}
	for _, name := range trashFiles {
		var item models.TrashItem
		if err := s.storage.LoadJSONFile(trashDir, name, &item); err != nil {
			s.logger.Warnf("skipping unreadable trash file %s: %v", name, err)
			continue
		}
		s.trash[item.ID] = &item
	}

	return nil
}

// StartTrashCleanup purges expired trash items once a day until the
// stop channel closes.
func (s *ProjectService) StartTrashCleanup(stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				if purged := s.PurgeExpired(time.Now()); purged > 0 {
					s.logger.Infof("purged %d expired trash items", purged)
				}
			}
		}
	}()
}

func (s *ProjectService) saveProject(p *models.Project) {
	if err := s.storage.SaveJSONFile(projectsDir, p.ID+".json", p); err != nil {
		s.logger.Errorf("failed to persist project %s: %v", p.ID, err)
	}
}

func (s *ProjectService) saveTrashItem(item *models.TrashItem) {
	if err := s.storage.SaveJSONFile(trashDir, item.ID+".json", item); err != nil {
		s.logger.Errorf("failed to persist trash item %s: %v", item.ID, err)
	}
}

func (s *ProjectService) removeStoredProject(id string) {
	if s.storage.FileExists(projectsDir, id+".json") {
		if err := s.storage.DeleteFile(projectsDir, id+".json"); err != nil {
			s.logger.Errorf("failed to remove project file %s: %v", id, err)
		}
	}
}

func (s *ProjectService) removeStoredTrashItem(id string) {
	if s.storage.FileExists(trashDir, id+".json") {
		if err := s.storage.DeleteFile(trashDir, id+".json"); err != nil {
			s.logger.Errorf("failed to remove trash file %s: %v", id, err)
		}
	}
}

// ListProjects returns listing metadata for every live project, newest
// first.
func (s *ProjectService) ListProjects() []models.ProjectMetadata {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]models.ProjectMetadata, 0, len(s.projects))
	for _, p := range s.projects {
		list = append(list, p.Metadata())
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})

	return list
}

// CreateProject creates an empty project with a fresh id.
func (s *ProjectService) CreateProject(name string) (*models.Project, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	now := time.Now()
	project := &models.Project{
		ID:        uuid.NewString(),
		Name:      name,
		Files:     []*models.File{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.projects[project.ID] = project
	s.saveProject(project)
	s.mu.Unlock()

	return project.Clone(), nil
}

// GetProject returns a deep copy of the project.
func (s *ProjectService) GetProject(id string) (*models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	project, exists := s.projects[id]
	if !exists {
		return nil, ErrProjectNotFound
	}

	return project.Clone(), nil
}

// RenameProject changes the project name.
func (s *ProjectService) RenameProject(id, name string) error {
	if name == "" {
		return ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	project, exists := s.projects[id]
	if !exists {
		return ErrProjectNotFound
	}

	project.Name = name
	project.UpdatedAt = time.Now()
	s.saveProject(project)

	return nil
}

// DeleteProject moves the project and everything in it to the trash.
// If the project or one of its files was active, the selection clears.
func (s *ProjectService) DeleteProject(id string) (*models.TrashItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	project, exists := s.projects[id]
	if !exists {
		return nil, ErrProjectNotFound
	}

	delete(s.projects, id)
	s.removeStoredProject(id)

	if s.activeProjectID == id {
		s.activeProjectID = ""
		s.activeFileID = ""
	}

	item := &models.TrashItem{
		ID:        uuid.NewString(),
		ItemType:  models.TrashItemProject,
		Name:      project.Name,
		Project:   project,
		DeletedAt: time.Now(),
	}
	s.trash[item.ID] = item
	s.saveTrashItem(item)

	return item, nil
}

// CreateFile adds a file to a project. Scripts start with the default
// scene scaffold; arguments start with an empty structured document.
func (s *ProjectService) CreateFile(projectID, name string, fileType models.FileType, metadata models.FileMetadata) (*models.File, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if fileType != models.FileTypeScript && fileType != models.FileTypeArgument {
		return nil, fmt.Errorf("unknown file type: %q", fileType)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	project, exists := s.projects[projectID]
	if !exists {
		return nil, ErrProjectNotFound
	}

	now := time.Now()
	file := &models.File{
		ID:        uuid.NewString(),
		Name:      name,
		Type:      fileType,
		Metadata:  metadata,
		CreatedAt: now,
		UpdatedAt: now,
	}

	switch fileType {
	case models.FileTypeScript:
		file.Script = models.DefaultScriptScaffold
	case models.FileTypeArgument:
		file.Argument = models.NewArgumentContent()
	}

	project.Files = append(project.Files, file)
	project.UpdatedAt = now
	s.saveProject(project)

	return file.Clone(), nil
}

// GetFile returns a deep copy of one file.
func (s *ProjectService) GetFile(projectID, fileID string) (*models.File, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	project, exists := s.projects[projectID]
	if !exists {
		return nil, ErrProjectNotFound
	}

	file := project.FindFile(fileID)
	if file == nil {
		return nil, ErrFileNotFound
	}

	return file.Clone(), nil
}

// RenameFile changes a file name. Links to the file are by id and
// survive the rename.
func (s *ProjectService) RenameFile(projectID, fileID, name string) error {
	if name == "" {
		return ErrEmptyName
	}

	return s.ApplyFileUpdate(projectID, fileID, func(f *models.File) {
		f.Name = name
	})
}

// ApplyFileUpdate runs a mutation against the live file under the
// store lock and persists the result. Callers that generate content
// first do so on a snapshot outside the lock and apply the result here
// by id; the mutation sees the current state, so the latest apply wins.
func (s *ProjectService) ApplyFileUpdate(projectID, fileID string, apply func(*models.File)) error {
	if apply == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	project, exists := s.projects[projectID]
	if !exists {
		return ErrProjectNotFound
	}

	file := project.FindFile(fileID)
	if file == nil {
		return ErrFileNotFound
	}

	apply(file)

	now := time.Now()
	file.UpdatedAt = now
	project.UpdatedAt = now
	s.saveProject(project)

	return nil
}

// UpdateScriptContent replaces the screenplay text of a script file.
func (s *ProjectService) UpdateScriptContent(projectID, fileID, content string) error {
	var typeErr error
	err := s.ApplyFileUpdate(projectID, fileID, func(f *models.File) {
		if f.Type != models.FileTypeScript {
			typeErr = ErrWrongFileType
			return
		}
		f.Script = content
	})
	if err != nil {
		return err
	}
	return typeErr
}

// UpdateArgument replaces the structured document of an argument file.
// A nil content is a no-op: the stored document stays as it is.
func (s *ProjectService) UpdateArgument(projectID, fileID string, content *models.ArgumentContent) error {
	if content == nil {
		return nil
	}

	var typeErr error
	err := s.ApplyFileUpdate(projectID, fileID, func(f *models.File) {
		if f.Type != models.FileTypeArgument {
			typeErr = ErrWrongFileType
			return
		}
		f.Argument = content.Clone()
	})
	if err != nil {
		return err
	}
	return typeErr
}

// SetArgumentLink points a script file at an argument file by id. An
// empty argumentID clears the link.
func (s *ProjectService) SetArgumentLink(projectID, fileID, argumentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	project, exists := s.projects[projectID]
	if !exists {
		return ErrProjectNotFound
	}

	file := project.FindFile(fileID)
	if file == nil {
		return ErrFileNotFound
	}
	if file.Type != models.FileTypeScript {
		return ErrWrongFileType
	}

	if argumentID != "" {
		target := project.FindFile(argumentID)
		if target == nil || target.Type != models.FileTypeArgument {
			return ErrFileNotFound
		}
	}

	file.ArgumentID = argumentID
	now := time.Now()
	file.UpdatedAt = now
	project.UpdatedAt = now
	s.saveProject(project)

	return nil
}

// LinkedArgument resolves the argument document a script points at.
// A broken or empty link returns nil without error.
func (s *ProjectService) LinkedArgument(projectID, fileID string) (*models.ArgumentContent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	project, exists := s.projects[projectID]
	if !exists {
		return nil, ErrProjectNotFound
	}

	file := project.FindFile(fileID)
	if file == nil {
		return nil, ErrFileNotFound
	}
	if file.ArgumentID == "" {
		return nil, nil
	}

	target := project.FindFile(file.ArgumentID)
	if target == nil || target.Type != models.FileTypeArgument {
		return nil, nil
	}

	return target.Argument.Clone(), nil
}

// DeleteFile moves a file to the trash, remembering the owning project
// for a later restore. Deleting the active file clears the file part
// of the selection only.
func (s *ProjectService) DeleteFile(projectID, fileID string) (*models.TrashItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	project, exists := s.projects[projectID]
	if !exists {
		return nil, ErrProjectNotFound
	}

	file := project.RemoveFile(fileID)
	if file == nil {
		return nil, ErrFileNotFound
	}

	project.UpdatedAt = time.Now()
	s.saveProject(project)

	if s.activeFileID == fileID {
		s.activeFileID = ""
	}

	item := &models.TrashItem{
		ID:        uuid.NewString(),
		ItemType:  models.TrashItemFile,
		Name:      file.Name,
		ProjectID: projectID,
		File:      file,
		DeletedAt: time.Now(),
	}
	s.trash[item.ID] = item
	s.saveTrashItem(item)

	return item, nil
}

// ListTrash returns the trash items, most recently deleted first.
func (s *ProjectService) ListTrash() []*models.TrashItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]*models.TrashItem, 0, len(s.trash))
	for _, item := range s.trash {
		list = append(list, item.Clone())
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].DeletedAt.After(list[j].DeletedAt)
	})

	return list
}

// RestoreItem puts a trash item back. Projects return to the project
// list; files return to their original project. A file whose project
// no longer exists has nowhere to go: the restore is dropped, but the
// trash entry is removed either way.
func (s *ProjectService) RestoreItem(trashID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, exists := s.trash[trashID]
	if !exists {
		return ErrTrashNotFound
	}

	switch item.ItemType {
	case models.TrashItemProject:
		s.projects[item.Project.ID] = item.Project
		item.Project.UpdatedAt = time.Now()
		s.saveProject(item.Project)

	case models.TrashItemFile:
		if project, exists := s.projects[item.ProjectID]; exists {
			project.Files = append(project.Files, item.File)
			project.UpdatedAt = time.Now()
			s.saveProject(project)
		} else {
			s.logger.Warnf("restore of %q dropped: original project is gone", item.Name)
		}

	default:
		return fmt.Errorf("unknown trash item type: %q", item.ItemType)
	}

	delete(s.trash, trashID)
	s.removeStoredTrashItem(trashID)

	return nil
}

// DeleteTrashItem removes a trash item permanently.
func (s *ProjectService) DeleteTrashItem(trashID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.trash[trashID]; !exists {
		return ErrTrashNotFound
	}

	delete(s.trash, trashID)
	s.removeStoredTrashItem(trashID)

	return nil
}

// EmptyTrash removes every trash item permanently.
func (s *ProjectService) EmptyTrash() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := len(s.trash)
	for id := range s.trash {
		s.removeStoredTrashItem(id)
		delete(s.trash, id)
	}

	return count
}

// PurgeExpired permanently removes trash items older than the
// retention window and returns how many were purged.
func (s *ProjectService) PurgeExpired(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	purged := 0
	for id, item := range s.trash {
		if item.Expired(s.retention, now) {
			s.removeStoredTrashItem(id)
			delete(s.trash, id)
			purged++
		}
	}

	return purged
}

// SetActiveProject records the open project. Switching projects clears
// the open file.
func (s *ProjectService) SetActiveProject(projectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if projectID != "" {
		if _, exists := s.projects[projectID]; !exists {
			return ErrProjectNotFound
		}
	}

	if s.activeProjectID != projectID {
		s.activeFileID = ""
	}
	s.activeProjectID = projectID

	return nil
}

// SetActiveFile records the open file within the active project.
func (s *ProjectService) SetActiveFile(fileID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if fileID == "" {
		s.activeFileID = ""
		return nil
	}

	project, exists := s.projects[s.activeProjectID]
	if !exists {
		return ErrProjectNotFound
	}
	if project.FindFile(fileID) == nil {
		return ErrFileNotFound
	}

	s.activeFileID = fileID
	return nil
}

// ActiveSelection returns the open project and file ids, either of
// which may be empty.
func (s *ProjectService) ActiveSelection() (projectID, fileID string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeProjectID, s.activeFileID
}
