// internal/services/project_service_test.go
package services

import (
	"errors"
	"testing"
	"time"

	"github.com/cmkfilmes/leanfilmdesign/internal/models"
	"github.com/cmkfilmes/leanfilmdesign/internal/storage"
)

func newTestProjectService(t *testing.T) *ProjectService {
	t.Helper()

	fs, err := storage.NewFileStorage(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}

	svc, err := NewProjectService(fs)
	if err != nil {
		t.Fatalf("failed to create project service: %v", err)
	}

	return svc
}

func TestCreateProjectAssignsUniqueIDs(t *testing.T) {
	svc := newTestProjectService(t)

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		p, err := svc.CreateProject("Projeto")
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if seen[p.ID] {
			t.Fatalf("duplicate project id %q", p.ID)
		}
		seen[p.ID] = true
	}
}

func TestIDsUniqueAcrossLiveAndTrash(t *testing.T) {
	svc := newTestProjectService(t)

	p, _ := svc.CreateProject("Longa")
	f1, _ := svc.CreateFile(p.ID, "Roteiro", models.FileTypeScript, models.FileMetadata{})
	if _, err := svc.DeleteFile(p.ID, f1.ID); err != nil {
		t.Fatalf("delete file: %v", err)
	}

	f2, _ := svc.CreateFile(p.ID, "Roteiro", models.FileTypeScript, models.FileMetadata{})
	if f2.ID == f1.ID {
		t.Fatal("new file reused the id of a trashed file")
	}
}

func TestCreateFileDefaults(t *testing.T) {
	svc := newTestProjectService(t)
	p, _ := svc.CreateProject("Curta")

	script, err := svc.CreateFile(p.ID, "Roteiro_v1", models.FileTypeScript, models.FileMetadata{MainGenre: "Drama"})
	if err != nil {
		t.Fatalf("create script: %v", err)
	}
	if script.Script != models.DefaultScriptScaffold {
		t.Errorf("script content = %q, want scaffold", script.Script)
	}
	if script.Argument != nil {
		t.Error("script file should have no argument content")
	}

	arg, err := svc.CreateFile(p.ID, "Argumento", models.FileTypeArgument, models.FileMetadata{})
	if err != nil {
		t.Fatalf("create argument: %v", err)
	}
	if arg.Argument == nil {
		t.Fatal("argument file missing structured content")
	}
	if arg.Argument.MainTheme != "" || len(arg.Argument.SubThemes) != 0 {
		t.Errorf("argument content not zero-valued: %+v", arg.Argument)
	}
}

func TestGetProjectReturnsIsolatedCopy(t *testing.T) {
	svc := newTestProjectService(t)
	p, _ := svc.CreateProject("Original")
	f, _ := svc.CreateFile(p.ID, "Roteiro", models.FileTypeScript, models.FileMetadata{})

	snapshot, _ := svc.GetProject(p.ID)
	snapshot.Name = "Mutado"
	snapshot.Files[0].Script = "conteúdo alterado no snapshot"

	fresh, _ := svc.GetProject(p.ID)
	if fresh.Name != "Original" {
		t.Errorf("store saw snapshot rename: %q", fresh.Name)
	}
	if fresh.FindFile(f.ID).Script != models.DefaultScriptScaffold {
		t.Error("store saw snapshot content edit")
	}
}

func TestDeleteRestoreProjectRoundtrip(t *testing.T) {
	svc := newTestProjectService(t)
	p, _ := svc.CreateProject("Recuperável")
	svc.CreateFile(p.ID, "Roteiro", models.FileTypeScript, models.FileMetadata{})

	item, err := svc.DeleteProject(p.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetProject(p.ID); !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("deleted project still retrievable, err = %v", err)
	}

	if err := svc.RestoreItem(item.ID); err != nil {
		t.Fatalf("restore: %v", err)
	}

	restored, err := svc.GetProject(p.ID)
	if err != nil {
		t.Fatalf("get after restore: %v", err)
	}
	if restored.Name != "Recuperável" || len(restored.Files) != 1 {
		t.Errorf("restored project lost data: %+v", restored)
	}
	if len(svc.ListTrash()) != 0 {
		t.Error("restored item still in trash")
	}
}

func TestDeleteRestoreFileRoundtrip(t *testing.T) {
	svc := newTestProjectService(t)
	p, _ := svc.CreateProject("Projeto")
	f, _ := svc.CreateFile(p.ID, "Roteiro", models.FileTypeScript, models.FileMetadata{})
	svc.UpdateScriptContent(p.ID, f.ID, "CENA EXT. PRAIA - DIA\n\n")

	item, err := svc.DeleteFile(p.ID, f.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}

	if err := svc.RestoreItem(item.ID); err != nil {
		t.Fatalf("restore: %v", err)
	}

	restored, err := svc.GetFile(p.ID, f.ID)
	if err != nil {
		t.Fatalf("get after restore: %v", err)
	}
	if restored.Script != "CENA EXT. PRAIA - DIA\n\n" {
		t.Errorf("restored file lost content: %q", restored.Script)
	}
}

func TestRestoreFileIntoMissingProjectIsDropped(t *testing.T) {
	svc := newTestProjectService(t)
	p, _ := svc.CreateProject("Efêmero")
	f, _ := svc.CreateFile(p.ID, "Roteiro", models.FileTypeScript, models.FileMetadata{})

	fileItem, _ := svc.DeleteFile(p.ID, f.ID)
	svc.DeleteProject(p.ID)
	projectItem := findTrashItemByName(svc, "Efêmero")
	svc.DeleteTrashItem(projectItem.ID)

	// The file has nowhere to go, but the trash entry is consumed
	// either way.
	if err := svc.RestoreItem(fileItem.ID); err != nil {
		t.Fatalf("restore: %v", err)
	}

	for _, item := range svc.ListTrash() {
		if item.ID == fileItem.ID {
			t.Error("dropped restore left the item in the trash")
		}
	}
	if len(svc.ListProjects()) != 0 {
		t.Error("dropped restore resurrected a project")
	}
}

func findTrashItemByName(svc *ProjectService, name string) *models.TrashItem {
	for _, item := range svc.ListTrash() {
		if item.Name == name {
			return item
		}
	}
	return nil
}

func TestUpdateArgumentNilIsNoOp(t *testing.T) {
	svc := newTestProjectService(t)
	p, _ := svc.CreateProject("Projeto")
	arg, _ := svc.CreateFile(p.ID, "Argumento", models.FileTypeArgument, models.FileMetadata{})

	if err := svc.UpdateArgument(p.ID, arg.ID, &models.ArgumentContent{MainTheme: "Vingança"}); err != nil {
		t.Fatalf("seed argument: %v", err)
	}

	if err := svc.UpdateArgument(p.ID, arg.ID, nil); err != nil {
		t.Fatalf("nil update: %v", err)
	}

	file, err := svc.GetFile(p.ID, arg.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if file.Argument == nil {
		t.Fatal("nil update wiped the argument document")
	}
	if file.Argument.MainTheme != "Vingança" {
		t.Errorf("main theme = %q, want %q", file.Argument.MainTheme, "Vingança")
	}
}

func TestApplyFileUpdateNilFuncIsNoOp(t *testing.T) {
	svc := newTestProjectService(t)
	p, _ := svc.CreateProject("Projeto")
	f, _ := svc.CreateFile(p.ID, "Roteiro", models.FileTypeScript, models.FileMetadata{})

	if err := svc.ApplyFileUpdate(p.ID, f.ID, nil); err != nil {
		t.Fatalf("nil mutation: %v", err)
	}

	file, err := svc.GetFile(p.ID, f.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if file.Script != models.DefaultScriptScaffold {
		t.Errorf("content changed by nil mutation: %q", file.Script)
	}
}

func TestListTrashReturnsIsolatedCopies(t *testing.T) {
	svc := newTestProjectService(t)
	p, _ := svc.CreateProject("Intacto")
	svc.CreateFile(p.ID, "Roteiro", models.FileTypeScript, models.FileMetadata{})
	item, _ := svc.DeleteProject(p.ID)

	listed := findTrashItemByName(svc, "Intacto")
	listed.Project.Name = "Mutado"
	listed.Project.Files[0].Script = "alterado fora do store"

	if err := svc.RestoreItem(item.ID); err != nil {
		t.Fatalf("restore: %v", err)
	}
	restored, err := svc.GetProject(p.ID)
	if err != nil {
		t.Fatalf("get after restore: %v", err)
	}
	if restored.Name != "Intacto" {
		t.Errorf("store saw mutation of a listed trash item: %q", restored.Name)
	}
	if restored.Files[0].Script != models.DefaultScriptScaffold {
		t.Error("store saw content edit through a listed trash item")
	}
}

func TestDeleteActiveFileClearsSelection(t *testing.T) {
	svc := newTestProjectService(t)
	p, _ := svc.CreateProject("Projeto")
	f, _ := svc.CreateFile(p.ID, "Roteiro", models.FileTypeScript, models.FileMetadata{})

	svc.SetActiveProject(p.ID)
	svc.SetActiveFile(f.ID)

	svc.DeleteFile(p.ID, f.ID)

	projectID, fileID := svc.ActiveSelection()
	if projectID != p.ID {
		t.Errorf("deleting a file should keep the project active, got %q", projectID)
	}
	if fileID != "" {
		t.Errorf("active file not cleared: %q", fileID)
	}
}

func TestDeleteActiveProjectClearsSelection(t *testing.T) {
	svc := newTestProjectService(t)
	p, _ := svc.CreateProject("Projeto")
	f, _ := svc.CreateFile(p.ID, "Roteiro", models.FileTypeScript, models.FileMetadata{})

	svc.SetActiveProject(p.ID)
	svc.SetActiveFile(f.ID)

	svc.DeleteProject(p.ID)

	projectID, fileID := svc.ActiveSelection()
	if projectID != "" || fileID != "" {
		t.Errorf("selection not cleared: project=%q file=%q", projectID, fileID)
	}
}

func TestSwitchingProjectClearsActiveFile(t *testing.T) {
	svc := newTestProjectService(t)
	p1, _ := svc.CreateProject("Um")
	p2, _ := svc.CreateProject("Dois")
	f, _ := svc.CreateFile(p1.ID, "Roteiro", models.FileTypeScript, models.FileMetadata{})

	svc.SetActiveProject(p1.ID)
	svc.SetActiveFile(f.ID)
	svc.SetActiveProject(p2.ID)

	_, fileID := svc.ActiveSelection()
	if fileID != "" {
		t.Errorf("active file survived a project switch: %q", fileID)
	}
}

func TestPurgeExpiredTrash(t *testing.T) {
	svc := newTestProjectService(t)
	p, _ := svc.CreateProject("Antigo")
	svc.DeleteProject(p.ID)

	if purged := svc.PurgeExpired(time.Now()); purged != 0 {
		t.Fatalf("fresh item purged early: %d", purged)
	}

	future := time.Now().Add(models.TrashRetention + time.Hour)
	if purged := svc.PurgeExpired(future); purged != 1 {
		t.Fatalf("purged = %d, want 1", purged)
	}
	if len(svc.ListTrash()) != 0 {
		t.Error("expired item still listed")
	}
}

func TestArgumentLinkSurvivesRename(t *testing.T) {
	svc := newTestProjectService(t)
	p, _ := svc.CreateProject("Projeto")
	script, _ := svc.CreateFile(p.ID, "Roteiro", models.FileTypeScript, models.FileMetadata{})
	arg, _ := svc.CreateFile(p.ID, "Argumento", models.FileTypeArgument, models.FileMetadata{})

	if err := svc.SetArgumentLink(p.ID, script.ID, arg.ID); err != nil {
		t.Fatalf("link: %v", err)
	}

	if err := svc.RenameFile(p.ID, arg.ID, "Argumento_Final"); err != nil {
		t.Fatalf("rename: %v", err)
	}

	content, err := svc.LinkedArgument(p.ID, script.ID)
	if err != nil {
		t.Fatalf("resolve link: %v", err)
	}
	if content == nil {
		t.Fatal("link broken by rename")
	}
}

func TestLinkedArgumentBrokenLinkReturnsNil(t *testing.T) {
	svc := newTestProjectService(t)
	p, _ := svc.CreateProject("Projeto")
	script, _ := svc.CreateFile(p.ID, "Roteiro", models.FileTypeScript, models.FileMetadata{})
	arg, _ := svc.CreateFile(p.ID, "Argumento", models.FileTypeArgument, models.FileMetadata{})

	svc.SetArgumentLink(p.ID, script.ID, arg.ID)
	svc.DeleteFile(p.ID, arg.ID)

	content, err := svc.LinkedArgument(p.ID, script.ID)
	if err != nil {
		t.Fatalf("resolve link: %v", err)
	}
	if content != nil {
		t.Error("deleted argument still resolved")
	}
}

func TestPersistenceAcrossReload(t *testing.T) {
	dir := t.TempDir()
	fs, err := storage.NewFileStorage(dir)
	if err != nil {
		t.Fatalf("storage: %v", err)
	}

	svc, err := NewProjectService(fs)
	if err != nil {
		t.Fatalf("service: %v", err)
	}
	p, _ := svc.CreateProject("Persistente")
	f, _ := svc.CreateFile(p.ID, "Roteiro", models.FileTypeScript, models.FileMetadata{})
	svc.UpdateScriptContent(p.ID, f.ID, "CENA INT. ARQUIVO - NOITE\n\n")

	fs2, err := storage.NewFileStorage(dir)
	if err != nil {
		t.Fatalf("storage reload: %v", err)
	}
	svc2, err := NewProjectService(fs2)
	if err != nil {
		t.Fatalf("service reload: %v", err)
	}

	file, err := svc2.GetFile(p.ID, f.ID)
	if err != nil {
		t.Fatalf("get after reload: %v", err)
	}
	if file.Script != "CENA INT. ARQUIVO - NOITE\n\n" {
		t.Errorf("content lost across reload: %q", file.Script)
	}
}
