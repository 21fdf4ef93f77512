// internal/services/export_service_test.go
package services

import (
	"strings"
	"testing"

	"github.com/cmkfilmes/leanfilmdesign/internal/models"
)

func TestExportScriptFilename(t *testing.T) {
	projects, projectID, fileID := newScriptFixture(t)
	svc := NewExportService(projects)

	projects.UpdateScriptContent(projectID, fileID, "CENA INT. SALA - DIA\n\n")

	filename, content, err := svc.ExportScript(projectID, fileID)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	if filename != "Meu_Roteiro.txt" {
		t.Errorf("filename = %q, want spaces replaced by underscores", filename)
	}
	if content != "CENA INT. SALA - DIA\n\n" {
		t.Errorf("content = %q", content)
	}
}

func TestExportConsolidatedLayout(t *testing.T) {
	projects, projectID, fileID := newArgumentFixture(t)
	svc := NewExportService(projects)

	file, _ := projects.GetFile(projectID, fileID)
	arg := file.Argument
	arg.Consolidated = models.ConsolidatedArgument{
		Storyline:    "Uma frase.",
		Synopsis:     "A sinopse.",
		FullArgument: "O argumento.",
	}
	if err := projects.UpdateArgument(projectID, fileID, arg); err != nil {
		t.Fatalf("seed: %v", err)
	}

	filename, content, err := svc.ExportConsolidated(projectID, fileID)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	if filename != ConsolidatedExportName {
		t.Errorf("filename = %q", filename)
	}

	want := "STORYLINE\n=========\nUma frase.\n\n\nSINOPSE\n=======\nA sinopse.\n\n\nARGUMENTO COMPLETO\n===================\nO argumento."
	if content != want {
		t.Errorf("content = %q\nwant %q", content, want)
	}
	if !strings.HasPrefix(content, "STORYLINE\n=========\n") {
		t.Error("missing underlined heading")
	}
}

func TestExportScriptRejectsArgumentFile(t *testing.T) {
	projects, projectID, fileID := newArgumentFixture(t)
	svc := NewExportService(projects)

	if _, _, err := svc.ExportScript(projectID, fileID); err != ErrWrongFileType {
		t.Errorf("err = %v, want ErrWrongFileType", err)
	}
}
