// internal/services/pitching_service_test.go
package services

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestPitchingSectionsOrder(t *testing.T) {
	gateway, _ := newFakeGateway()
	projects, _, _ := newScriptFixture(t)
	svc := NewPitchingService(projects, gateway)

	sections := svc.Sections()
	if len(sections) != 11 {
		t.Fatalf("sections = %d, want 11", len(sections))
	}
	if sections[0] != "Sinopse" || sections[10] != "Distribuição" {
		t.Errorf("unexpected order: %v", sections)
	}
}

func TestGeneratePitchingSection(t *testing.T) {
	gateway, provider := newFakeGateway("Conteúdo da seção.")
	projects, projectID, fileID := newScriptFixture(t)
	svc := NewPitchingService(projects, gateway)

	got, err := svc.GenerateSection(context.Background(), projectID, fileID, "Público-Alvo")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got != "Conteúdo da seção." {
		t.Errorf("got %q", got)
	}

	prompt := provider.lastPrompt()
	if !strings.Contains(prompt, `"Público-Alvo"`) {
		t.Errorf("prompt missing section name: %q", prompt)
	}
	if !strings.Contains(prompt, "Não inclua detalhes de orçamento") {
		t.Errorf("prompt missing budget exclusion: %q", prompt)
	}
}

func TestGeneratePitchingUnknownSection(t *testing.T) {
	gateway, provider := newFakeGateway("x")
	projects, projectID, fileID := newScriptFixture(t)
	svc := NewPitchingService(projects, gateway)

	_, err := svc.GenerateSection(context.Background(), projectID, fileID, "Orçamento")
	if !errors.Is(err, ErrUnknownSection) {
		t.Fatalf("err = %v, want ErrUnknownSection", err)
	}
	if provider.promptCount() != 0 {
		t.Error("unknown section still hit the gateway")
	}
}

func TestGeneratePitchingRejectsArgumentFile(t *testing.T) {
	gateway, _ := newFakeGateway("x")
	projects, projectID, fileID := newArgumentFixture(t)
	svc := NewPitchingService(projects, gateway)

	if _, err := svc.GenerateSection(context.Background(), projectID, fileID, "Sinopse"); !errors.Is(err, ErrWrongFileType) {
		t.Fatalf("err = %v, want ErrWrongFileType", err)
	}
}
