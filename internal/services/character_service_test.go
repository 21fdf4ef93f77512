// internal/services/character_service_test.go
package services

import (
	"context"
	"strings"
	"testing"

	"github.com/cmkfilmes/leanfilmdesign/internal/models"
)

func TestGenerateSummaryUsesTraitsAndPlaceholders(t *testing.T) {
	gateway, provider := newFakeGateway("Um resumo do protagonista.")
	projects, projectID, fileID := newArgumentFixture(t)
	svc := NewCharacterService(projects, gateway)

	err := svc.UpdateProfile(projectID, fileID, models.RoleProtagonist, models.CharacterProfile{
		Psychological: "Cauteloso",
		Strengths:     "Coragem",
	})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}

	summary, err := svc.GenerateSummary(context.Background(), projectID, fileID, models.RoleProtagonist)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if summary != "Um resumo do protagonista." {
		t.Errorf("summary = %q", summary)
	}

	prompt := provider.lastPrompt()
	if !strings.Contains(prompt, "Cauteloso") || !strings.Contains(prompt, "Coragem") {
		t.Errorf("prompt missing filled traits: %q", prompt)
	}
	// Empty traits fall back to placeholders instead of blanks.
	if !strings.Contains(prompt, "Fraquezas: Não informado") {
		t.Errorf("prompt missing placeholder for empty trait: %q", prompt)
	}
	if !strings.Contains(prompt, "Tema principal da história: Não definido") {
		t.Errorf("prompt missing placeholder for unset theme: %q", prompt)
	}

	file, _ := projects.GetFile(projectID, fileID)
	if file.Argument.Characters.Protagonist.Summary != summary {
		t.Error("summary not stored on the profile")
	}
}

func TestGenerateSummaryLastWriteWins(t *testing.T) {
	gateway, _ := newFakeGateway("primeira versão", "segunda versão")
	projects, projectID, fileID := newArgumentFixture(t)
	svc := NewCharacterService(projects, gateway)

	if _, err := svc.GenerateSummary(context.Background(), projectID, fileID, models.RoleAntagonist); err != nil {
		t.Fatalf("first generate: %v", err)
	}
	if _, err := svc.GenerateSummary(context.Background(), projectID, fileID, models.RoleAntagonist); err != nil {
		t.Fatalf("second generate: %v", err)
	}

	file, _ := projects.GetFile(projectID, fileID)
	if got := file.Argument.Characters.Antagonist.Summary; got != "segunda versão" {
		t.Errorf("stored summary = %q, want the latest generation", got)
	}
}

func TestUpdateProfileKeepsSummary(t *testing.T) {
	gateway, _ := newFakeGateway("resumo gerado")
	projects, projectID, fileID := newArgumentFixture(t)
	svc := NewCharacterService(projects, gateway)

	if _, err := svc.GenerateSummary(context.Background(), projectID, fileID, models.RoleProtagonist); err != nil {
		t.Fatalf("generate: %v", err)
	}

	err := svc.UpdateProfile(projectID, fileID, models.RoleProtagonist, models.CharacterProfile{
		Psychological: "Impulsivo",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	file, _ := projects.GetFile(projectID, fileID)
	profile := file.Argument.Characters.Protagonist
	if profile.Psychological != "Impulsivo" {
		t.Errorf("trait not updated: %q", profile.Psychological)
	}
	if profile.Summary != "resumo gerado" {
		t.Errorf("trait edit clobbered the summary: %q", profile.Summary)
	}
}
