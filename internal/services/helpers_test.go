// internal/services/helpers_test.go
package services

import (
	"context"
	"sync"
	"testing"

	"github.com/cmkfilmes/leanfilmdesign/internal/llm"
	"github.com/cmkfilmes/leanfilmdesign/internal/models"
)

// fakeProvider replays scripted responses and records the prompts it
// was asked.
type fakeProvider struct {
	mu        sync.Mutex
	responses []string
	prompts   []string
}

func (p *fakeProvider) Initialize(map[string]string) error { return nil }
func (p *fakeProvider) GetName() string                    { return "fake" }
func (p *fakeProvider) GetSupportedModels() []string       { return nil }

func (p *fakeProvider) CompleteText(_ context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.prompts = append(p.prompts, req.Prompt)

	text := ""
	if len(p.responses) > 0 {
		text = p.responses[0]
		if len(p.responses) > 1 {
			p.responses = p.responses[1:]
		}
	}

	return &llm.CompletionResponse{Text: text, ProviderName: "fake"}, nil
}

func (p *fakeProvider) promptCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.prompts)
}

func (p *fakeProvider) lastPrompt() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.prompts) == 0 {
		return ""
	}
	return p.prompts[len(p.prompts)-1]
}

// newFakeGateway builds a gateway whose provider replays the given
// responses in order, repeating the last one.
func newFakeGateway(responses ...string) (*GatewayService, *fakeProvider) {
	provider := &fakeProvider{responses: responses}
	return NewGatewayServiceWithProvider(provider), provider
}

// newArgumentFixture creates a project with one argument file.
func newArgumentFixture(t *testing.T) (*ProjectService, string, string) {
	t.Helper()

	projects := newTestProjectService(t)
	p, err := projects.CreateProject("Projeto")
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	f, err := projects.CreateFile(p.ID, "Argumento", models.FileTypeArgument, models.FileMetadata{})
	if err != nil {
		t.Fatalf("create argument file: %v", err)
	}

	return projects, p.ID, f.ID
}

// newScriptFixture creates a project with one script file.
func newScriptFixture(t *testing.T) (*ProjectService, string, string) {
	t.Helper()

	projects := newTestProjectService(t)
	p, err := projects.CreateProject("Projeto")
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	f, err := projects.CreateFile(p.ID, "Meu Roteiro", models.FileTypeScript, models.FileMetadata{})
	if err != nil {
		t.Fatalf("create script file: %v", err)
	}

	return projects, p.ID, f.ID
}
