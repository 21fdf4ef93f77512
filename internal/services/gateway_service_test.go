// internal/services/gateway_service_test.go
package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cmkfilmes/leanfilmdesign/internal/llm"
	_ "github.com/cmkfilmes/leanfilmdesign/internal/llm/providers/google"
)

func newTestGateway(t *testing.T, handler http.HandlerFunc) *GatewayService {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	provider, err := llm.GetProvider("google", map[string]string{
		"api_key":  "test-key",
		"base_url": server.URL,
	})
	if err != nil {
		t.Fatalf("failed to build provider: %v", err)
	}

	return NewGatewayServiceWithProvider(provider)
}

func geminiResponse(text string) string {
	return fmt.Sprintf(`{"candidates":[{"content":{"parts":[{"text":%q}]},"finishReason":"STOP"}]}`, text)
}

func TestGenerateCleansResponse(t *testing.T) {
	gateway := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, geminiResponse("```screenplay\nCENA INT. **CASA** - DIA\n```"))
	})

	got := gateway.Generate(context.Background(), "escreva uma cena")

	if strings.Contains(got, "```") {
		t.Errorf("fences not stripped: %q", got)
	}
	if strings.Contains(got, "*") {
		t.Errorf("asterisks not stripped: %q", got)
	}
	if got != "CENA INT. CASA - DIA" {
		t.Errorf("got %q", got)
	}
}

func TestGenerateCleansCaseInsensitiveFence(t *testing.T) {
	gateway := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, geminiResponse("```SCREENPLAY\ntexto\n```"))
	})

	got := gateway.Generate(context.Background(), "p")
	if got != "texto" {
		t.Errorf("got %q", got)
	}
}

func TestGenerateServerErrorBecomesMessage(t *testing.T) {
	gateway := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"quota exceeded"}}`, http.StatusTooManyRequests)
	})

	got := gateway.Generate(context.Background(), "p")

	if !strings.HasPrefix(got, "Erro ao conectar com a IA:") {
		t.Fatalf("expected connect error message, got %q", got)
	}
	if !strings.Contains(got, "429") {
		t.Errorf("message should carry the status code: %q", got)
	}
}

func TestGenerateEmptyCandidatesFallback(t *testing.T) {
	gateway := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"candidates":[]}`)
	})

	got := gateway.Generate(context.Background(), "p")
	if got != EmptyResponseMessage {
		t.Errorf("got %q, want empty-response fallback", got)
	}
}

func TestGenerateWithoutProvider(t *testing.T) {
	gateway := NewGatewayServiceWithProvider(nil)

	got := gateway.Generate(context.Background(), "p")
	if !strings.HasPrefix(got, "Erro ao conectar com a IA:") {
		t.Errorf("got %q", got)
	}
	if gateway.Ready() {
		t.Error("gateway without provider reports ready")
	}
}

func TestCleanResponseTrims(t *testing.T) {
	if got := CleanResponse("  \n  olá  \n  "); got != "olá" {
		t.Errorf("got %q", got)
	}
}
