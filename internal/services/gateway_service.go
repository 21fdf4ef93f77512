// internal/services/gateway_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/cmkfilmes/leanfilmdesign/internal/config"
	"github.com/cmkfilmes/leanfilmdesign/internal/llm"
	"github.com/cmkfilmes/leanfilmdesign/internal/utils"
)

// EmptyResponseMessage is returned when the provider answers with no
// usable candidates.
const EmptyResponseMessage = "Não foi possível gerar uma resposta. A resposta da API estava vazia ou em formato inesperado. Tente novamente."

// Generation parameters shared by every prompt. Low topK keeps the
// output deterministic enough for the marker-based parsers.
const (
	generationTemperature = 0.7
	generationTopP        = 1
	generationTopK        = 1
)

var screenplayFenceRe = regexp.MustCompile("(?i)```screenplay")

// GatewayService is the single entry point to the text-generation
// backend. Generate never returns an error: failures come back as
// user-facing Portuguese messages, so callers always have text to
// store or display.
type GatewayService struct {
	mu       sync.RWMutex
	provider llm.Provider
	logger   *utils.Logger
}

// NewGatewayService builds a gateway from the current app config. A
// missing or invalid provider is not fatal: the gateway stays usable
// and reports the problem through its generated messages.
func NewGatewayService() *GatewayService {
	svc := &GatewayService{
		logger: utils.GetLogger(),
	}

	cfg := config.GetCurrentConfig()
	if cfg.LLMProvider != "" && cfg.LLMConfig["api_key"] != "" {
		provider, err := llm.GetProvider(cfg.LLMProvider, cfg.LLMConfig)
		if err != nil {
			svc.logger.Warnf("AI provider %q unavailable: %v", cfg.LLMProvider, err)
		} else {
			svc.provider = provider
		}
	}

	return svc
}

// NewGatewayServiceWithProvider builds a gateway around an already
// initialized provider.
func NewGatewayServiceWithProvider(provider llm.Provider) *GatewayService {
	return &GatewayService{
		provider: provider,
		logger:   utils.GetLogger(),
	}
}

// UpdateProvider swaps the backing provider, used when settings change
// at runtime.
func (s *GatewayService) UpdateProvider(name string, providerConfig map[string]string) error {
	provider, err := llm.GetProvider(name, providerConfig)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.provider = provider
	s.mu.Unlock()
	return nil
}

// Ready reports whether a provider is configured.
func (s *GatewayService) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.provider != nil
}

// Generate sends the prompt to the provider and returns cleaned text.
// Connection and API failures become an error message string; an empty
// response becomes EmptyResponseMessage.
func (s *GatewayService) Generate(ctx context.Context, prompt string) string {
	s.mu.RLock()
	provider := s.provider
	s.mu.RUnlock()

	if provider == nil {
		return connectErrorMessage(errors.New("nenhum provedor de IA configurado"))
	}

	resp, err := provider.CompleteText(ctx, llm.CompletionRequest{
		Prompt:      prompt,
		Temperature: generationTemperature,
		TopP:        generationTopP,
		TopK:        generationTopK,
	})
	if err != nil {
		if errors.Is(err, llm.ErrEmptyCompletion) {
			s.logger.Warn("AI response had no candidates", nil)
			return EmptyResponseMessage
		}
		s.logger.Errorf("AI request failed: %v", err)
		return connectErrorMessage(err)
	}

	return CleanResponse(resp.Text)
}

func connectErrorMessage(err error) string {
	return fmt.Sprintf("Erro ao conectar com a IA: %s. Verifique sua chave de API e a conexão com a internet.", err)
}

// CleanResponse strips the markdown artifacts the model tends to wrap
// screenplay text in: ```screenplay fences, bare ``` fences and
// asterisk emphasis.
func CleanResponse(text string) string {
	text = screenplayFenceRe.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "```", "")
	text = strings.ReplaceAll(text, "*", "")
	return strings.TrimSpace(text)
}
