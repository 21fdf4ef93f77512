// internal/services/settings_service.go
package services

import (
	"os"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/cmkfilmes/leanfilmdesign/internal/config"
	"github.com/cmkfilmes/leanfilmdesign/internal/llm"
	"github.com/cmkfilmes/leanfilmdesign/internal/utils"
)

// defaultSecret keys the at-rest encryption of the API key when
// SECRET_KEY is not set. A fixed fallback keeps first runs working;
// real deployments set their own secret.
const defaultSecret = "leanfilmdesign-local-secret"

// LLMSettings is the settings form for the generation backend.
type LLMSettings struct {
	Provider string `json:"provider"`
	APIKey   string `json:"api_key"`
	Model    string `json:"model"`
}

// Validate checks the settings form fields.
func (s LLMSettings) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Provider, validation.Required, validation.In(providerNamesAsInterfaces()...)),
		validation.Field(&s.APIKey, validation.Required),
	)
}

func providerNamesAsInterfaces() []interface{} {
	names := llm.ListProviders()
	values := make([]interface{}, len(names))
	for i, name := range names {
		values[i] = name
	}
	return values
}

// SettingsService persists the generation backend settings. The API
// key is encrypted before it reaches config.json and decrypted only to
// initialize the provider.
type SettingsService struct {
	gateway *GatewayService
	secret  string
	logger  *utils.Logger
}

func NewSettingsService(gateway *GatewayService) *SettingsService {
	secret := os.Getenv("SECRET_KEY")
	if secret == "" {
		secret = defaultSecret
	}

	return &SettingsService{
		gateway: gateway,
		secret:  secret,
		logger:  utils.GetLogger(),
	}
}

// Update validates, persists and activates new backend settings.
func (s *SettingsService) Update(settings LLMSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	encrypted, err := utils.Encrypt(settings.APIKey, s.secret)
	if err != nil {
		return err
	}

	llmConfig := map[string]string{
		"api_key_enc":   encrypted,
		"default_model": settings.Model,
	}
	if err := config.UpdateLLMConfig(settings.Provider, llmConfig); err != nil {
		return err
	}

	return s.gateway.UpdateProvider(settings.Provider, map[string]string{
		"api_key":       settings.APIKey,
		"default_model": settings.Model,
	})
}

// RestoreProvider re-activates the persisted settings on startup. An
// encrypted key from a previous Update wins over the environment key
// the gateway may already be using.
func (s *SettingsService) RestoreProvider() {
	cfg := config.GetCurrentConfig()
	encrypted := cfg.LLMConfig["api_key_enc"]
	if encrypted == "" {
		return
	}

	apiKey, err := utils.Decrypt(encrypted, s.secret)
	if err != nil {
		s.logger.Warnf("could not decrypt stored API key: %v", err)
		return
	}

	providerConfig := map[string]string{
		"api_key":       apiKey,
		"default_model": cfg.LLMConfig["default_model"],
	}
	if err := s.gateway.UpdateProvider(cfg.LLMProvider, providerConfig); err != nil {
		s.logger.Warnf("could not restore provider %q: %v", cfg.LLMProvider, err)
	}
}

// Current returns the active settings with the API key masked.
func (s *SettingsService) Current() LLMSettings {
	cfg := config.GetCurrentConfig()

	masked := ""
	if cfg.LLMConfig["api_key_enc"] != "" || cfg.LLMConfig["api_key"] != "" {
		masked = maskKey(cfg.LLMConfig["api_key"])
	}

	return LLMSettings{
		Provider: cfg.LLMProvider,
		APIKey:   masked,
		Model:    cfg.LLMConfig["default_model"],
	}
}

// Providers lists the registered backend names.
func (s *SettingsService) Providers() []string {
	return llm.ListProviders()
}

func maskKey(key string) string {
	if key == "" {
		return "••••••••"
	}
	if len(key) <= 8 {
		return strings.Repeat("•", len(key))
	}
	return key[:4] + strings.Repeat("•", 4) + key[len(key)-4:]
}
