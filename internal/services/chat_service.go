// internal/services/chat_service.go
package services

import (
	"context"
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

const conversationsDir = "conversations"

// titleRuneLimit caps how much of the first message becomes the
// conversation title.
const titleRuneLimit = 40

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrEmptyMessage         = errors.New("message must not be empty")
)

// ChatService runs the AI consultant: threaded conversations, each
// optionally opened over a file whose name and type are snapshotted at
// creation time. Replies land in the conversation they were asked in,
// even if the user switches threads while waiting.
type ChatService struct {
	mu            sync.RWMutex
	conversations map[string]*models.Conversation

	projects *ProjectService
	gateway  *GatewayService
	storage  *storage.FileStorage
	logger   *utils.Logger
}

// NewChatService loads persisted conversations from storage.
func NewChatService(projects *ProjectService, gateway *GatewayService, fs *storage.FileStorage) (*ChatService, error) {
	s := &ChatService{
		conversations: make(map[string]*models.Conversation),
		projects:      projects,
		gateway:       gateway,
		storage:       fs,
		logger:        utils.GetLogger(),
	}

	files, err := fs.ListFiles(conversationsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	for _, name := range files {
		var conversation models.Conversation
		if err := fs.LoadJSONFile(conversationsDir, name, &conversation); err != nil {
			s.logger.Warnf("skipping unreadable conversation file %s: %v", name, err)
			continue
		}
		s.conversations[conversation.ID] = &conversation
	}

	return s, nil
}

func (s *ChatService) saveConversation(c *models.Conversation) {
	if err := s.storage.SaveJSONFile(conversationsDir, c.ID+".json", c); err != nil {
		s.logger.Errorf("failed to persist conversation %s: %v", c.ID, err)
	}
}

// ListConversations returns every conversation, newest first.
func (s *ChatService) ListConversations() []*models.Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]*models.Conversation, 0, len(s.conversations))
	for _, c := range s.conversations {
		list = append(list, c.Clone())
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})

	return list
}

// GetConversation returns a deep copy of one conversation.
func (s *ChatService) GetConversation(id string) (*models.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, exists := s.conversations[id]
	if !exists {
		return nil, ErrConversationNotFound
	}

	return c.Clone(), nil
}

// DeleteConversation removes a conversation permanently.
func (s *ChatService) DeleteConversation(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.conversations[id]; !exists {
		return ErrConversationNotFound
	}

	delete(s.conversations, id)
	if s.storage.FileExists(conversationsDir, id+".json") {
		if err := s.storage.DeleteFile(conversationsDir, id+".json"); err != nil {
			s.logger.Errorf("failed to remove conversation file %s: %v", id, err)
		}
	}

	return nil
}

// conversationTitle derives the thread title from its first message.
func conversationTitle(text string) string {
	runes := []rune(text)
	if len(runes) <= titleRuneLimit {
		return text
	}
	return string(runes[:titleRuneLimit]) + "..."
}

// SendMessage appends the user's question and the AI's answer to a
// conversation. An empty conversationID lazily creates a new thread
// titled after the question, snapshotting the context file's name and
// type. The generation runs outside the lock; the reply is delivered
// to the conversation by id, so switching threads meanwhile never
// misroutes it.
func (s *ChatService) SendMessage(ctx context.Context, conversationID, text, contextProjectID, contextFileID string) (*models.Conversation, error) {
	if text == "" {
		return nil, ErrEmptyMessage
	}

	var contextFile *models.File
	if contextFileID != "" {
		file, err := s.projects.GetFile(contextProjectID, contextFileID)
		if err != nil {
			return nil, err
		}
		contextFile = file
	}

	userMessage := models.Message{
		ID:        uuid.NewString(),
		Role:      models.RoleUser,
		Text:      text,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	var conversation *models.Conversation
	if conversationID == "" {
		now := time.Now()
		conversation = &models.Conversation{
			ID:        uuid.NewString(),
			Title:     conversationTitle(text),
			Messages:  []models.Message{userMessage},
			CreatedAt: now,
			UpdatedAt: now,
		}
		if contextFile != nil {
			conversation.Context = &models.ChatContext{
				FileID: contextFile.ID,
				Name:   contextFile.Name,
				Type:   contextFile.Type,
			}
		}
		s.conversations[conversation.ID] = conversation
	} else {
		existing, exists := s.conversations[conversationID]
		if !exists {
			s.mu.Unlock()
			return nil, ErrConversationNotFound
		}
		existing.Messages = append(existing.Messages, userMessage)
		existing.UpdatedAt = time.Now()
		conversation = existing
	}
	targetID := conversation.ID
	s.saveConversation(conversation)
	s.mu.Unlock()

	contextText := "Responda de forma geral, sem o contexto de um roteiro específico."
	if contextFile != nil && contextFile.Type == models.FileTypeScript {
		contextText = fmt.Sprintf("Use o seguinte roteiro como contexto: (Nome: %s): %q", contextFile.Name, contextFile.Script)
	}

	prompt := fmt.Sprintf(`Como um consultor de roteiro especialista, responda à seguinte pergunta do usuário. %s

Pergunta do usuário: %q`, contextText, text)

	reply := s.gateway.Generate(ctx, prompt)

	aiMessage := models.Message{
		ID:        uuid.NewString(),
		Role:      models.RoleAI,
		Text:      reply,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	target, exists := s.conversations[targetID]
	if !exists {
		// The thread was deleted while the answer was in flight.
		return nil, ErrConversationNotFound
	}
	target.Messages = append(target.Messages, aiMessage)
	target.UpdatedAt = time.Now()
	s.saveConversation(target)

	return target.Clone(), nil
}
