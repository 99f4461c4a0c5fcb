// ABOUTME: Conversation session owned by the caller, not process globals
// ABOUTME: Holds ordered prior turns shared between completion calls
package llm

import (
	"sync"

	openai "github.com/sashabaranov/go-openai"
)

// Session is the mutable conversation state of one dialog. It is created at
// session start, cleared by the clear operation and discarded at session
// end. All methods are safe for concurrent use; writes are serialized
// because history is order-sensitive.
type Session struct {
	mu      sync.Mutex
	history []openai.ChatCompletionMessage
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{}
}

// History returns a copy of the prior turns.
func (s *Session) History() []openai.ChatCompletionMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]openai.ChatCompletionMessage(nil), s.history...)
}

// Append records one user/assistant turn pair.
func (s *Session) Append(userMessage, assistantMessage string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history,
		openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: userMessage},
		openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: assistantMessage},
	)
}

// Len returns the number of stored messages.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.history)
}

// Clear drops all prior turns.
func (s *Session) Clear() {
	s.mu.Lock()
	s.history = nil
	s.mu.Unlock()
}
