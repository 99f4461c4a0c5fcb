// ABOUTME: Binds a completion client to one dialogue session
// ABOUTME: Gives callers a plain Complete/ClearHistory surface
package llm

import "context"

// Conversation pairs a Client with the Session its turns accumulate in.
type Conversation struct {
	client  *Client
	session *Session
}

// NewConversation creates a Conversation over an existing session.
func NewConversation(client *Client, session *Session) *Conversation {
	return &Conversation{client: client, session: session}
}

// Complete forwards to the client using the bound session.
func (c *Conversation) Complete(ctx context.Context, systemMessage, userMessage string) (string, error) {
	return c.client.Complete(ctx, c.session, systemMessage, userMessage)
}

// ClearHistory drops all accumulated turns.
func (c *Conversation) ClearHistory() {
	c.session.Clear()
}
