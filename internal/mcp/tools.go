// ABOUTME: MCP tool definitions and registration for the documentation agent
// ABOUTME: Defines JSON schemas for the three exposed tools
package mcp

import (
	"docagent/internal/agent"
	"docagent/internal/retriever"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, a *agent.Agent, r *retriever.Retriever) *Handlers {
	handlers := &Handlers{
		agent:     a,
		retriever: r,
	}

	// 1. ask_documentation - answer a question from the ingested document
	server.AddTool(mcp.Tool{
		Name:        "ask_documentation",
		Description: "Answer a question using only the ingested documentation. Responses are validated and attributed to the document.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"question": map[string]interface{}{
					"type":        "string",
					"description": "Question about the documentation",
				},
			},
			Required: []string{"question"},
		},
	}, handlers.AskDocumentation)

	// 2. clear_conversation - reset dialogue history and the question cache
	server.AddTool(mcp.Tool{
		Name:        "clear_conversation",
		Description: "Clear the dialogue history and the cached question/answer pairs.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ClearConversation)

	// 3. retrieve_segments - raw semantic search over the document
	server.AddTool(mcp.Tool{
		Name:        "retrieve_segments",
		Description: "Retrieve the document segments most relevant to a query, with similarity scores. No answer generation.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query",
				},
				"max_results": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of segments to return (default: 5)",
					"default":     5,
				},
			},
			Required: []string{"query"},
		},
	}, handlers.RetrieveSegments)

	return handlers
}
