// ABOUTME: MCP tool handler implementations for the documentation agent
// ABOUTME: Thin adapters from tool requests to the answer controller
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"docagent/internal/agent"
	"docagent/internal/retriever"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	agent     *agent.Agent
	retriever *retriever.Retriever
}

// AskDocumentation handles the ask_documentation tool
func (h *Handlers) AskDocumentation(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("question argument is required and must be a string"), nil
	}

	answer := h.agent.Ask(ctx, question)
	return mcp.NewToolResultText(answer), nil
}

// ClearConversation handles the clear_conversation tool
func (h *Handlers) ClearConversation(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(h.agent.Clear()), nil
}

// RetrieveSegments handles the retrieve_segments tool
func (h *Handlers) RetrieveSegments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	maxResults := request.GetInt("max_results", 5)

	results, err := h.retriever.Retrieve(ctx, query, maxResults)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("retrieval failed: %v", err)), nil
	}

	segments := make([]map[string]interface{}, 0, len(results))
	for _, r := range results {
		entry := map[string]interface{}{
			"content": r.Content,
			"score":   r.Score,
		}
		if seg, ok := h.retriever.SegmentByContent(r.Content); ok {
			entry["title"] = seg.Title
			entry["section_path"] = seg.SectionPath
			entry["is_code"] = seg.IsCode
		}
		segments = append(segments, entry)
	}

	response := map[string]interface{}{
		"segments": segments,
	}
	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}
