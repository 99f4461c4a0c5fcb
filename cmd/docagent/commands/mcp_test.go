// ABOUTME: Tests for MCP command structure
// ABOUTME: Verifies command metadata without starting a server
package commands

import "testing"

func TestNewMCPCmd(t *testing.T) {
	cmd := NewMCPCmd()

	if cmd.Use != "mcp" {
		t.Errorf("Use = %q, want %q", cmd.Use, "mcp")
	}
	if cmd.Short == "" {
		t.Error("Short description should not be empty")
	}
	if cmd.Example == "" {
		t.Error("Example should not be empty")
	}
}
