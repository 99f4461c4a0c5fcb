// ABOUTME: Tests for chunks command structure
// ABOUTME: Verifies flags and defaults
package commands

import "testing"

func TestNewChunksCmd(t *testing.T) {
	cmd := NewChunksCmd()

	if cmd.Use != "chunks" {
		t.Errorf("Use = %q, want %q", cmd.Use, "chunks")
	}
	if cmd.Short == "" {
		t.Error("Short description should not be empty")
	}

	flag := cmd.Flags().Lookup("limit")
	if flag == nil {
		t.Fatal("--limit flag not found")
	}
	if flag.DefValue != "0" {
		t.Errorf("--limit default = %q, want %q", flag.DefValue, "0")
	}
}
