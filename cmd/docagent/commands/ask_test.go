// ABOUTME: Tests for ask command structure and the interactive loop
// ABOUTME: Uses a fake answer function instead of the service
package commands

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestNewAskCmd(t *testing.T) {
	cmd := NewAskCmd()

	if cmd.Use != "ask [question]" {
		t.Errorf("Use = %q, want %q", cmd.Use, "ask [question]")
	}
	if cmd.Short == "" {
		t.Error("Short description should not be empty")
	}
}

func TestAskCmd_Args(t *testing.T) {
	cmd := NewAskCmd()

	if err := cmd.Args(cmd, []string{}); err != nil {
		t.Errorf("no args should be accepted (interactive mode), got %v", err)
	}
	if err := cmd.Args(cmd, []string{"вопрос"}); err != nil {
		t.Errorf("one arg should be accepted, got %v", err)
	}
	if err := cmd.Args(cmd, []string{"два", "аргумента"}); err == nil {
		t.Error("two args should be rejected")
	}
}

func fakeAsk(_ context.Context, question string) string {
	if strings.EqualFold(question, "clear") {
		return "История диалога и база вопросов очищены"
	}
	return "ответ на: " + question
}

func TestRunDialogue_VerboseHistory(t *testing.T) {
	origVerbose := verbose
	verbose = true
	defer func() { verbose = origVerbose }()

	in := strings.NewReader("первый вопрос\nexit\n")
	var out bytes.Buffer
	if err := runDialogue(context.Background(), fakeAsk, in, &out); err != nil {
		t.Fatalf("runDialogue() error = %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "ответ на: первый вопрос") {
		t.Errorf("answer missing from output:\n%s", got)
	}
	if !strings.Contains(got, "История диалога:") {
		t.Errorf("verbose run must print the dialogue history:\n%s", got)
	}
	if !strings.Contains(got, "1. Вопрос: первый вопрос") {
		t.Errorf("history entry missing:\n%s", got)
	}
}

func TestRunDialogue_ClearResetsHistory(t *testing.T) {
	origVerbose := verbose
	verbose = true
	defer func() { verbose = origVerbose }()

	in := strings.NewReader("первый\nclear\nвторой\nвыход\n")
	var out bytes.Buffer
	if err := runDialogue(context.Background(), fakeAsk, in, &out); err != nil {
		t.Fatalf("runDialogue() error = %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "1. Вопрос: второй") {
		t.Errorf("history must restart after clear:\n%s", got)
	}
	if strings.Contains(got, "2. Вопрос:") {
		t.Errorf("cleared turns survived in the history:\n%s", got)
	}
	if strings.Contains(got, "Вопрос: clear") {
		t.Errorf("the clear command itself must not be logged:\n%s", got)
	}
}

func TestRunDialogue_QuietWithoutVerbose(t *testing.T) {
	origVerbose := verbose
	verbose = false
	defer func() { verbose = origVerbose }()

	in := strings.NewReader("вопрос\nexit\n")
	var out bytes.Buffer
	if err := runDialogue(context.Background(), fakeAsk, in, &out); err != nil {
		t.Fatalf("runDialogue() error = %v", err)
	}
	if strings.Contains(out.String(), "История диалога") {
		t.Errorf("history printed without --verbose:\n%s", out.String())
	}
}
