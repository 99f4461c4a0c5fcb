// ABOUTME: Ask command answers questions from the ingested document
// ABOUTME: One-shot with an argument, interactive dialogue without
package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// NewAskCmd creates the ask command
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask a question about the document",
		Long: `Ask a question about the ingested documentation file.

With a question argument the answer is printed once. Without arguments an
interactive dialogue starts; type 'clear' to reset the conversation and
'exit' to leave. With --verbose the accumulated dialogue history is shown
after every answer.

Examples:
  docagent ask "Что такое HDFS?"
  docagent ask`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAsk,
	}

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	p, err := buildPipeline(ctx)
	if err != nil {
		return err
	}
	defer p.Close()

	if len(args) == 1 {
		return printAnswer(cmd, args[0], p.agent.Ask(ctx, args[0]))
	}

	return runDialogue(ctx, p.agent.Ask, cmd.InOrStdin(), cmd.OutOrStdout())
}

// dialogueTurn is one answered question of the interactive session.
type dialogueTurn struct {
	question string
	answer   string
}

// runDialogue drives the interactive loop. The local history mirrors the
// agent's conversation state: it resets on 'clear' and feeds the verbose
// printout between turns.
func runDialogue(ctx context.Context, ask func(context.Context, string) string, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var history []dialogueTurn
	for {
		fmt.Fprint(out, "\nВаш вопрос (или 'exit' для выхода): ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if strings.EqualFold(question, "exit") || strings.EqualFold(question, "выход") {
			break
		}

		answer := ask(ctx, question)
		fmt.Fprintf(out, "\n%s\n", answer)

		if strings.EqualFold(question, "clear") {
			history = history[:0]
			continue
		}
		history = append(history, dialogueTurn{question: question, answer: answer})
		if verbose {
			fmt.Fprint(out, formatHistory(history))
		}
	}
	return scanner.Err()
}

// formatHistory renders the numbered question/answer log of the session.
func formatHistory(history []dialogueTurn) string {
	var b strings.Builder
	b.WriteString("\nИстория диалога:\n")
	for i, turn := range history {
		fmt.Fprintf(&b, "%d. Вопрос: %s\n   Ответ: %s\n", i+1, turn.question, truncate(turn.answer, 100))
	}
	return b.String()
}

func printAnswer(cmd *cobra.Command, question, answer string) error {
	if outputFormat == "json" {
		data, err := json.MarshalIndent(map[string]string{
			"question": question,
			"answer":   answer,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), answer)
	return nil
}
