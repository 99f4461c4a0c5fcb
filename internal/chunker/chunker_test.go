// ABOUTME: Tests for the document chunker
// ABOUTME: Verifies boundary rules, fence integrity and line preservation
package chunker

import (
	"errors"
	"strings"
	"testing"
)

func TestSplit_EmptyDocument(t *testing.T) {
	c := New()

	for _, input := range []string{"", "   ", "\n\n\t\n"} {
		_, err := c.Split(input)
		if !errors.Is(err, ErrEmptyDocument) {
			t.Errorf("Split(%q) error = %v, want ErrEmptyDocument", input, err)
		}
	}
}

func TestSplit_Boundaries(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "headings start new segments",
			input: "# Hadoop\nОписание.\n## HDFS\nФайловая система.",
			want:  []string{"# Hadoop\nОписание.", "## HDFS\nФайловая система."},
		},
		{
			name:  "numbered list items split",
			input: "Интро\n1. Первый\n2. Второй",
			want:  []string{"Интро", "1. Первый", "2. Второй"},
		},
		{
			name:  "bulleted list items split",
			input: "Интро\n- один\n- два",
			want:  []string{"Интро", "- один", "- два"},
		},
		{
			name:  "example marker splits",
			input: "Текст.\nПРИМЕР: запуск wordcount\nкод",
			want:  []string{"Текст.", "ПРИМЕР: запуск wordcount\nкод"},
		},
		{
			name:  "step marker splits",
			input: "Настройка.\nШаг 1: скачать дистрибутив",
			want:  []string{"Настройка.", "Шаг 1: скачать дистрибутив"},
		},
		{
			name:  "no boundary keeps one segment",
			input: "просто текст\nещё текст",
			want:  []string{"просто текст\nещё текст"},
		},
	}

	c := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Split(tt.input)
			if err != nil {
				t.Fatalf("Split() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Split() = %d segments %q, want %d", len(got), got, len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("segment %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSplit_CodeFenceNotSplit(t *testing.T) {
	input := "# Пример\n```go\n# не заголовок\n1. не список\n```\nконец"

	got, err := New().Split(input)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Split() produced %d segments %q, want 1", len(got), got)
	}
	if !strings.Contains(got[0], "# не заголовок") {
		t.Errorf("fenced content missing from segment: %q", got[0])
	}
}

func TestSplit_PreservesEveryLine(t *testing.T) {
	input := "# A\nодин\n## B\n```\nfenced # line\n```\n- пункт\nдва\nШаг 2: три"

	got, err := New().Split(input)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}

	counts := map[string]int{}
	for _, seg := range got {
		for _, line := range strings.Split(seg, "\n") {
			if strings.TrimSpace(line) != "" {
				counts[line]++
			}
		}
	}
	for _, line := range strings.Split(input, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if counts[line] != 1 {
			t.Errorf("line %q appears %d times across segments, want 1", line, counts[line])
		}
	}
}
