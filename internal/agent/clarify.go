// ABOUTME: Structured clarification prompts for paused answers
// ABOUTME: Scans retrieved segments for topic categories the user could pick
package agent

import (
	"context"
	"fmt"
	"log"
	"strings"

	"docagent/internal/models"
)

type clarifyCategory struct {
	keywords []string
	option   string
}

// Categories are scanned in a fixed order so the option list is stable.
var clarifyCategories = []clarifyCategory{
	{[]string{"что это", "определение", "описание"}, "узнать определение %s"},
	{[]string{"установка", "настройка", "конфигурация"}, "получить инструкцию по установке и настройке %s"},
	{[]string{"использование", "применение", "работа"}, "узнать как использовать %s"},
	{[]string{"пример", "код", "демонстрация"}, "посмотреть примеры использования %s"},
	{[]string{"ошибка", "проблема", "решение"}, "решить проблему с %s"},
}

// clarify builds a menu of things the documentation can answer about the
// query. Returns "" when the document offers nothing to choose from.
func (a *Agent) clarify(ctx context.Context, query string) string {
	// A known abbreviation is replaced with its canonical name so both the
	// retrieval and the menu talk about the same thing.
	if full := a.kb.Canonical(query); full != "" {
		query = full
	}

	results, err := a.retriever.Retrieve(ctx, query, 5)
	if err != nil {
		log.Printf("Предупреждение: поиск для уточнения не удался: %v", err)
		return ""
	}

	var options []string
	for _, cat := range clarifyCategories {
		if categoryPresent(results, cat.keywords) {
			options = append(options, fmt.Sprintf(cat.option, query))
		}
	}
	if related := a.kb.Related(query); len(related) > 0 {
		options = append(options, fmt.Sprintf("узнать о связанных терминах: %s", strings.Join(related, ", ")))
	}
	if len(options) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Уточните, что именно вы хотите узнать о %s:\n", query)
	for _, opt := range options {
		fmt.Fprintf(&b, "- %s\n", opt)
	}
	return b.String()
}

func categoryPresent(results []models.RetrievalResult, keywords []string) bool {
	for _, r := range results {
		content := strings.ToLower(r.Content)
		for _, kw := range keywords {
			if strings.Contains(content, kw) {
				return true
			}
		}
	}
	return false
}
