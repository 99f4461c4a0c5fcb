// ABOUTME: Response sanitizer applied to every validated answer
// ABOUTME: Redacts ungrounded contact data and enforces the attribution prefix
package agent

import (
	"regexp"
	"strings"
)

// AttributionPrefix marks every sanitized answer as coming from the document.
const AttributionPrefix = "Согласно документации:"

const emptyAnswerResponse = "Не удалось получить ответ из документации"

var (
	phoneRe = regexp.MustCompile(`(\+?\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	emailRe = regexp.MustCompile(`[\w.-]+@[\w.-]+`)
)

// Sanitize redacts phone numbers and emails that do not occur verbatim in
// the retrieval context, then prepends the attribution prefix. An empty
// answer is replaced with a fixed fallback.
func Sanitize(answer, context string) string {
	if strings.TrimSpace(answer) == "" {
		return emptyAnswerResponse
	}

	answer = redactUngrounded(answer, context, phoneRe, "[ТЕЛЕФОН УДАЛЕН]")
	answer = redactUngrounded(answer, context, emailRe, "[EMAIL УДАЛЕН]")

	if !strings.HasPrefix(answer, AttributionPrefix) {
		answer = AttributionPrefix + " " + answer
	}
	return answer
}

// redactUngrounded replaces matches of re in answer unless the exact match
// also appears somewhere in the context.
func redactUngrounded(answer, context string, re *regexp.Regexp, placeholder string) string {
	grounded := make(map[string]bool)
	for _, m := range re.FindAllString(context, -1) {
		grounded[m] = true
	}
	return re.ReplaceAllStringFunc(answer, func(m string) string {
		if grounded[m] {
			return m
		}
		return placeholder
	})
}
