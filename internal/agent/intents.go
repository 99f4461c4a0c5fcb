// ABOUTME: Query intent classification and per-intent system instructions
// ABOUTME: Typed intents with an exhaustive template switch
package agent

import "strings"

// Intent is the classified purpose of a query.
type Intent int

const (
	IntentFull Intent = iota
	IntentDefinition
	IntentSetup
	IntentExample
	IntentTroubleshooting
)

// String returns the intent name for logging.
func (i Intent) String() string {
	switch i {
	case IntentDefinition:
		return "definition"
	case IntentSetup:
		return "setup"
	case IntentExample:
		return "example"
	case IntentTroubleshooting:
		return "troubleshooting"
	default:
		return "full"
	}
}

// Classify picks an intent by keyword match over the lowercased query.
func Classify(query string) Intent {
	lower := strings.ToLower(query)
	switch {
	case strings.Contains(lower, "определение") || strings.Contains(lower, "что такое"):
		return IntentDefinition
	case strings.Contains(lower, "как настроить") || strings.Contains(lower, "как установить") || strings.Contains(lower, "инструкция"):
		return IntentSetup
	case strings.Contains(lower, "пример") || strings.Contains(lower, "как использовать"):
		return IntentExample
	case strings.Contains(lower, "ошибка") || strings.Contains(lower, "проблема"):
		return IntentTroubleshooting
	default:
		return IntentFull
	}
}

const basePrompt = `Ты - точный ассистент по документации.
Твоя задача - отвечать ИСКЛЮЧИТЕЛЬНО на основе предоставленного контекста.
Ты получишь информацию частями. После каждой части отвечай "OK" если готов получить следующую.
Когда получишь часть с вопросом - дай полный ответ.
Если информации нет в контексте - ответь "В предоставленной документации нет информации по этому вопросу".
Категорически запрещено использовать внешние знания или придумывать ответы.`

// SystemPrompt returns the generation instruction for an intent.
func SystemPrompt(intent Intent) string {
	var typePrompt string
	switch intent {
	case IntentDefinition:
		typePrompt = "Предоставь определение термина, используя ТОЛЬКО текст после символов '—' или ':' из контекста."
	case IntentSetup:
		typePrompt = "Составь пошаговую инструкцию на основе информации из контекста."
	case IntentExample:
		typePrompt = "Приведи только те примеры, которые есть в контексте."
	case IntentTroubleshooting:
		typePrompt = "Опиши только те проблемы и решения, которые указаны в контексте."
	case IntentFull:
		typePrompt = "Если информации в контексте недостаточно, укажи это."
	}
	return basePrompt + "\n" + typePrompt
}

// validationPrompt asks the model to grade its own answer; the verdict
// tokens are parsed by the controller.
const validationPrompt = `Вы - эксперт по оценке качества ответов.
Проанализируйте ответ и определите:
1. Отвечает ли он на поставленный вопрос
2. Содержит ли всю необходимую информацию
3. Нужны ли уточнения

Если ответ неполный или нерелевантный - укажите "PAUSE" и опишите что нужно уточнить.
Если ответ полный - укажите "VALID".`
