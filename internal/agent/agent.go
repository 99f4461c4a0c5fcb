// ABOUTME: Answer controller: iterative generate-validate-clarify loop
// ABOUTME: Wires retrieval, context expansion, the question cache and the LLM
package agent

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"docagent/internal/knowledge"
	"docagent/internal/models"
)

// cacheHitThreshold is the similarity above which a cached answer is
// returned instead of generating a new one.
const cacheHitThreshold = 0.9

// contextPortionLimit bounds how many characters of context go into a
// single generation message.
const contextPortionLimit = 5000

const (
	noInfoResponse       = "В предоставленной документации нет информации по этому вопросу."
	exhaustedResponse    = "Не удалось получить ответ. Попробуйте переформулировать вопрос."
	serviceErrorResponse = "Не удалось получить ответ от сервиса. Попробуйте позже."
	clearedResponse      = "История диалога и база вопросов очищены"
	pauseReasonFallback  = "Не удалось определить причину паузы"
	clarifyNeedPrefix    = "Для предоставления точного ответа мне нужно уточнить: "
)

// SegmentRetriever finds document segments relevant to a query.
type SegmentRetriever interface {
	Retrieve(ctx context.Context, query string, topK int) ([]models.RetrievalResult, error)
}

// ContextExpander widens retrieval hits into full answer context.
type ContextExpander interface {
	Expand(ctx context.Context, initial []models.RetrievalResult, query string) ([]string, error)
}

// QuestionCache matches a query against previously answered questions.
type QuestionCache interface {
	FindSimilar(ctx context.Context, query string, topK int) ([]models.QuestionMatch, error)
	Add(ctx context.Context, question, answer string) error
	Entries() []models.CachedQuestion
	Clear()
}

// QuestionStore persists cached questions across restarts.
type QuestionStore interface {
	Save(q models.CachedQuestion) error
	Clear() error
}

// Completer produces chat completions over an ongoing dialogue.
type Completer interface {
	Complete(ctx context.Context, systemMessage, userMessage string) (string, error)
	ClearHistory()
}

// Deps are the collaborators an Agent is built from. Store may be nil when
// the cache is memory-only.
type Deps struct {
	Retriever SegmentRetriever
	Expander  ContextExpander
	Cache     QuestionCache
	Store     QuestionStore
	LLM       Completer
	Knowledge *knowledge.Base
}

// Options tune the answer loop.
type Options struct {
	TopK          int
	MaxIterations int
}

// Agent answers questions about a single document. Ask serializes callers
// so the dialogue history and the question cache stay consistent.
type Agent struct {
	retriever SegmentRetriever
	expander  ContextExpander
	cache     QuestionCache
	store     QuestionStore
	llm       Completer
	kb        *knowledge.Base

	topK          int
	maxIterations int

	mu sync.Mutex
}

// New creates an Agent. Zero options get the documentation-assistant
// defaults: five segments per retrieval, three answer iterations.
func New(deps Deps, opts Options) *Agent {
	if opts.TopK <= 0 {
		opts.TopK = 5
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = 3
	}
	kb := deps.Knowledge
	if kb == nil {
		kb = knowledge.NewDefault()
	}
	return &Agent{
		retriever:     deps.Retriever,
		expander:      deps.Expander,
		cache:         deps.Cache,
		store:         deps.Store,
		llm:           deps.LLM,
		kb:            kb,
		topK:          opts.TopK,
		maxIterations: opts.MaxIterations,
	}
}

// Ask answers a question from the ingested document. Every failure path
// degrades to a natural-language response; the caller never sees a raw
// error.
func (a *Agent) Ask(ctx context.Context, query string) string {
	a.mu.Lock()
	defer a.mu.Unlock()

	if strings.EqualFold(strings.TrimSpace(query), "clear") {
		return a.clearLocked()
	}

	next := query
	for iteration := 0; iteration < a.maxIterations; iteration++ {
		if cached := a.cachedAnswer(ctx, next); cached != "" {
			return cached
		}

		results, err := a.retriever.Retrieve(ctx, next, a.topK)
		if err != nil {
			log.Printf("Ошибка поиска по документации: %v", err)
			return serviceErrorResponse
		}
		if len(results) == 0 {
			return noInfoResponse
		}

		contexts, err := a.expander.Expand(ctx, results, next)
		if err != nil {
			log.Printf("Ошибка расширения контекста: %v", err)
			return serviceErrorResponse
		}

		answer, err := a.generate(ctx, next, Classify(next), contexts)
		if err != nil {
			log.Printf("Ошибка при получении финального ответа: %v", err)
			return serviceErrorResponse
		}

		verdict, err := a.llm.Complete(ctx, validationPrompt,
			fmt.Sprintf("Вопрос: %s\nОтвет: %s\nОцените релевантность ответа.", next, answer))
		if err != nil {
			log.Printf("Ошибка проверки ответа: %v", err)
			return serviceErrorResponse
		}

		switch {
		case strings.Contains(verdict, "VALID"):
			final := Sanitize(answer, strings.Join(contexts, " "))
			a.remember(ctx, query, final)
			return final

		case strings.Contains(verdict, "PAUSE"):
			reason := pauseReason(verdict)
			log.Printf("Проверка приостановлена: %s", reason)

			if menu := a.clarify(ctx, query); menu != "" {
				return menu + "\nУточняющий вопрос от ассистента: " + reason
			}

			followup, found, err := a.followupQuery(ctx, query, answer, reason)
			if err != nil {
				log.Printf("Ошибка дополнительного поиска: %v", err)
				return serviceErrorResponse
			}
			if !found {
				return clarifyNeedPrefix + reason
			}
			next = followup

		default:
			log.Printf("Неопределённый вердикт проверки, повторная попытка")
		}
	}

	return exhaustedResponse
}

// Clear drops the dialogue history and the question cache.
func (a *Agent) Clear() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.clearLocked()
}

func (a *Agent) clearLocked() string {
	a.llm.ClearHistory()
	a.cache.Clear()
	if a.store != nil {
		if err := a.store.Clear(); err != nil {
			log.Printf("Ошибка очистки базы вопросов: %v", err)
		}
	}
	return clearedResponse
}

// cachedAnswer returns a stored answer when a cached question is nearly
// identical to the query. Cache failures never block answering.
func (a *Agent) cachedAnswer(ctx context.Context, query string) string {
	matches, err := a.cache.FindSimilar(ctx, query, 3)
	if err != nil {
		log.Printf("Предупреждение: поиск в базе вопросов не удался: %v", err)
		return ""
	}
	if len(matches) > 0 && matches[0].Similarity > cacheHitThreshold {
		return matches[0].Answer
	}
	return ""
}

// generate delivers the expanded context in portions and asks the question
// with the last one. A lost intermediate portion is logged and skipped; only
// the final call is load-bearing.
func (a *Agent) generate(ctx context.Context, query string, intent Intent, contexts []string) (string, error) {
	system := SystemPrompt(intent)
	groups := portionContexts(contexts, contextPortionLimit)

	for i := 0; i < len(groups)-1; i++ {
		reply, err := a.llm.Complete(ctx, system, fmt.Sprintf("Часть %d: %s", i+1, groups[i]))
		if err != nil {
			log.Printf("Предупреждение: часть %d контекста не доставлена: %v", i+1, err)
			continue
		}
		if !strings.Contains(reply, "OK") {
			log.Printf("Предупреждение: неожиданный ответ на часть %d: %s", i+1, reply)
		}
	}

	last := ""
	if len(groups) > 0 {
		last = groups[len(groups)-1]
	}
	return a.llm.Complete(ctx, system,
		fmt.Sprintf("Последняя часть информации: %s\n\nВопрос: %s", last, query))
}

// followupQuery searches the document for material addressing the pause
// reason and builds the next-iteration prompt around it. found is false when
// the document has nothing on the reason.
func (a *Agent) followupQuery(ctx context.Context, query, answer, reason string) (followup string, found bool, err error) {
	results, err := a.retriever.Retrieve(ctx, reason, 5)
	if err != nil {
		return "", false, err
	}
	if len(results) == 0 {
		return "", false, nil
	}
	extra, err := a.expander.Expand(ctx, results, reason)
	if err != nil {
		return "", false, err
	}
	followup = fmt.Sprintf(
		"Observation: Требуется уточнение: %s\nПредыдущий ответ: %s\nДополнительный контекст: %s\nВопрос: %s\nПожалуйста, предоставьте более полный ответ.",
		reason, answer, strings.Join(extra, " "), query)
	return followup, true, nil
}

// remember caches a validated answer and mirrors it to the persistent store.
func (a *Agent) remember(ctx context.Context, question, answer string) {
	if err := a.cache.Add(ctx, question, answer); err != nil {
		log.Printf("Предупреждение: вопрос не добавлен в базу: %v", err)
		return
	}
	if a.store == nil {
		return
	}
	entries := a.cache.Entries()
	if len(entries) == 0 {
		return
	}
	if err := a.store.Save(entries[len(entries)-1]); err != nil {
		log.Printf("Предупреждение: вопрос не сохранён в базе: %v", err)
	}
}

func pauseReason(verdict string) string {
	if idx := strings.Index(verdict, "PAUSE:"); idx >= 0 {
		if reason := strings.TrimSpace(verdict[idx+len("PAUSE:"):]); reason != "" {
			return reason
		}
	}
	return pauseReasonFallback
}

// portionContexts greedily packs context chunks into groups no longer than
// limit characters. A single oversized chunk still travels as its own group.
func portionContexts(contexts []string, limit int) []string {
	var groups []string
	current := ""
	for _, c := range contexts {
		if current != "" && len(current)+len(c)+1 > limit {
			groups = append(groups, current)
			current = c
			continue
		}
		if current == "" {
			current = c
		} else {
			current += "\n" + c
		}
	}
	if current != "" {
		groups = append(groups, current)
	}
	return groups
}
