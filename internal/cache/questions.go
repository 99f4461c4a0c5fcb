// ABOUTME: Question matcher caches validated question/answer pairs
// ABOUTME: Finds near-duplicate questions by cosine similarity over embeddings
package cache

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"docagent/internal/embedding"
	"docagent/internal/models"
)

// MinSimilarity filters lookup results; matches at or below it are noise.
const MinSimilarity = 0.7

// Matcher is an in-memory question cache. Writes are serialized so that a
// server handling concurrent questions keeps the collection consistent.
type Matcher struct {
	enc embedding.Encoder

	mu        sync.Mutex
	questions []models.CachedQuestion
}

// NewMatcher creates an empty Matcher.
func NewMatcher(enc embedding.Encoder) *Matcher {
	return &Matcher{enc: enc}
}

// Add appends a validated question/answer pair and re-encodes the cached
// question set in one batch.
func (m *Matcher) Add(ctx context.Context, question, answer string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := append(m.questions, models.CachedQuestion{
		Question:  question,
		Answer:    answer,
		CreatedAt: time.Now(),
	})

	texts := make([]string, len(entries))
	for i := range entries {
		texts[i] = entries[i].Question
	}
	vectors, err := m.enc.Encode(ctx, texts)
	if err != nil {
		return fmt.Errorf("encoding cached questions: %w", err)
	}
	for i := range entries {
		entries[i].Vector = vectors[i]
	}

	m.questions = entries
	return nil
}

// Seed restores previously cached entries (with their stored vectors)
// without re-encoding, e.g. from the persistent store at startup.
func (m *Matcher) Seed(entries []models.CachedQuestion) {
	m.mu.Lock()
	m.questions = append([]models.CachedQuestion(nil), entries...)
	m.mu.Unlock()
}

// FindSimilar returns up to topK cached entries with cosine similarity
// above MinSimilarity, most similar first. An empty cache yields an empty
// result.
func (m *Matcher) FindSimilar(ctx context.Context, query string, topK int) ([]models.QuestionMatch, error) {
	if m.Len() == 0 {
		return nil, nil
	}

	vecs, err := m.enc.Encode(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("encoding query: %w", err)
	}

	m.mu.Lock()
	entries := append([]models.CachedQuestion(nil), m.questions...)
	m.mu.Unlock()

	matches := make([]models.QuestionMatch, 0, len(entries))
	for _, e := range entries {
		matches = append(matches, models.QuestionMatch{
			Question:   e.Question,
			Answer:     e.Answer,
			Similarity: cosineSimilarity(vecs[0], e.Vector),
		})
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Similarity > matches[j].Similarity })

	if topK > 0 && len(matches) > topK {
		matches = matches[:topK]
	}
	filtered := matches[:0]
	for _, match := range matches {
		if match.Similarity > MinSimilarity {
			filtered = append(filtered, match)
		}
	}
	return filtered, nil
}

// Len returns the number of cached questions.
func (m *Matcher) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.questions)
}

// Entries returns a copy of the cached collection.
func (m *Matcher) Entries() []models.CachedQuestion {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.CachedQuestion(nil), m.questions...)
}

// Clear empties the cache.
func (m *Matcher) Clear() {
	m.mu.Lock()
	m.questions = nil
	m.mu.Unlock()
}

func cosineSimilarity(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
	}
	for _, x := range a {
		normA += x * x
	}
	for _, x := range b {
		normB += x * x
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
