// ABOUTME: Persistent question-cache store over SQLite
// ABOUTME: Vectors are stored as little-endian float64 blobs
package sqlite

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"docagent/internal/models"
)

// QuestionStore persists validated question/answer pairs with their
// question embeddings so the cache survives restarts.
type QuestionStore struct {
	db *DB
}

// NewQuestionStore creates a QuestionStore.
func NewQuestionStore(db *DB) *QuestionStore {
	return &QuestionStore{db: db}
}

// Save appends one cached question.
func (s *QuestionStore) Save(q models.CachedQuestion) error {
	createdAt := q.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := s.db.conn.Exec(`
		INSERT INTO questions (question, answer, vector, created_at)
		VALUES (?, ?, ?, ?)
	`, q.Question, q.Answer, vectorToBlob(q.Vector), createdAt)
	if err != nil {
		return fmt.Errorf("saving question: %w", err)
	}
	return nil
}

// LoadAll returns every cached question in insertion order.
func (s *QuestionStore) LoadAll() ([]models.CachedQuestion, error) {
	rows, err := s.db.conn.Query(`
		SELECT question, answer, vector, created_at
		FROM questions
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("loading questions: %w", err)
	}
	defer rows.Close()

	var entries []models.CachedQuestion
	for rows.Next() {
		var (
			q    models.CachedQuestion
			blob []byte
		)
		if err := rows.Scan(&q.Question, &q.Answer, &blob, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning question: %w", err)
		}
		q.Vector = blobToVector(blob)
		entries = append(entries, q)
	}
	return entries, rows.Err()
}

// Clear removes every cached question.
func (s *QuestionStore) Clear() error {
	if _, err := s.db.conn.Exec(`DELETE FROM questions`); err != nil {
		return fmt.Errorf("clearing questions: %w", err)
	}
	return nil
}

func vectorToBlob(vector []float64) []byte {
	blob := make([]byte, 8*len(vector))
	for i, v := range vector {
		binary.LittleEndian.PutUint64(blob[i*8:], math.Float64bits(v))
	}
	return blob
}

func blobToVector(blob []byte) []float64 {
	vector := make([]float64, len(blob)/8)
	for i := range vector {
		vector[i] = math.Float64frombits(binary.LittleEndian.Uint64(blob[i*8:]))
	}
	return vector
}
