// ABOUTME: Cached question types for the near-duplicate question matcher
// ABOUTME: Stores prior validated question/answer pairs with their embeddings
package models

import "time"

// CachedQuestion is a previously answered question together with its
// validated answer and the embedding of the question text.
type CachedQuestion struct {
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Vector    []float64 `json:"vector"`
	CreatedAt time.Time `json:"created_at"`
}

// QuestionMatch is a question-cache lookup hit with its cosine similarity
// to the query.
type QuestionMatch struct {
	Question   string  `json:"question"`
	Answer     string  `json:"answer"`
	Similarity float64 `json:"similarity"`
}
