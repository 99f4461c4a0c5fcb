// ABOUTME: Flat vector index answering nearest-neighbor queries by Euclidean distance
// ABOUTME: Rebuilt atomically at ingestion time, brute-force scan at query time
package index

import (
	"errors"
	"math"
	"sort"
	"sync"
)

// ErrEmptyIndex is returned when the index is queried before a successful
// build. Callers treat it as "no results", not a crash.
var ErrEmptyIndex = errors.New("vector index is empty")

// Hit is one nearest-neighbor result.
type Hit struct {
	Index    int
	Distance float64
}

// Flat is a brute-force Euclidean index over a fixed vector set.
type Flat struct {
	mu      sync.RWMutex
	vectors [][]float64
}

// New creates an empty index.
func New() *Flat {
	return &Flat{}
}

// Build replaces the indexed vectors atomically. The index is never
// partially populated: until Build returns, searches see the previous set.
func (f *Flat) Build(vectors [][]float64) {
	copied := make([][]float64, len(vectors))
	for i, v := range vectors {
		c := make([]float64, len(v))
		copy(c, v)
		copied[i] = c
	}

	f.mu.Lock()
	f.vectors = copied
	f.mu.Unlock()
}

// Len returns the number of indexed vectors.
func (f *Flat) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.vectors)
}

// Search returns up to k hits ordered by ascending Euclidean distance.
// k is capped to the index size.
func (f *Flat) Search(query []float64, k int) ([]Hit, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if len(f.vectors) == 0 {
		return nil, ErrEmptyIndex
	}
	if k <= 0 {
		return nil, nil
	}
	if k > len(f.vectors) {
		k = len(f.vectors)
	}

	hits := make([]Hit, len(f.vectors))
	for i, v := range f.vectors {
		hits[i] = Hit{Index: i, Distance: euclidean(query, v)}
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Distance != hits[j].Distance {
			return hits[i].Distance < hits[j].Distance
		}
		return hits[i].Index < hits[j].Index
	})
	return hits[:k], nil
}

func euclidean(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		d := a[i] - b[i]
		sum += d * d
	}
	// Dimension mismatches count the missing components in full.
	for i := n; i < len(a); i++ {
		sum += a[i] * a[i]
	}
	for i := n; i < len(b); i++ {
		sum += b[i] * b[i]
	}
	return math.Sqrt(sum)
}
