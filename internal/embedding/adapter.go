// ABOUTME: Metadata adapter combines a base embedding with weighted sub-vectors
// ABOUTME: Terms, concepts and code samples each contribute a fixed-weight signal
package embedding

import (
	"context"
	"math"
	"strings"

	"docagent/internal/models"
)

// Sub-embedding weights. A single base embedding under-weights structural
// signals; these let retrieval favor segments whose metadata matches the
// query while normalization keeps distances comparable.
const (
	TermsWeight    = 0.2
	ConceptsWeight = 0.3
	CodeWeight     = 0.15
)

// Adapter enriches base segment embeddings with metadata sub-embeddings.
type Adapter struct {
	enc Encoder

	termsWeight    float64
	conceptsWeight float64
	codeWeight     float64
}

// NewAdapter creates an Adapter with the default weights.
func NewAdapter(enc Encoder) *Adapter {
	return &Adapter{
		enc:            enc,
		termsWeight:    TermsWeight,
		conceptsWeight: ConceptsWeight,
		codeWeight:     CodeWeight,
	}
}

// Adapt returns base + w_terms*embed(terms) + w_concepts*embed(concepts) +
// w_code*embed(code), L2-normalized. The base vector is copied, never
// mutated.
func (a *Adapter) Adapt(ctx context.Context, base []float64, seg *models.Segment) ([]float64, error) {
	adapted := make([]float64, len(base))
	copy(adapted, base)

	parts := []struct {
		texts  []string
		weight float64
	}{
		{seg.Terms, a.termsWeight},
		{seg.Concepts, a.conceptsWeight},
		{seg.CodeSamples, a.codeWeight},
	}
	for _, p := range parts {
		if len(p.texts) == 0 {
			continue
		}
		vecs, err := a.enc.Encode(ctx, []string{strings.Join(p.texts, " ")})
		if err != nil {
			return nil, err
		}
		addScaled(adapted, vecs[0], p.weight)
	}

	normalize(adapted)
	return adapted, nil
}

func addScaled(dst, src []float64, w float64) {
	n := len(dst)
	if len(src) < n {
		n = len(src)
	}
	for i := 0; i < n; i++ {
		dst[i] += w * src[i]
	}
}

// normalize scales the vector to unit length. Zero vectors are left as-is.
func normalize(v []float64) {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range v {
		v[i] /= norm
	}
}
