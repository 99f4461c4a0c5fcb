// ABOUTME: Retriever owns the ingestion pipeline and scored semantic retrieval
// ABOUTME: Wires chunker, metadata extraction, adapted embeddings and the index
package retriever

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"docagent/internal/chunker"
	"docagent/internal/embedding"
	"docagent/internal/index"
	"docagent/internal/knowledge"
	"docagent/internal/metadata"
	"docagent/internal/models"
)

// Retriever holds the segment collection and its vector index. The segment
// set is replaced wholesale by Ingest and never mutated between ingestions,
// so query-time reads need no synchronization.
type Retriever struct {
	chunker   *chunker.Chunker
	extractor *metadata.Extractor
	kb        *knowledge.Base
	enc       embedding.Encoder
	adapter   *embedding.Adapter
	idx       *index.Flat

	segments []models.Segment
}

// New creates a Retriever using enc for both base and metadata embeddings.
func New(enc embedding.Encoder, kb *knowledge.Base) *Retriever {
	return &Retriever{
		chunker:   chunker.New(),
		extractor: metadata.New(),
		kb:        kb,
		enc:       enc,
		adapter:   embedding.NewAdapter(enc),
		idx:       index.New(),
	}
}

// IngestFile reads and ingests a UTF-8 documentation file.
func (r *Retriever) IngestFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading document: %w", err)
	}
	return r.Ingest(ctx, string(data))
}

// Ingest segments the document, extracts metadata in a single forward pass,
// computes adapted embeddings and rebuilds the index. On error nothing is
// replaced.
func (r *Retriever) Ingest(ctx context.Context, text string) error {
	raw, err := r.chunker.Split(text)
	if err != nil {
		return err
	}

	segments := make([]models.Segment, len(raw))
	currentTop := ""
	for i, content := range raw {
		segments[i], currentTop = r.extractor.Extract(content, i, currentTop)
	}

	bases, err := r.enc.Encode(ctx, raw)
	if err != nil {
		return fmt.Errorf("embedding segments: %w", err)
	}

	vectors := make([][]float64, len(segments))
	for i := range segments {
		vectors[i], err = r.adapter.Adapt(ctx, bases[i], &segments[i])
		if err != nil {
			return fmt.Errorf("adapting segment %d: %w", i, err)
		}
	}

	r.idx.Build(vectors)
	r.segments = segments
	return nil
}

// relevanceThreshold is the maximum Euclidean distance a hit may have to
// count as relevant. With unit-norm embeddings an orthogonal (unrelated)
// pair sits at sqrt(2), so everything past 1.1 is noise.
const relevanceThreshold = 1.1

// Retrieve expands the query through the knowledge base, embeds it and
// returns up to k segments scored by 1/(1+distance), highest first. Hits
// farther than relevanceThreshold are dropped, so a query the document has
// nothing on yields no results. Duplicate contents are collapsed. An
// unbuilt index also yields no results.
func (r *Retriever) Retrieve(ctx context.Context, query string, k int) ([]models.RetrievalResult, error) {
	expanded := r.kb.ExpandQuery(query)

	vecs, err := r.enc.Encode(ctx, []string{expanded})
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	hits, err := r.idx.Search(vecs[0], k)
	if err != nil {
		if errors.Is(err, index.ErrEmptyIndex) {
			return nil, nil
		}
		return nil, err
	}

	seen := make(map[string]bool, len(hits))
	results := make([]models.RetrievalResult, 0, len(hits))
	for _, h := range hits {
		if h.Distance > relevanceThreshold {
			continue
		}
		content := r.segments[h.Index].Content
		if seen[content] {
			continue
		}
		seen[content] = true
		results = append(results, models.RetrievalResult{
			Content: content,
			Score:   1 / (1 + h.Distance),
		})
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	return results, nil
}

// Segments returns the current segment collection.
func (r *Retriever) Segments() []models.Segment {
	return r.segments
}

// SegmentByContent returns the segment holding exactly this content.
func (r *Retriever) SegmentByContent(content string) (*models.Segment, bool) {
	for i := range r.segments {
		if r.segments[i].Content == content {
			return &r.segments[i], true
		}
	}
	return nil, false
}
