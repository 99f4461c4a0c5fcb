// ABOUTME: Context expander widens initial retrieval hits into a fuller context
// ABOUTME: Pulls same-section siblings plus how-to/example supplements
package expander

import (
	"context"
	"strings"

	"docagent/internal/models"
	"docagent/internal/retriever"
)

// Query markers that trigger supplemental retrievals.
var (
	howToMarkers  = []string{"как", "настройка", "установка"}
	exampleMarker = "пример"
)

// Expander trades retrieval precision for recall: answers usually span a
// whole subsection, not the single best-matching segment.
type Expander struct {
	r *retriever.Retriever
}

// New creates an Expander over the given retriever.
func New(r *retriever.Retriever) *Expander {
	return &Expander{r: r}
}

// Expand returns the initial contents as a prefix, followed by segments
// from the same section, siblings under the same top-level chapter, and
// intent-driven supplements. Everything is deduplicated by exact text.
func (e *Expander) Expand(ctx context.Context, initial []models.RetrievalResult, query string) ([]string, error) {
	var expanded []string
	seen := map[string]bool{}
	add := func(content string) {
		if content == "" || seen[content] {
			return
		}
		seen[content] = true
		expanded = append(expanded, content)
	}

	lower := strings.ToLower(query)
	wantsHowTo := containsAny(lower, howToMarkers)
	wantsExample := strings.Contains(lower, exampleMarker)

	for _, hit := range initial {
		add(hit.Content)

		seg, ok := e.r.SegmentByContent(hit.Content)
		if !ok {
			continue
		}

		// Whole subsection: same parent title and identical section path.
		for i := range e.r.Segments() {
			other := &e.r.Segments()[i]
			if other.SamePathAs(seg) {
				add(other.Content)
			}
		}

		// Siblings under the same top-level chapter.
		if top := seg.TopSection(); top != "" {
			for i := range e.r.Segments() {
				other := &e.r.Segments()[i]
				if other.TopSection() == top {
					add(other.Content)
				}
			}
		}

		if wantsHowTo {
			if err := e.addSupplemental(ctx, "инструкция "+query, add); err != nil {
				return nil, err
			}
		}
		if wantsExample {
			if err := e.addSupplemental(ctx, "пример "+query, add); err != nil {
				return nil, err
			}
		}
	}
	return expanded, nil
}

func (e *Expander) addSupplemental(ctx context.Context, query string, add func(string)) error {
	results, err := e.r.Retrieve(ctx, query, 2)
	if err != nil {
		return err
	}
	for _, res := range results {
		add(res.Content)
	}
	return nil
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
