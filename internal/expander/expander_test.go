// ABOUTME: Tests for the context expander
// ABOUTME: Verifies prefix order, section widening, intent supplements and dedup
package expander

import (
	"context"
	"math"
	"strings"
	"testing"

	"docagent/internal/knowledge"
	"docagent/internal/models"
	"docagent/internal/retriever"
)

// bagEncoder embeds text as unit-norm term counts over a fixed vocabulary.
type bagEncoder struct {
	vocab []string
}

func (b *bagEncoder) Encode(_ context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, len(texts))
	for i, text := range texts {
		lower := strings.ToLower(text)
		vec := make([]float64, len(b.vocab))
		var norm float64
		for j, w := range b.vocab {
			vec[j] = float64(strings.Count(lower, w))
			norm += vec[j] * vec[j]
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for j := range vec {
				vec[j] /= norm
			}
		}
		out[i] = vec
	}
	return out, nil
}

const testDoc = `# HDFS
HDFS — распределенная файловая система.
## Архитектура
NameNode хранит метаданные.
## Репликация
Блоки реплицируются на несколько узлов.
# MapReduce
MapReduce — модель вычислений.
ПРИМЕР: запуск wordcount
hadoop jar wc.jar`

func newTestExpander(t *testing.T) (*Expander, *retriever.Retriever) {
	t.Helper()
	enc := &bagEncoder{vocab: []string{"hdfs", "namenode", "репликация", "mapreduce", "пример", "инструкция", "wordcount"}}
	r := retriever.New(enc, knowledge.NewDefault())
	if err := r.Ingest(context.Background(), testDoc); err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	return New(r), r
}

func TestExpand_InitialContentIsPrefix(t *testing.T) {
	e, r := newTestExpander(t)

	initial, err := r.Retrieve(context.Background(), "репликация", 1)
	if err != nil || len(initial) == 0 {
		t.Fatalf("Retrieve() = %v, %v", initial, err)
	}

	expanded, err := e.Expand(context.Background(), initial, "репликация")
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	if len(expanded) == 0 || expanded[0] != initial[0].Content {
		t.Errorf("expanded[0] = %q, want initial hit first", expanded)
	}
}

func TestExpand_PullsChapterSiblings(t *testing.T) {
	e, _ := newTestExpander(t)

	initial := []models.RetrievalResult{{Content: "## Репликация\nБлоки реплицируются на несколько узлов.", Score: 1}}
	expanded, err := e.Expand(context.Background(), initial, "репликация")
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}

	joined := strings.Join(expanded, "\n---\n")
	if !strings.Contains(joined, "NameNode хранит метаданные") {
		t.Errorf("expansion missing same-chapter sibling:\n%s", joined)
	}
	if strings.Contains(joined, "модель вычислений") {
		t.Errorf("expansion leaked another chapter:\n%s", joined)
	}
}

func TestExpand_Deduplicates(t *testing.T) {
	e, _ := newTestExpander(t)

	seg := "# HDFS\nHDFS — распределенная файловая система."
	initial := []models.RetrievalResult{
		{Content: seg, Score: 1},
		{Content: seg, Score: 0.9},
	}
	expanded, err := e.Expand(context.Background(), initial, "hdfs")
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}

	counts := map[string]int{}
	for _, c := range expanded {
		counts[c]++
	}
	for content, n := range counts {
		if n > 1 {
			t.Errorf("content duplicated %d times: %q", n, content)
		}
	}
}

func TestExpand_ExampleSupplement(t *testing.T) {
	e, _ := newTestExpander(t)

	initial := []models.RetrievalResult{{Content: "# MapReduce\nMapReduce — модель вычислений.", Score: 1}}
	expanded, err := e.Expand(context.Background(), initial, "пример wordcount")
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}

	joined := strings.Join(expanded, "\n")
	if !strings.Contains(joined, "ПРИМЕР: запуск wordcount") {
		t.Errorf("example supplement missing:\n%s", joined)
	}
}

func TestExpand_HowToSupplementOnlyWhenAsked(t *testing.T) {
	e, _ := newTestExpander(t)

	initial := []models.RetrievalResult{{Content: "## Репликация\nБлоки реплицируются на несколько узлов.", Score: 1}}

	// Plain query: no supplemental retrieval should fire for the example
	// segment sitting in another chapter.
	expanded, err := e.Expand(context.Background(), initial, "репликация блоков")
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	for _, c := range expanded {
		if strings.Contains(c, "ПРИМЕР") {
			t.Errorf("unexpected supplement for plain query: %q", c)
		}
	}
}
