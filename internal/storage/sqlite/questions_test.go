// ABOUTME: Tests for the persistent question store
// ABOUTME: Round-trips vectors through blobs and verifies clear semantics
package sqlite

import (
	"testing"
	"time"

	"docagent/internal/models"
)

func newTestStore(t *testing.T) *QuestionStore {
	t.Helper()
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewQuestionStore(db)
}

func TestSaveAndLoadAll(t *testing.T) {
	s := newTestStore(t)

	entries := []models.CachedQuestion{
		{Question: "что такое hdfs", Answer: "ответ один", Vector: []float64{0.5, -1.25, 3}},
		{Question: "как настроить hadoop", Answer: "ответ два", Vector: []float64{1, 2}},
	}
	for _, e := range entries {
		if err := s.Save(e); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	got, err := s.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(got) != len(entries) {
		t.Fatalf("LoadAll() = %d entries, want %d", len(got), len(entries))
	}
	for i, want := range entries {
		if got[i].Question != want.Question || got[i].Answer != want.Answer {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], want)
		}
		if len(got[i].Vector) != len(want.Vector) {
			t.Fatalf("entry %d vector = %v, want %v", i, got[i].Vector, want.Vector)
		}
		for j := range want.Vector {
			if got[i].Vector[j] != want.Vector[j] {
				t.Errorf("entry %d vector = %v, want %v", i, got[i].Vector, want.Vector)
				break
			}
		}
		if got[i].CreatedAt.IsZero() {
			t.Errorf("entry %d has zero CreatedAt", i)
		}
	}
}

func TestSave_KeepsCreatedAt(t *testing.T) {
	s := newTestStore(t)

	stamp := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	if err := s.Save(models.CachedQuestion{Question: "q", Answer: "a", Vector: []float64{1}, CreatedAt: stamp}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := s.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if !got[0].CreatedAt.Equal(stamp) {
		t.Errorf("CreatedAt = %v, want %v", got[0].CreatedAt, stamp)
	}
}

func TestClear(t *testing.T) {
	s := newTestStore(t)

	if err := s.Save(models.CachedQuestion{Question: "q", Answer: "a", Vector: []float64{1}}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	got, err := s.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("LoadAll() after Clear = %v, want empty", got)
	}
}
