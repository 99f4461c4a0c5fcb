// ABOUTME: Segment and metadata types for the retrieval pipeline
// ABOUTME: A segment is one immutable retrievable unit of documentation text
package models

// Segment is a retrievable unit of documentation text together with the
// structural metadata extracted from it. Segments are created once per
// ingestion and never mutated afterwards.
type Segment struct {
	// Content is the raw (trimmed) segment text.
	Content string
	// Position is the ordinal position within the document, starting at 0.
	Position int

	// Title is the first line of the segment.
	Title string
	// ParentTitle is the nearest enclosing top-level heading.
	ParentTitle string
	// SectionPath is the heading hierarchy from the document root down to
	// this segment, e.g. ["Hadoop", "HDFS", "Репликация"].
	SectionPath []string

	// Terms holds lowercase tokens pulled from parenthesized text and
	// heading words.
	Terms []string
	// Concepts holds definition-like phrases (text after an em-dash or
	// colon up to end of line).
	Concepts []string

	// IsCode reports whether the segment contains a fenced code block,
	// CodeSamples holds the fenced blocks themselves.
	IsCode      bool
	CodeSamples []string

	// IsInstruction reports whether the segment looks like a how-to
	// (keyword heuristic).
	IsInstruction bool
}

// TopSection returns the root of the section path, or "" when the segment
// sits outside any heading hierarchy.
func (s *Segment) TopSection() string {
	if len(s.SectionPath) == 0 {
		return ""
	}
	return s.SectionPath[0]
}

// SamePathAs reports whether two segments share both parent title and the
// exact section path. Used for structural context expansion.
func (s *Segment) SamePathAs(other *Segment) bool {
	if s.ParentTitle != other.ParentTitle {
		return false
	}
	if len(s.SectionPath) != len(other.SectionPath) {
		return false
	}
	for i := range s.SectionPath {
		if s.SectionPath[i] != other.SectionPath[i] {
			return false
		}
	}
	return true
}

// RetrievalResult is one scored retrieval hit. Score is monotonically
// related to similarity: higher means more relevant.
type RetrievalResult struct {
	Content string
	Score   float64
}
