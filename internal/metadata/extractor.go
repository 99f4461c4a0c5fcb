// ABOUTME: Metadata extractor derives structural and lexical metadata per segment
// ABOUTME: Threads a top-level heading accumulator through a single forward pass
package metadata

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"docagent/internal/models"
)

var (
	topHeadingRe  = regexp.MustCompile(`(?m)^#\s+(.+)$`)
	headingLineRe = regexp.MustCompile(`^(#+)\s*(.*)$`)
	bracketRe     = regexp.MustCompile(`\(([^)]*)\)`)
	headingWordRe = regexp.MustCompile(`#\s*([\p{L}\p{N}\s_-]+)`)
	codeBlockRe   = regexp.MustCompile("(?s)```.*?```")
)

// instructionMarkers is the fixed keyword set for the how-to heuristic.
var instructionMarkers = []string{"шаг", "инструкция", "настройка", "установка"}

// Extractor computes segment metadata. It is stateless; the caller threads
// the current top-level heading through successive Extract calls so that
// hierarchy is reconstructed in one forward pass over the document.
type Extractor struct{}

// New creates an Extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract builds a Segment for content at the given position. currentTop is
// the nearest top-level heading seen in earlier segments; the returned
// string is the accumulator value for the next segment (updated when this
// segment carries its own top-level heading).
func (e *Extractor) Extract(content string, position int, currentTop string) (models.Segment, string) {
	parent := currentTop
	if m := topHeadingRe.FindStringSubmatch(content); m != nil {
		parent = strings.TrimSpace(m[1])
	}

	seg := models.Segment{
		Content:       content,
		Position:      position,
		Title:         firstLine(content),
		ParentTitle:   parent,
		SectionPath:   sectionPath(content, currentTop),
		Terms:         extractTerms(content),
		Concepts:      extractConcepts(content),
		CodeSamples:   codeBlockRe.FindAllString(content, -1),
		IsInstruction: isInstruction(content),
	}
	seg.IsCode = len(seg.CodeSamples) > 0

	nextTop := currentTop
	if ms := topHeadingRe.FindAllStringSubmatch(content, -1); len(ms) > 0 {
		nextTop = strings.TrimSpace(ms[len(ms)-1][1])
	}
	return seg, nextTop
}

func firstLine(content string) string {
	if i := strings.IndexByte(content, '\n'); i >= 0 {
		return content[:i]
	}
	return content
}

// sectionPath tracks heading depth through the segment, truncating the
// hierarchy to depth-1 before appending each heading. The hierarchy is
// seeded with the enclosing top-level heading from earlier segments.
func sectionPath(content, currentTop string) []string {
	var hierarchy []string
	if currentTop != "" {
		hierarchy = append(hierarchy, currentTop)
	}

	for _, line := range strings.Split(content, "\n") {
		m := headingLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		level := len(m[1])
		title := strings.TrimSpace(m[2])
		if title == "" {
			continue
		}
		if level-1 < len(hierarchy) {
			hierarchy = hierarchy[:level-1]
		}
		hierarchy = append(hierarchy, title)
	}
	return hierarchy
}

// extractTerms pulls lowercase tokens from parenthesized text (comma
// separated, often synonyms) and from the first heading's words.
func extractTerms(content string) []string {
	var terms []string
	for _, m := range bracketRe.FindAllStringSubmatch(content, -1) {
		for _, part := range strings.Split(m[1], ",") {
			if t := strings.ToLower(strings.TrimSpace(part)); t != "" {
				terms = append(terms, t)
			}
		}
	}
	if m := headingWordRe.FindStringSubmatch(content); m != nil {
		for _, w := range strings.Fields(m[1]) {
			terms = append(terms, strings.ToLower(w))
		}
	}
	return terms
}

// extractConcepts collects text following an em-dash or colon up to end of
// line; documentation definitions follow that shape.
func extractConcepts(content string) []string {
	var concepts []string
	for _, line := range strings.Split(content, "\n") {
		idx := strings.IndexAny(line, "—:")
		if idx < 0 {
			continue
		}
		_, size := utf8.DecodeRuneInString(line[idx:])
		if c := strings.TrimSpace(line[idx+size:]); c != "" {
			concepts = append(concepts, c)
		}
	}
	return concepts
}

func isInstruction(content string) bool {
	lower := strings.ToLower(content)
	for _, marker := range instructionMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
