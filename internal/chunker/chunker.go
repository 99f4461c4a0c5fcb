// ABOUTME: Chunker splits raw documentation text into semantic segments
// ABOUTME: Segment boundaries follow headings, list items and example/step markers
package chunker

import (
	"errors"
	"regexp"
	"strings"
)

// ErrEmptyDocument is returned when the input document contains no text.
var ErrEmptyDocument = errors.New("document is empty or whitespace-only")

var (
	headingRe  = regexp.MustCompile(`^#+\s`)
	numberedRe = regexp.MustCompile(`^\d+[.)]\s`)
	bulletRe   = regexp.MustCompile(`^[-*]\s`)
)

// Boundary markers inside a line that start a new segment even without a
// heading, matching the conventions of the source documentation.
var lineMarkers = []string{"ПРИМЕР:", "Шаг "}

// Chunker splits documents line by line, keeping fenced code blocks intact.
type Chunker struct{}

// New creates a Chunker.
func New() *Chunker {
	return &Chunker{}
}

// Split segments the document text. A new segment starts at every heading,
// numbered or bulleted list item, and example/step marker, except inside a
// fenced code block. Empty segments are dropped; every non-blank input line
// ends up in exactly one segment.
func (c *Chunker) Split(text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyDocument
	}

	var segments []string
	var current []string
	inFence := false

	flush := func() {
		joined := strings.TrimSpace(strings.Join(current, "\n"))
		if joined != "" {
			segments = append(segments, joined)
		}
		current = current[:0]
	}

	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
			current = append(current, line)
			continue
		}

		if !inFence && isBoundary(line) && len(current) > 0 {
			flush()
		}
		current = append(current, line)
	}
	flush()

	return segments, nil
}

func isBoundary(line string) bool {
	if headingRe.MatchString(line) || numberedRe.MatchString(line) || bulletRe.MatchString(line) {
		return true
	}
	for _, m := range lineMarkers {
		if strings.Contains(line, m) {
			return true
		}
	}
	return false
}
