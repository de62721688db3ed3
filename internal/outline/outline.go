// Package outline parses hierarchical markdown into an ordered heading
// outline and extracts the content span belonging to each heading.
package outline

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
)

// headingPattern matches ATX headings (# through ######).
var headingPattern = regexp.MustCompile(`^(#{1,6})\s+(.+?)\s*#*\s*$`)

// Heading is one entry in a document outline.
type Heading struct {
	// Text is the heading text with markers stripped.
	Text string

	// Level is the heading depth (1-6).
	Level int

	// Line is the zero-based line the heading appears on.
	Line int
}

// Parse extracts the heading outline from markdown content.
// Headings inside fenced code blocks are ignored.
func Parse(content string) []Heading {
	var headings []Heading
	inFence := false

	for i, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		if m := headingPattern.FindStringSubmatch(line); m != nil {
			headings = append(headings, Heading{
				Text:  strings.TrimSpace(m[2]),
				Level: len(m[1]),
				Line:  i,
			})
		}
	}
	return headings
}

// Rows builds suggestion rows from markdown content. Each row spans its
// heading line through the last line before the next heading, so rows
// partition the content without overlap. Headings at or above
// maxAutoLevel default to Vectorize true.
func Rows(content string, maxAutoLevel int) []domain.SuggestionRow {
	headings := Parse(content)
	if len(headings) == 0 {
		return nil
	}

	lastLine := strings.Count(content, "\n")
	rows := make([]domain.SuggestionRow, 0, len(headings))

	for i, h := range headings {
		end := lastLine
		if i+1 < len(headings) {
			end = headings[i+1].Line - 1
		}
		rows = append(rows, domain.SuggestionRow{
			Index:     i,
			Heading:   h.Text,
			Level:     h.Level,
			Vectorize: h.Level <= maxAutoLevel,
			Span:      domain.Span{StartLine: h.Line, EndLine: end},
		})
	}
	return rows
}

// ExtractSpan returns the content covered by a span (inclusive lines).
// Lines beyond the content are clamped.
func ExtractSpan(content string, span domain.Span) string {
	lines := strings.Split(content, "\n")
	start := span.StartLine
	end := span.EndLine
	if start < 0 {
		start = 0
	}
	if end >= len(lines) {
		end = len(lines) - 1
	}
	if start >= len(lines) || end < start {
		return ""
	}
	return strings.TrimRight(strings.Join(lines[start:end+1], "\n"), "\n")
}

// HeadingPaths returns the heading breadcrumb for each row, computed
// from the nesting implied by heading levels, e.g. a level-3 row under
// "Results" > "Revenue" yields ["Results", "Revenue", "Q4"].
func HeadingPaths(rows []domain.SuggestionRow) [][]string {
	paths := make([][]string, len(rows))
	type frame struct {
		level int
		text  string
	}
	var stack []frame

	for i, row := range rows {
		for len(stack) > 0 && stack[len(stack)-1].level >= row.Level {
			stack = stack[:len(stack)-1]
		}
		stack = append(stack, frame{level: row.Level, text: row.Heading})

		path := make([]string, len(stack))
		for j, f := range stack {
			path[j] = f.text
		}
		paths[i] = path
	}
	return paths
}
