package converters

import (
	"fmt"
	"regexp"
	"strings"
)

// BlockKind distinguishes headings from running text.
type BlockKind int

const (
	// Paragraph is running body text.
	Paragraph BlockKind = iota
	// Heading is a section heading.
	Heading
)

// Block is one extracted content unit in reading order.
type Block struct {
	// Kind is the block classification.
	Kind BlockKind

	// Level is the heading depth (1-6) when Kind is Heading.
	Level int

	// Text is the block's text with whitespace collapsed.
	Text string
}

// NewHeading builds a heading block with the level clamped to 1-6.
func NewHeading(level int, text string) Block {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return Block{Kind: Heading, Level: level, Text: CollapseWhitespace(text)}
}

// NewParagraph builds a paragraph block.
func NewParagraph(text string) Block {
	return Block{Kind: Paragraph, Text: CollapseWhitespace(text)}
}

var whitespacePattern = regexp.MustCompile(`\s+`)

// CollapseWhitespace normalises runs of whitespace to single spaces.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}

// RenderStyle produces the style-normalised markdown: a flat rendering
// where headings become bold lines and paragraphs are separated by
// blank lines.
func RenderStyle(blocks []Block) string {
	var b strings.Builder
	for _, block := range blocks {
		if block.Text == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		if block.Kind == Heading {
			b.WriteString("**" + block.Text + "**")
		} else {
			b.WriteString(block.Text)
		}
	}
	if b.Len() == 0 {
		return ""
	}
	return b.String() + "\n"
}

// RenderHier produces the hierarchical outline markdown: headings as
// ATX markers at their level, content under its heading.
func RenderHier(blocks []Block) string {
	var b strings.Builder
	for _, block := range blocks {
		if block.Text == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		if block.Kind == Heading {
			b.WriteString(strings.Repeat("#", block.Level) + " " + block.Text)
		} else {
			b.WriteString(block.Text)
		}
	}
	if b.Len() == 0 {
		return ""
	}
	return b.String() + "\n"
}

// RenderTitles produces the titles.md content: one list entry per
// heading, indented by depth.
func RenderTitles(blocks []Block) string {
	var b strings.Builder
	for _, block := range blocks {
		if block.Kind != Heading || block.Text == "" {
			continue
		}
		b.WriteString(strings.Repeat("  ", block.Level-1))
		b.WriteString("- " + block.Text + "\n")
	}
	return b.String()
}

// RenderTitleList produces a flat title list (used for toc_titles.md),
// one entry per line.
func RenderTitleList(titles []string) string {
	var b strings.Builder
	for _, title := range titles {
		title = CollapseWhitespace(title)
		if title == "" {
			continue
		}
		fmt.Fprintf(&b, "- %s\n", title)
	}
	return b.String()
}
