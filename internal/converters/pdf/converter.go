// Package pdf converts PDF documents into markdown renderings.
//
// Extraction is pure Go: content streams are located and inflated,
// text-show operators are decoded, and headings are inferred from font
// sizes relative to the dominant body size. When a GPU layout engine
// is linked in and requested, block classification comes from the
// engine instead.
package pdf

import (
	"bytes"
	"compress/zlib"
	"context"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/folio-cli/internal/converters"
	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driven"
	"github.com/custodia-labs/folio-cli/internal/logger"
)

// Ensure Converter implements the interface.
var _ driven.Converter = (*Converter)(nil)

// Converter handles PDF documents.
type Converter struct {
	layout driven.LayoutAnalyser
}

// New creates a PDF converter. layout may be nil; GPU requests then
// fall back to font-size heuristics.
func New(layout driven.LayoutAnalyser) *Converter {
	return &Converter{layout: layout}
}

// SupportedExtensions returns the extensions this converter handles.
func (c *Converter) SupportedExtensions() []string {
	return []string{".pdf"}
}

// Convert produces the renderings requested by the options.
func (c *Converter) Convert(ctx context.Context, raw *domain.RawDocument, opts domain.ConvertOptions) (*driven.ConvertOutput, error) {
	if raw == nil || !bytes.HasPrefix(raw.Content, []byte("%PDF-")) {
		return nil, fmt.Errorf("%w: missing PDF header", domain.ErrCorruptDocument)
	}

	output := &driven.ConvertOutput{}

	var blocks []converters.Block
	if opts.UseGPU && c.layout != nil && c.layout.Available() {
		layoutBlocks, err := c.layout.Analyse(ctx, raw.Content)
		if err != nil {
			logger.Warn("GPU layout analysis failed, falling back to font heuristics: %v", err)
			output.Degradations = append(output.Degradations, "GPU layout analysis failed, fell back to CPU")
		} else {
			blocks = fromLayout(layoutBlocks)
		}
	}
	if blocks == nil {
		var err error
		blocks, err = extract(ctx, raw.Content)
		if err != nil {
			return nil, err
		}
	}
	if len(blocks) == 0 {
		return nil, fmt.Errorf("%w: no text content", domain.ErrCorruptDocument)
	}

	if opts.Compare || !opts.Hierarchical {
		output.Style = converters.RenderStyle(blocks)
	}
	if opts.Hierarchical {
		output.Hier = converters.RenderHier(blocks)
	}
	if opts.Titles {
		output.Titles = converters.RenderTitles(blocks)
		output.TOCTitles = converters.RenderTitleList(outlineTitles(raw.Content))
	}
	return output, nil
}

// fromLayout maps engine blocks onto the shared block model.
func fromLayout(layoutBlocks []driven.LayoutBlock) []converters.Block {
	blocks := make([]converters.Block, 0, len(layoutBlocks))
	for _, lb := range layoutBlocks {
		switch lb.Kind {
		case driven.BlockHeading:
			blocks = append(blocks, converters.NewHeading(lb.Level, lb.Text))
		default:
			blocks = append(blocks, converters.NewParagraph(lb.Text))
		}
	}
	return blocks
}

// sizedBlock is a text run with the font size active when it started.
type sizedBlock struct {
	size float64
	text string
}

// Content stream operators.
var (
	fontOp     = regexp.MustCompile(`/\w+\s+([0-9.]+)\s+Tf`)
	showOp     = regexp.MustCompile(`\(((?:\\.|[^\\()])*)\)\s*Tj`)
	showArrOp  = regexp.MustCompile(`\[((?:\((?:\\.|[^\\()])*\)|[^\]])*)\]\s*TJ`)
	strLiteral = regexp.MustCompile(`\(((?:\\.|[^\\()])*)\)`)
	endTextOp  = regexp.MustCompile(`(^|[^A-Za-z])ET($|[^A-Za-z])`)
	titleOp    = regexp.MustCompile(`/Title\s*\(((?:\\.|[^\\()])*)\)`)
)

// extract pulls text blocks out of the document's content streams and
// classifies headings by font size.
func extract(ctx context.Context, content []byte) ([]converters.Block, error) {
	var sized []sizedBlock
	for _, stream := range streams(content) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sized = append(sized, parseStream(stream)...)
	}
	return classify(sized), nil
}

// streams returns each content stream, inflated when compressed.
func streams(content []byte) [][]byte {
	var result [][]byte
	rest := content
	for {
		start := bytes.Index(rest, []byte("stream"))
		if start < 0 {
			break
		}
		data := rest[start+len("stream"):]
		data = bytes.TrimPrefix(data, []byte("\r"))
		data = bytes.TrimPrefix(data, []byte("\n"))
		end := bytes.Index(data, []byte("endstream"))
		if end < 0 {
			break
		}
		result = append(result, inflate(data[:end]))
		rest = data[end+len("endstream"):]
	}
	return result
}

// inflate decompresses a zlib/deflate stream, returning the input
// unchanged when it is not compressed.
func inflate(data []byte) []byte {
	if len(data) < 2 || data[0] != 0x78 {
		return data
	}
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return data
	}
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return data
	}
	return out
}

// parseStream walks one content stream, accumulating text runs per
// BT..ET block together with the active font size.
func parseStream(stream []byte) []sizedBlock {
	var blocks []sizedBlock
	size := 0.0
	var current strings.Builder
	currentSize := 0.0

	flush := func() {
		text := converters.CollapseWhitespace(current.String())
		if text != "" {
			blocks = append(blocks, sizedBlock{size: currentSize, text: text})
		}
		current.Reset()
	}

	for _, segment := range splitTextObjects(string(stream)) {
		currentSize = size
		for _, m := range fontOp.FindAllStringSubmatch(segment, 1) {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil {
				size = v
				currentSize = v
			}
		}
		for _, m := range showOp.FindAllStringSubmatch(segment, -1) {
			current.WriteString(unescape(m[1]) + " ")
		}
		for _, m := range showArrOp.FindAllStringSubmatch(segment, -1) {
			for _, lit := range strLiteral.FindAllStringSubmatch(m[1], -1) {
				current.WriteString(unescape(lit[1]))
			}
			current.WriteString(" ")
		}
		flush()
	}
	return blocks
}

// splitTextObjects splits a content stream at ET operators so each
// BT..ET text object becomes one candidate block.
func splitTextObjects(stream string) []string {
	indices := endTextOp.FindAllStringIndex(stream, -1)
	if len(indices) == 0 {
		return []string{stream}
	}
	var segments []string
	prev := 0
	for _, idx := range indices {
		segments = append(segments, stream[prev:idx[1]])
		prev = idx[1]
	}
	if prev < len(stream) {
		segments = append(segments, stream[prev:])
	}
	return segments
}

// unescape decodes a PDF string literal body.
func unescape(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch != '\\' || i+1 >= len(s) {
			b.WriteByte(ch)
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case '(', ')', '\\':
			b.WriteByte(s[i])
		case '0', '1', '2', '3', '4', '5', '6', '7':
			// Octal escape, up to three digits.
			val := 0
			digits := 0
			for digits < 3 && i < len(s) && s[i] >= '0' && s[i] <= '7' {
				val = val*8 + int(s[i]-'0')
				i++
				digits++
			}
			i--
			b.WriteByte(byte(val))
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// classify turns sized text runs into blocks: the dominant font size is
// body text; each distinct larger size becomes a heading level, largest
// first.
func classify(sized []sizedBlock) []converters.Block {
	if len(sized) == 0 {
		return nil
	}

	counts := make(map[float64]int)
	for _, sb := range sized {
		counts[sb.size]++
	}
	body := 0.0
	bodyCount := -1
	for size, count := range counts {
		if count > bodyCount || (count == bodyCount && size < body) {
			body = size
			bodyCount = count
		}
	}

	var headingSizes []float64
	for size := range counts {
		if size > body {
			headingSizes = append(headingSizes, size)
		}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(headingSizes)))
	levelOf := make(map[float64]int, len(headingSizes))
	for i, size := range headingSizes {
		levelOf[size] = i + 1
	}

	blocks := make([]converters.Block, 0, len(sized))
	for _, sb := range sized {
		if level, ok := levelOf[sb.size]; ok {
			blocks = append(blocks, converters.NewHeading(level, sb.text))
		} else {
			blocks = append(blocks, converters.NewParagraph(sb.text))
		}
	}
	return blocks
}

// outlineTitles returns the document outline's titles, in order of
// appearance. Empty when the PDF carries no outline dictionary.
func outlineTitles(content []byte) []string {
	var titles []string
	for _, m := range titleOp.FindAllSubmatch(content, -1) {
		titles = append(titles, unescape(string(m[1])))
	}
	return titles
}
