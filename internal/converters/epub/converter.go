// Package epub converts EPUB publications into markdown renderings.
//
// The container is a zip archive: META-INF/container.xml points at the
// OPF package document, whose spine orders the XHTML content files.
// Headings map directly from h1..h6 elements, so no layout analysis is
// needed and GPU requests are ignored.
package epub

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"

	"github.com/custodia-labs/folio-cli/internal/converters"
	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driven"
)

var _ driven.Converter = (*Converter)(nil)

// Converter handles EPUB publications.
type Converter struct{}

// New creates an EPUB converter.
func New() *Converter {
	return &Converter{}
}

// SupportedExtensions returns the extensions this converter handles.
func (c *Converter) SupportedExtensions() []string {
	return []string{".epub"}
}

// container.xml structure.
type containerXML struct {
	Rootfiles []struct {
		FullPath string `xml:"full-path,attr"`
	} `xml:"rootfiles>rootfile"`
}

// OPF package document structure, reduced to what conversion needs.
type packageXML struct {
	Manifest []struct {
		ID   string `xml:"id,attr"`
		Href string `xml:"href,attr"`
	} `xml:"manifest>item"`
	Spine []struct {
		IDRef string `xml:"idref,attr"`
	} `xml:"spine>itemref"`
}

// toc.ncx structure.
type ncxXML struct {
	NavPoints []ncxNavPoint `xml:"navMap>navPoint"`
}

type ncxNavPoint struct {
	Label    string        `xml:"navLabel>text"`
	Children []ncxNavPoint `xml:"navPoint"`
}

// Convert produces the renderings requested by the options.
func (c *Converter) Convert(ctx context.Context, raw *domain.RawDocument, opts domain.ConvertOptions) (*driven.ConvertOutput, error) {
	if raw == nil || len(raw.Content) < 4 || !bytes.HasPrefix(raw.Content, []byte("PK")) {
		return nil, fmt.Errorf("%w: not a zip container", domain.ErrCorruptDocument)
	}

	archive, err := zip.NewReader(bytes.NewReader(raw.Content), int64(len(raw.Content)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptDocument, err)
	}
	files := make(map[string]*zip.File, len(archive.File))
	for _, f := range archive.File {
		files[f.Name] = f
	}

	opfPath, err := rootfilePath(files)
	if err != nil {
		return nil, err
	}
	pkg, err := readPackage(files, opfPath)
	if err != nil {
		return nil, err
	}

	blocks, err := spineBlocks(ctx, files, opfPath, pkg)
	if err != nil {
		return nil, err
	}
	if len(blocks) == 0 {
		return nil, fmt.Errorf("%w: no text content", domain.ErrCorruptDocument)
	}

	output := &driven.ConvertOutput{}
	if opts.Compare || !opts.Hierarchical {
		output.Style = converters.RenderStyle(blocks)
	}
	if opts.Hierarchical {
		output.Hier = converters.RenderHier(blocks)
	}
	if opts.Titles {
		output.Titles = converters.RenderTitles(blocks)
		output.TOCTitles = converters.RenderTitleList(tocTitles(files, opfPath, pkg))
	}
	return output, nil
}

// rootfilePath resolves META-INF/container.xml to the OPF location.
func rootfilePath(files map[string]*zip.File) (string, error) {
	data, err := readFile(files, "META-INF/container.xml")
	if err != nil {
		return "", fmt.Errorf("%w: missing container.xml", domain.ErrCorruptDocument)
	}
	var container containerXML
	if err := xml.Unmarshal(data, &container); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrCorruptDocument, err)
	}
	if len(container.Rootfiles) == 0 || container.Rootfiles[0].FullPath == "" {
		return "", fmt.Errorf("%w: container.xml names no rootfile", domain.ErrCorruptDocument)
	}
	return container.Rootfiles[0].FullPath, nil
}

func readPackage(files map[string]*zip.File, opfPath string) (*packageXML, error) {
	data, err := readFile(files, opfPath)
	if err != nil {
		return nil, fmt.Errorf("%w: missing package document %s", domain.ErrCorruptDocument, opfPath)
	}
	var pkg packageXML
	if err := xml.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptDocument, err)
	}
	return &pkg, nil
}

// spineBlocks reads the spine documents in order and flattens them into
// the shared block model.
func spineBlocks(ctx context.Context, files map[string]*zip.File, opfPath string, pkg *packageXML) ([]converters.Block, error) {
	hrefs := make(map[string]string, len(pkg.Manifest))
	for _, item := range pkg.Manifest {
		hrefs[item.ID] = item.Href
	}

	base := path.Dir(opfPath)
	var blocks []converters.Block
	for _, ref := range pkg.Spine {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		href, ok := hrefs[ref.IDRef]
		if !ok {
			continue
		}
		data, err := readFile(files, resolve(base, href))
		if err != nil {
			return nil, fmt.Errorf("%w: spine document %s missing", domain.ErrCorruptDocument, href)
		}
		blocks = append(blocks, parseXHTML(data)...)
	}
	return blocks, nil
}

var headingTag = regexp.MustCompile(`^h([1-6])$`)

// parseXHTML walks an XHTML document and emits headings for h1..h6 and
// paragraphs for p and li elements. Script and style content is
// skipped.
func parseXHTML(data []byte) []converters.Block {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.Strict = false
	decoder.AutoClose = xml.HTMLAutoClose
	decoder.Entity = xml.HTMLEntity

	var blocks []converters.Block
	var text strings.Builder
	level := 0
	capturing := false
	skipDepth := 0

	flush := func() {
		content := converters.CollapseWhitespace(text.String())
		text.Reset()
		if content == "" {
			return
		}
		if level > 0 {
			blocks = append(blocks, converters.NewHeading(level, content))
		} else {
			blocks = append(blocks, converters.NewParagraph(content))
		}
	}

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		switch tok := token.(type) {
		case xml.StartElement:
			name := strings.ToLower(tok.Name.Local)
			if skipDepth > 0 {
				skipDepth++
				continue
			}
			switch {
			case name == "script" || name == "style":
				skipDepth = 1
			case headingTag.MatchString(name):
				flush()
				capturing = true
				level = int(name[1] - '0')
			case name == "p" || name == "li":
				flush()
				capturing = true
				level = 0
			}
		case xml.EndElement:
			name := strings.ToLower(tok.Name.Local)
			if skipDepth > 0 {
				skipDepth--
				continue
			}
			if headingTag.MatchString(name) || name == "p" || name == "li" {
				flush()
				capturing = false
				level = 0
			}
		case xml.CharData:
			if capturing && skipDepth == 0 {
				text.Write(tok)
			}
		}
	}
	flush()
	return blocks
}

// tocTitles extracts the table of contents from toc.ncx when present,
// falling back to the EPUB 3 nav document.
func tocTitles(files map[string]*zip.File, opfPath string, pkg *packageXML) []string {
	base := path.Dir(opfPath)
	for _, item := range pkg.Manifest {
		lower := strings.ToLower(item.Href)
		if !strings.HasSuffix(lower, ".ncx") {
			continue
		}
		data, err := readFile(files, resolve(base, item.Href))
		if err != nil {
			continue
		}
		var ncx ncxXML
		if err := xml.Unmarshal(data, &ncx); err != nil {
			continue
		}
		var titles []string
		collectNavPoints(ncx.NavPoints, &titles)
		if len(titles) > 0 {
			return titles
		}
	}

	// EPUB 3 fallback: any nav document's list items.
	for _, item := range pkg.Manifest {
		if item.ID != "nav" && !strings.Contains(strings.ToLower(item.Href), "nav") {
			continue
		}
		data, err := readFile(files, resolve(base, item.Href))
		if err != nil {
			continue
		}
		var titles []string
		for _, block := range parseXHTML(data) {
			titles = append(titles, block.Text)
		}
		if len(titles) > 0 {
			return titles
		}
	}
	return nil
}

func collectNavPoints(points []ncxNavPoint, titles *[]string) {
	for _, p := range points {
		label := converters.CollapseWhitespace(p.Label)
		if label != "" {
			*titles = append(*titles, label)
		}
		collectNavPoints(p.Children, titles)
	}
}

func resolve(base, href string) string {
	if base == "." || base == "" {
		return href
	}
	return path.Join(base, href)
}

func readFile(files map[string]*zip.File, name string) ([]byte, error) {
	f, ok := files[name]
	if !ok {
		return nil, fmt.Errorf("file %s not in archive", name)
	}
	r, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer r.Close()
	return io.ReadAll(r)
}
