package site

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// PageGenerator converts a markdown report into a standalone HTML page.
type PageGenerator struct {
	ProjectName string
	md          goldmark.Markdown
	tmpl        *template.Template
}

// pageData holds the data passed to the HTML template.
type pageData struct {
	Title       string
	ProjectName string
	Content     template.HTML
	CSS         template.CSS
}

// NewPageGenerator creates a generator with GFM tables enabled.
func NewPageGenerator(projectName string) *PageGenerator {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)
	return &PageGenerator{
		ProjectName: projectName,
		md:          md,
		tmpl:        template.Must(template.New("page").Parse(pageTemplate)),
	}
}

// Render converts markdown content to a complete HTML document.
func (g *PageGenerator) Render(content []byte) ([]byte, error) {
	var body bytes.Buffer
	if err := g.md.Convert(content, &body); err != nil {
		return nil, fmt.Errorf("converting markdown: %w", err)
	}

	data := pageData{
		Title:       extractTitle(string(content), "Report"),
		ProjectName: g.ProjectName,
		Content:     template.HTML(highlightWarnings(body.String())),
		CSS:         template.CSS(cssContent),
	}

	var out bytes.Buffer
	if err := g.tmpl.Execute(&out, data); err != nil {
		return nil, fmt.Errorf("executing page template: %w", err)
	}
	return out.Bytes(), nil
}

// RenderFile reads srcPath and writes the HTML page to dstPath.
func (g *PageGenerator) RenderFile(srcPath, dstPath string) error {
	content, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", srcPath, err)
	}
	page, err := g.Render(content)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", srcPath, err)
	}
	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dstPath, page, 0o644)
}

// HTMLPath returns the .html sibling of a markdown path.
func HTMLPath(mdPath string) string {
	return strings.TrimSuffix(mdPath, filepath.Ext(mdPath)) + ".html"
}

// extractTitle pulls the first # heading from markdown content.
func extractTitle(content, fallback string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimPrefix(line, "# ")
		}
	}
	return fallback
}

var warningCell = regexp.MustCompile(`<td>([^<]*⚠)</td>`)

// highlightWarnings marks table cells carrying the over-allocation sign so
// the stylesheet can colour them.
func highlightWarnings(content string) string {
	return warningCell.ReplaceAllString(content, `<td class="over">$1</td>`)
}
