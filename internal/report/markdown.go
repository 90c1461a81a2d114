package report

import (
	"fmt"
	"io"
	"strings"
	"text/template"
)

var markdownFuncs = template.FuncMap{
	"pct": func(r float64) string {
		return fmt.Sprintf("%.1f%%", r*100)
	},
	"serial": func(sr *SerialRange) string {
		if sr == nil {
			return "None"
		}
		return fmt.Sprintf("%d-%d", sr.Min, sr.Max)
	},
	// cell escapes characters that would break a table row.
	"cell": func(s string) string {
		s = strings.ReplaceAll(s, "|", `\|`)
		return strings.ReplaceAll(s, "\n", " ")
	},
	// inline escapes markdown punctuation in free text outside tables.
	"inline": func(s string) string {
		return inlineEscaper.Replace(strings.ReplaceAll(s, "\n", " "))
	},
	"join": func(items []string) string {
		return strings.Join(items, ", ")
	},
}

var inlineEscaper = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", "*", `\*`, "_", `\_`, "[", `\[`, "]", `\]`,
	"<", `\<`, ">", `\>`, "#", `\#`, "|", `\|`,
)

var markdownTmpl = template.Must(template.New("report").Funcs(markdownFuncs).Parse(markdownTemplate))

// WriteMarkdown renders the human-readable report.
func (r *Report) WriteMarkdown(w io.Writer) error {
	return markdownTmpl.Execute(w, r)
}
