// Package report renders fetched datasets as an HTML email report and
// delivers it over SMTP, or to a local file when no mail endpoint is
// configured.
package report

import (
	"html/template"
	"io"
	"os"
	"time"

	"gitlab.com/tozd/go/errors"

	"github.com/scriptkit/scriptkit/pkg/fetch"
)

// 📧 Report is one renderable report.
type Report struct {
	Title       string
	GeneratedAt time.Time
	Dataset     *fetch.Dataset
}

const reportTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: -apple-system, Helvetica, Arial, sans-serif; color: #222; }
  h1 { font-size: 20px; }
  .meta { color: #777; font-size: 12px; margin-bottom: 16px; }
  table { border-collapse: collapse; width: 100%; }
  th, td { border: 1px solid #ddd; padding: 6px 10px; text-align: left; font-size: 13px; }
  th { background: #f4f4f4; }
  tr:nth-child(even) { background: #fafafa; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="meta">Generated at {{.GeneratedAt}} &middot; {{.RowCount}} record(s)</p>
<table>
  <tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr>
{{- range .Rows}}
  <tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{- end}}
</table>
</body>
</html>
`

var tmpl = template.Must(template.New("report").Parse(reportTemplate))

// view is the flattened template input: rows resolved to column order.
type view struct {
	Title       string
	GeneratedAt string
	RowCount    int
	Columns     []string
	Rows        [][]string
}

// 🖨️ Render writes the report as a standalone HTML document.
func Render(w io.Writer, r Report) error {
	if r.Dataset == nil {
		return errors.New("report has no dataset")
	}

	title := r.Title
	if title == "" {
		title = "scriptkit report"
	}

	v := view{
		Title:       title,
		GeneratedAt: r.GeneratedAt.Format("2006-01-02 15:04 MST"),
		RowCount:    len(r.Dataset.Rows),
		Columns:     r.Dataset.Columns,
	}
	for _, row := range r.Dataset.Rows {
		cells := make([]string, len(r.Dataset.Columns))
		for i, column := range r.Dataset.Columns {
			cells[i] = row[column]
		}
		v.Rows = append(v.Rows, cells)
	}

	if err := tmpl.Execute(w, v); err != nil {
		return errors.Errorf("rendering report: %w", err)
	}
	return nil
}

// 💾 WriteFile renders the report to a file at path.
func WriteFile(path string, r Report) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Errorf("creating report file: %w", err)
	}
	defer f.Close()

	if err := Render(f, r); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Errorf("closing report file: %w", err)
	}
	return nil
}
