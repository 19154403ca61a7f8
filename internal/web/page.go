package web

// page.go renders the upload page: a single form posting a CSV to
// /validate, plus the list of expected columns so submitters can check
// their export before uploading.

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/WA-DEPS/WADEPS-Header-Tool/internal/schema"
)

const pageCSS = `body { font-family: Arial, sans-serif; margin: 0; padding: 20px; background: #f5f5f5; }
.container { max-width: 700px; margin: 0 auto; }
.panel { background: white; border: 1px solid #ddd; padding: 20px; margin-bottom: 20px; }
.panel h1 { margin: 0 0 10px 0; color: #333; }
.panel h2 { margin: 0 0 15px 0; color: #333; font-size: 16px; }
.panel p { color: #666; }
form { margin-top: 15px; }
input[type="file"] { display: block; margin-bottom: 15px; }
button { background: #2b6cb0; color: white; border: none; padding: 10px 20px; font-size: 14px; cursor: pointer; }
label { display: block; margin-bottom: 10px; color: #666; }
.columns { max-height: 300px; overflow-y: auto; border: 1px solid #ddd; padding: 10px; }
.columns ul { margin: 0; padding-left: 20px; font-family: monospace; font-size: 12px; }`

// uploadPage returns the upload form as a templ component.
func uploadPage(s *schema.Schema) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &pageWriter{w: w, schema: s}
		return p.render()
	})
}

type pageWriter struct {
	w      io.Writer
	schema *schema.Schema
	err    error
}

func (p *pageWriter) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *pageWriter) render() error {
	p.printf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>WADEPS Header Tool</title>
<style>%s</style>
</head>
<body>
<div class="container">
`, pageCSS)

	p.printf(`<div class="panel">
<h1>WADEPS Header Tool</h1>
<p>Upload a CSV export to check its headers and field values against the submission template before sending it to WADEPS.</p>
<form action="/validate" method="post" enctype="multipart/form-data">
<input type="file" name="file" accept=".csv" required>
<label><input type="checkbox" name="format" value="json"> Return raw JSON instead of the dashboard</label>
<button type="submit">Validate</button>
</form>
</div>
`)

	p.printf(`<div class="panel">
<h2>Expected Columns (%d)</h2>
<div class="columns">
<ul>
`, p.schema.ColumnCount())
	for _, col := range p.schema.Columns() {
		p.printf("<li>%s</li>\n", templ.EscapeString(col))
	}
	p.printf("</ul>\n</div>\n</div>\n")

	p.printf("</div>\n</body>\n</html>\n")
	return p.err
}
