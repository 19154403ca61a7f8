package report

// html.go renders the self-contained HTML dashboard for a validation run.
// The dashboard is a single file a submitter can open locally: status badge,
// stat cards, header comparison, error details, and subject-ID guidance.

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/a-h/templ"

	"github.com/WA-DEPS/WADEPS-Header-Tool/internal/validate"
)

const dashboardCSS = `body { font-family: Arial, sans-serif; margin: 0; padding: 20px; background: #f5f5f5; }
.container { max-width: 1000px; margin: 0 auto; }
.header { background: white; border: 1px solid #ddd; padding: 20px; margin-bottom: 20px; }
.header h1 { margin: 0 0 10px 0; color: #333; }
.status-badge { display: inline-block; padding: 5px 10px; color: white; font-weight: bold; }
.stats { display: table; width: 100%; margin-bottom: 20px; }
.stat-row { display: table-row; }
.stat-card { display: table-cell; background: white; border: 1px solid #ddd; padding: 15px; text-align: center; }
.stat-card h3 { margin: 0 0 10px 0; color: #666; font-size: 12px; text-transform: uppercase; }
.stat-card .value { font-size: 1.5em; font-weight: bold; margin: 0; }
.panel { background: white; border: 1px solid #ddd; padding: 20px; margin-bottom: 20px; }
.panel h2 { margin: 0 0 15px 0; color: #333; }
.error-item { padding: 10px; border-left: 3px solid #e53e3e; background: #fef5f5; margin-bottom: 10px; }
.warning-item { padding: 10px; border-left: 3px solid #dd6b20; background: #fffaf0; margin-bottom: 10px; }
.error-item h4, .warning-item h4 { margin: 0 0 5px 0; color: #333; }
.error-item p, .warning-item p { margin: 0; color: #666; }
.meta { font-size: 11px; color: #999; margin-top: 5px; }
.header-list { max-height: 200px; overflow-y: auto; background: white; padding: 10px; border: 1px solid #ddd; }
.header-list ul { margin: 0; padding-left: 20px; font-family: monospace; font-size: 12px; }
.recommendations { background: #ebf8ff; padding: 15px; border: 1px solid #bee3f8; }
.recommendations h3 { margin: 0 0 10px 0; color: #2b6cb0; }
.recommendations ul { margin: 0; padding-left: 20px; }`

// Dashboard returns the HTML dashboard as a templ component.
func Dashboard(fileName string, rep *validate.Report, at time.Time) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		d := &dashboardWriter{w: w, file: fileName, rep: rep, at: at}
		return d.render()
	})
}

// WriteDashboard renders the dashboard to w.
func WriteDashboard(w io.Writer, fileName string, rep *validate.Report, at time.Time) error {
	return Dashboard(fileName, rep, at).Render(context.Background(), w)
}

// dashboardWriter builds the page top to bottom, remembering the first
// write error so each section can stay unconditional.
type dashboardWriter struct {
	w    io.Writer
	file string
	rep  *validate.Report
	at   time.Time
	err  error
}

func (d *dashboardWriter) printf(format string, args ...any) {
	if d.err != nil {
		return
	}
	_, d.err = fmt.Fprintf(d.w, format, args...)
}

func esc(s string) string { return templ.EscapeString(s) }

func (d *dashboardWriter) render() error {
	status := StatusOf(d.rep)

	d.printf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>WADEPS Validation Results - %s</title>
<style>%s</style>
</head>
<body>
<div class="container">
`, esc(d.file), dashboardCSS)

	d.printf(`<div class="header">
<h1>WADEPS Validation Results</h1>
<p>File: %s | Generated: %s</p>
<span class="status-badge" style="background: %s;">%s</span>
</div>
`, esc(d.file), d.at.Format("2006-01-02 15:04:05"), status.color(), esc(status.Text()))

	d.statCards()
	d.headerPanel()
	d.errorPanel()
	d.warningPanel()
	d.subjectPanel()
	if status == StatusPassed {
		d.successPanel()
	}
	d.recommendationsPanel()

	d.printf("</div>\n</body>\n</html>\n")
	return d.err
}

func (d *dashboardWriter) statCards() {
	rep := d.rep
	headersColor, headersText := "#48bb78", "Yes"
	if !rep.Headers.IsValid {
		headersColor, headersText = "#e53e3e", "No"
	}

	d.printf(`<div class="stats"><div class="stat-row">
`)
	d.statCard("Total Rows", fmt.Sprintf("%d", rep.TotalRows), "#333")
	d.statCard("Headers Match", headersText, headersColor)
	d.statCard("Data Errors", fmt.Sprintf("%d", len(rep.Errors)), countColor(len(rep.Errors)))
	d.statCard("Subject ID Issues", fmt.Sprintf("%d", rep.SubjectIDs.Total()), countColor(rep.SubjectIDs.Total()))
	d.statCard("Quality Score", fmt.Sprintf("%.0f%%", QualityScore(rep)), "#333")
	d.printf("</div></div>\n")
}

func countColor(n int) string {
	if n == 0 {
		return "#48bb78"
	}
	return "#e53e3e"
}

func (d *dashboardWriter) statCard(label, value, color string) {
	d.printf(`<div class="stat-card"><h3>%s</h3><div class="value" style="color: %s;">%s</div></div>
`, esc(label), color, esc(value))
}

func (d *dashboardWriter) headerPanel() {
	h := d.rep.Headers
	d.printf(`<div class="panel">
<h2>Header Validation</h2>
<p style="color: #666;">Column headers are compared against the WADEPS template. Names must match exactly, including spelling, spacing, and capitalization.</p>
<p><strong>%d</strong> matching, <strong>%d</strong> missing, <strong>%d</strong> extra</p>
`, len(h.Matching), len(h.Missing), len(h.Extra))

	d.headerList("Missing Required Headers", "#e53e3e",
		"Add these column headers to your CSV file.", h.Missing)
	d.headerList("Extra Headers", "#dd6b20",
		"Remove these columns or rename them to match the template.", h.Extra)
	d.printf("</div>\n")
}

func (d *dashboardWriter) headerList(title, color, action string, headers []string) {
	if len(headers) == 0 {
		return
	}
	d.printf(`<h3 style="color: %s;">%s (%d)</h3>
<p style="color: #666;"><strong>Action Required:</strong> %s</p>
<div class="header-list"><ul>
`, color, esc(title), len(headers), esc(action))
	for _, h := range truncateList(headers, 15) {
		display := h
		if len(display) > 60 {
			display = display[:57] + "..."
		}
		d.printf("<li>%s</li>\n", esc(display))
	}
	if more := len(headers) - 15; more > 0 {
		d.printf(`<li style="color: #666; font-style: italic;">... and %d more headers</li>
`, more)
	}
	d.printf("</ul></div>\n")
}

func (d *dashboardWriter) errorPanel() {
	errors := d.rep.Errors
	if len(errors) == 0 {
		return
	}
	d.printf(`<div class="panel">
<h2>Data Validation Errors (%d)</h2>
<p style="color: #666;">These errors prevent your data from being accepted. Each shows the column, row, and what needs to be fixed.</p>
`, len(errors))

	d.printf(`<div style="background: #f8f9fa; padding: 10px; margin-bottom: 15px; border: 1px solid #dee2e6;">
<h3 style="margin: 0 0 10px 0;">Error Summary</h3>
`)
	for _, g := range groupFindings(errors) {
		d.printf("<div><strong>%s:</strong> %d errors</div>\n", esc(g.key), g.count)
	}
	d.printf("</div>\n")

	for _, e := range capFindings(errors, 20) {
		d.printf(`<div class="error-item">
<h4>%s</h4>
<p>%s</p>
<div class="meta">Row %d | Value: &quot;%s&quot;</div>
</div>
`, esc(e.Column), esc(e.Message), e.Row, esc(e.Value))
	}
	if more := len(errors) - 20; more > 0 {
		d.printf(`<p style="color: #666; font-style: italic;">... and %d more errors (see the JSON results for the complete list)</p>
`, more)
	}
	d.printf("</div>\n")
}

func (d *dashboardWriter) warningPanel() {
	warnings := d.rep.Warnings
	if len(warnings) == 0 {
		return
	}
	d.printf(`<div class="panel">
<h2>Warnings (%d)</h2>
`, len(warnings))
	for _, warn := range warnings {
		d.printf(`<div class="warning-item">
<h4>%s</h4>
<p>%s</p>
<div class="meta">Row %d | Value: &quot;%s&quot;</div>
</div>
`, esc(warn.Column), esc(warn.Message), warn.Row, esc(warn.Value))
	}
	d.printf("</div>\n")
}

func (d *dashboardWriter) subjectPanel() {
	sv := d.rep.SubjectIDs
	if sv.Total() == 0 {
		return
	}
	d.printf(`<div class="panel">
<h2>Subject ID Validation Issues (%d)</h2>
<p style="color: #666;">Subject IDs should be initials only (e.g., "JD", "J.D.", "J.D.S"). Full names and "unknown" values are not allowed.</p>
<p><strong>%d</strong> unknown values, <strong>%d</strong> full names, <strong>%d</strong> invalid format</p>
`, sv.Total(), sv.UnknownCount, sv.NameCount, sv.InvalidCount)

	if len(sv.Examples) > 0 {
		d.printf(`<h3>Examples of Issues Found</h3>
`)
		for _, ex := range sv.Examples {
			d.printf(`<div class="error-item"><strong>Row %d:</strong> &quot;%s&quot; <span style="color: #666;">- %s</span></div>
`, ex.Row, esc(ex.Value), esc(ex.Message))
		}
	}

	d.printf(`<div class="recommendations">
<h3>How to Fix Subject ID Issues</h3>
<ul>
<li>Replace "unknown" with actual initials (e.g., "JD")</li>
<li>Convert full names to initials (e.g., "John Doe" becomes "JD")</li>
<li>Use letters only, 1-4 characters, optional periods</li>
</ul>
</div>
</div>
`)
}

func (d *dashboardWriter) successPanel() {
	d.printf(`<div class="panel" style="background: #f0fff4; border: 1px solid #9ae6b4;">
<h2 style="color: #22543d;">Validation Passed!</h2>
<p style="color: #22543d;">Your CSV file meets all WADEPS requirements and is ready for submission.</p>
</div>
`)
}

func (d *dashboardWriter) recommendationsPanel() {
	d.printf(`<div class="recommendations">
<h3>Recommendations</h3>
<ul>
`)
	for _, r := range recommendations(d.rep) {
		d.printf("<li>%s</li>\n", esc(r))
	}
	d.printf("</ul>\n</div>\n")
}
