// Package report renders batch extraction results as JSON, HTML and
// markdown.
package report

import (
	"encoding/json"
	"html/template"
	"strings"
	"time"

	"github.com/harvestlabs/webharvest"
	"github.com/harvestlabs/webharvest/fs"
)

// WriteResults writes the batch results to path as a JSON array, one
// entry per input URL in input order.
func WriteResults(path string, results []webharvest.Result) error {
	raw, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	return fs.WriteFileAtomic(path, raw, 0644)
}

// reportTemplate renders the batch summary page. Failures are listed
// before successes so problems are visible without scrolling.
var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Harvest Report</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ccc; padding: 0.4em 0.8em; text-align: left; }
tr.failed td { background: #fdd; }
.summary { margin-bottom: 1.5em; }
</style>
</head>
<body>
<h1>Harvest Report</h1>
<p class="summary">{{.GeneratedAt}} &mdash; {{.Succeeded}} succeeded, {{.Failed}} failed of {{.Total}} URLs.</p>
<table>
<tr><th>URL</th><th>Title</th><th>Source</th><th>Length</th><th>Images</th><th>Error</th></tr>
{{range .Rows}}<tr{{if .Err}} class="failed"{{end}}>
<td><a href="{{.URL}}">{{.URL}}</a></td>
<td>{{.Title}}</td><td>{{.Source}}</td><td>{{.Length}}</td><td>{{.Images}}</td><td>{{.Err}}</td>
</tr>
{{end}}</table>
</body>
</html>
`))

type reportRow struct {
	URL    string
	Title  string
	Source string
	Length int
	Images int
	Err    string
}

type reportData struct {
	GeneratedAt string
	Total       int
	Succeeded   int
	Failed      int
	Rows        []reportRow
}

// WriteHTMLReport writes an HTML summary of the batch results to path.
func WriteHTMLReport(path string, results []webharvest.Result) error {
	data := reportData{
		GeneratedAt: time.Now().Format("2006-01-02 15:04:05"),
		Total:       len(results),
	}

	var failed, succeeded []reportRow
	for _, r := range results {
		row := reportRow{URL: r.URL, Err: r.Err}
		if r.Document != nil {
			row.Title = r.Document.Title
			row.Source = string(r.Document.Source)
			row.Length = r.Document.ContentLength
			row.Images = r.Document.ImageCount
		}
		if r.Err != "" {
			failed = append(failed, row)
		} else {
			succeeded = append(succeeded, row)
		}
	}
	data.Failed = len(failed)
	data.Succeeded = len(succeeded)
	data.Rows = append(failed, succeeded...)

	var sb strings.Builder
	if err := reportTemplate.Execute(&sb, data); err != nil {
		return err
	}
	return fs.WriteFileAtomic(path, []byte(sb.String()), 0644)
}
