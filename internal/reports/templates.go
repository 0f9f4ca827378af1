package reports

import (
	htmltemplate "html/template"
	"io"
	"strconv"
	"strings"
	texttemplate "text/template"
)

// BulkOpenSizes are the "open first N enabled" actions offered in HTML reports.
// A zero entry means all enabled engines.
var BulkOpenSizes = []int{5, 10, 0}

var funcMap = map[string]any{
	"Inc":  func(i int) int { return i + 1 },
	"Date": func() string { return "2006-01-02 15:04:05" },
	"Code": inlineCode,
}

// inlineCode renders s as a Markdown code span. The fence is one backtick longer
// than the longest backtick run in s.
func inlineCode(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	longest, run := 0, 0
	for _, c := range s {
		if c != '`' {
			run = 0
			continue
		}
		run++
		if run > longest {
			longest = run
		}
	}
	if longest == 0 {
		return "`" + s + "`"
	}
	fence := strings.Repeat("`", longest+1)
	return fence + " " + s + " " + fence
}

const markdownTemplate = `# {{ .Title }}

**Query:** {{ Code .Query }}
**Generated:** {{ .Metadata.GeneratedAt.Format Date }}
**Run:** {{ .Metadata.RunID }}

| Metric | Value |
|--------|-------|
| Enabled engines | {{ .Statistics.EnabledEngines }} |
| Total engines | {{ .Statistics.TotalEngines }} |
| Listed | {{ .Statistics.Rendered }} |
{{- if .Failures }}
| Failed | {{ .Statistics.Failed }} |
{{- end }}

## Search links
{{ range $i, $r := .Results }}
{{ Inc $i }}. {{ if $r.Enabled }}[{{ $r.Name }}]({{ $r.URL }}){{ else }}~~{{ $r.Name }}~~ (disabled) <{{ $r.URL }}>{{ end }}
{{- end }}
{{ if .Failures }}
## Engines that could not be built
{{ range .Failures }}
- **{{ .Engine }}**: {{ .Error }}
{{- end }}
{{ end }}
---
*Report generated by {{ .Metadata.GeneratedBy }}{{ if .Metadata.ToolVersion }} {{ .Metadata.ToolVersion }}{{ end }}*
`

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{ .Title }}</title>
    <style>
        :root {
            --accent: #3498db;
            --enabled: #28a745;
            --disabled: #adb5bd;
            --failed: #dc3545;
        }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Oxygen, Ubuntu, sans-serif;
            line-height: 1.6;
            color: #333;
            max-width: 1200px;
            margin: 0 auto;
            padding: 20px;
            background: #f5f5f5;
        }
        .container {
            background: white;
            padding: 40px;
            border-radius: 8px;
            box-shadow: 0 2px 4px rgba(0,0,0,0.1);
        }
        h1 { color: #2c3e50; border-bottom: 3px solid var(--accent); padding-bottom: 10px; }
        h2 { color: #34495e; border-bottom: 1px solid #bdc3c7; padding-bottom: 5px; margin-top: 30px; }
        .meta { color: #7f8c8d; font-size: 0.9em; margin-bottom: 20px; }
        .query { background: #ecf0f1; padding: 15px 20px; border-radius: 5px; font-size: 1.2em; word-break: break-word; }
        .stats { display: flex; gap: 20px; flex-wrap: wrap; margin: 20px 0; }
        .stat-card {
            background: white;
            border: 1px solid #ddd;
            border-left: 4px solid var(--accent);
            border-radius: 5px;
            padding: 15px;
            min-width: 120px;
            text-align: center;
        }
        .stat-card.enabled { border-left-color: var(--enabled); }
        .stat-card.failed { border-left-color: var(--failed); }
        .stat-value { font-size: 2em; font-weight: bold; }
        .stat-label { color: #7f8c8d; font-size: 0.9em; }
        .actions { display: flex; gap: 10px; flex-wrap: wrap; margin: 20px 0; }
        .actions button {
            background: var(--accent);
            color: white;
            border: none;
            border-radius: 5px;
            padding: 10px 18px;
            font-size: 1em;
            cursor: pointer;
        }
        .actions button:hover { filter: brightness(0.9); }
        .actions .hint { color: #7f8c8d; font-size: 0.85em; align-self: center; }
        .engines { display: grid; grid-template-columns: repeat(auto-fill, minmax(260px, 1fr)); gap: 15px; }
        .engine {
            border: 1px solid #ddd;
            border-left: 4px solid var(--enabled);
            border-radius: 5px;
            padding: 12px 15px;
            transition: transform 0.2s, box-shadow 0.2s;
        }
        .engine:hover { transform: translateY(-2px); box-shadow: 0 4px 8px rgba(0,0,0,0.15); }
        .engine.disabled { border-left-color: var(--disabled); opacity: 0.55; }
        .engine a.name { font-weight: bold; color: #2c3e50; text-decoration: none; }
        .engine .url { display: block; color: #7f8c8d; font-size: 0.8em; word-break: break-all; margin-top: 4px; }
        .badge { display: inline-block; padding: 1px 8px; border-radius: 3px; font-size: 0.75em; background: var(--disabled); color: white; margin-left: 6px; }
        .failures { background: #fdecea; padding: 15px 20px; border-radius: 5px; }
        .failures li { color: var(--failed); }
        .footer { text-align: center; color: #7f8c8d; margin-top: 40px; padding-top: 20px; border-top: 1px solid #ddd; }
    </style>
</head>
<body data-delay="{{ .Metadata.BulkOpenDelayMS }}">
    <div class="container">
        <h1>{{ .Title }}</h1>
        <div class="meta">
            Generated: {{ .Metadata.GeneratedAt.Format Date }} |
            Tool: {{ .Metadata.GeneratedBy }}{{ if .Metadata.ToolVersion }} {{ .Metadata.ToolVersion }}{{ end }} |
            Run: {{ .Metadata.RunID }}
        </div>

        <div class="query">{{ .Query }}</div>

        <div class="stats">
            <div class="stat-card enabled">
                <div class="stat-value">{{ .Statistics.EnabledEngines }}</div>
                <div class="stat-label">Enabled Engines</div>
            </div>
            <div class="stat-card">
                <div class="stat-value">{{ .Statistics.TotalEngines }}</div>
                <div class="stat-label">Total Engines</div>
            </div>
            {{ if .Failures }}
            <div class="stat-card failed">
                <div class="stat-value">{{ .Statistics.Failed }}</div>
                <div class="stat-label">Failed</div>
            </div>
            {{ end }}
        </div>

        <div class="actions">
            {{ range .BulkActions }}
            <button type="button" onclick="openEnabled({{ .Count }})">{{ .Label }}</button>
            {{ end }}
            <span class="hint">Allow pop-ups for this page if only one tab opens.</span>
        </div>

        <h2>Search Links</h2>
        <div class="engines">
            {{ range .Results }}
            <div class="engine{{ if not .Enabled }} disabled{{ end }}" data-url="{{ .URL }}" data-enabled="{{ .Enabled }}">
                <a class="name" href="{{ .URL }}" target="_blank" rel="noopener noreferrer">{{ .Name }}</a>{{ if not .Enabled }}<span class="badge">disabled</span>{{ end }}
                <span class="url">{{ .URL }}</span>
            </div>
            {{ end }}
        </div>

        {{ if .Failures }}
        <h2>Engines That Could Not Be Built</h2>
        <div class="failures">
            <ul>{{ range .Failures }}<li><strong>{{ .Engine }}:</strong> {{ .Error }}</li>{{ end }}</ul>
        </div>
        {{ end }}

        <div class="footer">
            <p>Report generated by {{ .Metadata.GeneratedBy }}</p>
        </div>
    </div>
    <script>
        function openEnabled(limit) {
            var cards = document.querySelectorAll('.engine[data-enabled="true"]');
            var delay = parseInt(document.body.getAttribute('data-delay'), 10) || 0;
            var n = limit > 0 ? Math.min(limit, cards.length) : cards.length;
            for (var i = 0; i < n; i++) {
                (function (url, wait) {
                    setTimeout(function () { window.open(url, '_blank', 'noopener'); }, wait);
                })(cards[i].getAttribute('data-url'), i * delay);
            }
        }
    </script>
</body>
</html>
`

// BulkAction is one "open first N enabled" button.
type BulkAction struct {
	Count int
	Label string
}

// BulkActions returns the bulk-open buttons in display order.
func (r *Report) BulkActions() []BulkAction {
	out := make([]BulkAction, 0, len(BulkOpenSizes))
	for _, n := range BulkOpenSizes {
		if n == 0 {
			out = append(out, BulkAction{Count: 0, Label: "Open all enabled (" + strconv.Itoa(len(r.EnabledResults())) + ")"})
			continue
		}
		out = append(out, BulkAction{Count: n, Label: "Open top " + strconv.Itoa(n)})
	}
	return out
}

// ExportMarkdown exports the report as Markdown.
func (r *Report) ExportMarkdown(path string) error {
	t, err := texttemplate.New("report").Funcs(funcMap).Parse(markdownTemplate)
	if err != nil {
		return err
	}
	return writeAtomic(path, func(w io.Writer) error {
		return t.Execute(w, r)
	})
}

// ExportHTML exports the report as a self-contained HTML page.
func (r *Report) ExportHTML(path string) error {
	t, err := htmltemplate.New("report").Funcs(funcMap).Parse(htmlTemplate)
	if err != nil {
		return err
	}
	return writeAtomic(path, func(w io.Writer) error {
		return t.Execute(w, r)
	})
}
