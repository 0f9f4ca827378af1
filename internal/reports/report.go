package reports

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tldr-it-stepankutaj/searchkit/internal/search"
)

// Report is the rendered view of one search run.
type Report struct {
	Title      string          `json:"title"`
	Query      string          `json:"query"`
	Results    []search.Result `json:"results"`
	Failures   []Failure       `json:"failures,omitempty"`
	Statistics Statistics      `json:"statistics"`
	Metadata   Metadata        `json:"metadata"`
}

// Failure is an engine whose URL could not be built.
type Failure struct {
	Engine string `json:"engine"`
	Error  string `json:"error"`
}

// Statistics contains report statistics.
type Statistics struct {
	TotalEngines   int `json:"total_engines"`
	EnabledEngines int `json:"enabled_engines"`
	Rendered       int `json:"rendered"`
	Failed         int `json:"failed"`
}

// Metadata contains report metadata.
type Metadata struct {
	RunID           string    `json:"run_id"`
	GeneratedAt     time.Time `json:"generated_at"`
	GeneratedBy     string    `json:"generated_by"`
	ToolVersion     string    `json:"tool_version"`
	ReportFormat    string    `json:"report_format"`
	BulkOpenDelayMS int64     `json:"bulk_open_delay_ms"`
}

// Builder helps construct reports.
type Builder struct {
	report *Report
	stats  *search.Stats
}

// NewBuilder creates a new report builder.
func NewBuilder() *Builder {
	return &Builder{
		report: &Report{
			Results:  make([]search.Result, 0),
			Failures: make([]Failure, 0),
		},
	}
}

// SetTitle sets the report title.
func (b *Builder) SetTitle(title string) *Builder {
	b.report.Title = title
	return b
}

// SetQuery sets the search terms the URLs were built for.
func (b *Builder) SetQuery(q string) *Builder {
	b.report.Query = q
	return b
}

// AddResult appends a result, keeping insertion order.
func (b *Builder) AddResult(r search.Result) *Builder {
	b.report.Results = append(b.report.Results, r)
	return b
}

// AddFailure records an engine that could not be built.
func (b *Builder) AddFailure(engine string, err error) *Builder {
	b.report.Failures = append(b.report.Failures, Failure{Engine: engine, Error: err.Error()})
	return b
}

// SetStats sets registry-level counts. Without it, counts are derived from the added results.
func (b *Builder) SetStats(s search.Stats) *Builder {
	b.stats = &s
	return b
}

// SetMetadata sets the report metadata.
func (b *Builder) SetMetadata(meta Metadata) *Builder {
	b.report.Metadata = meta
	return b
}

// Build finalizes and returns the report.
func (b *Builder) Build() *Report {
	r := b.report

	if b.stats != nil {
		r.Statistics = Statistics{
			TotalEngines:   b.stats.Total,
			EnabledEngines: b.stats.Enabled,
		}
	} else {
		r.Statistics.TotalEngines = len(r.Results) + len(r.Failures)
		for _, res := range r.Results {
			if res.Enabled {
				r.Statistics.EnabledEngines++
			}
		}
	}
	r.Statistics.Rendered = len(r.Results)
	r.Statistics.Failed = len(r.Failures)

	if r.Title == "" {
		r.Title = fmt.Sprintf("Search: %s", r.Query)
	}
	if r.Metadata.RunID == "" {
		r.Metadata.RunID = uuid.NewString()
	}
	if r.Metadata.GeneratedAt.IsZero() {
		r.Metadata.GeneratedAt = time.Now()
	}
	if r.Metadata.GeneratedBy == "" {
		r.Metadata.GeneratedBy = "Searchkit"
	}

	return r
}

// EnabledResults returns the results that take part in bulk-open actions.
func (r *Report) EnabledResults() []search.Result {
	out := make([]search.Result, 0, len(r.Results))
	for _, res := range r.Results {
		if res.Enabled {
			out = append(out, res)
		}
	}
	return out
}

// Export writes the report in the given format (html, md or json).
func (r *Report) Export(format, path string) error {
	switch strings.ToLower(format) {
	case "json":
		return r.ExportJSON(path)
	case "md", "markdown":
		return r.ExportMarkdown(path)
	case "html", "":
		return r.ExportHTML(path)
	default:
		return fmt.Errorf("unsupported report format %q", format)
	}
}

// Extension returns the file extension used for a report format.
func Extension(format string) string {
	switch strings.ToLower(format) {
	case "json":
		return "json"
	case "md", "markdown":
		return "md"
	default:
		return "html"
	}
}

// ExportJSON exports the report as JSON.
func (r *Report) ExportJSON(path string) error {
	return writeAtomic(path, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	})
}

// writeAtomic renders into a temp file next to path and renames it into place,
// so a failed export never leaves a partial report behind.
func writeAtomic(path string, render func(w io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".searchkit-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	w := bufio.NewWriter(tmp)
	if err = render(w); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	if err = w.Flush(); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err = tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move report into place: %w", err)
	}
	return nil
}
