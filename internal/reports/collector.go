package reports

import (
	"time"

	"github.com/tldr-it-stepankutaj/searchkit/internal/search"
	"github.com/tldr-it-stepankutaj/searchkit/pkg/version"
)

// CollectOptions control how a search outcome becomes a report.
type CollectOptions struct {
	Title         string
	Format        string
	BulkOpenDelay time.Duration
	GeneratedAt   time.Time
}

// Collector turns search outcomes into reports.
type Collector struct {
	opts CollectOptions
}

// NewCollector creates a new collector.
func NewCollector(opts CollectOptions) *Collector {
	return &Collector{opts: opts}
}

// Collect builds a report from one search run, keeping result order.
func (c *Collector) Collect(out search.Outcome) *Report {
	builder := NewBuilder().
		SetTitle(c.opts.Title).
		SetQuery(out.Query).
		SetStats(out.Stats)

	for _, r := range out.Results {
		builder.AddResult(r)
	}
	for _, f := range out.Failures {
		builder.AddFailure(f.Engine, f.Err)
	}

	builder.SetMetadata(Metadata{
		GeneratedAt:     c.opts.GeneratedAt,
		GeneratedBy:     "Searchkit",
		ToolVersion:     version.Version,
		ReportFormat:    Extension(c.opts.Format),
		BulkOpenDelayMS: c.opts.BulkOpenDelay.Milliseconds(),
	})

	return builder.Build()
}
