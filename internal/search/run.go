package search

import (
	"fmt"

	"github.com/tldr-it-stepankutaj/searchkit/internal/engines"
)

// Result is one built search URL.
type Result struct {
	Name    string `json:"name"`
	URL     string `json:"url"`
	Enabled bool   `json:"enabled"`
}

// BuildError records an engine whose URL could not be built.
type BuildError struct {
	Engine string
	Err    error
}

func (e BuildError) Error() string {
	return fmt.Sprintf("engine %q: %v", e.Engine, e.Err)
}

func (e BuildError) Unwrap() error { return e.Err }

// Stats are aggregate counts over a run. Total and Enabled describe the registry
// and do not depend on which results are rendered.
type Stats struct {
	Total    int `json:"total"`
	Enabled  int `json:"enabled"`
	Rendered int `json:"rendered"`
	Failed   int `json:"failed"`
}

// Options tune a run.
type Options struct {
	// IncludeDisabled keeps disabled engines in Results.
	IncludeDisabled bool
	// OnResult, if set, is called after each engine in registry order; err is nil on success.
	OnResult func(d engines.Descriptor, r Result, err error)
}

// Outcome is the full output of a run.
type Outcome struct {
	Query    string       `json:"query"`
	Results  []Result     `json:"results"`
	Failures []BuildError `json:"-"`
	Stats    Stats        `json:"stats"`
}

// Run builds a URL for every engine in registry order. A failing engine is recorded
// in Failures and the rest of the registry is still processed.
func Run(reg *engines.Registry, query string, opts Options) Outcome {
	return run(reg.All(), query, opts)
}

func run(all []engines.Descriptor, query string, opts Options) Outcome {
	out := Outcome{
		Query:   query,
		Results: make([]Result, 0, len(all)),
		Stats:   Stats{Total: len(all)},
	}

	for _, d := range all {
		if d.Enabled {
			out.Stats.Enabled++
		}
		u, err := Build(d, query)
		r := Result{Name: d.Name, URL: u, Enabled: d.Enabled}
		if opts.OnResult != nil {
			opts.OnResult(d, r, err)
		}
		if err != nil {
			out.Failures = append(out.Failures, BuildError{Engine: d.Name, Err: err})
			continue
		}
		if !d.Enabled && !opts.IncludeDisabled {
			continue
		}
		out.Results = append(out.Results, r)
	}

	out.Stats.Rendered = len(out.Results)
	out.Stats.Failed = len(out.Failures)
	return out
}

// EnabledResults returns the enabled results in order.
func (o Outcome) EnabledResults() []Result {
	out := make([]Result, 0, len(o.Results))
	for _, r := range o.Results {
		if r.Enabled {
			out = append(out, r)
		}
	}
	return out
}
