// Package console prints the styled terminal output of a search run.
package console

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/tldr-it-stepankutaj/searchkit/internal/engines"
	"github.com/tldr-it-stepankutaj/searchkit/internal/search"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	disabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// Printer writes run output to w.
type Printer struct {
	w io.Writer
}

// New returns a printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Banner prints the tool header.
func (p *Printer) Banner(version string) {
	fmt.Fprintln(p.w, titleStyle.Render("Searchkit "+version))
	fmt.Fprintln(p.w, mutedStyle.Render("Multi-engine search link builder"))
	fmt.Fprintln(p.w)
}

// Query prints the search terms and engine counts before building.
func (p *Printer) Query(q string, reg *engines.Registry) {
	fmt.Fprintf(p.w, "[*] Search terms: %s\n", q)
	fmt.Fprintf(p.w, "[*] Engines: %d enabled of %d\n", reg.EnabledCount(), reg.Len())
}

// Engine prints one per-engine status line.
func (p *Printer) Engine(d engines.Descriptor, r search.Result, err error) {
	switch {
	case err != nil:
		fmt.Fprintf(p.w, "  %s %s: %v\n", errorStyle.Render("✗"), d.Name, err)
	case !d.Enabled:
		fmt.Fprintf(p.w, "  %s %s\n", disabledStyle.Render("–"), disabledStyle.Render(d.Name+" (disabled)"))
	default:
		fmt.Fprintf(p.w, "  %s %-20s %s\n", okStyle.Render("✓"), d.Name, mutedStyle.Render(r.URL))
	}
}

// Summary prints the outcome of a run.
func (p *Printer) Summary(out search.Outcome, path string) {
	fmt.Fprintf(p.w, "[+] Report generated: %s\n", path)
	fmt.Fprintf(p.w, "    Enabled engines: %d, Total: %d, Listed: %d\n", out.Stats.Enabled, out.Stats.Total, out.Stats.Rendered)
	fmt.Fprintf(p.w, "    Links ready to open: %d\n", len(out.EnabledResults()))
	if out.Stats.Failed > 0 {
		fmt.Fprintln(p.w, errorStyle.Render(fmt.Sprintf("[!] %d engine(s) could not be built", out.Stats.Failed)))
	}
}

// Warn prints a non-fatal warning line.
func (p *Printer) Warn(msg string) {
	fmt.Fprintln(p.w, errorStyle.Render("[!] "+msg))
}

// EngineList prints the registry in order, one engine per line.
func (p *Printer) EngineList(reg *engines.Registry) {
	for i, d := range reg.All() {
		state := okStyle.Render("enabled ")
		if !d.Enabled {
			state = disabledStyle.Render("disabled")
		}
		target := d.BaseURL + " (" + d.QueryParam + ")"
		if d.IsTemplate() {
			target = d.CustomURL
		}
		fmt.Fprintf(p.w, "%3d. %-20s %s %-8s %s\n", i+1, d.Name, state, d.Kind(), mutedStyle.Render(target))
	}
	fmt.Fprintf(p.w, "\n%d engines, %d enabled\n", reg.Len(), reg.EnabledCount())
}
