package console

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tldr-it-stepankutaj/searchkit/internal/engines"
	"github.com/tldr-it-stepankutaj/searchkit/internal/search"
)

func TestPrinter_EngineLines(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	p.Engine(engines.Descriptor{Name: "Google", Enabled: true}, search.Result{URL: "https://www.google.com/search?q=go"}, nil)
	p.Engine(engines.Descriptor{Name: "Yahoo"}, search.Result{URL: "https://search.yahoo.com/search?p=go"}, nil)
	p.Engine(engines.Descriptor{Name: "Broken"}, search.Result{}, search.ErrMalformedDescriptor)

	out := buf.String()
	assert.Contains(t, out, "Google")
	assert.Contains(t, out, "https://www.google.com/search?q=go")
	assert.Contains(t, out, "Yahoo (disabled)")
	assert.Contains(t, out, "Broken: "+search.ErrMalformedDescriptor.Error())
}

func TestPrinter_SummaryAndList(t *testing.T) {
	reg, err := engines.NewRegistry([]engines.Descriptor{
		{Name: "Google", BaseURL: "https://www.google.com/search", QueryParam: "q", Enabled: true},
		{Name: "Maps", CustomURL: "https://www.google.com/maps/search/{query}"},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	p := New(&buf)
	p.Query("coffee", reg)
	p.EngineList(reg)
	p.Summary(search.Outcome{
		Results: []search.Result{
			{Name: "Google", URL: "https://www.google.com/search?q=coffee", Enabled: true},
			{Name: "Yahoo", URL: "https://search.yahoo.com/search?p=coffee"},
		},
		Stats: search.Stats{Total: 2, Enabled: 1, Rendered: 2, Failed: 1},
	}, "/tmp/search.html")

	out := buf.String()
	assert.Contains(t, out, "[*] Search terms: coffee")
	assert.Contains(t, out, "[*] Engines: 1 enabled of 2")
	assert.Contains(t, out, "template")
	assert.Contains(t, out, "https://www.google.com/maps/search/{query}")
	assert.Contains(t, out, "2 engines, 1 enabled")
	assert.Contains(t, out, "[+] Report generated: /tmp/search.html")
	assert.Contains(t, out, "Links ready to open: 1")
	assert.Contains(t, out, "1 engine(s) could not be built")
}
