package search

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/tldr-it-stepankutaj/searchkit/internal/engines"
)

func TestBuild_Examples(t *testing.T) {
	tests := []struct {
		name     string
		desc     engines.Descriptor
		query    string
		expected string
	}{
		{
			name:     "ParameterPath_SpaceBecomesPlus",
			desc:     engines.Descriptor{Name: "Google", BaseURL: "https://www.google.com/search", QueryParam: "q"},
			query:    "hello world",
			expected: "https://www.google.com/search?q=hello+world",
		},
		{
			name:     "TemplatePath_PathSegment",
			desc:     engines.Descriptor{Name: "Maps", CustomURL: "https://www.google.com/maps/search/{query}"},
			query:    "coffee shops",
			expected: "https://www.google.com/maps/search/coffee+shops",
		},
		{
			name: "TemplateWinsOverParameter",
			desc: engines.Descriptor{
				Name:       "Shopping",
				BaseURL:    "https://www.google.com/search",
				QueryParam: "q",
				CustomURL:  "https://www.google.com/search?tbm=shop&q={query}",
			},
			query:    "shoes",
			expected: "https://www.google.com/search?tbm=shop&q=shoes",
		},
		{
			name:     "BaseWithExistingQuery_UsesAmpersand",
			desc:     engines.Descriptor{Name: "Images", BaseURL: "https://www.google.com/search?tbm=isch", QueryParam: "q"},
			query:    "cats",
			expected: "https://www.google.com/search?tbm=isch&q=cats",
		},
		{
			name:     "BaseEndingInSlash_UsesQuestionMark",
			desc:     engines.Descriptor{Name: "DDG", BaseURL: "https://duckduckgo.com/", QueryParam: "q"},
			query:    "go",
			expected: "https://duckduckgo.com/?q=go",
		},
		{
			name:     "ReservedCharacters_AreEncoded",
			desc:     engines.Descriptor{Name: "Google", BaseURL: "https://www.google.com/search", QueryParam: "q"},
			query:    "a=b&c#d?e%f",
			expected: "https://www.google.com/search?q=a%3Db%26c%23d%3Fe%25f",
		},
		{
			name:     "NonASCII_IsPercentEncoded",
			desc:     engines.Descriptor{Name: "Wiki", BaseURL: "https://en.wikipedia.org/w/index.php", QueryParam: "search"},
			query:    "café",
			expected: "https://en.wikipedia.org/w/index.php?search=caf%C3%A9",
		},
		{
			name:     "TemplateWithoutPlaceholder_PassesThrough",
			desc:     engines.Descriptor{Name: "Static", CustomURL: "https://example.com/home"},
			query:    "ignored",
			expected: "https://example.com/home",
		},
		{
			name:     "TemplateWithTwoPlaceholders_ReplacesBoth",
			desc:     engines.Descriptor{Name: "Twice", CustomURL: "https://example.com/{query}?again={query}"},
			query:    "x y",
			expected: "https://example.com/x+y?again=x+y",
		},
		{
			name:     "WhitespaceIsNotTrimmedByBuilder",
			desc:     engines.Descriptor{Name: "Google", BaseURL: "https://www.google.com/search", QueryParam: "q"},
			query:    " padded ",
			expected: "https://www.google.com/search?q=+padded+",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Build(tt.desc, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestBuild_SpecialQueryDoesNotLeakIntoURLStructure(t *testing.T) {
	d := engines.Descriptor{Name: "Google", BaseURL: "https://www.google.com/search", QueryParam: "q"}

	got, err := Build(d, "C++ & Rust")
	require.NoError(t, err)
	assert.Equal(t, "https://www.google.com/search?q=C%2B%2B+%26+Rust", got)

	parsed, err := url.Parse(got)
	require.NoError(t, err)
	values := parsed.Query()
	assert.Len(t, values, 1, "Only the engine's own parameter should be present")
	assert.Equal(t, "C++ & Rust", values.Get("q"))
}

func TestBuild_MalformedDescriptor(t *testing.T) {
	_, err := Build(engines.Descriptor{Name: "Broken", BaseURL: "https://example.com"}, "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedDescriptor))
	assert.NotContains(t, err.Error(), "Broken", "BuildError adds the engine name")
}

func TestBuild_IgnoresEnabledFlag(t *testing.T) {
	d := engines.Descriptor{Name: "Off", BaseURL: "https://example.com/s", QueryParam: "q", Enabled: false}
	got, err := Build(d, "term")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/s?q=term", got)
}

func TestNormalizeQuery(t *testing.T) {
	assert.Equal(t, "hello world", NormalizeQuery("  hello world \n\t"))
	assert.Equal(t, "", NormalizeQuery("   "))
}

func TestEncodeQuery_RoundTripEdgeCases(t *testing.T) {
	inputs := []string{"", "&", "=", "#", "%", "%20", "a+b", "🚀 launch", "  spaced  ", "日本語", "100% & more=less#frag?x"}
	for _, in := range inputs {
		decoded, err := url.QueryUnescape(EncodeQuery(in))
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, in, decoded, "input %q", in)
	}
}

// Property-based tests using rapid

var encodedAlphabet = regexp.MustCompile(`^[A-Za-z0-9\-_.~+%]*$`)

// TestEncodeQuery_PropertyBased_RoundTrip checks decode(encode(x)) == x and that encoding is stable.
func TestEncodeQuery_PropertyBased_RoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		q := rapid.String().Draw(t, "query")

		encoded := EncodeQuery(q)
		assert.Equal(t, encoded, EncodeQuery(q), "Encoding should be deterministic")
		assert.Regexp(t, encodedAlphabet, encoded, "Encoded query should only contain unreserved characters, '+' and escapes")

		decoded, err := url.QueryUnescape(encoded)
		assert.NoError(t, err)
		assert.Equal(t, q, decoded, "Decoding should restore the original query")
	})
}

// TestBuild_PropertyBased_Separator checks the '?' versus '&' rule of the parameter path.
func TestBuild_PropertyBased_Separator(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		path := rapid.StringMatching(`[a-z0-9/]{0,16}`).Draw(t, "path")
		base := "https://example.com/" + path
		hasQuery := rapid.Bool().Draw(t, "hasQuery")
		if hasQuery {
			base += "?" + rapid.StringMatching(`[a-z]{1,6}=[a-z0-9]{0,6}`).Draw(t, "fixed")
		}
		param := rapid.StringMatching(`[a-z_]{1,8}`).Draw(t, "param")
		q := rapid.String().Draw(t, "query")

		got, err := Build(engines.Descriptor{Name: "E", BaseURL: base, QueryParam: param}, q)
		assert.NoError(t, err)

		sep := "?"
		if hasQuery {
			sep = "&"
		}
		assert.Equal(t, base+sep+param+"="+EncodeQuery(q), got)
		assert.Equal(t, 1, strings.Count(got, "?"), "URL should have exactly one '?'")
	})
}

// TestBuild_PropertyBased_TemplateSubstitution checks that only the placeholder changes.
func TestBuild_PropertyBased_TemplateSubstitution(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		prefix := "https://example.com/" + rapid.StringMatching(`[a-z0-9/?=&]{0,20}`).Draw(t, "prefix")
		suffix := rapid.StringMatching(`[a-z0-9/?=&#]{0,20}`).Draw(t, "suffix")
		q := rapid.String().Draw(t, "query")

		d := engines.Descriptor{
			Name:       "T",
			BaseURL:    "https://ignored.example.com/",
			QueryParam: "ignored",
			CustomURL:  prefix + engines.Placeholder + suffix,
		}
		got, err := Build(d, q)
		assert.NoError(t, err)
		assert.Equal(t, prefix+EncodeQuery(q)+suffix, got)
	})
}
