// Package search turns engine descriptors and a query into outbound search URLs.
package search

import (
	"errors"
	"net/url"
	"strings"

	"github.com/tldr-it-stepankutaj/searchkit/internal/engines"
)

// ErrMalformedDescriptor is returned for a descriptor with neither query_param nor custom_url.
var ErrMalformedDescriptor = errors.New("descriptor has neither query_param nor custom_url")

// EncodeQuery percent-encodes q for a URL query component. Spaces become '+'.
func EncodeQuery(q string) string {
	return url.QueryEscape(q)
}

// NormalizeQuery trims surrounding whitespace. Build itself never trims.
func NormalizeQuery(q string) string {
	return strings.TrimSpace(q)
}

// Build returns the search URL for one descriptor. A custom_url template wins over
// base_url/query_param; every literal {query} in it is replaced by the encoded query.
func Build(d engines.Descriptor, query string) (string, error) {
	encoded := EncodeQuery(query)

	if d.IsTemplate() {
		return strings.ReplaceAll(d.CustomURL, engines.Placeholder, encoded), nil
	}
	if d.QueryParam == "" {
		return "", ErrMalformedDescriptor
	}

	sep := "?"
	if strings.Contains(d.BaseURL, "?") {
		sep = "&"
	}
	return d.BaseURL + sep + d.QueryParam + "=" + encoded, nil
}
