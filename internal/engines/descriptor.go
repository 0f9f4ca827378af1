package engines

import "strings"

// Placeholder is the literal token replaced by the encoded query in custom URL templates.
const Placeholder = "{query}"

// Descriptor describes one search engine.
type Descriptor struct {
	Name       string
	BaseURL    string
	QueryParam string
	CustomURL  string
	Enabled    bool
}

// IsTemplate reports whether the descriptor builds its URL from CustomURL.
func (d Descriptor) IsTemplate() bool {
	return d.CustomURL != ""
}

// HasPlaceholder reports whether CustomURL contains the {query} token.
func (d Descriptor) HasPlaceholder() bool {
	return strings.Contains(d.CustomURL, Placeholder)
}

// Kind returns "template" or "param" depending on the build path.
func (d Descriptor) Kind() string {
	if d.IsTemplate() {
		return "template"
	}
	return "param"
}
