package engines

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidationError describes one configuration defect of an engine descriptor.
type ValidationError struct {
	Engine  string
	Field   string
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("engine %q: %s: %s", e.Engine, e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d engine configuration errors:\n", len(e)))
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate checks every descriptor and returns all defects at once, or nil.
func Validate(descriptors []Descriptor) error {
	var errs ValidationErrors
	seen := make(map[string]int, len(descriptors))

	for i, d := range descriptors {
		name := strings.TrimSpace(d.Name)
		label := name
		if label == "" {
			label = fmt.Sprintf("#%d", i+1)
			errs = append(errs, ValidationError{Engine: label, Field: "name", Message: "cannot be empty"})
		} else if first, dup := seen[name]; dup {
			errs = append(errs, ValidationError{Engine: label, Field: "name", Message: fmt.Sprintf("duplicates engine #%d", first+1)})
		} else {
			seen[name] = i
		}

		if d.CustomURL == "" && d.QueryParam == "" {
			errs = append(errs, ValidationError{Engine: label, Field: "query_param", Message: "either query_param or custom_url is required"})
			continue
		}

		if d.IsTemplate() {
			probe := strings.ReplaceAll(d.CustomURL, Placeholder, "q")
			if !isAbsoluteURL(probe) {
				errs = append(errs, ValidationError{Engine: label, Field: "custom_url", Message: "must be an absolute http(s) URL"})
			}
			continue
		}

		if !isAbsoluteURL(d.BaseURL) {
			errs = append(errs, ValidationError{Engine: label, Field: "base_url", Message: "must be an absolute http(s) URL"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func isAbsoluteURL(raw string) bool {
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
