package engines

import "fmt"

// Registry stores engine descriptors in definition order. It has no mutation API;
// a Registry only exists for descriptors that passed Validate.
type Registry struct {
	engines  []Descriptor
	warnings []string
}

// NewRegistry validates descriptors and returns an immutable registry.
func NewRegistry(descriptors []Descriptor) (*Registry, error) {
	if err := Validate(descriptors); err != nil {
		return nil, err
	}

	r := &Registry{
		engines: make([]Descriptor, len(descriptors)),
	}
	copy(r.engines, descriptors)
	for _, d := range r.engines {
		if d.IsTemplate() && !d.HasPlaceholder() {
			r.warnings = append(r.warnings, fmt.Sprintf("engine %q: custom_url has no %s placeholder, the query will not be inserted", d.Name, Placeholder))
		}
	}
	return r, nil
}

// All returns a copy of the descriptors in definition order.
func (r *Registry) All() []Descriptor {
	out := make([]Descriptor, len(r.engines))
	copy(out, r.engines)
	return out
}

// Len returns the number of engines.
func (r *Registry) Len() int { return len(r.engines) }

// EnabledCount returns how many engines are enabled.
func (r *Registry) EnabledCount() int {
	n := 0
	for _, d := range r.engines {
		if d.Enabled {
			n++
		}
	}
	return n
}

// Warnings lists non-fatal findings, such as templates without a placeholder.
func (r *Registry) Warnings() []string {
	return append([]string(nil), r.warnings...)
}
