package engines

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"gopkg.in/yaml.v3"
)

// DefaultRegistryYAML is the built-in engine list shipped with the binary.
//
//go:embed default_engines.yaml
var DefaultRegistryYAML []byte

// registryFile is the on-disk shape of a YAML or JSON registry.
type registryFile struct {
	Engines []fileEngine `yaml:"engines" json:"engines"`
}

// fileEngine uses *bool so that an omitted "enabled" means enabled.
type fileEngine struct {
	Name       string `yaml:"name" json:"name"`
	BaseURL    string `yaml:"base_url,omitempty" json:"base_url,omitempty"`
	QueryParam string `yaml:"query_param,omitempty" json:"query_param,omitempty"`
	CustomURL  string `yaml:"custom_url,omitempty" json:"custom_url,omitempty"`
	Enabled    *bool  `yaml:"enabled,omitempty" json:"enabled,omitempty"`
}

// hclRegistryFile represents the top-level structure of an HCL registry for decoding.
type hclRegistryFile struct {
	Engines []*hclEngine `hcl:"engine,block"`
}

type hclEngine struct {
	Name       string `hcl:"name,label"`
	BaseURL    string `hcl:"base_url,optional"`
	QueryParam string `hcl:"query_param,optional"`
	CustomURL  string `hcl:"custom_url,optional"`
	Enabled    *bool  `hcl:"enabled,optional"`
}

// Default returns the registry built from the embedded engine list.
func Default() (*Registry, error) {
	descriptors, err := ParseYAML(DefaultRegistryYAML)
	if err != nil {
		return nil, fmt.Errorf("failed to parse built-in engines: %w", err)
	}
	return NewRegistry(descriptors)
}

// LoadFile loads and validates a registry. The format is chosen by extension:
// .yaml/.yml, .json or .hcl.
func LoadFile(path string) (*Registry, error) {
	var (
		descriptors []Descriptor
		err         error
	)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml", ".json":
		data, rerr := os.ReadFile(path)
		if rerr != nil {
			return nil, fmt.Errorf("failed to read engines file: %w", rerr)
		}
		if ext == ".json" {
			descriptors, err = ParseJSON(data)
		} else {
			descriptors, err = ParseYAML(data)
		}
	case ".hcl":
		descriptors, err = parseHCLFile(path)
	default:
		return nil, fmt.Errorf("unsupported engines file extension %q (use .yaml, .json or .hcl)", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse engines file %s: %w", path, err)
	}

	return NewRegistry(descriptors)
}

// ParseYAML decodes a YAML registry document without validating it.
func ParseYAML(data []byte) ([]Descriptor, error) {
	var f registryFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return f.descriptors(), nil
}

// ParseJSON decodes a JSON registry document without validating it.
func ParseJSON(data []byte) ([]Descriptor, error) {
	var f registryFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return f.descriptors(), nil
}

func parseHCLFile(path string) ([]Descriptor, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %w", diags)
	}

	var parsed hclRegistryFile
	diags = gohcl.DecodeBody(hclFile.Body, nil, &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %w", diags)
	}

	out := make([]Descriptor, 0, len(parsed.Engines))
	for _, e := range parsed.Engines {
		out = append(out, Descriptor{
			Name:       e.Name,
			BaseURL:    e.BaseURL,
			QueryParam: e.QueryParam,
			CustomURL:  e.CustomURL,
			Enabled:    e.Enabled == nil || *e.Enabled,
		})
	}
	return out, nil
}

func (f registryFile) descriptors() []Descriptor {
	out := make([]Descriptor, 0, len(f.Engines))
	for _, e := range f.Engines {
		out = append(out, Descriptor{
			Name:       e.Name,
			BaseURL:    e.BaseURL,
			QueryParam: e.QueryParam,
			CustomURL:  e.CustomURL,
			Enabled:    e.Enabled == nil || *e.Enabled,
		})
	}
	return out
}

// SaveFile writes the registry as YAML. Existing files are only replaced when force is set.
func SaveFile(r *Registry, path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f := registryFile{Engines: make([]fileEngine, 0, r.Len())}
	for _, d := range r.All() {
		enabled := d.Enabled
		f.Engines = append(f.Engines, fileEngine{
			Name:       d.Name,
			BaseURL:    d.BaseURL,
			QueryParam: d.QueryParam,
			CustomURL:  d.CustomURL,
			Enabled:    &enabled,
		})
	}

	data, err := yaml.Marshal(f)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
