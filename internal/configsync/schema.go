package configsync

import (
	"fmt"
	"path/filepath"
	"reflect"

	"gopkg.in/yaml.v3"
)

// Metadata identifies a rule document. Description is informational only
// and never participates in drift detection.
type Metadata struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Document is one on-disk declarative rule. One file per document,
// keyed by (kind, name).
type Document struct {
	APIVersion string         `yaml:"apiVersion" json:"apiVersion"`
	Kind       string         `yaml:"kind" json:"kind"`
	Metadata   Metadata       `yaml:"metadata" json:"metadata"`
	Spec       map[string]any `yaml:"spec" json:"spec"`
}

// Schema describes one rule kind: the literals stamped into every
// document and the label used in result messages.
type Schema struct {
	APIVersion string
	Kind       string
	Label      string
}

// FilePath returns the document path for a rule name under configPath.
func (s Schema) FilePath(configPath, name string) string {
	return filepath.Join(configPath, s.Kind+"-"+name+".yaml")
}

// Rule renders to a Document and knows its own Schema.
type Rule interface {
	Schema() Schema
	Validate() error
	Document() *Document
}

// normalize round-trips a document through YAML so that its spec carries
// the same dynamic types a document read back from disk would. Without
// this, a freshly built spec holding e.g. []int never compares equal to
// its on-disk form, which decodes as []any.
func normalize(doc *Document) (*Document, error) {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	var out Document
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("normalize document: %w", err)
	}
	return &out, nil
}

// documentsEqual reports whether two documents converge to the same rule.
// Only the name and the full spec mapping count; description and the
// fixed apiVersion/kind literals do not.
func documentsEqual(a, b *Document) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Metadata.Name == b.Metadata.Name && reflect.DeepEqual(a.Spec, b.Spec)
}
