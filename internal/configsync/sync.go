// Package configsync converges on-disk declarative rule documents to the
// state implied by typed rule parameters. One generic synchronizer serves
// every rule kind; a kind is a Schema plus a parameter struct that renders
// its own spec mapping.
package configsync

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// State is the desired presence of a rule document.
type State string

const (
	StatePresent State = "present"
	StateAbsent  State = "absent"
)

// Result reports the outcome of one Apply. Rule is set when state is
// present, including on the no-op path.
type Result struct {
	Changed bool      `json:"changed"`
	Message string    `json:"message"`
	Rule    *Document `json:"rule,omitempty"`
}

// Syncer applies rules to documents under ConfigPath. CheckMode computes
// and reports the outcome without touching the filesystem.
type Syncer struct {
	ConfigPath string
	CheckMode  bool
}

func NewSyncer(configPath string) *Syncer {
	return &Syncer{ConfigPath: configPath}
}

// Apply converges the rule's document to state. Applying the same rule
// twice yields Changed=false on the second pass.
func (s *Syncer) Apply(rule Rule, state State) (*Result, error) {
	if state != StatePresent && state != StateAbsent {
		return nil, fmt.Errorf("invalid state %q", state)
	}
	if err := rule.Validate(); err != nil {
		return nil, err
	}

	schema := rule.Schema()
	desired := rule.Document()
	name := desired.Metadata.Name
	path := schema.FilePath(s.ConfigPath, name)

	// A missing, unreadable, or unparsable file all count as absent so a
	// later present run can overwrite a partially-written or foreign file.
	existing := readDocument(path)

	switch state {
	case StatePresent:
		normalized, err := normalize(desired)
		if err != nil {
			return nil, err
		}
		if documentsEqual(existing, normalized) {
			return &Result{
				Message: fmt.Sprintf("%s %q already exists with desired configuration", schema.Label, name),
				Rule:    desired,
			}, nil
		}

		msg := fmt.Sprintf("Updated %s %q", lowerLabel(schema.Label), name)
		if existing == nil {
			msg = fmt.Sprintf("Created %s %q", lowerLabel(schema.Label), name)
		}
		if !s.CheckMode {
			if err := writeDocument(path, desired); err != nil {
				return nil, err
			}
		}
		return &Result{Changed: true, Message: msg, Rule: desired}, nil

	default: // StateAbsent
		if existing == nil {
			return &Result{
				Message: fmt.Sprintf("%s %q already absent", schema.Label, name),
			}, nil
		}
		if !s.CheckMode {
			if err := os.Remove(path); err != nil {
				return nil, fmt.Errorf("delete %s: %w", path, err)
			}
		}
		return &Result{
			Changed: true,
			Message: fmt.Sprintf("Deleted %s %q", lowerLabel(schema.Label), name),
		}, nil
	}
}

// readDocument returns nil for anything that is not a parsable document.
func readDocument(path string) *Document {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil
	}
	if doc.Metadata.Name == "" && doc.Spec == nil {
		return nil
	}
	return &doc
}

func writeDocument(path string, doc *Document) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// lowerLabel lowercases a label for mid-sentence use ("Firewall rule" ->
// "firewall rule") while leaving acronym labels like "NAT rule" alone.
func lowerLabel(label string) string {
	if label == "" {
		return label
	}
	if len(label) > 1 && label[1] >= 'A' && label[1] <= 'Z' {
		return label
	}
	return string(label[0]|0x20) + label[1:]
}
