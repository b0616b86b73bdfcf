package configsync

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// FirewallRuleSchema describes the FirewallRule document kind.
var FirewallRuleSchema = Schema{
	APIVersion: "patronus.firewall/v1",
	Kind:       "FirewallRule",
	Label:      "Firewall rule",
}

// FirewallRule is the parameter set for one firewall rule. Zero-valued
// optional fields are omitted from the rendered spec entirely.
type FirewallRule struct {
	Name        string `validate:"required"`
	Description string
	Action      string `validate:"required,oneof=allow deny reject"`
	Interface   string
	Direction   string `validate:"omitempty,oneof=inbound outbound"`
	Protocol    string
	SourceAddr  string
	SourcePorts []int `validate:"dive,gte=1,lte=65535"`
	DestAddr    string
	DestPorts   []int `validate:"dive,gte=1,lte=65535"`
	Log         bool
	Enabled     bool
}

func (r FirewallRule) Schema() Schema {
	return FirewallRuleSchema
}

func (r FirewallRule) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("invalid firewall rule: %w", err)
	}
	return nil
}

func (r FirewallRule) Document() *Document {
	spec := map[string]any{
		"action":  r.Action,
		"log":     r.Log,
		"enabled": r.Enabled,
	}

	if r.Interface != "" {
		spec["interface"] = r.Interface
	}
	if r.Direction != "" {
		spec["direction"] = r.Direction
	}
	if r.Protocol != "" {
		spec["protocol"] = r.Protocol
	}

	// Source and destination blocks appear only when at least one of
	// their sub-fields is set; an empty mapping is never emitted.
	source := map[string]any{}
	if r.SourceAddr != "" {
		source["address"] = r.SourceAddr
	}
	if len(r.SourcePorts) > 0 {
		source["ports"] = r.SourcePorts
	}
	if len(source) > 0 {
		spec["source"] = source
	}

	dest := map[string]any{}
	if r.DestAddr != "" {
		dest["address"] = r.DestAddr
	}
	if len(r.DestPorts) > 0 {
		dest["ports"] = r.DestPorts
	}
	if len(dest) > 0 {
		spec["destination"] = dest
	}

	return &Document{
		APIVersion: FirewallRuleSchema.APIVersion,
		Kind:       FirewallRuleSchema.Kind,
		Metadata: Metadata{
			Name:        r.Name,
			Description: r.Description,
		},
		Spec: spec,
	}
}
