package configsync

import "fmt"

// NATRuleSchema describes the NatRule document kind.
var NATRuleSchema = Schema{
	APIVersion: "patronus.firewall/v1",
	Kind:       "NatRule",
	Label:      "NAT rule",
}

// NATRule is the parameter set for one NAT rule.
type NATRule struct {
	Name            string `validate:"required"`
	Description     string
	NATType         string `validate:"required,oneof=source destination port_forward"`
	Interface       string `validate:"required"`
	SourceAddr      string
	DestAddr        string
	TranslationAddr string
	TranslationPort int `validate:"omitempty,gte=1,lte=65535"`
	Protocol        string
	DestPort        int `validate:"omitempty,gte=1,lte=65535"`
	Enabled         bool
}

func (r NATRule) Schema() Schema {
	return NATRuleSchema
}

func (r NATRule) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("invalid NAT rule: %w", err)
	}
	return nil
}

func (r NATRule) Document() *Document {
	spec := map[string]any{
		"nat_type":  r.NATType,
		"interface": r.Interface,
		"enabled":   r.Enabled,
	}

	if r.SourceAddr != "" {
		spec["source_address"] = r.SourceAddr
	}
	if r.DestAddr != "" {
		spec["dest_address"] = r.DestAddr
	}
	if r.TranslationAddr != "" {
		spec["translation_address"] = r.TranslationAddr
	}
	if r.TranslationPort != 0 {
		spec["translation_port"] = r.TranslationPort
	}
	if r.Protocol != "" {
		spec["protocol"] = r.Protocol
	}
	if r.DestPort != 0 {
		spec["dest_port"] = r.DestPort
	}

	return &Document{
		APIVersion: NATRuleSchema.APIVersion,
		Kind:       NATRuleSchema.Kind,
		Metadata: Metadata{
			Name:        r.Name,
			Description: r.Description,
		},
		Spec: spec,
	}
}
