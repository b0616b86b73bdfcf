package patronus

import "time"

// Tunnel protocols.
const (
	ProtocolWireGuard = "wireguard"
	ProtocolIPsec     = "ipsec"
	ProtocolGRE       = "gre"
)

// Tunnel states.
const (
	TunnelStateUp       = "up"
	TunnelStateDown     = "down"
	TunnelStateDegraded = "degraded"
)

// Policy rule actions.
const (
	ActionAllow = "allow"
	ActionDeny  = "deny"
	ActionRoute = "route"
)

// Organization subscription tiers.
const (
	TierFree         = "free"
	TierStarter      = "starter"
	TierProfessional = "professional"
	TierEnterprise   = "enterprise"
)

// ML model statuses.
const (
	ModelStatusTraining  = "training"
	ModelStatusValidated = "validated"
	ModelStatusDeployed  = "deployed"
	ModelStatusArchived  = "archived"
)

// Site is a network site with one or more WAN uplinks.
type Site struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Location      string         `json:"location"`
	WANInterfaces []string       `json:"wan_interfaces"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

// TunnelStatus carries live measurements for a tunnel. Optional fields are
// nil until the tunnel has been measured.
type TunnelStatus struct {
	State         string     `json:"state"`
	LatencyMS     *float64   `json:"latency_ms,omitempty"`
	PacketLoss    *float64   `json:"packet_loss,omitempty"`
	BandwidthMbps *float64   `json:"bandwidth_mbps,omitempty"`
	LastSeen      *time.Time `json:"last_seen,omitempty"`
}

// Tunnel is an overlay tunnel between two sites.
type Tunnel struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	LocalSiteID  string       `json:"local_site_id"`
	RemoteSiteID string       `json:"remote_site_id"`
	Protocol     string       `json:"protocol"`
	Status       TunnelStatus `json:"status"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// PolicyRule is one match/action entry in a policy. Lower priority values
// take precedence at enforcement time.
type PolicyRule struct {
	Protocol string `json:"protocol,omitempty" validate:"omitempty,oneof=tcp udp icmp any"`
	SrcPort  *int   `json:"src_port,omitempty"`
	DstPort  *int   `json:"dst_port,omitempty"`
	Action   string `json:"action" validate:"required,oneof=allow deny route"`
	Priority int    `json:"priority"`
}

// Policy is an ordered set of rules, optionally scoped to one site.
type Policy struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Rules       []PolicyRule `json:"rules"`
	SiteID      string       `json:"site_id,omitempty"`
	Enabled     bool         `json:"enabled"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Organization is a tenant.
type Organization struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	DisplayName      string    `json:"display_name"`
	SubscriptionTier string    `json:"subscription_tier"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// MetricData is one time-series sample.
type MetricData struct {
	Timestamp time.Time         `json:"timestamp"`
	Value     float64           `json:"value"`
	Labels    map[string]string `json:"labels,omitempty"`
}

// Metrics is a named series, ordered by timestamp ascending.
type Metrics struct {
	MetricName string       `json:"metric_name"`
	Data       []MetricData `json:"data"`
}

// MLModel is server-side model metadata. DeployedAt is set only once the
// model reaches the deployed status.
type MLModel struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Version    string     `json:"version"`
	ModelType  string     `json:"model_type"`
	Status     string     `json:"status"`
	Accuracy   *float64   `json:"accuracy,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	DeployedAt *time.Time `json:"deployed_at,omitempty"`
}
