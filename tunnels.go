package patronus

import (
	"context"
	"net/http"
)

// TunnelsService manages overlay tunnels between sites.
type TunnelsService struct {
	client *Client
}

// TunnelCreate holds the fields for creating a tunnel. The referenced site
// IDs are not validated client-side; an unknown site surfaces as a
// not-found error from the API.
type TunnelCreate struct {
	Name         string         `json:"name" validate:"required"`
	LocalSiteID  string         `json:"local_site_id" validate:"required"`
	RemoteSiteID string         `json:"remote_site_id" validate:"required"`
	Protocol     string         `json:"protocol" validate:"required,oneof=wireguard ipsec gre"`
	Extra        map[string]any `json:"-"`
}

// TunnelUpdate holds the fields for updating a tunnel.
type TunnelUpdate struct {
	Name     *string        `json:"name,omitempty"`
	Protocol *string        `json:"protocol,omitempty"`
	Extra    map[string]any `json:"-"`
}

func (s *TunnelsService) List(ctx context.Context) ([]Tunnel, error) {
	var out struct {
		Tunnels []Tunnel `json:"tunnels"`
	}
	if err := s.client.do(ctx, http.MethodGet, "/api/v1/tunnels", nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return out.Tunnels, nil
}

func (s *TunnelsService) Get(ctx context.Context, id string) (*Tunnel, error) {
	var tunnel Tunnel
	if err := s.client.do(ctx, http.MethodGet, "/api/v1/tunnels/"+id, nil, http.StatusOK, &tunnel); err != nil {
		return nil, err
	}
	return &tunnel, nil
}

func (s *TunnelsService) Create(ctx context.Context, in TunnelCreate) (*Tunnel, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	body, err := requestBody(in, in.Extra)
	if err != nil {
		return nil, err
	}
	var tunnel Tunnel
	if err := s.client.do(ctx, http.MethodPost, "/api/v1/tunnels", body, http.StatusCreated, &tunnel); err != nil {
		return nil, err
	}
	return &tunnel, nil
}

func (s *TunnelsService) Update(ctx context.Context, id string, in TunnelUpdate) (*Tunnel, error) {
	if in.Protocol != nil {
		if err := validate.Var(*in.Protocol, "oneof=wireguard ipsec gre"); err != nil {
			return nil, err
		}
	}
	body, err := requestBody(in, in.Extra)
	if err != nil {
		return nil, err
	}
	var tunnel Tunnel
	if err := s.client.do(ctx, http.MethodPut, "/api/v1/tunnels/"+id, body, http.StatusOK, &tunnel); err != nil {
		return nil, err
	}
	return &tunnel, nil
}

// GetStatus fetches live status for one tunnel.
func (s *TunnelsService) GetStatus(ctx context.Context, id string) (*TunnelStatus, error) {
	var status TunnelStatus
	if err := s.client.do(ctx, http.MethodGet, "/api/v1/tunnels/"+id+"/status", nil, http.StatusOK, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (s *TunnelsService) Delete(ctx context.Context, id string) error {
	return s.client.do(ctx, http.MethodDelete, "/api/v1/tunnels/"+id, nil, http.StatusNoContent, nil)
}
