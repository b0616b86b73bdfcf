package patronus

import (
	"context"
	"net/http"
)

// SitesService manages sites.
type SitesService struct {
	client *Client
}

// SiteCreate holds the fields for creating a site. Extra keys are passed
// through to the API verbatim.
type SiteCreate struct {
	Name          string         `json:"name" validate:"required"`
	Location      string         `json:"location" validate:"required"`
	WANInterfaces []string       `json:"wan_interfaces" validate:"required,min=1,dive,required"`
	Metadata      map[string]any `json:"metadata,omitempty"`
	Extra         map[string]any `json:"-"`
}

// SiteUpdate holds the fields for updating a site. Nil fields are left
// unchanged server-side.
type SiteUpdate struct {
	Name          *string        `json:"name,omitempty"`
	Location      *string        `json:"location,omitempty"`
	WANInterfaces []string       `json:"wan_interfaces,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
	Extra         map[string]any `json:"-"`
}

func (s *SitesService) List(ctx context.Context) ([]Site, error) {
	var out struct {
		Sites []Site `json:"sites"`
	}
	if err := s.client.do(ctx, http.MethodGet, "/api/v1/sites", nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return out.Sites, nil
}

func (s *SitesService) Get(ctx context.Context, id string) (*Site, error) {
	var site Site
	if err := s.client.do(ctx, http.MethodGet, "/api/v1/sites/"+id, nil, http.StatusOK, &site); err != nil {
		return nil, err
	}
	return &site, nil
}

func (s *SitesService) Create(ctx context.Context, in SiteCreate) (*Site, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	body, err := requestBody(in, in.Extra)
	if err != nil {
		return nil, err
	}
	var site Site
	if err := s.client.do(ctx, http.MethodPost, "/api/v1/sites", body, http.StatusCreated, &site); err != nil {
		return nil, err
	}
	return &site, nil
}

func (s *SitesService) Update(ctx context.Context, id string, in SiteUpdate) (*Site, error) {
	body, err := requestBody(in, in.Extra)
	if err != nil {
		return nil, err
	}
	var site Site
	if err := s.client.do(ctx, http.MethodPut, "/api/v1/sites/"+id, body, http.StatusOK, &site); err != nil {
		return nil, err
	}
	return &site, nil
}

func (s *SitesService) Delete(ctx context.Context, id string) error {
	return s.client.do(ctx, http.MethodDelete, "/api/v1/sites/"+id, nil, http.StatusNoContent, nil)
}
