package patronus

import (
	"context"
	"net/http"
)

// PoliciesService manages routing and QoS policies.
type PoliciesService struct {
	client *Client
}

// PolicyCreate holds the fields for creating a policy. Enabled defaults to
// true server-side when nil.
type PolicyCreate struct {
	Name        string         `json:"name" validate:"required"`
	Description string         `json:"description,omitempty"`
	Rules       []PolicyRule   `json:"rules" validate:"dive"`
	SiteID      string         `json:"site_id,omitempty"`
	Enabled     *bool          `json:"enabled,omitempty"`
	Extra       map[string]any `json:"-"`
}

// PolicyUpdate holds the fields for updating a policy. A non-nil Rules
// slice replaces the rule list wholesale.
type PolicyUpdate struct {
	Name        *string        `json:"name,omitempty"`
	Description *string        `json:"description,omitempty"`
	Rules       []PolicyRule   `json:"rules,omitempty" validate:"dive"`
	SiteID      *string        `json:"site_id,omitempty"`
	Enabled     *bool          `json:"enabled,omitempty"`
	Extra       map[string]any `json:"-"`
}

func (s *PoliciesService) List(ctx context.Context) ([]Policy, error) {
	var out struct {
		Policies []Policy `json:"policies"`
	}
	if err := s.client.do(ctx, http.MethodGet, "/api/v1/policies", nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return out.Policies, nil
}

func (s *PoliciesService) Get(ctx context.Context, id string) (*Policy, error) {
	var policy Policy
	if err := s.client.do(ctx, http.MethodGet, "/api/v1/policies/"+id, nil, http.StatusOK, &policy); err != nil {
		return nil, err
	}
	return &policy, nil
}

func (s *PoliciesService) Create(ctx context.Context, in PolicyCreate) (*Policy, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	body, err := requestBody(in, in.Extra)
	if err != nil {
		return nil, err
	}
	var policy Policy
	if err := s.client.do(ctx, http.MethodPost, "/api/v1/policies", body, http.StatusCreated, &policy); err != nil {
		return nil, err
	}
	return &policy, nil
}

func (s *PoliciesService) Update(ctx context.Context, id string, in PolicyUpdate) (*Policy, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	body, err := requestBody(in, in.Extra)
	if err != nil {
		return nil, err
	}
	var policy Policy
	if err := s.client.do(ctx, http.MethodPut, "/api/v1/policies/"+id, body, http.StatusOK, &policy); err != nil {
		return nil, err
	}
	return &policy, nil
}

func (s *PoliciesService) Delete(ctx context.Context, id string) error {
	return s.client.do(ctx, http.MethodDelete, "/api/v1/policies/"+id, nil, http.StatusNoContent, nil)
}
