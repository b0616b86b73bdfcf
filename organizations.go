package patronus

import (
	"context"
	"net/http"
)

// OrganizationsService manages tenant organizations.
type OrganizationsService struct {
	client *Client
}

// OrganizationCreate holds the fields for creating an organization.
type OrganizationCreate struct {
	Name             string         `json:"name" validate:"required"`
	DisplayName      string         `json:"display_name" validate:"required"`
	SubscriptionTier string         `json:"subscription_tier,omitempty" validate:"omitempty,oneof=free starter professional enterprise"`
	Extra            map[string]any `json:"-"`
}

// OrganizationUpdate holds the fields for updating an organization.
type OrganizationUpdate struct {
	DisplayName      *string        `json:"display_name,omitempty"`
	SubscriptionTier *string        `json:"subscription_tier,omitempty" validate:"omitempty,oneof=free starter professional enterprise"`
	Extra            map[string]any `json:"-"`
}

func (s *OrganizationsService) List(ctx context.Context) ([]Organization, error) {
	var out struct {
		Organizations []Organization `json:"organizations"`
	}
	if err := s.client.do(ctx, http.MethodGet, "/api/v1/organizations", nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return out.Organizations, nil
}

func (s *OrganizationsService) Get(ctx context.Context, id string) (*Organization, error) {
	var org Organization
	if err := s.client.do(ctx, http.MethodGet, "/api/v1/organizations/"+id, nil, http.StatusOK, &org); err != nil {
		return nil, err
	}
	return &org, nil
}

func (s *OrganizationsService) Create(ctx context.Context, in OrganizationCreate) (*Organization, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	body, err := requestBody(in, in.Extra)
	if err != nil {
		return nil, err
	}
	var org Organization
	if err := s.client.do(ctx, http.MethodPost, "/api/v1/organizations", body, http.StatusCreated, &org); err != nil {
		return nil, err
	}
	return &org, nil
}

func (s *OrganizationsService) Update(ctx context.Context, id string, in OrganizationUpdate) (*Organization, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	body, err := requestBody(in, in.Extra)
	if err != nil {
		return nil, err
	}
	var org Organization
	if err := s.client.do(ctx, http.MethodPut, "/api/v1/organizations/"+id, body, http.StatusOK, &org); err != nil {
		return nil, err
	}
	return &org, nil
}

func (s *OrganizationsService) Delete(ctx context.Context, id string) error {
	return s.client.do(ctx, http.MethodDelete, "/api/v1/organizations/"+id, nil, http.StatusNoContent, nil)
}
