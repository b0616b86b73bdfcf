package patronus

import (
	"context"
	"net/http"
)

// MLModelsService manages machine learning models.
type MLModelsService struct {
	client *Client
}

// MLModelCreate holds the fields for registering a model.
type MLModelCreate struct {
	Name      string         `json:"name" validate:"required"`
	Version   string         `json:"version" validate:"required"`
	ModelType string         `json:"model_type" validate:"required"`
	Extra     map[string]any `json:"-"`
}

func (s *MLModelsService) List(ctx context.Context) ([]MLModel, error) {
	var out struct {
		MLModels []MLModel `json:"ml_models"`
	}
	if err := s.client.do(ctx, http.MethodGet, "/api/v1/ml-models", nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return out.MLModels, nil
}

func (s *MLModelsService) Get(ctx context.Context, id string) (*MLModel, error) {
	var model MLModel
	if err := s.client.do(ctx, http.MethodGet, "/api/v1/ml-models/"+id, nil, http.StatusOK, &model); err != nil {
		return nil, err
	}
	return &model, nil
}

func (s *MLModelsService) Create(ctx context.Context, in MLModelCreate) (*MLModel, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	body, err := requestBody(in, in.Extra)
	if err != nil {
		return nil, err
	}
	var model MLModel
	if err := s.client.do(ctx, http.MethodPost, "/api/v1/ml-models", body, http.StatusCreated, &model); err != nil {
		return nil, err
	}
	return &model, nil
}

// Deploy transitions a model to the deployed status.
func (s *MLModelsService) Deploy(ctx context.Context, id string) (*MLModel, error) {
	var model MLModel
	if err := s.client.do(ctx, http.MethodPost, "/api/v1/ml-models/"+id+"/deploy", nil, http.StatusOK, &model); err != nil {
		return nil, err
	}
	return &model, nil
}

func (s *MLModelsService) Delete(ctx context.Context, id string) error {
	return s.client.do(ctx, http.MethodDelete, "/api/v1/ml-models/"+id, nil, http.StatusNoContent, nil)
}
