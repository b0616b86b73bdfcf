package fakeapi

import (
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	patronus "github.com/patronus-sdwan/patronus-go"
)

func (s *Server) listMLModels(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	models := make([]patronus.MLModel, 0, len(s.models))
	for _, m := range s.models {
		models = append(models, m)
	}
	s.mu.Unlock()

	sort.Slice(models, func(i, j int) bool { return models[i].Name < models[j].Name })
	writeJSON(w, http.StatusOK, map[string]any{"ml_models": models})
}

func (s *Server) getMLModel(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	model, ok := s.models[chi.URLParam(r, "id")]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "model not found")
		return
	}
	writeJSON(w, http.StatusOK, model)
}

func (s *Server) createMLModel(w http.ResponseWriter, r *http.Request) {
	var req patronus.MLModelCreate
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	model := patronus.MLModel{
		ID:        newID(),
		Name:      req.Name,
		Version:   req.Version,
		ModelType: req.ModelType,
		Status:    patronus.ModelStatusTraining,
		CreatedAt: now(),
	}

	s.mu.Lock()
	s.models[model.ID] = model
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, model)
}

func (s *Server) deployMLModel(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	model, ok := s.models[chi.URLParam(r, "id")]
	if !ok {
		writeError(w, http.StatusNotFound, "model not found")
		return
	}

	deployed := now()
	model.Status = patronus.ModelStatusDeployed
	model.DeployedAt = &deployed
	s.models[model.ID] = model

	writeJSON(w, http.StatusOK, model)
}

func (s *Server) deleteMLModel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	_, ok := s.models[id]
	delete(s.models, id)
	s.mu.Unlock()

	if !ok {
		writeError(w, http.StatusNotFound, "model not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MarkValidated moves a model to the validated status with the given
// accuracy, for tests exercising the deploy transition.
func (s *Server) MarkValidated(id string, accuracy float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if model, ok := s.models[id]; ok {
		model.Status = patronus.ModelStatusValidated
		model.Accuracy = &accuracy
		s.models[id] = model
	}
}
