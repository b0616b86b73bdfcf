package fakeapi

import (
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	patronus "github.com/patronus-sdwan/patronus-go"
)

func (s *Server) listPolicies(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	policies := make([]patronus.Policy, 0, len(s.policies))
	for _, p := range s.policies {
		policies = append(policies, p)
	}
	s.mu.Unlock()

	sort.Slice(policies, func(i, j int) bool { return policies[i].Name < policies[j].Name })
	writeJSON(w, http.StatusOK, map[string]any{"policies": policies})
}

func (s *Server) getPolicy(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	policy, ok := s.policies[chi.URLParam(r, "id")]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "policy not found")
		return
	}
	writeJSON(w, http.StatusOK, policy)
}

func (s *Server) createPolicy(w http.ResponseWriter, r *http.Request) {
	var req patronus.PolicyCreate
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}
	rules := req.Rules
	if rules == nil {
		rules = []patronus.PolicyRule{}
	}
	for i := range rules {
		if rules[i].Priority == 0 {
			rules[i].Priority = 100
		}
	}

	ts := now()
	policy := patronus.Policy{
		ID:          newID(),
		Name:        req.Name,
		Description: req.Description,
		Rules:       rules,
		SiteID:      req.SiteID,
		Enabled:     enabled,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}

	s.mu.Lock()
	s.policies[policy.ID] = policy
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, policy)
}

func (s *Server) updatePolicy(w http.ResponseWriter, r *http.Request) {
	var req patronus.PolicyUpdate
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	policy, ok := s.policies[chi.URLParam(r, "id")]
	if !ok {
		writeError(w, http.StatusNotFound, "policy not found")
		return
	}

	if req.Name != nil {
		policy.Name = *req.Name
	}
	if req.Description != nil {
		policy.Description = *req.Description
	}
	if req.Rules != nil {
		policy.Rules = req.Rules
	}
	if req.SiteID != nil {
		policy.SiteID = *req.SiteID
	}
	if req.Enabled != nil {
		policy.Enabled = *req.Enabled
	}
	policy.UpdatedAt = now()
	s.policies[policy.ID] = policy

	writeJSON(w, http.StatusOK, policy)
}

func (s *Server) deletePolicy(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	_, ok := s.policies[id]
	delete(s.policies, id)
	s.mu.Unlock()

	if !ok {
		writeError(w, http.StatusNotFound, "policy not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
