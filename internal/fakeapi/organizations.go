package fakeapi

import (
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	patronus "github.com/patronus-sdwan/patronus-go"
)

func (s *Server) listOrganizations(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	orgs := make([]patronus.Organization, 0, len(s.orgs))
	for _, o := range s.orgs {
		orgs = append(orgs, o)
	}
	s.mu.Unlock()

	sort.Slice(orgs, func(i, j int) bool { return orgs[i].Name < orgs[j].Name })
	writeJSON(w, http.StatusOK, map[string]any{"organizations": orgs})
}

func (s *Server) getOrganization(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	org, ok := s.orgs[chi.URLParam(r, "id")]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "organization not found")
		return
	}
	writeJSON(w, http.StatusOK, org)
}

func (s *Server) createOrganization(w http.ResponseWriter, r *http.Request) {
	var req patronus.OrganizationCreate
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	tier := req.SubscriptionTier
	if tier == "" {
		tier = patronus.TierFree
	}

	ts := now()
	org := patronus.Organization{
		ID:               newID(),
		Name:             req.Name,
		DisplayName:      req.DisplayName,
		SubscriptionTier: tier,
		CreatedAt:        ts,
		UpdatedAt:        ts,
	}

	s.mu.Lock()
	s.orgs[org.ID] = org
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, org)
}

func (s *Server) updateOrganization(w http.ResponseWriter, r *http.Request) {
	var req patronus.OrganizationUpdate
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	org, ok := s.orgs[chi.URLParam(r, "id")]
	if !ok {
		writeError(w, http.StatusNotFound, "organization not found")
		return
	}

	if req.DisplayName != nil {
		org.DisplayName = *req.DisplayName
	}
	if req.SubscriptionTier != nil {
		org.SubscriptionTier = *req.SubscriptionTier
	}
	org.UpdatedAt = now()
	s.orgs[org.ID] = org

	writeJSON(w, http.StatusOK, org)
}

func (s *Server) deleteOrganization(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	_, ok := s.orgs[id]
	delete(s.orgs, id)
	s.mu.Unlock()

	if !ok {
		writeError(w, http.StatusNotFound, "organization not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
