package fakeapi

import (
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	patronus "github.com/patronus-sdwan/patronus-go"
)

func (s *Server) listSites(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	sites := make([]patronus.Site, 0, len(s.sites))
	for _, site := range s.sites {
		sites = append(sites, site)
	}
	s.mu.Unlock()

	sort.Slice(sites, func(i, j int) bool { return sites[i].Name < sites[j].Name })
	writeJSON(w, http.StatusOK, map[string]any{"sites": sites})
}

func (s *Server) getSite(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	site, ok := s.sites[chi.URLParam(r, "id")]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "site not found")
		return
	}
	writeJSON(w, http.StatusOK, site)
}

func (s *Server) createSite(w http.ResponseWriter, r *http.Request) {
	var req patronus.SiteCreate
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ts := now()
	site := patronus.Site{
		ID:            newID(),
		Name:          req.Name,
		Location:      req.Location,
		WANInterfaces: req.WANInterfaces,
		Metadata:      req.Metadata,
		CreatedAt:     ts,
		UpdatedAt:     ts,
	}

	s.mu.Lock()
	s.sites[site.ID] = site
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, site)
}

func (s *Server) updateSite(w http.ResponseWriter, r *http.Request) {
	var req patronus.SiteUpdate
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	site, ok := s.sites[chi.URLParam(r, "id")]
	if !ok {
		writeError(w, http.StatusNotFound, "site not found")
		return
	}

	if req.Name != nil {
		site.Name = *req.Name
	}
	if req.Location != nil {
		site.Location = *req.Location
	}
	if req.WANInterfaces != nil {
		site.WANInterfaces = req.WANInterfaces
	}
	if req.Metadata != nil {
		site.Metadata = req.Metadata
	}
	site.UpdatedAt = now()
	s.sites[site.ID] = site

	writeJSON(w, http.StatusOK, site)
}

func (s *Server) deleteSite(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	_, ok := s.sites[id]
	delete(s.sites, id)
	s.mu.Unlock()

	if !ok {
		writeError(w, http.StatusNotFound, "site not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
