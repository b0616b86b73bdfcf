package fakeapi

import (
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	patronus "github.com/patronus-sdwan/patronus-go"
)

func (s *Server) listTunnels(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	tunnels := make([]patronus.Tunnel, 0, len(s.tunnels))
	for _, t := range s.tunnels {
		tunnels = append(tunnels, t)
	}
	s.mu.Unlock()

	sort.Slice(tunnels, func(i, j int) bool { return tunnels[i].Name < tunnels[j].Name })
	writeJSON(w, http.StatusOK, map[string]any{"tunnels": tunnels})
}

func (s *Server) getTunnel(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	tunnel, ok := s.tunnels[chi.URLParam(r, "id")]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "tunnel not found")
		return
	}
	writeJSON(w, http.StatusOK, tunnel)
}

func (s *Server) createTunnel(w http.ResponseWriter, r *http.Request) {
	var req patronus.TunnelCreate
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sites[req.LocalSiteID]; !ok {
		writeError(w, http.StatusNotFound, "local site not found")
		return
	}
	if _, ok := s.sites[req.RemoteSiteID]; !ok {
		writeError(w, http.StatusNotFound, "remote site not found")
		return
	}

	ts := now()
	tunnel := patronus.Tunnel{
		ID:           newID(),
		Name:         req.Name,
		LocalSiteID:  req.LocalSiteID,
		RemoteSiteID: req.RemoteSiteID,
		Protocol:     req.Protocol,
		Status:       patronus.TunnelStatus{State: patronus.TunnelStateDown},
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
	s.tunnels[tunnel.ID] = tunnel

	writeJSON(w, http.StatusCreated, tunnel)
}

func (s *Server) updateTunnel(w http.ResponseWriter, r *http.Request) {
	var req patronus.TunnelUpdate
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	tunnel, ok := s.tunnels[chi.URLParam(r, "id")]
	if !ok {
		writeError(w, http.StatusNotFound, "tunnel not found")
		return
	}

	if req.Name != nil {
		tunnel.Name = *req.Name
	}
	if req.Protocol != nil {
		tunnel.Protocol = *req.Protocol
	}
	tunnel.UpdatedAt = now()
	s.tunnels[tunnel.ID] = tunnel

	writeJSON(w, http.StatusOK, tunnel)
}

func (s *Server) getTunnelStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	tunnel, ok := s.tunnels[chi.URLParam(r, "id")]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "tunnel not found")
		return
	}
	writeJSON(w, http.StatusOK, tunnel.Status)
}

func (s *Server) deleteTunnel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	_, ok := s.tunnels[id]
	delete(s.tunnels, id)
	s.mu.Unlock()

	if !ok {
		writeError(w, http.StatusNotFound, "tunnel not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetTunnelStatus overrides a tunnel's status, for tests that need a
// measured tunnel.
func (s *Server) SetTunnelStatus(id string, status patronus.TunnelStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if tunnel, ok := s.tunnels[id]; ok {
		tunnel.Status = status
		s.tunnels[id] = tunnel
	}
}
