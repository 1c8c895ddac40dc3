package adapthttp

import (
	"net/http"

	"nappu/internal/domain"
)

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"settings": s.repo.Settings.Get()})
}

func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var in domain.Settings
	if err := parseJSON(r, &in); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.repo.Settings.Save(r.Context(), in); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"settings": in})
}
