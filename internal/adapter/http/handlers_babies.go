package adapthttp

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"nappu/internal/domain"
)

func (s *Server) handleListBabies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"items":         s.repo.Babies.List(),
		"currentBabyId": s.repo.Babies.CurrentID(),
	})
}

func (s *Server) handleCreateBaby(w http.ResponseWriter, r *http.Request) {
	var in domain.CreateBabyInput
	if err := parseJSON(r, &in); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := in.Validate(); err != nil {
		s.fail(w, r, err)
		return
	}
	baby, err := s.repo.Babies.Add(r.Context(), in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"baby": baby})
}

// lookupBaby resolves {babyID} or writes a 404.
func (s *Server) lookupBaby(w http.ResponseWriter, r *http.Request) (domain.Baby, bool) {
	id := chi.URLParam(r, "babyID")
	baby, ok := s.repo.Babies.Get(id)
	if !ok {
		s.fail(w, r, domain.NotFound("baby", id))
	}
	return baby, ok
}

func (s *Server) handleGetBaby(w http.ResponseWriter, r *http.Request) {
	baby, ok := s.lookupBaby(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"baby": baby})
}

func (s *Server) handleUpdateBaby(w http.ResponseWriter, r *http.Request) {
	var in domain.UpdateBabyInput
	if err := parseJSON(r, &in); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := in.Validate(); err != nil {
		s.fail(w, r, err)
		return
	}
	baby, err := s.repo.Babies.Update(r.Context(), chi.URLParam(r, "babyID"), in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"baby": baby})
}

func (s *Server) handleDeleteBaby(w http.ResponseWriter, r *http.Request) {
	baby, ok := s.lookupBaby(w, r)
	if !ok {
		return
	}
	if err := s.repo.DeleteBaby(r.Context(), baby.ID); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"deleted":       baby.ID,
		"currentBabyId": s.repo.Babies.CurrentID(),
	})
}

func (s *Server) handleGetCurrentBaby(w http.ResponseWriter, r *http.Request) {
	var current *domain.Baby
	if baby, ok := s.repo.Babies.Current(); ok {
		current = &baby
	}
	writeJSON(w, http.StatusOK, map[string]any{"baby": current})
}

func (s *Server) handleSetCurrentBaby(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID string `json:"id"`
	}
	if err := parseJSON(r, &body); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.repo.Babies.SetCurrent(r.Context(), body.ID); err != nil {
		s.fail(w, r, err)
		return
	}
	baby, _ := s.repo.Babies.Current()
	writeJSON(w, http.StatusOK, map[string]any{"baby": baby})
}
