package adapthttp

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"nappu/internal/domain"
)

func (s *Server) handleListFeedings(w http.ResponseWriter, r *http.Request) {
	baby, ok := s.lookupBaby(w, r)
	if !ok {
		return
	}
	day, filtered, err := s.dayQuery(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	items := s.repo.Feedings.ForBaby(baby.ID)
	if filtered {
		items = s.repo.Feedings.OnDay(baby.ID, day)
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleLastFeeding(w http.ResponseWriter, r *http.Request) {
	baby, ok := s.lookupBaby(w, r)
	if !ok {
		return
	}
	var last *domain.FeedingRecord
	if rec, found := s.repo.Feedings.Last(baby.ID); found {
		last = &rec
	}
	writeJSON(w, http.StatusOK, map[string]any{"feeding": last})
}

func (s *Server) handleCreateFeeding(w http.ResponseWriter, r *http.Request) {
	var in domain.CreateFeedingInput
	if err := parseJSON(r, &in); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := in.Validate(); err != nil {
		s.fail(w, r, err)
		return
	}
	if _, ok := s.repo.Babies.Get(in.BabyID); !ok {
		s.fail(w, r, domain.NotFound("baby", in.BabyID))
		return
	}
	rec, err := s.repo.Feedings.Add(r.Context(), in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"feeding": rec})
}

func (s *Server) handleUpdateFeeding(w http.ResponseWriter, r *http.Request) {
	var in domain.UpdateFeedingInput
	if err := parseJSON(r, &in); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := in.Validate(); err != nil {
		s.fail(w, r, err)
		return
	}
	id := chi.URLParam(r, "id")
	if current, ok := s.repo.Feedings.Get(id); ok {
		// The merged record must still be consistent, e.g. end after start.
		merged := in.Apply(current)
		if err := (domain.UpdateFeedingInput{StartTime: &merged.StartTime, EndTime: merged.EndTime}).Validate(); err != nil {
			s.fail(w, r, err)
			return
		}
	}
	rec, err := s.repo.Feedings.Update(r.Context(), id, in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"feeding": rec})
}

func (s *Server) handleDeleteFeeding(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := s.repo.Feedings.Get(id); !ok {
		s.fail(w, r, domain.NotFound("feeding record", id))
		return
	}
	if err := s.repo.Feedings.Delete(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": id})
}

func (s *Server) handleListDiapers(w http.ResponseWriter, r *http.Request) {
	baby, ok := s.lookupBaby(w, r)
	if !ok {
		return
	}
	day, filtered, err := s.dayQuery(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	items := s.repo.Diapers.ForBaby(baby.ID)
	if filtered {
		items = s.repo.Diapers.OnDay(baby.ID, day)
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleLastDiaper(w http.ResponseWriter, r *http.Request) {
	baby, ok := s.lookupBaby(w, r)
	if !ok {
		return
	}
	var last *domain.DiaperRecord
	if rec, found := s.repo.Diapers.Last(baby.ID); found {
		last = &rec
	}
	writeJSON(w, http.StatusOK, map[string]any{"diaper": last})
}

func (s *Server) handleCreateDiaper(w http.ResponseWriter, r *http.Request) {
	var in domain.CreateDiaperInput
	if err := parseJSON(r, &in); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := in.Validate(); err != nil {
		s.fail(w, r, err)
		return
	}
	if _, ok := s.repo.Babies.Get(in.BabyID); !ok {
		s.fail(w, r, domain.NotFound("baby", in.BabyID))
		return
	}
	rec, err := s.repo.Diapers.Add(r.Context(), in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"diaper": rec})
}

func (s *Server) handleUpdateDiaper(w http.ResponseWriter, r *http.Request) {
	var in domain.UpdateDiaperInput
	if err := parseJSON(r, &in); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := in.Validate(); err != nil {
		s.fail(w, r, err)
		return
	}
	id := chi.URLParam(r, "id")
	if current, ok := s.repo.Diapers.Get(id); ok {
		// The merged change must still be a complete record, e.g. dated.
		merged := in.Apply(current)
		check := domain.CreateDiaperInput{
			BabyID:          merged.BabyID,
			Type:            merged.Type,
			PoopConsistency: merged.PoopConsistency,
			Time:            merged.Time,
		}
		if err := check.Validate(); err != nil {
			s.fail(w, r, err)
			return
		}
	}
	rec, err := s.repo.Diapers.Update(r.Context(), id, in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"diaper": rec})
}

func (s *Server) handleDeleteDiaper(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := s.repo.Diapers.Get(id); !ok {
		s.fail(w, r, domain.NotFound("diaper record", id))
		return
	}
	if err := s.repo.Diapers.Delete(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": id})
}
