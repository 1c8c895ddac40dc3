package adapthttp

import (
	"fmt"
	"net/http"
	"time"

	"nappu/internal/domain"
	"nappu/internal/stats"
)

type statsResponse struct {
	Range         string             `json:"range"`
	Unit          string             `json:"unit"`
	Feeding       stats.FeedingStats `json:"feeding"`
	Diaper        stats.DiaperStats  `json:"diaper"`
	FeedingSeries []stats.DayCount   `json:"feedingSeries,omitempty"`
	DiaperSeries  []stats.DayCount   `json:"diaperSeries,omitempty"`
	Daily         []stats.DailyStats `json:"daily,omitempty"`
}

// handleStats serves ?range=today|week|month|all (default today). Amounts are
// reported in ?unit=ml|oz (default ml).
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	baby, ok := s.lookupBaby(w, r)
	if !ok {
		return
	}
	now := s.now().In(s.loc)
	feedings := s.repo.Feedings.ForBaby(baby.ID)
	diapers := s.repo.Diapers.ForBaby(baby.ID)

	rng := r.URL.Query().Get("range")
	if rng == "" {
		rng = "today"
	}
	unit := r.URL.Query().Get("unit")
	if unit == "" {
		unit = domain.UnitML
	}
	if !domain.ValidVolumeUnit(unit) {
		s.fail(w, r, fmt.Errorf("%w: unit must be ml or oz", domain.ErrInvalidInput))
		return
	}
	resp := statsResponse{Range: rng, Unit: unit}

	switch rng {
	case "today":
		f := domain.OnDay(feedings, baby.ID, now)
		d := domain.OnDay(diapers, baby.ID, now)
		resp.Feeding, resp.Diaper = stats.Feeding(f), stats.Diaper(d)
	case "week":
		from := stats.WeekStart(now)
		to := from.AddDate(0, 0, 7)
		resp.Feeding = stats.Feeding(domain.Between(feedings, from, to))
		resp.Diaper = stats.Diaper(domain.Between(diapers, from, to))
		resp.FeedingSeries = stats.WeeklyFeeding(feedings, now, s.lang)
		resp.DiaperSeries = stats.WeeklyDiaper(diapers, now, s.lang)
	case "month":
		y, m, _ := now.Date()
		from := time.Date(y, m, 1, 0, 0, 0, 0, s.loc)
		to := from.AddDate(0, 1, 0)
		resp.Feeding = stats.Feeding(domain.Between(feedings, from, to))
		resp.Diaper = stats.Diaper(domain.Between(diapers, from, to))
		resp.FeedingSeries = stats.MonthlyFeeding(feedings, now)
		resp.DiaperSeries = stats.MonthlyDiaper(diapers, now)
	case "all":
		resp.Feeding, resp.Diaper = stats.Feeding(feedings), stats.Diaper(diapers)
		resp.Daily = stats.Combined(feedings, diapers, s.loc)
	default:
		s.fail(w, r, fmt.Errorf("%w: range must be today, week, month or all", domain.ErrInvalidInput))
		return
	}
	resp.convertAmounts(unit)
	writeJSON(w, http.StatusOK, resp)
}

func (r *statsResponse) convertAmounts(unit string) {
	r.Feeding.TotalAmount = domain.ConvertVolume(r.Feeding.TotalAmount, domain.UnitML, unit)
	for i := range r.Daily {
		r.Daily[i].TotalAmount = domain.ConvertVolume(r.Daily[i].TotalAmount, domain.UnitML, unit)
	}
}
