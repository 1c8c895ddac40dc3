package adapthttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"nappu/internal/domain"
	"nappu/internal/log"
	"nappu/internal/storage"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]any{"error": err.Error()})
}

func parseJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid json: %v", domain.ErrInvalidInput, err)
	}
	return nil
}

// statusFor maps the error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, storage.ErrWriteFailed):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err with its mapped status. Write failures are flagged as
// retryable since the change was not saved.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.ErrorContext(r.Context(), "request failed",
			log.FieldMethod, r.Method, log.FieldPath, r.URL.Path, log.FieldError, err)
	}
	if status == http.StatusServiceUnavailable {
		writeJSON(w, status, map[string]any{"error": err.Error(), "retryable": true})
		return
	}
	writeError(w, status, err)
}

// dayQuery resolves ?date=YYYY-MM-DD or ?date=today in the server's zone.
// ok is false when the parameter is absent.
func (s *Server) dayQuery(r *http.Request) (day time.Time, ok bool, err error) {
	v := strings.TrimSpace(r.URL.Query().Get("date"))
	switch v {
	case "":
		return time.Time{}, false, nil
	case "today":
		return s.now().In(s.loc), true, nil
	}
	day, err = time.ParseInLocation("2006-01-02", v, s.loc)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("%w: date must be YYYY-MM-DD or today", domain.ErrInvalidInput)
	}
	return day, true, nil
}

func withNoCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}
