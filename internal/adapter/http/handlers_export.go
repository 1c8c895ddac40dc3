package adapthttp

import (
	"errors"
	"fmt"
	"net/http"

	"nappu/internal/export"
)

var errNoSink = errors.New("export upload is not configured")

func (s *Server) exportData() export.Data {
	snap := s.repo.Snapshot()
	return export.Prepare(snap.Babies, snap.Feedings, snap.Diapers, s.now())
}

// handleExportDownload streams the whole diary as an attachment.
func (s *Server) handleExportDownload(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	data := s.exportData()
	body, err := export.Encode(data, format)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName(format, data.ExportedAt)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// handleExportUpload writes the export to the configured sink.
func (s *Server) handleExportUpload(w http.ResponseWriter, r *http.Request) {
	if s.exporter == nil {
		writeError(w, http.StatusNotImplemented, errNoSink)
		return
	}
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	loc, err := s.exporter.Upload(r.Context(), s.exportData(), format)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"location": loc})
}
