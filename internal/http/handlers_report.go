package http

import (
	"errors"
	"html/template"
	"net/http"
	"strings"
	"time"

	"habitos/internal/core"
	"habitos/internal/log"
)

// handleReport renders the selected report as an HTML fragment.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	kind := strings.TrimSpace(r.URL.Query().Get("type"))
	if kind == "" {
		kind = core.ReportDaily
	}

	report, err := s.reports.Generate(r.Context(), kind, time.Now())
	if err != nil {
		if isEmptyState(err) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`<div class="placeholder">` + template.HTMLEscapeString(err.Error()) + `</div>`))
			return
		}
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Report generation error",
			log.FieldError, err, log.FieldReportKind, kind)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Tipo de relatório inválido</div>`))
		return
	}

	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	switch {
	case report.Daily != nil:
		if err := s.templates.ExecuteTemplate(w, "report_daily.html", report.Daily); err != nil {
			log.FromContext(r.Context()).ErrorContext(r.Context(), "Template execution error",
				log.FieldError, err, "template", "report_daily.html")
			_, _ = w.Write([]byte(`<div class="error">Erro ao montar o relatório</div>`))
		}
	case report.Range != nil:
		data := struct {
			*core.RangeReport
			Activities []core.Activity
		}{report.Range, core.TrackedActivities}
		if err := s.templates.ExecuteTemplate(w, "report_range.html", data); err != nil {
			log.FromContext(r.Context()).ErrorContext(r.Context(), "Template execution error",
				log.FieldError, err, "template", "report_range.html")
			_, _ = w.Write([]byte(`<div class="error">Erro ao montar o relatório</div>`))
		}
	}
}

// isEmptyState reports whether err is one of the explicit no-data conditions,
// which render as a message rather than a failure.
func isEmptyState(err error) bool {
	return errors.Is(err, core.ErrNoRecords) ||
		errors.Is(err, core.ErrNoRecordsToday) ||
		errors.Is(err, core.ErrNoRecordsInPeriod)
}
