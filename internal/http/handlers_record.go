package http

import (
	"html/template"
	"net/http"
	"time"

	"habitos/internal/core"
	"habitos/internal/log"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Templates not loaded",
			log.FieldPath, r.URL.Path,
			log.FieldComponent, log.ComponentTemplate)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	data := struct {
		Today        string
		Goals        core.GoalTable
		Activities   []core.Activity
		NotifyStatus string
	}{
		Today:        core.LocalDateKey(now).Display(),
		Goals:        s.reports.Goals(),
		Activities:   core.TrackedActivities,
		NotifyStatus: notifyStatusText(s.notifier),
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Index template execution failed",
			log.FieldError, err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleCreateRecord appends one observation to the log. It responds with an
// HTML fragment the page injects into its feedback area.
func (s *Server) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	logger := log.FromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		logger.ErrorContext(r.Context(), "Parse form error",
			log.FieldError, err, log.FieldMethod, r.Method, log.FieldPath, r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Formato de requisição inválido</div>`))
		return
	}

	rec := core.NewRecord(time.Now())

	var parseErr error
	entry := func(doneField, amountField string) core.Entry {
		amount, err := core.ParseAmount(sanitizeInput(r.Form.Get(amountField)))
		if err != nil {
			parseErr = err
		}
		return core.Entry{Done: formChecked(r, doneField), Amount: amount}
	}
	count := func(field string) float64 {
		v, err := core.ParseCount(sanitizeInput(r.Form.Get(field)))
		if err != nil {
			parseErr = err
		}
		return v
	}

	rec.Running = entry("running", "runningTime")
	rec.Home = core.HomeWorkout{
		Done:        formChecked(r, "home"),
		Flexoes:     count("flexoes"),
		Abdominais:  count("abdominais"),
		Elevacao:    count("elevacao"),
		Agachamento: count("agachamento"),
	}
	rec.Weights = entry("weights", "weightsTime")
	rec.StudyTI = entry("studyTi", "studyTiTime")
	rec.StudyConcurso = entry("studyConcurso", "studyConcursoTime")
	rec.Meditation = entry("meditation", "meditationTime")

	if parseErr != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Valor inválido: ` + template.HTMLEscapeString(parseErr.Error()) + `</div>`))
		return
	}

	id, err := s.records.CreateRecord(r.Context(), rec)
	if err != nil {
		logger.ErrorContext(r.Context(), "Record append error",
			log.FieldError, err, log.FieldDateKey, string(rec.DateKey))
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Erro ao salvar o registro</div>`))
		return
	}

	logger.InfoContext(r.Context(), "Record created",
		log.FieldRecordID, id, log.FieldDateKey, string(rec.DateKey))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">Registro salvo com sucesso!</div>`))
}
