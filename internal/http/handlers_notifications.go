package http

import (
	"html/template"
	"net/http"

	"habitos/internal/log"
	"habitos/internal/notify"
)

// handleNotificationStatus reports the current permission state.
func (s *Server) handleNotificationStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(statusFragment(notifyStatusText(s.notifier))))
}

// handleEnableNotifications requests notification permission and reports the
// resulting state.
func (s *Server) handleEnableNotifications(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if s.notifier == nil {
		_, _ = w.Write([]byte(statusFragment(notify.StatusText(notify.PermissionDenied))))
		return
	}

	logger := log.FromContext(r.Context())
	state, err := s.notifier.RequestPermission(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "Permission request failed", log.FieldError, err)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Erro ao ativar notificações</div>`))
		return
	}

	logger.InfoContext(r.Context(), "Notification permission updated", "state", string(state))
	_, _ = w.Write([]byte(statusFragment(notify.StatusText(state))))
}

func notifyStatusText(n notify.Notifier) string {
	if n == nil {
		return notify.StatusText(notify.PermissionDenied)
	}
	return notify.StatusText(n.PermissionState())
}

func statusFragment(text string) string {
	return `<div class="notify-status">` + template.HTMLEscapeString(text) + `</div>`
}
