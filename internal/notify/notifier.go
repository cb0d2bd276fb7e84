// Package notify defines the reminder dispatch port. Permission mirrors the
// surrounding platform's notification permission: reminders are only
// dispatched while the state is granted.
package notify

import (
	"context"
	"errors"
)

// Permission is the platform notification permission state.
type Permission string

const (
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
	PermissionPending Permission = "pending"
)

var ErrNotGranted = errors.New("notification permission not granted")

// Notifier delivers reminder notifications.
type Notifier interface {
	// RequestPermission asks the user/platform to enable notifications and
	// returns the resulting state.
	RequestPermission(ctx context.Context) (Permission, error)
	// PermissionState returns the current state without prompting.
	PermissionState() Permission
	// Notify delivers one notification. Failures are reported to the caller
	// and must not be treated as delivered.
	Notify(ctx context.Context, title, body string) error
}

// StatusText returns the user-facing status line for a permission state.
func StatusText(p Permission) string {
	switch p {
	case PermissionGranted:
		return "Notificações ativadas."
	case PermissionDenied:
		return "Permissão de notificações negada."
	default:
		return "Permissão de notificações ainda não concedida."
	}
}
