package entity

import "time"

// Session sesión del lado servidor creada en el login y eliminada en el logout.
// Guarda una foto de username y rol al momento del login; los cambios de rol revocan las sesiones.
type Session struct {
	ID        string
	AccountID int64
	Username  string
	Role      Role
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired informa si la sesión ya no es válida en now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
