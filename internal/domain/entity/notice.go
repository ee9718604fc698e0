package entity

import (
	"fmt"
	"time"
)

// Priority prioridad de un aviso.
type Priority string

// Prioridades válidas para Notice.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority valida la prioridad; vacío equivale a medium.
func ParsePriority(s string) (Priority, error) {
	switch Priority(s) {
	case "":
		return PriorityMedium, nil
	case PriorityLow, PriorityMedium, PriorityHigh:
		return Priority(s), nil
	default:
		return "", fmt.Errorf("prioridad desconocida %q", s)
	}
}

// Notice aviso del tablón interno.
type Notice struct {
	ID        int64
	Title     string
	Content   string
	Priority  Priority
	IsActive  bool
	ExpiresAt *time.Time
	CreatedBy int64
	CreatedAt time.Time
	UpdatedAt time.Time

	// Creator se completa en el listado.
	Creator *AccountRef
}

// Expired informa si el aviso venció: expires_at estrictamente en el pasado respecto a now.
func (n *Notice) Expired(now time.Time) bool {
	return n.ExpiresAt != nil && n.ExpiresAt.Before(now)
}

// Visible aviso activo y no vencido.
func (n *Notice) Visible(now time.Time) bool {
	return n.IsActive && !n.Expired(now)
}
