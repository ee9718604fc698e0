package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/directorio-api/internal/domain"
)

// Formatos aceptados para expires_at: RFC 3339 o fecha-hora local sin zona (se asume UTC).
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTimestamp interpreta expires_at. Texto vacío -> nil.
func ParseTimestamp(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: expires_at %q no es una fecha válida", domain.ErrInvalidInput, s)
}

// CreateNoticeRequest entrada para crear un aviso.
type CreateNoticeRequest struct {
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	Priority  string  `json:"priority"` // low | medium | high; vacío = medium
	IsActive  *bool   `json:"is_active"`
	ExpiresAt *string `json:"expires_at"`
}

// Validate recorta espacios y verifica título y contenido.
func (r *CreateNoticeRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	r.Content = strings.TrimSpace(r.Content)
	if r.Title == "" || r.Content == "" {
		return fmt.Errorf("%w: title y content son requeridos", domain.ErrInvalidInput)
	}
	return nil
}

// UpdateNoticeRequest actualización parcial de un aviso.
type UpdateNoticeRequest struct {
	Title     Optional[string] `json:"title" swaggertype:"string"`
	Content   Optional[string] `json:"content" swaggertype:"string"`
	Priority  Optional[string] `json:"priority" swaggertype:"string"`
	IsActive  Optional[bool]   `json:"is_active" swaggertype:"boolean"`
	ExpiresAt Optional[string] `json:"expires_at" swaggertype:"string"`
}

// NoticeResponse salida de un aviso.
type NoticeResponse struct {
	ID        int64               `json:"id"`
	Title     string              `json:"title"`
	Content   string              `json:"content"`
	Priority  string              `json:"priority"`
	IsActive  bool                `json:"is_active"`
	ExpiresAt *time.Time          `json:"expires_at"`
	Expired   bool                `json:"expired"`
	CreatedBy int64               `json:"created_by"`
	Creator   *AccountRefResponse `json:"creator,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// NoticeListResponse lista de avisos visibles.
type NoticeListResponse struct {
	Items []NoticeResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
