package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jhoicas/directorio-api/internal/domain"
)

// Optional campo de un payload de actualización parcial con tres estados:
// ausente (Set=false), null explícito (Set && Null) o valor (Set && !Null).
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Some construye un Optional con valor.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

// Null construye un Optional con null explícito.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

// UnmarshalJSON solo se invoca cuando la clave está presente en el JSON, incluso con null.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		o.Null = true
		o.Value = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

// HasValue informa si el campo vino con un valor no nulo.
func (o Optional[T]) HasValue() bool {
	return o.Set && !o.Null
}

// ApplyNullable copia el campo sobre un destino anulable: null lo limpia, ausente no lo toca.
func (o Optional[T]) ApplyNullable(dst **T) {
	if !o.Set {
		return
	}
	if o.Null {
		*dst = nil
		return
	}
	v := o.Value
	*dst = &v
}

// ApplyRequired copia el campo sobre un destino obligatorio; null es un error de validación.
func (o Optional[T]) ApplyRequired(field string, dst *T) error {
	if !o.Set {
		return nil
	}
	if o.Null {
		return fmt.Errorf("%w: %s no puede ser null", domain.ErrInvalidInput, field)
	}
	*dst = o.Value
	return nil
}

// ApplyRequiredText como ApplyRequired pero además rechaza textos vacíos tras recortar espacios.
func ApplyRequiredText(field string, o Optional[string], dst *string) error {
	if o.HasValue() {
		o.Value = strings.TrimSpace(o.Value)
		if o.Value == "" {
			return fmt.Errorf("%w: %s es requerido", domain.ErrInvalidInput, field)
		}
	}
	return o.ApplyRequired(field, dst)
}

// ApplyOptionalText copia un texto anulable recortado; el texto vacío equivale a null.
func ApplyOptionalText(o Optional[string], dst **string) {
	if o.HasValue() {
		o.Value = strings.TrimSpace(o.Value)
		if o.Value == "" {
			o = Null[string]()
		}
	}
	o.ApplyNullable(dst)
}

// TextPtr normaliza un texto opcional de entrada: vacío -> nil.
func TextPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
