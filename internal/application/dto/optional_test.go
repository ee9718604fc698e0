package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/directorio-api/internal/application/dto"
	"github.com/jhoicas/directorio-api/internal/domain"
)

type payload struct {
	Phone dto.Optional[string] `json:"phone"`
	Name  dto.Optional[string] `json:"name"`
	Age   dto.Optional[int64]  `json:"age"`
}

func TestOptional_TresEstados(t *testing.T) {
	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"phone":"555-0000","name":null}`), &p))

	assert.True(t, p.Phone.HasValue())
	assert.Equal(t, "555-0000", p.Phone.Value)

	assert.True(t, p.Name.Set)
	assert.True(t, p.Name.Null)

	assert.False(t, p.Age.Set, "clave ausente no marca Set")
}

func TestOptional_TipoIncorrecto(t *testing.T) {
	var p payload
	err := json.Unmarshal([]byte(`{"age":"diez"}`), &p)
	assert.Error(t, err)
}

func TestOptional_ApplyNullable(t *testing.T) {
	original := "viejo"
	dst := &original

	dto.Optional[string]{}.ApplyNullable(&dst)
	require.NotNil(t, dst)
	assert.Equal(t, "viejo", *dst)

	dto.Some("nuevo").ApplyNullable(&dst)
	require.NotNil(t, dst)
	assert.Equal(t, "nuevo", *dst)

	dto.Null[string]().ApplyNullable(&dst)
	assert.Nil(t, dst)
}

func TestOptional_ApplyRequired(t *testing.T) {
	name := "Ana"
	require.NoError(t, dto.Optional[string]{}.ApplyRequired("first_name", &name))
	assert.Equal(t, "Ana", name)

	err := dto.Null[string]().ApplyRequired("first_name", &name)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "Ana", name)

	err = dto.ApplyRequiredText("first_name", dto.Some("   "), &name)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, dto.ApplyRequiredText("first_name", dto.Some("  Bea "), &name))
	assert.Equal(t, "Bea", name)
}

func TestApplyOptionalText_VacioLimpia(t *testing.T) {
	v := "algo"
	dst := &v
	dto.ApplyOptionalText(dto.Some(""), &dst)
	assert.Nil(t, dst)
}

func TestApplyOptionalText_Recorta(t *testing.T) {
	var dst *string
	dto.ApplyOptionalText(dto.Some(" 555 "), &dst)
	require.NotNil(t, dst)
	assert.Equal(t, "555", *dst)

	dto.ApplyOptionalText(dto.Some("\t "), &dst)
	assert.Nil(t, dst, "solo espacios equivale a null")
}

func TestPageRequest_DefaultPage(t *testing.T) {
	p := dto.PageRequest{Limit: 0, Offset: -3}
	p.DefaultPage()
	assert.Equal(t, dto.DefaultLimit, p.Limit)
	assert.Equal(t, 0, p.Offset)

	p = dto.PageRequest{Limit: 1000, Offset: 5}
	p.DefaultPage()
	assert.Equal(t, dto.MaxLimit, p.Limit)
	assert.Equal(t, 5, p.Offset)
}
