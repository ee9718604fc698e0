package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/directorio-api/internal/application/dto"
	"github.com/jhoicas/directorio-api/internal/application/ports"
	"github.com/jhoicas/directorio-api/internal/application/usecase"
	"github.com/jhoicas/directorio-api/internal/domain"
)

type fakeRenderer struct {
	got ports.Directory
}

func (r *fakeRenderer) RenderDirectoryPDF(_ context.Context, dir ports.Directory) ([]byte, error) {
	r.got = dir
	return []byte("%PDF"), nil
}

func (r *fakeRenderer) RenderDirectoryXML(_ context.Context, dir ports.Directory) ([]byte, string, error) {
	r.got = dir
	return []byte("<CiscoIPPhoneDirectory/>"), `"abc"`, nil
}

func TestExport_OrdenaConCollationYRespetaFiltros(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, in := range []dto.CreateContactRequest{
		{FirstName: "Bruno", LastName: "Zapata"},
		{FirstName: "Ana", LastName: "Ávila", Phone: strPtr("100")},
		{FirstName: "Eva", LastName: "avendaño"},
		{FirstName: "Juan", LastName: "Bravo"},
	} {
		_, err := f.contacts.Create(ctx, f.editor, in)
		require.NoError(t, err)
	}

	r := &fakeRenderer{}
	uc := usecase.NewExportUseCase(f.store.Contacts(), r, r, usecase.ExportConfig{Locale: "es"})

	res, err := uc.Export(ctx, f.viewer, usecase.ExportXML, dto.ContactListRequest{})
	require.NoError(t, err)
	assert.Equal(t, `"abc"`, res.ETag)
	assert.Contains(t, res.ContentType, "xml")

	names := make([]string, 0, len(r.got.Entries))
	for _, e := range r.got.Entries {
		names = append(names, e.LastName)
	}
	assert.Equal(t, []string{"avendaño", "Ávila", "Bravo", "Zapata"}, names)
	assert.Equal(t, "Directorio", r.got.Title)

	res, err = uc.Export(ctx, f.viewer, usecase.ExportPDF, dto.ContactListRequest{Search: "bravo"})
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", res.ContentType)
	require.Len(t, r.got.Entries, 1)
	assert.Equal(t, "Juan", r.got.Entries[0].FirstName)

	_, err = uc.Export(ctx, nil, usecase.ExportPDF, dto.ContactListRequest{})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}
