package xmldir_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/directorio-api/internal/infrastructure/xmldir"
)

func TestParse_IdaYVuelta(t *testing.T) {
	body, _, err := xmldir.NewRenderer(0).RenderDirectoryXML(context.Background(), sampleDirectory())
	require.NoError(t, err)

	title, entries, err := xmldir.Parse(bytes.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, "Directorio", title)
	require.Len(t, entries, 2)
	assert.Equal(t, "Ana", entries[0].FirstName)
	assert.Equal(t, "Ávila", entries[0].LastName)
	assert.Equal(t, "100", entries[0].Phone)
}

func TestParse_Latin1(t *testing.T) {
	src := `<?xml version="1.0" encoding="ISO-8859-1"?>
<CiscoIPPhoneDirectory>
  <Title>Centralita</Title>
  <DirectoryEntry><Name>María José Núñez</Name><Telephone>2001</Telephone></DirectoryEntry>
  <DirectoryEntry><Name>Recepción</Name><Telephone>0</Telephone></DirectoryEntry>
  <DirectoryEntry><Name>  </Name><Telephone>9</Telephone></DirectoryEntry>
</CiscoIPPhoneDirectory>`
	latin1, err := charmap.ISO8859_1.NewEncoder().String(src)
	require.NoError(t, err)

	_, entries, err := xmldir.Parse(strings.NewReader(latin1))
	require.NoError(t, err)
	require.Len(t, entries, 2, "las entradas sin nombre se descartan")
	assert.Equal(t, "María José", entries[0].FirstName)
	assert.Equal(t, "Núñez", entries[0].LastName)
	assert.Equal(t, "Recepción", entries[1].FirstName)
	assert.Empty(t, entries[1].LastName)
}

func TestParse_DocumentoInvalido(t *testing.T) {
	_, _, err := xmldir.Parse(strings.NewReader("<Otro/>"))
	assert.Error(t, err)
}
