package xmldir_test

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ucarion/c14n"

	"github.com/jhoicas/directorio-api/internal/application/ports"
	"github.com/jhoicas/directorio-api/internal/infrastructure/xmldir"
)

func sampleDirectory() ports.Directory {
	return ports.Directory{
		Title: "Directorio",
		Entries: []ports.DirectoryEntry{
			{FirstName: "Ana", LastName: "Ávila", Phone: "100"},
			{FirstName: "Juan", LastName: "Bravo", Mobile: "3001234567"},
			{FirstName: "Sin", LastName: "Teléfono"},
		},
	}
}

func TestRenderDirectoryXML_Estructura(t *testing.T) {
	body, etag, err := xmldir.NewRenderer(0).RenderDirectoryXML(context.Background(), sampleDirectory())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(etag, `"`) && strings.HasSuffix(etag, `"`))

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(body))
	root := doc.SelectElement("CiscoIPPhoneDirectory")
	require.NotNil(t, root)
	assert.Equal(t, "Directorio", root.SelectElement("Title").Text())
	assert.Equal(t, "2 contactos", root.SelectElement("Prompt").Text(), "el conteo solo incluye entradas marcables")

	entries := root.SelectElements("DirectoryEntry")
	require.Len(t, entries, 2, "los contactos sin teléfono se omiten")
	assert.Equal(t, "Ávila, Ana", entries[0].SelectElement("Name").Text())
	assert.Equal(t, "100", entries[0].SelectElement("Telephone").Text())
	assert.Equal(t, "3001234567", entries[1].SelectElement("Telephone").Text(), "sin fijo se usa el móvil")
}

func TestRenderDirectoryXML_ETagEstable(t *testing.T) {
	r := xmldir.NewRenderer(0)
	_, a, err := r.RenderDirectoryXML(context.Background(), sampleDirectory())
	require.NoError(t, err)
	_, b, err := r.RenderDirectoryXML(context.Background(), sampleDirectory())
	require.NoError(t, err)
	assert.Equal(t, a, b)

	changed := sampleDirectory()
	changed.Entries[0].Phone = "101"
	_, c, err := r.RenderDirectoryXML(context.Background(), changed)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestRenderDirectoryXML_ETagIgnoraIndentacion(t *testing.T) {
	body, etag, err := xmldir.NewRenderer(0).RenderDirectoryXML(context.Background(), sampleDirectory())
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(body))
	doc.Unindent()
	compact := etree.NewDocument()
	compact.SetRoot(doc.Root().Copy())
	raw, err := compact.WriteToBytes()
	require.NoError(t, err)

	dec := xml.NewDecoder(bytes.NewReader(raw))
	canon, err := c14n.Canonicalize(dec)
	require.NoError(t, err)
	sum := sha256.Sum256(canon)
	assert.Equal(t, `"`+hex.EncodeToString(sum[:])+`"`, etag, "el ETag se calcula sobre el documento sin indentar")
}

func TestRenderDirectoryXML_Trunca(t *testing.T) {
	dir := ports.Directory{Title: "Grande"}
	for i := 0; i < 5; i++ {
		dir.Entries = append(dir.Entries, ports.DirectoryEntry{FirstName: "N", LastName: fmt.Sprint(i), Phone: fmt.Sprint(i)})
	}
	body, _, err := xmldir.NewRenderer(3).RenderDirectoryXML(context.Background(), dir)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(body))
	root := doc.Root()
	assert.Len(t, root.SelectElements("DirectoryEntry"), 3)
	assert.Equal(t, "3 de 5 contactos", root.SelectElement("Prompt").Text())
}

func TestRenderDirectoryXML_SinTelefonoNoConsumeElTope(t *testing.T) {
	dir := ports.Directory{Title: "Mixto"}
	for i := 0; i < xmldir.MaxEntries; i++ {
		dir.Entries = append(dir.Entries, ports.DirectoryEntry{FirstName: "Sin", LastName: fmt.Sprint("Número", i)})
	}
	for i := 0; i < 5; i++ {
		dir.Entries = append(dir.Entries, ports.DirectoryEntry{FirstName: "Con", LastName: fmt.Sprint("Número", i), Phone: "555"})
	}
	body, _, err := xmldir.NewRenderer(0).RenderDirectoryXML(context.Background(), dir)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(body))
	root := doc.Root()
	entries := root.SelectElements("DirectoryEntry")
	require.Len(t, entries, 5)
	for _, e := range entries {
		assert.Equal(t, "555", e.SelectElement("Telephone").Text())
	}
	assert.Equal(t, "5 contactos", root.SelectElement("Prompt").Text())
}

func TestRenderDirectoryXML_TruncaTrasFiltrar(t *testing.T) {
	dir := ports.Directory{Title: "Grande"}
	for i := 0; i < 4; i++ {
		dir.Entries = append(dir.Entries,
			ports.DirectoryEntry{FirstName: "Sin", LastName: fmt.Sprint(i)},
			ports.DirectoryEntry{FirstName: "Con", LastName: fmt.Sprint(i), Mobile: fmt.Sprint("300", i)},
		)
	}
	body, _, err := xmldir.NewRenderer(3).RenderDirectoryXML(context.Background(), dir)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(body))
	root := doc.Root()
	assert.Len(t, root.SelectElements("DirectoryEntry"), 3)
	assert.Equal(t, "3 de 4 contactos", root.SelectElement("Prompt").Text())
}

func TestRenderDirectoryXML_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := xmldir.NewRenderer(0).RenderDirectoryXML(ctx, sampleDirectory())
	assert.ErrorIs(t, err, context.Canceled)
}
