// Package xmldir genera el directorio en formato CiscoIPPhoneDirectory para teléfonos IP.
package xmldir

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"

	"github.com/beevik/etree"
	"github.com/ucarion/c14n"

	"github.com/jhoicas/directorio-api/internal/application/ports"
)

// MaxEntries los teléfonos Cisco descartan el documento si supera 32 entradas por página;
// las entradas con teléfono que sobran se truncan y se indica en el Prompt.
const MaxEntries = 32

var _ ports.DirectoryXMLRenderer = (*Renderer)(nil)

// Renderer implementa ports.DirectoryXMLRenderer con etree.
type Renderer struct {
	maxEntries int
}

// NewRenderer construye el renderer. maxEntries <= 0 usa MaxEntries.
func NewRenderer(maxEntries int) *Renderer {
	if maxEntries <= 0 {
		maxEntries = MaxEntries
	}
	return &Renderer{maxEntries: maxEntries}
}

// RenderDirectoryXML devuelve el documento y su ETag (SHA-256 de la forma canónica C14N).
func (r *Renderer) RenderDirectoryXML(ctx context.Context, dir ports.Directory) ([]byte, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("CiscoIPPhoneDirectory")
	root.CreateElement("Title").SetText(dir.Title)

	// Solo cuentan las entradas marcables; el tope se aplica después de filtrar.
	entries := make([]ports.DirectoryEntry, 0, len(dir.Entries))
	for _, e := range dir.Entries {
		if phoneOf(e) != "" {
			entries = append(entries, e)
		}
	}
	prompt := fmt.Sprintf("%d contactos", len(entries))
	if len(entries) > r.maxEntries {
		prompt = fmt.Sprintf("%d de %d contactos", r.maxEntries, len(entries))
		entries = entries[:r.maxEntries]
	}
	root.CreateElement("Prompt").SetText(prompt)

	for _, e := range entries {
		de := root.CreateElement("DirectoryEntry")
		de.CreateElement("Name").SetText(e.DisplayName())
		de.CreateElement("Telephone").SetText(phoneOf(e))
	}

	etag, err := computeETag(root)
	if err != nil {
		return nil, "", err
	}

	doc.Indent(2)
	var out bytes.Buffer
	if _, err := doc.WriteTo(&out); err != nil {
		return nil, "", fmt.Errorf("xmldir: serializar: %w", err)
	}
	return out.Bytes(), etag, nil
}

// phoneOf prefiere el fijo y cae al móvil.
func phoneOf(e ports.DirectoryEntry) string {
	if e.Phone != "" {
		return e.Phone
	}
	return e.Mobile
}

// computeETag canonicaliza solo el elemento raíz antes de indentar; la declaración no cuenta.
func computeETag(root *etree.Element) (string, error) {
	elDoc := etree.NewDocument()
	elDoc.SetRoot(root.Copy())
	raw, err := elDoc.WriteToBytes()
	if err != nil {
		return "", fmt.Errorf("xmldir: serializar raíz: %w", err)
	}
	canon, err := canonicalizeXML(raw)
	if err != nil {
		return "", fmt.Errorf("xmldir: canonicalizar: %w", err)
	}
	sum := sha256.Sum256(canon)
	return `"` + hex.EncodeToString(sum[:]) + `"`, nil
}

func canonicalizeXML(data []byte) ([]byte, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	return c14n.Canonicalize(dec)
}
