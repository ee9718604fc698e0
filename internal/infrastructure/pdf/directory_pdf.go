// Package pdf genera el directorio de contactos imprimible.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título                     │  Fecha + N° contactos  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Nombre | Empresa | Teléfono | Móvil | Email          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda                                            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/directorio-api/internal/application/ports"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ ports.DirectoryPDFRenderer = (*MarotoDirectoryRenderer)(nil)

// MarotoDirectoryRenderer implementa ports.DirectoryPDFRenderer usando Maroto v2.
type MarotoDirectoryRenderer struct{}

// NewMarotoDirectoryRenderer construye el generador.
func NewMarotoDirectoryRenderer() *MarotoDirectoryRenderer { return &MarotoDirectoryRenderer{} }

// RenderDirectoryPDF genera el PDF y devuelve sus bytes.
func (g *MarotoDirectoryRenderer) RenderDirectoryPDF(ctx context.Context, dir ports.Directory) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(dir.Title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(dir))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for i, e := range dir.Entries {
		if i%200 == 0 && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		m.AddRows(entryRow(e, i%2 == 1))
	}
	if len(dir.Entries) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Sin contactos para los filtros indicados.", props.Text{Size: 9, Top: 3, Align: align.Center, Color: colorGray}),
		)))
	}
	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(6).Add(col.New(12).Add(
		text.New("Documento de uso interno.", props.Text{Size: 7, Color: colorGray, Top: 1}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y fecha + total (der).
func headerRow(dir ports.Directory) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(dir.Title, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+dir.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New(fmt.Sprintf("%d contactos", len(dir.Entries)), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla con fondo del color primario.
func tableHeaderRow() core.Row {
	h := func(label string, size int) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorWhite, Top: 2, Left: 1,
		}))
	}
	return row.New(8).Add(
		h("Nombre", 3),
		h("Empresa", 2),
		h("Teléfono", 2),
		h("Móvil", 2),
		h("Email", 3),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// entryRow: una fila por contacto, con bandas alternas.
func entryRow(e ports.DirectoryEntry, striped bool) core.Row {
	cell := func(s string, size int) core.Col {
		return col.New(size).Add(text.New(nonEmpty(s, "—"), props.Text{Size: 8, Top: 1.5, Left: 1}))
	}
	r := row.New(7).Add(
		cell(e.DisplayName(), 3),
		cell(e.Company, 2),
		cell(e.Phone, 2),
		cell(e.Mobile, 2),
		cell(e.Email, 3),
	)
	if striped {
		r = r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
	}
	return r
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
