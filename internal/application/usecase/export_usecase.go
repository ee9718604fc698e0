package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/samber/lo"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jhoicas/directorio-api/internal/application/dto"
	"github.com/jhoicas/directorio-api/internal/application/ports"
	"github.com/jhoicas/directorio-api/internal/domain/authz"
	"github.com/jhoicas/directorio-api/internal/domain/entity"
	"github.com/jhoicas/directorio-api/internal/domain/repository"
)

// ExportFormat formato de exportación del directorio.
type ExportFormat string

const (
	ExportPDF ExportFormat = "pdf"
	ExportXML ExportFormat = "xml"
)

// ExportResult documento generado listo para servir.
type ExportResult struct {
	ContentType string
	Filename    string
	Body        []byte
	ETag        string // solo XML
}

// ExportConfig opciones de presentación.
type ExportConfig struct {
	Locale string // etiqueta BCP 47 para ordenar nombres
	Title  string
}

// ExportUseCase genera el directorio de contactos imprimible (PDF) o para teléfonos IP (XML).
type ExportUseCase struct {
	contacts repository.ContactRepository
	pdf      ports.DirectoryPDFRenderer
	xml      ports.DirectoryXMLRenderer
	cfg      ExportConfig
	tag      language.Tag
	now      func() time.Time
}

// NewExportUseCase construye el caso de uso; un locale inválido cae en español.
func NewExportUseCase(contacts repository.ContactRepository, pdf ports.DirectoryPDFRenderer, xml ports.DirectoryXMLRenderer, cfg ExportConfig) *ExportUseCase {
	tag, err := language.Parse(cfg.Locale)
	if err != nil {
		tag = language.Spanish
	}
	if cfg.Title == "" {
		cfg.Title = "Directorio"
	}
	return &ExportUseCase{contacts: contacts, pdf: pdf, xml: xml, cfg: cfg, tag: tag, now: time.Now}
}

// Export genera el directorio con los mismos filtros que el listado (sin paginar).
func (uc *ExportUseCase) Export(ctx context.Context, actor *authz.Actor, format ExportFormat, in dto.ContactListRequest) (*ExportResult, error) {
	if err := authz.Check(authz.Request{Actor: actor, Op: authz.OpRead, Kind: authz.KindContact}); err != nil {
		return nil, err
	}
	contacts, err := uc.collect(ctx, entity.ContactFilter{Search: in.Search, CompanyID: in.CompanyID})
	if err != nil {
		return nil, err
	}
	dir := ports.Directory{
		Title:       uc.cfg.Title,
		GeneratedAt: uc.now().UTC(),
		Entries:     uc.sortEntries(lo.Map(contacts, func(c *entity.Contact, _ int) ports.DirectoryEntry { return toEntry(c) })),
	}

	switch format {
	case ExportPDF:
		body, err := uc.pdf.RenderDirectoryPDF(ctx, dir)
		if err != nil {
			return nil, err
		}
		return &ExportResult{ContentType: "application/pdf", Filename: "directorio.pdf", Body: body}, nil
	case ExportXML:
		body, etag, err := uc.xml.RenderDirectoryXML(ctx, dir)
		if err != nil {
			return nil, err
		}
		return &ExportResult{ContentType: "text/xml; charset=utf-8", Filename: "directorio.xml", Body: body, ETag: etag}, nil
	default:
		return nil, fmt.Errorf("export: formato desconocido %q", format)
	}
}

func (uc *ExportUseCase) collect(ctx context.Context, filter entity.ContactFilter) ([]*entity.Contact, error) {
	var all []*entity.Contact
	filter.Limit = dto.MaxLimit
	for {
		batch, total, err := uc.contacts.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
		filter.Offset += len(batch)
		if len(batch) == 0 || filter.Offset >= total {
			return all, nil
		}
	}
}

// sortEntries ordena por apellido y nombre según las reglas de collation del locale.
func (uc *ExportUseCase) sortEntries(entries []ports.DirectoryEntry) []ports.DirectoryEntry {
	col := collate.New(uc.tag, collate.IgnoreCase)
	sort.SliceStable(entries, func(i, j int) bool {
		return col.CompareString(entries[i].DisplayName(), entries[j].DisplayName()) < 0
	})
	return entries
}

func toEntry(c *entity.Contact) ports.DirectoryEntry {
	e := ports.DirectoryEntry{
		ContactID: c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     lo.FromPtr(c.Email),
		Phone:     lo.FromPtr(c.Phone),
		Mobile:    lo.FromPtr(c.Mobile),
	}
	if c.Company != nil {
		e.Company = c.Company.Name
	}
	return e
}
