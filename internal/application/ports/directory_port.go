package ports

import (
	"context"
	"time"
)

// DirectoryEntry una línea del directorio exportado.
type DirectoryEntry struct {
	ContactID int64
	FirstName string
	LastName  string
	Company   string
	Email     string
	Phone     string
	Mobile    string
}

// DisplayName "Apellido, Nombre".
func (e DirectoryEntry) DisplayName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.LastName + ", " + e.FirstName
}

// Directory documento a renderizar; Entries ya vienen ordenadas.
type Directory struct {
	Title       string
	GeneratedAt time.Time
	Entries     []DirectoryEntry
}

// DirectoryPDFRenderer define el puerto de salida para el directorio imprimible.
type DirectoryPDFRenderer interface {
	RenderDirectoryPDF(ctx context.Context, dir Directory) ([]byte, error)
}

// DirectoryXMLRenderer define el puerto de salida para el directorio de teléfonos IP.
// Devuelve además un ETag estable sobre la forma canónica del documento.
type DirectoryXMLRenderer interface {
	RenderDirectoryXML(ctx context.Context, dir Directory) ([]byte, string, error)
}
