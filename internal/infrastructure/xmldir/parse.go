package xmldir

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/directorio-api/internal/application/ports"
)

type ciscoDirectory struct {
	XMLName xml.Name `xml:"CiscoIPPhoneDirectory"`
	Title   string   `xml:"Title"`
	Entries []struct {
		Name      string `xml:"Name"`
		Telephone string `xml:"Telephone"`
	} `xml:"DirectoryEntry"`
}

// Parse lee un CiscoIPPhoneDirectory (UTF-8 o ISO-8859-1, como los exportan muchas centralitas)
// y devuelve sus entradas. "Apellido, Nombre" se separa en sus dos partes; si no hay coma,
// la última palabra se toma como apellido.
func Parse(r io.Reader) (string, []ports.DirectoryEntry, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		switch strings.ToUpper(charset) {
		case "ISO-8859-1", "ISO8859-1", "LATIN1":
			return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
		case "WINDOWS-1252", "CP1252":
			return transform.NewReader(input, charmap.Windows1252.NewDecoder()), nil
		case "UTF-8", "":
			return input, nil
		default:
			return nil, fmt.Errorf("charset no soportado %q", charset)
		}
	}

	var doc ciscoDirectory
	if err := dec.Decode(&doc); err != nil {
		return "", nil, fmt.Errorf("xmldir: decodificar: %w", err)
	}

	entries := make([]ports.DirectoryEntry, 0, len(doc.Entries))
	for _, e := range doc.Entries {
		first, last := splitName(e.Name)
		if first == "" && last == "" {
			continue
		}
		entries = append(entries, ports.DirectoryEntry{
			FirstName: first,
			LastName:  last,
			Phone:     strings.TrimSpace(e.Telephone),
		})
	}
	return strings.TrimSpace(doc.Title), entries, nil
}

func splitName(name string) (first, last string) {
	name = strings.TrimSpace(name)
	if i := strings.Index(name, ","); i >= 0 {
		return strings.TrimSpace(name[i+1:]), strings.TrimSpace(name[:i])
	}
	fields := strings.Fields(name)
	switch len(fields) {
	case 0:
		return "", ""
	case 1:
		return fields[0], ""
	default:
		return strings.Join(fields[:len(fields)-1], " "), fields[len(fields)-1]
	}
}
