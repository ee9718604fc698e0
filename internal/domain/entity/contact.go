package entity

import "time"

// Contact representa una persona del directorio.
// CreatedBy es inmutable después de la creación.
type Contact struct {
	ID        int64
	FirstName string
	LastName  string
	Email     *string
	Phone     *string
	Mobile    *string
	Address   *string
	City      *string
	State     *string
	ZipCode   *string
	Country   *string
	Notes     *string
	CompanyID *int64
	CreatedBy int64
	CreatedAt time.Time
	UpdatedAt time.Time

	// Company se completa en lecturas cuando CompanyID apunta a una empresa existente.
	Company *CompanyRef
}

// FullName "Nombre Apellido".
func (c *Contact) FullName() string {
	return c.FirstName + " " + c.LastName
}

// ContactFilter filtros del listado de contactos.
type ContactFilter struct {
	Search    string // subcadena sin distinguir mayúsculas en nombre, apellido o email
	CompanyID *int64
	Limit     int
	Offset    int
}
