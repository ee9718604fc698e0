package entity

import "time"

// Company representa una empresa del directorio. Name es único.
type Company struct {
	ID          int64
	Name        string
	Industry    *string
	Website     *string
	Email       *string
	Phone       *string
	Address     *string
	City        *string
	State       *string
	ZipCode     *string
	Country     *string
	Description *string
	CreatedBy   int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CompanyRef referencia {id, name} embebida en los contactos.
type CompanyRef struct {
	ID   int64
	Name string
}
