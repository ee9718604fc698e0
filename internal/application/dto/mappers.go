package dto

import (
	"time"

	"github.com/jhoicas/directorio-api/internal/domain/entity"
)

// FromAccount convierte la entidad en respuesta (sin password).
func FromAccount(a *entity.Account) AccountResponse {
	return AccountResponse{
		ID:        a.ID,
		Username:  a.Username,
		Email:     a.Email,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Role:      string(a.Role),
		IsActive:  a.IsActive,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func FromCompany(c *entity.Company) CompanyResponse {
	return CompanyResponse{
		ID:          c.ID,
		Name:        c.Name,
		Industry:    c.Industry,
		Website:     c.Website,
		Email:       c.Email,
		Phone:       c.Phone,
		Address:     c.Address,
		City:        c.City,
		State:       c.State,
		ZipCode:     c.ZipCode,
		Country:     c.Country,
		Description: c.Description,
		CreatedBy:   c.CreatedBy,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func FromContact(c *entity.Contact) ContactResponse {
	out := ContactResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		FullName:  c.FullName(),
		Email:     c.Email,
		Phone:     c.Phone,
		Mobile:    c.Mobile,
		Address:   c.Address,
		City:      c.City,
		State:     c.State,
		ZipCode:   c.ZipCode,
		Country:   c.Country,
		Notes:     c.Notes,
		CompanyID: c.CompanyID,
		CreatedBy: c.CreatedBy,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if c.Company != nil {
		out.Company = &CompanyRefResponse{ID: c.Company.ID, Name: c.Company.Name}
	}
	return out
}

// FromNotice calcula el estado expired respecto a now.
func FromNotice(n *entity.Notice, now time.Time) NoticeResponse {
	out := NoticeResponse{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		Priority:  string(n.Priority),
		IsActive:  n.IsActive,
		ExpiresAt: n.ExpiresAt,
		Expired:   n.Expired(now),
		CreatedBy: n.CreatedBy,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
	if n.Creator != nil {
		out.Creator = &AccountRefResponse{ID: n.Creator.ID, Username: n.Creator.Username}
	}
	return out
}
