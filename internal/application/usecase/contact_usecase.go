package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/jhoicas/directorio-api/internal/application/dto"
	"github.com/jhoicas/directorio-api/internal/domain"
	"github.com/jhoicas/directorio-api/internal/domain/authz"
	"github.com/jhoicas/directorio-api/internal/domain/entity"
	"github.com/jhoicas/directorio-api/internal/domain/repository"
)

// ContactUseCase aplica reglas de negocio para contactos.
type ContactUseCase struct {
	contacts  repository.ContactRepository
	companies repository.CompanyRepository
}

// NewContactUseCase construye el caso de uso.
func NewContactUseCase(contacts repository.ContactRepository, companies repository.CompanyRepository) *ContactUseCase {
	return &ContactUseCase{contacts: contacts, companies: companies}
}

// List lista contactos con búsqueda por subcadena (nombre, apellido, email) y filtro por empresa.
func (uc *ContactUseCase) List(ctx context.Context, actor *authz.Actor, in dto.ContactListRequest) (*dto.ContactListResponse, error) {
	if err := authz.Check(authz.Request{Actor: actor, Op: authz.OpRead, Kind: authz.KindContact}); err != nil {
		return nil, err
	}
	in.DefaultPage()
	list, total, err := uc.contacts.List(ctx, entity.ContactFilter{
		Search:    strings.TrimSpace(in.Search),
		CompanyID: in.CompanyID,
		Limit:     in.Limit,
		Offset:    in.Offset,
	})
	if err != nil {
		return nil, err
	}
	return &dto.ContactListResponse{
		Items: lo.Map(list, func(c *entity.Contact, _ int) dto.ContactResponse { return dto.FromContact(c) }),
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// GetByID obtiene un contacto con su empresa embebida.
func (uc *ContactUseCase) GetByID(ctx context.Context, actor *authz.Actor, id int64) (*dto.ContactResponse, error) {
	contact, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Check(authz.Request{Actor: actor, Op: authz.OpRead, Kind: authz.KindContact, OwnerID: contact.CreatedBy}); err != nil {
		return nil, err
	}
	out := dto.FromContact(contact)
	return &out, nil
}

// Create crea un contacto (admin o editor). created_by es siempre el actor.
func (uc *ContactUseCase) Create(ctx context.Context, actor *authz.Actor, in dto.CreateContactRequest) (*dto.ContactResponse, error) {
	if err := authz.Check(authz.Request{Actor: actor, Op: authz.OpCreate, Kind: authz.KindContact}); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := uc.checkCompany(ctx, in.CompanyID); err != nil {
		return nil, err
	}
	contact := &entity.Contact{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     dto.TextPtr(in.Phone),
		Mobile:    dto.TextPtr(in.Mobile),
		Address:   dto.TextPtr(in.Address),
		City:      dto.TextPtr(in.City),
		State:     dto.TextPtr(in.State),
		ZipCode:   dto.TextPtr(in.ZipCode),
		Country:   dto.TextPtr(in.Country),
		Notes:     dto.TextPtr(in.Notes),
		CompanyID: in.CompanyID,
		CreatedBy: actor.AccountID,
	}
	if err := uc.contacts.Create(ctx, contact); err != nil {
		return nil, err
	}
	out := dto.FromContact(contact)
	return &out, nil
}

// Update aplica solo los campos presentes en el payload (admin, editor o creador).
func (uc *ContactUseCase) Update(ctx context.Context, actor *authz.Actor, id int64, in dto.UpdateContactRequest) (*dto.ContactResponse, error) {
	contact, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Check(authz.Request{Actor: actor, Op: authz.OpUpdate, Kind: authz.KindContact, OwnerID: contact.CreatedBy}); err != nil {
		return nil, err
	}

	if err := dto.ApplyRequiredText("first_name", in.FirstName, &contact.FirstName); err != nil {
		return nil, err
	}
	if err := dto.ApplyRequiredText("last_name", in.LastName, &contact.LastName); err != nil {
		return nil, err
	}
	dto.ApplyOptionalText(in.Email, &contact.Email)
	if contact.Email != nil && in.Email.HasValue() {
		if err := dto.ValidateEmail(*contact.Email); err != nil {
			return nil, err
		}
	}
	dto.ApplyOptionalText(in.Phone, &contact.Phone)
	dto.ApplyOptionalText(in.Mobile, &contact.Mobile)
	dto.ApplyOptionalText(in.Address, &contact.Address)
	dto.ApplyOptionalText(in.City, &contact.City)
	dto.ApplyOptionalText(in.State, &contact.State)
	dto.ApplyOptionalText(in.ZipCode, &contact.ZipCode)
	dto.ApplyOptionalText(in.Country, &contact.Country)
	dto.ApplyOptionalText(in.Notes, &contact.Notes)
	if in.CompanyID.HasValue() {
		if err := uc.checkCompany(ctx, &in.CompanyID.Value); err != nil {
			return nil, err
		}
	}
	in.CompanyID.ApplyNullable(&contact.CompanyID)

	if err := uc.contacts.Update(ctx, contact); err != nil {
		return nil, err
	}
	out := dto.FromContact(contact)
	return &out, nil
}

// Delete elimina un contacto (admin, editor o creador).
func (uc *ContactUseCase) Delete(ctx context.Context, actor *authz.Actor, id int64) error {
	contact, err := uc.load(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := authz.Check(authz.Request{Actor: actor, Op: authz.OpDelete, Kind: authz.KindContact, OwnerID: contact.CreatedBy}); err != nil {
		return err
	}
	return uc.contacts.Delete(ctx, id)
}

func (uc *ContactUseCase) load(ctx context.Context, actor *authz.Actor, id int64) (*entity.Contact, error) {
	if err := authz.RequireActor(actor); err != nil {
		return nil, err
	}
	contact, err := uc.contacts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, domain.ErrNotFound
	}
	return contact, nil
}

func (uc *ContactUseCase) checkCompany(ctx context.Context, companyID *int64) error {
	if companyID == nil {
		return nil
	}
	company, err := uc.companies.GetByID(ctx, *companyID)
	if err != nil {
		return err
	}
	if company == nil {
		return fmt.Errorf("%w: company_id %d no existe", domain.ErrInvalidInput, *companyID)
	}
	return nil
}
