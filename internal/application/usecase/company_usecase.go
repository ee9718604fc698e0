package usecase

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/jhoicas/directorio-api/internal/application/dto"
	"github.com/jhoicas/directorio-api/internal/domain"
	"github.com/jhoicas/directorio-api/internal/domain/authz"
	"github.com/jhoicas/directorio-api/internal/domain/entity"
	"github.com/jhoicas/directorio-api/internal/domain/repository"
)

// CompanyUseCase aplica reglas de negocio para empresas. Las empresas no se editan ni se
// eliminan desde la API.
type CompanyUseCase struct {
	repo repository.CompanyRepository
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo}
}

// Create crea una empresa. Devuelve domain.ErrConflict si el nombre ya existe.
func (uc *CompanyUseCase) Create(ctx context.Context, actor *authz.Actor, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if err := authz.Check(authz.Request{Actor: actor, Op: authz.OpCreate, Kind: authz.KindCompany}); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByName(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: ya existe una empresa con ese nombre", domain.ErrConflict)
	}
	company := &entity.Company{
		Name:        in.Name,
		Industry:    dto.TextPtr(in.Industry),
		Website:     dto.TextPtr(in.Website),
		Email:       in.Email,
		Phone:       dto.TextPtr(in.Phone),
		Address:     dto.TextPtr(in.Address),
		City:        dto.TextPtr(in.City),
		State:       dto.TextPtr(in.State),
		ZipCode:     dto.TextPtr(in.ZipCode),
		Country:     dto.TextPtr(in.Country),
		Description: dto.TextPtr(in.Description),
		CreatedBy:   actor.AccountID,
	}
	if err := uc.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	out := dto.FromCompany(company)
	return &out, nil
}

// GetByID obtiene una empresa por ID.
func (uc *CompanyUseCase) GetByID(ctx context.Context, actor *authz.Actor, id int64) (*dto.CompanyResponse, error) {
	if err := authz.RequireActor(actor); err != nil {
		return nil, err
	}
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if err := authz.Check(authz.Request{Actor: actor, Op: authz.OpRead, Kind: authz.KindCompany, OwnerID: company.CreatedBy}); err != nil {
		return nil, err
	}
	out := dto.FromCompany(company)
	return &out, nil
}

// List lista empresas con paginación, ordenadas por nombre.
func (uc *CompanyUseCase) List(ctx context.Context, actor *authz.Actor, page dto.PageRequest) (*dto.CompanyListResponse, error) {
	if err := authz.Check(authz.Request{Actor: actor, Op: authz.OpRead, Kind: authz.KindCompany}); err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, total, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return &dto.CompanyListResponse{
		Items: lo.Map(list, func(c *entity.Company, _ int) dto.CompanyResponse { return dto.FromCompany(c) }),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}
