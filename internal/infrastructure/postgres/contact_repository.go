package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/directorio-api/internal/domain/entity"
	"github.com/jhoicas/directorio-api/internal/domain/repository"
)

var _ repository.ContactRepository = (*ContactRepo)(nil)

// Las lecturas hacen LEFT JOIN con companies para embeber {id, name}.
const contactSelect = `
	SELECT c.id, c.first_name, c.last_name, c.email, c.phone, c.mobile, c.address, c.city, c.state,
	       c.zip_code, c.country, c.notes, c.company_id, c.created_by, c.created_at, c.updated_at,
	       co.id, co.name
	  FROM contacts c
	  LEFT JOIN companies co ON co.id = c.company_id`

// ContactRepo implementación del puerto ContactRepository sobre PostgreSQL.
type ContactRepo struct {
	pool *pgxpool.Pool
}

// NewContactRepository construye el adaptador de persistencia para contactos.
func NewContactRepository(pool *pgxpool.Pool) *ContactRepo {
	return &ContactRepo{pool: pool}
}

func scanContact(row pgx.Row) (*entity.Contact, error) {
	var (
		c           entity.Contact
		companyID   *int64
		companyName *string
	)
	err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Mobile, &c.Address, &c.City, &c.State,
		&c.ZipCode, &c.Country, &c.Notes, &c.CompanyID, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt,
		&companyID, &companyName)
	if err != nil {
		return nil, err
	}
	if companyID != nil && companyName != nil {
		c.Company = &entity.CompanyRef{ID: *companyID, Name: *companyName}
	}
	return &c, nil
}

// Create persiste un contacto y completa la empresa embebida.
func (r *ContactRepo) Create(ctx context.Context, c *entity.Contact) error {
	query := `
		INSERT INTO contacts (first_name, last_name, email, phone, mobile, address, city, state, zip_code, country, notes, company_id, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`
	err := r.pool.QueryRow(ctx, query,
		c.FirstName, c.LastName, c.Email, c.Phone, c.Mobile, c.Address, c.City, c.State,
		c.ZipCode, c.Country, c.Notes, c.CompanyID, c.CreatedBy,
	).Scan(&c.ID)
	if err != nil {
		return translateWrite("insert contact", err, false)
	}
	return r.reload(ctx, c)
}

func (r *ContactRepo) reload(ctx context.Context, c *entity.Contact) error {
	fresh, err := r.GetByID(ctx, c.ID)
	if err != nil {
		return err
	}
	if fresh != nil {
		*c = *fresh
	}
	return nil
}

// GetByID obtiene un contacto por ID.
func (r *ContactRepo) GetByID(ctx context.Context, id int64) (*entity.Contact, error) {
	c, err := scanContact(r.pool.QueryRow(ctx, contactSelect+` WHERE c.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get contact: %w", err)
	}
	return c, nil
}

// escapeLike escapa los comodines de LIKE para buscar la subcadena literal.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func contactWhere(f entity.ContactFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if f.Search != "" {
		args = append(args, "%"+escapeLike(f.Search)+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(c.first_name ILIKE $%d OR c.last_name ILIKE $%d OR c.email ILIKE $%d)", n, n, n))
	}
	if f.CompanyID != nil {
		args = append(args, *f.CompanyID)
		conds = append(conds, fmt.Sprintf("c.company_id = $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List aplica búsqueda ILIKE y filtro por empresa, con total sin paginar.
func (r *ContactRepo) List(ctx context.Context, f entity.ContactFilter) ([]*entity.Contact, int, error) {
	where, args := contactWhere(f)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM contacts c`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count contacts: %w", err)
	}

	args = append(args, f.Limit, f.Offset)
	query := contactSelect + where + fmt.Sprintf(" ORDER BY c.id LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Contact, 0)
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan contact: %w", err)
		}
		list = append(list, c)
	}
	return list, total, rows.Err()
}

// Update reescribe los campos editables; created_by no se toca.
func (r *ContactRepo) Update(ctx context.Context, c *entity.Contact) error {
	query := `
		UPDATE contacts SET first_name = $2, last_name = $3, email = $4, phone = $5, mobile = $6, address = $7,
		       city = $8, state = $9, zip_code = $10, country = $11, notes = $12, company_id = $13, updated_at = now()
		WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query,
		c.ID, c.FirstName, c.LastName, c.Email, c.Phone, c.Mobile, c.Address,
		c.City, c.State, c.ZipCode, c.Country, c.Notes, c.CompanyID,
	)
	if err != nil {
		return translateWrite("update contact", err, false)
	}
	if err := expectRow(tag); err != nil {
		return err
	}
	return r.reload(ctx, c)
}

// Delete elimina un contacto por ID.
func (r *ContactRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return translateWrite("delete contact", err, true)
	}
	return expectRow(tag)
}
