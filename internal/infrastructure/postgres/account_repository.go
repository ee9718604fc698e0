package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/directorio-api/internal/domain"
	"github.com/jhoicas/directorio-api/internal/domain/entity"
	"github.com/jhoicas/directorio-api/internal/domain/repository"
)

var _ repository.AccountRepository = (*AccountRepo)(nil)

// bootstrapLockKey clave del advisory lock que serializa la creación del primer admin.
const bootstrapLockKey int64 = 0x64697265637431

const accountColumns = `id, username, email, first_name, last_name, password_hash, role, is_active, created_at, updated_at`

// AccountRepo implementación del puerto AccountRepository sobre PostgreSQL.
type AccountRepo struct {
	pool *pgxpool.Pool
	tx   *TxRunner
}

// NewAccountRepository construye el adaptador de persistencia para cuentas.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepo {
	return &AccountRepo{pool: pool, tx: NewTxRunner(pool)}
}

func scanAccount(row pgx.Row) (*entity.Account, error) {
	var a entity.Account
	err := row.Scan(&a.ID, &a.Username, &a.Email, &a.FirstName, &a.LastName, &a.PasswordHash, &a.Role, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create persiste una nueva cuenta y completa ID y fechas.
func (r *AccountRepo) Create(ctx context.Context, a *entity.Account) error {
	return insertAccount(ctx, r.pool, a)
}

func insertAccount(ctx context.Context, q Querier, a *entity.Account) error {
	query := `
		INSERT INTO accounts (username, email, first_name, last_name, password_hash, role, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`
	err := q.QueryRow(ctx, query,
		a.Username, a.Email, a.FirstName, a.LastName, a.PasswordHash, a.Role, a.IsActive,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return translateWrite("insert account", err, false)
	}
	return nil
}

// CreateBootstrapAdmin toma un advisory lock de transacción, recuenta admins y solo inserta si no hay ninguno.
func (r *AccountRepo) CreateBootstrapAdmin(ctx context.Context, a *entity.Account) error {
	return r.tx.Run(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, bootstrapLockKey); err != nil {
			return fmt.Errorf("bootstrap lock: %w", err)
		}
		var admins int
		if err := tx.QueryRow(ctx, `SELECT count(*) FROM accounts WHERE role = 'admin'`).Scan(&admins); err != nil {
			return fmt.Errorf("count admins: %w", err)
		}
		if admins > 0 {
			return fmt.Errorf("%w: ya existe un administrador", domain.ErrConflict)
		}
		return insertAccount(ctx, tx, a)
	})
}

// GetByID obtiene una cuenta por ID.
func (r *AccountRepo) GetByID(ctx context.Context, id int64) (*entity.Account, error) {
	a, err := scanAccount(r.pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account by id: %w", err)
	}
	return a, nil
}

// GetByUsername obtiene una cuenta por username (login).
func (r *AccountRepo) GetByUsername(ctx context.Context, username string) (*entity.Account, error) {
	a, err := scanAccount(r.pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE username = $1`, username))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account by username: %w", err)
	}
	return a, nil
}

// List lista cuentas con paginación y total.
func (r *AccountRepo) List(ctx context.Context, limit, offset int) ([]*entity.Account, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM accounts`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count accounts: %w", err)
	}
	rows, err := r.pool.Query(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Account, 0)
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan account: %w", err)
		}
		list = append(list, a)
	}
	return list, total, rows.Err()
}

// Update reescribe la cuenta.
func (r *AccountRepo) Update(ctx context.Context, a *entity.Account) error {
	query := `
		UPDATE accounts SET username = $2, email = $3, first_name = $4, last_name = $5,
		       password_hash = $6, role = $7, is_active = $8, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`
	err := r.pool.QueryRow(ctx, query,
		a.ID, a.Username, a.Email, a.FirstName, a.LastName, a.PasswordHash, a.Role, a.IsActive,
	).Scan(&a.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return domain.ErrNotFound
		}
		return translateWrite("update account", err, false)
	}
	return nil
}

// Delete elimina una cuenta; las sesiones caen en cascada y los registros propios la bloquean.
func (r *AccountRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return translateWrite("delete account", err, true)
	}
	return expectRow(tag)
}

// AdminExists informa si hay al menos un admin.
func (r *AccountRepo) AdminExists(ctx context.Context) (bool, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE role = 'admin')`).Scan(&exists); err != nil {
		return false, fmt.Errorf("admin exists: %w", err)
	}
	return exists, nil
}

// CountAdmins cuenta las cuentas admin.
func (r *AccountRepo) CountAdmins(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM accounts WHERE role = 'admin'`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count admins: %w", err)
	}
	return n, nil
}
