// Package memory implementa los puertos de persistencia en memoria. Se usa con DB_DRIVER=memory
// para desarrollo local y como doble de prueba de los casos de uso.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/directorio-api/internal/domain"
	"github.com/jhoicas/directorio-api/internal/domain/entity"
	"github.com/jhoicas/directorio-api/internal/domain/repository"
)

// Store datos compartidos por todos los repositorios en memoria. Un único mutex protege
// todas las tablas para poder validar referencias entre ellas.
type Store struct {
	mu sync.Mutex

	seq       int64
	accounts  map[int64]entity.Account
	contacts  map[int64]entity.Contact
	companies map[int64]entity.Company
	notices   map[int64]entity.Notice
	sessions  map[string]entity.Session

	now func() time.Time
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		accounts:  make(map[int64]entity.Account),
		contacts:  make(map[int64]entity.Contact),
		companies: make(map[int64]entity.Company),
		notices:   make(map[int64]entity.Notice),
		sessions:  make(map[string]entity.Session),
		now:       time.Now,
	}
}

func (s *Store) Accounts() *AccountRepo { return &AccountRepo{s: s} }
func (s *Store) Contacts() *ContactRepo { return &ContactRepo{s: s} }
func (s *Store) Companies() *CompanyRepo { return &CompanyRepo{s: s} }
func (s *Store) Notices() *NoticeRepo { return &NoticeRepo{s: s} }
func (s *Store) Sessions() *SessionRepo { return &SessionRepo{s: s} }

func (s *Store) nextID() int64 {
	s.seq++
	return s.seq
}

func (s *Store) stamp() time.Time {
	return s.now().UTC()
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}

// ──────────────────────────────────────────────────────────────────────────────
// Accounts
// ──────────────────────────────────────────────────────────────────────────────

var _ repository.AccountRepository = (*AccountRepo)(nil)

// AccountRepo repositorio de cuentas en memoria.
type AccountRepo struct{ s *Store }

func (r *AccountRepo) Create(_ context.Context, a *entity.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.insertAccount(a)
}

// CreateBootstrapAdmin verifica e inserta bajo el mismo candado.
func (r *AccountRepo) CreateBootstrapAdmin(_ context.Context, a *entity.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.countAdmins() > 0 {
		return fmt.Errorf("%w: ya existe un administrador", domain.ErrConflict)
	}
	return r.s.insertAccount(a)
}

func (s *Store) insertAccount(a *entity.Account) error {
	if err := s.checkAccountUnique(a, 0); err != nil {
		return err
	}
	now := s.stamp()
	a.ID = s.nextID()
	a.CreatedAt = now
	a.UpdatedAt = now
	s.accounts[a.ID] = *a
	return nil
}

func (s *Store) checkAccountUnique(a *entity.Account, selfID int64) error {
	for id, other := range s.accounts {
		if id == selfID {
			continue
		}
		if other.Username == a.Username {
			return fmt.Errorf("%w: username ya registrado", domain.ErrConflict)
		}
		if strings.EqualFold(other.Email, a.Email) {
			return fmt.Errorf("%w: email ya registrado", domain.ErrConflict)
		}
	}
	return nil
}

func (s *Store) countAdmins() int {
	n := 0
	for _, a := range s.accounts {
		if a.Role == entity.RoleAdmin {
			n++
		}
	}
	return n
}

func (r *AccountRepo) GetByID(_ context.Context, id int64) (*entity.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.accounts[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *AccountRepo) GetByUsername(_ context.Context, username string) (*entity.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.accounts {
		if a.Username == username {
			a := a
			return &a, nil
		}
	}
	return nil, nil
}

func (r *AccountRepo) List(_ context.Context, limit, offset int) ([]*entity.Account, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := make([]*entity.Account, 0, len(r.s.accounts))
	for _, a := range r.s.accounts {
		a := a
		all = append(all, &a)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return page(all, limit, offset), len(all), nil
}

func (r *AccountRepo) Update(_ context.Context, a *entity.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.accounts[a.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if err := r.s.checkAccountUnique(a, a.ID); err != nil {
		return err
	}
	a.CreatedAt = current.CreatedAt
	a.UpdatedAt = r.s.stamp()
	r.s.accounts[a.ID] = *a
	return nil
}

// Delete rechaza la baja si la cuenta todavía es dueña de registros; sus sesiones se eliminan.
func (r *AccountRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.accounts[id]; !ok {
		return domain.ErrNotFound
	}
	if r.s.ownsRecords(id) {
		return fmt.Errorf("%w: la cuenta es dueña de registros", domain.ErrConflict)
	}
	delete(r.s.accounts, id)
	for sid, sess := range r.s.sessions {
		if sess.AccountID == id {
			delete(r.s.sessions, sid)
		}
	}
	return nil
}

func (s *Store) ownsRecords(accountID int64) bool {
	for _, c := range s.contacts {
		if c.CreatedBy == accountID {
			return true
		}
	}
	for _, c := range s.companies {
		if c.CreatedBy == accountID {
			return true
		}
	}
	for _, n := range s.notices {
		if n.CreatedBy == accountID {
			return true
		}
	}
	return false
}

func (r *AccountRepo) AdminExists(ctx context.Context) (bool, error) {
	n, err := r.CountAdmins(ctx)
	return n > 0, err
}

func (r *AccountRepo) CountAdmins(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.countAdmins(), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Companies
// ──────────────────────────────────────────────────────────────────────────────

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo repositorio de empresas en memoria.
type CompanyRepo struct{ s *Store }

func (r *CompanyRepo) Create(_ context.Context, c *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.accounts[c.CreatedBy]; !ok {
		return fmt.Errorf("%w: created_by no existe", domain.ErrInvalidInput)
	}
	for _, other := range r.s.companies {
		if other.Name == c.Name {
			return fmt.Errorf("%w: ya existe una empresa con ese nombre", domain.ErrConflict)
		}
	}
	now := r.s.stamp()
	c.ID = r.s.nextID()
	c.CreatedAt = now
	c.UpdatedAt = now
	r.s.companies[c.ID] = *c
	return nil
}

func (r *CompanyRepo) GetByID(_ context.Context, id int64) (*entity.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.companies[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CompanyRepo) GetByName(_ context.Context, name string) (*entity.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.companies {
		if c.Name == name {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (r *CompanyRepo) List(_ context.Context, limit, offset int) ([]*entity.Company, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := make([]*entity.Company, 0, len(r.s.companies))
	for _, c := range r.s.companies {
		c := c
		all = append(all, &c)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Name != all[j].Name {
			return all[i].Name < all[j].Name
		}
		return all[i].ID < all[j].ID
	})
	return page(all, limit, offset), len(all), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Contacts
// ──────────────────────────────────────────────────────────────────────────────

var _ repository.ContactRepository = (*ContactRepo)(nil)

// ContactRepo repositorio de contactos en memoria.
type ContactRepo struct{ s *Store }

func (s *Store) checkContactRefs(c *entity.Contact) error {
	if _, ok := s.accounts[c.CreatedBy]; !ok {
		return fmt.Errorf("%w: created_by no existe", domain.ErrInvalidInput)
	}
	if c.CompanyID != nil {
		if _, ok := s.companies[*c.CompanyID]; !ok {
			return fmt.Errorf("%w: company_id no existe", domain.ErrInvalidInput)
		}
	}
	return nil
}

func (s *Store) withCompany(c entity.Contact) *entity.Contact {
	c.Company = nil
	if c.CompanyID != nil {
		if co, ok := s.companies[*c.CompanyID]; ok {
			c.Company = &entity.CompanyRef{ID: co.ID, Name: co.Name}
		}
	}
	return &c
}

func (r *ContactRepo) Create(_ context.Context, c *entity.Contact) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.checkContactRefs(c); err != nil {
		return err
	}
	now := r.s.stamp()
	c.ID = r.s.nextID()
	c.CreatedAt = now
	c.UpdatedAt = now
	c.Company = nil
	r.s.contacts[c.ID] = *c
	c.Company = r.s.withCompany(*c).Company
	return nil
}

func (r *ContactRepo) GetByID(_ context.Context, id int64) (*entity.Contact, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.contacts[id]
	if !ok {
		return nil, nil
	}
	return r.s.withCompany(c), nil
}

func matchesContact(c entity.Contact, f entity.ContactFilter) bool {
	if f.CompanyID != nil && (c.CompanyID == nil || *c.CompanyID != *f.CompanyID) {
		return false
	}
	if f.Search == "" {
		return true
	}
	q := strings.ToLower(f.Search)
	if strings.Contains(strings.ToLower(c.FirstName), q) || strings.Contains(strings.ToLower(c.LastName), q) {
		return true
	}
	return c.Email != nil && strings.Contains(strings.ToLower(*c.Email), q)
}

func (r *ContactRepo) List(_ context.Context, f entity.ContactFilter) ([]*entity.Contact, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []*entity.Contact
	for _, c := range r.s.contacts {
		if matchesContact(c, f) {
			all = append(all, r.s.withCompany(c))
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return page(all, f.Limit, f.Offset), len(all), nil
}

func (r *ContactRepo) Update(_ context.Context, c *entity.Contact) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.contacts[c.ID]
	if !ok {
		return domain.ErrNotFound
	}
	c.CreatedBy = current.CreatedBy
	c.CreatedAt = current.CreatedAt
	if err := r.s.checkContactRefs(c); err != nil {
		return err
	}
	c.UpdatedAt = r.s.stamp()
	c.Company = nil
	r.s.contacts[c.ID] = *c
	c.Company = r.s.withCompany(*c).Company
	return nil
}

func (r *ContactRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.contacts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.contacts, id)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Notices
// ──────────────────────────────────────────────────────────────────────────────

var _ repository.NoticeRepository = (*NoticeRepo)(nil)

// NoticeRepo repositorio de avisos en memoria.
type NoticeRepo struct{ s *Store }

func (r *NoticeRepo) Create(_ context.Context, n *entity.Notice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.accounts[n.CreatedBy]; !ok {
		return fmt.Errorf("%w: created_by no existe", domain.ErrInvalidInput)
	}
	now := r.s.stamp()
	n.ID = r.s.nextID()
	n.CreatedAt = now
	n.UpdatedAt = now
	n.Creator = nil
	r.s.notices[n.ID] = *n
	return nil
}

func (r *NoticeRepo) GetByID(_ context.Context, id int64) (*entity.Notice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n, ok := r.s.notices[id]
	if !ok {
		return nil, nil
	}
	return &n, nil
}

func (r *NoticeRepo) ListActive(_ context.Context, now time.Time) ([]*entity.Notice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Notice
	for _, n := range r.s.notices {
		if !n.Visible(now) {
			continue
		}
		n := n
		if a, ok := r.s.accounts[n.CreatedBy]; ok {
			n.Creator = &entity.AccountRef{ID: a.ID, Username: a.Username}
		}
		out = append(out, &n)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *NoticeRepo) Update(_ context.Context, n *entity.Notice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.notices[n.ID]
	if !ok {
		return domain.ErrNotFound
	}
	n.CreatedBy = current.CreatedBy
	n.CreatedAt = current.CreatedAt
	n.UpdatedAt = r.s.stamp()
	n.Creator = nil
	r.s.notices[n.ID] = *n
	return nil
}

func (r *NoticeRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.notices[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.notices, id)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Sessions
// ──────────────────────────────────────────────────────────────────────────────

var _ repository.SessionRepository = (*SessionRepo)(nil)

// SessionRepo almacén de sesiones en memoria.
type SessionRepo struct{ s *Store }

func (r *SessionRepo) Create(_ context.Context, sess *entity.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.accounts[sess.AccountID]; !ok {
		return fmt.Errorf("%w: la cuenta no existe", domain.ErrInvalidInput)
	}
	if _, ok := r.s.sessions[sess.ID]; ok {
		return fmt.Errorf("%w: sesión duplicada", domain.ErrConflict)
	}
	r.s.sessions[sess.ID] = *sess
	return nil
}

func (r *SessionRepo) Get(_ context.Context, id string) (*entity.Session, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sess, ok := r.s.sessions[id]
	if !ok {
		return nil, nil
	}
	return &sess, nil
}

func (r *SessionRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.sessions, id)
	return nil
}

func (r *SessionRepo) DeleteByAccount(_ context.Context, accountID int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, sess := range r.s.sessions {
		if sess.AccountID == accountID {
			delete(r.s.sessions, id)
			n++
		}
	}
	return n, nil
}

func (r *SessionRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, sess := range r.s.sessions {
		if sess.Expired(now) {
			delete(r.s.sessions, id)
			n++
		}
	}
	return n, nil
}
