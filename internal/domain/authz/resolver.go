// Package authz decide si un actor puede ejecutar una operación sobre un tipo de recurso.
//
// Es una tabla de reglas pura: no consulta persistencia ni guarda estado, por lo que puede
// invocarse concurrentemente sin coordinación. Todo lo que no reconoce lo deniega.
package authz

import (
	"github.com/jhoicas/directorio-api/internal/domain"
	"github.com/jhoicas/directorio-api/internal/domain/entity"
)

// Operation operación solicitada.
type Operation int

const (
	// OpUnspecified operación inválida; siempre se deniega.
	OpUnspecified Operation = iota
	OpCreate
	OpRead
	OpUpdate
	OpDelete
)

// Kind tipo de recurso.
type Kind int

const (
	// KindUnspecified recurso inválido; siempre se deniega.
	KindUnspecified Kind = iota
	KindAccount
	KindContact
	KindCompany
	KindNotice
)

// Actor identidad autenticada. Un *Actor nil representa a un llamante anónimo.
type Actor struct {
	AccountID int64
	Username  string
	Role      entity.Role
}

// Request entrada del resolver.
type Request struct {
	Actor *Actor
	Op    Operation
	Kind  Kind
	// OwnerID created_by del registro objetivo; para Account UPDATE/DELETE es el id de la cuenta objetivo.
	// Cero cuando no aplica (CREATE, lecturas de colección).
	OwnerID int64
	// AdminExists y RequestedRole solo se usan en Account CREATE (bootstrap).
	AdminExists   bool
	RequestedRole entity.Role
}

// Decision resultado del resolver.
type Decision int

const (
	DenyForbidden Decision = iota
	DenyUnauthenticated
	Allow
)

// Allowed informa si la decisión permite la operación.
func (d Decision) Allowed() bool { return d == Allow }

// Err traduce la decisión al error de dominio (nil si se permite).
func (d Decision) Err() error {
	switch d {
	case Allow:
		return nil
	case DenyUnauthenticated:
		return domain.ErrUnauthenticated
	default:
		return domain.ErrForbidden
	}
}

// Decide evalúa la tabla de reglas; gana la primera que aplica.
func Decide(req Request) Decision {
	if req.Kind == KindAccount && req.Op == OpCreate {
		if IsBootstrap(req.AdminExists, req.RequestedRole) {
			return Allow
		}
		return requireRole(req.Actor, entity.RoleAdmin)
	}
	if req.Actor == nil {
		return DenyUnauthenticated
	}
	if !req.Actor.Role.Valid() {
		return DenyForbidden
	}

	switch req.Kind {
	case KindAccount:
		return decideAccount(req)
	case KindCompany:
		return decideCompany(req)
	case KindContact:
		return decideContact(req)
	case KindNotice:
		return decideNotice(req)
	default:
		return DenyForbidden
	}
}

// Check atajo de Decide(req).Err().
func Check(req Request) error {
	return Decide(req).Err()
}

// IsBootstrap informa si una creación de cuenta es la del primer administrador.
func IsBootstrap(adminExists bool, requested entity.Role) bool {
	return !adminExists && requested == entity.RoleAdmin
}

// RequireActor exige un actor autenticado. Los casos de uso la llaman antes de cargar un
// registro para que un anónimo nunca sepa si un id existe.
func RequireActor(actor *Actor) error {
	if actor == nil {
		return domain.ErrUnauthenticated
	}
	return nil
}

func decideAccount(req Request) Decision {
	if req.Actor.Role != entity.RoleAdmin {
		return DenyForbidden
	}
	switch req.Op {
	case OpRead, OpUpdate:
		return Allow
	case OpDelete:
		if req.OwnerID == req.Actor.AccountID {
			return DenyForbidden
		}
		return Allow
	default:
		return DenyForbidden
	}
}

// Company no tiene rutas de edición ni borrado.
func decideCompany(req Request) Decision {
	switch req.Op {
	case OpCreate, OpRead:
		return Allow
	default:
		return DenyForbidden
	}
}

func decideContact(req Request) Decision {
	switch req.Op {
	case OpRead:
		return Allow
	case OpCreate:
		return requireRole(req.Actor, entity.RoleAdmin, entity.RoleEditor)
	case OpUpdate, OpDelete:
		return ownerOr(req, entity.RoleAdmin, entity.RoleEditor)
	default:
		return DenyForbidden
	}
}

// En avisos el editor no tiene privilegios: solo admin o el creador.
func decideNotice(req Request) Decision {
	switch req.Op {
	case OpRead:
		return Allow
	case OpCreate:
		return requireRole(req.Actor, entity.RoleAdmin)
	case OpUpdate, OpDelete:
		return ownerOr(req, entity.RoleAdmin)
	default:
		return DenyForbidden
	}
}

func requireRole(actor *Actor, roles ...entity.Role) Decision {
	if actor == nil {
		return DenyUnauthenticated
	}
	for _, r := range roles {
		if actor.Role == r {
			return Allow
		}
	}
	return DenyForbidden
}

func ownerOr(req Request, roles ...entity.Role) Decision {
	if requireRole(req.Actor, roles...) == Allow {
		return Allow
	}
	if req.OwnerID != 0 && req.OwnerID == req.Actor.AccountID {
		return Allow
	}
	return DenyForbidden
}
