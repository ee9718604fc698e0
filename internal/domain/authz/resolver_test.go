package authz_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/directorio-api/internal/domain"
	"github.com/jhoicas/directorio-api/internal/domain/authz"
	"github.com/jhoicas/directorio-api/internal/domain/entity"
)

var (
	admin  = &authz.Actor{AccountID: 1, Username: "admin", Role: entity.RoleAdmin}
	editor = &authz.Actor{AccountID: 2, Username: "editora", Role: entity.RoleEditor}
	viewer = &authz.Actor{AccountID: 3, Username: "lector", Role: entity.RoleViewer}
)

var allKinds = []authz.Kind{authz.KindAccount, authz.KindContact, authz.KindCompany, authz.KindNotice}
var allOps = []authz.Operation{authz.OpCreate, authz.OpRead, authz.OpUpdate, authz.OpDelete}

// ──────────────────────────────────────────────────────────────────────────────
// Actor anónimo
// ──────────────────────────────────────────────────────────────────────────────

func TestDecide_AnonimoDenegadoSalvoBootstrap(t *testing.T) {
	for _, kind := range allKinds {
		for _, op := range allOps {
			req := authz.Request{Kind: kind, Op: op, OwnerID: 7, AdminExists: true, RequestedRole: entity.RoleAdmin}
			assert.Equal(t, authz.DenyUnauthenticated, authz.Decide(req), "kind=%d op=%d", kind, op)
		}
	}

	bootstrap := authz.Request{Kind: authz.KindAccount, Op: authz.OpCreate, AdminExists: false, RequestedRole: entity.RoleAdmin}
	assert.Equal(t, authz.Allow, authz.Decide(bootstrap), "el primer admin se crea sin sesión")
}

func TestDecide_BootstrapSoloConRolAdmin(t *testing.T) {
	req := authz.Request{Kind: authz.KindAccount, Op: authz.OpCreate, AdminExists: false, RequestedRole: entity.RoleEditor}
	assert.Equal(t, authz.DenyUnauthenticated, authz.Decide(req), "sin admin, crear un editor exige sesión admin")

	req.Actor = viewer
	assert.Equal(t, authz.DenyForbidden, authz.Decide(req))

	req.Actor = admin
	assert.Equal(t, authz.Allow, authz.Decide(req))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tabla de reglas
// ──────────────────────────────────────────────────────────────────────────────

func TestDecide_Tabla(t *testing.T) {
	tests := []struct {
		name  string
		req   authz.Request
		allow bool
	}{
		// Account
		{"admin crea cuenta con admin existente", authz.Request{Actor: admin, Kind: authz.KindAccount, Op: authz.OpCreate, AdminExists: true, RequestedRole: entity.RoleViewer}, true},
		{"editor no crea cuentas", authz.Request{Actor: editor, Kind: authz.KindAccount, Op: authz.OpCreate, AdminExists: true, RequestedRole: entity.RoleViewer}, false},
		{"segundo admin requiere admin", authz.Request{Actor: editor, Kind: authz.KindAccount, Op: authz.OpCreate, AdminExists: true, RequestedRole: entity.RoleAdmin}, false},
		{"admin lista cuentas", authz.Request{Actor: admin, Kind: authz.KindAccount, Op: authz.OpRead}, true},
		{"editor no lista cuentas", authz.Request{Actor: editor, Kind: authz.KindAccount, Op: authz.OpRead}, false},
		{"admin edita otra cuenta", authz.Request{Actor: admin, Kind: authz.KindAccount, Op: authz.OpUpdate, OwnerID: 3}, true},
		{"admin se edita a sí mismo", authz.Request{Actor: admin, Kind: authz.KindAccount, Op: authz.OpUpdate, OwnerID: 1}, true},
		{"viewer no edita su propia cuenta", authz.Request{Actor: viewer, Kind: authz.KindAccount, Op: authz.OpUpdate, OwnerID: 3}, false},
		{"admin borra otra cuenta", authz.Request{Actor: admin, Kind: authz.KindAccount, Op: authz.OpDelete, OwnerID: 2}, true},
		{"admin no se borra a sí mismo", authz.Request{Actor: admin, Kind: authz.KindAccount, Op: authz.OpDelete, OwnerID: 1}, false},

		// Company
		{"viewer crea empresa", authz.Request{Actor: viewer, Kind: authz.KindCompany, Op: authz.OpCreate}, true},
		{"viewer lee empresas", authz.Request{Actor: viewer, Kind: authz.KindCompany, Op: authz.OpRead}, true},
		{"admin no edita empresas", authz.Request{Actor: admin, Kind: authz.KindCompany, Op: authz.OpUpdate, OwnerID: 1}, false},
		{"creador no borra empresas", authz.Request{Actor: viewer, Kind: authz.KindCompany, Op: authz.OpDelete, OwnerID: 3}, false},

		// Contact
		{"viewer lista contactos", authz.Request{Actor: viewer, Kind: authz.KindContact, Op: authz.OpRead}, true},
		{"viewer no crea contactos", authz.Request{Actor: viewer, Kind: authz.KindContact, Op: authz.OpCreate}, false},
		{"editor crea contactos", authz.Request{Actor: editor, Kind: authz.KindContact, Op: authz.OpCreate}, true},
		{"editor edita contacto ajeno", authz.Request{Actor: editor, Kind: authz.KindContact, Op: authz.OpUpdate, OwnerID: 99}, true},
		{"editor borra contacto propio", authz.Request{Actor: editor, Kind: authz.KindContact, Op: authz.OpDelete, OwnerID: 2}, true},
		{"viewer edita contacto ajeno", authz.Request{Actor: viewer, Kind: authz.KindContact, Op: authz.OpUpdate, OwnerID: 2}, false},
		{"viewer borra contacto ajeno", authz.Request{Actor: viewer, Kind: authz.KindContact, Op: authz.OpDelete, OwnerID: 2}, false},
		{"viewer creador edita su contacto", authz.Request{Actor: viewer, Kind: authz.KindContact, Op: authz.OpUpdate, OwnerID: 3}, true},

		// Notice
		{"viewer lista avisos", authz.Request{Actor: viewer, Kind: authz.KindNotice, Op: authz.OpRead}, true},
		{"admin crea aviso", authz.Request{Actor: admin, Kind: authz.KindNotice, Op: authz.OpCreate}, true},
		{"editor no crea aviso", authz.Request{Actor: editor, Kind: authz.KindNotice, Op: authz.OpCreate}, false},
		{"editor no edita aviso del admin", authz.Request{Actor: editor, Kind: authz.KindNotice, Op: authz.OpUpdate, OwnerID: 1}, false},
		{"editor no borra aviso del admin", authz.Request{Actor: editor, Kind: authz.KindNotice, Op: authz.OpDelete, OwnerID: 1}, false},
		{"admin edita su aviso", authz.Request{Actor: admin, Kind: authz.KindNotice, Op: authz.OpUpdate, OwnerID: 1}, true},
		{"admin borra aviso ajeno", authz.Request{Actor: admin, Kind: authz.KindNotice, Op: authz.OpDelete, OwnerID: 2}, true},
		{"creador no admin edita su aviso", authz.Request{Actor: editor, Kind: authz.KindNotice, Op: authz.OpUpdate, OwnerID: 2}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := authz.Decide(tt.req)
			if tt.allow {
				assert.Equal(t, authz.Allow, got)
			} else {
				assert.Equal(t, authz.DenyForbidden, got)
			}
		})
	}
}

func TestDecide_ViewerNoMutaContactosNiAvisosAjenos(t *testing.T) {
	for _, kind := range []authz.Kind{authz.KindContact, authz.KindNotice} {
		for _, op := range []authz.Operation{authz.OpCreate, authz.OpUpdate, authz.OpDelete} {
			req := authz.Request{Actor: viewer, Kind: kind, Op: op, OwnerID: admin.AccountID}
			assert.False(t, authz.Decide(req).Allowed(), "kind=%d op=%d", kind, op)
		}
		assert.True(t, authz.Decide(authz.Request{Actor: viewer, Kind: kind, Op: authz.OpRead}).Allowed())
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Fail-closed
// ──────────────────────────────────────────────────────────────────────────────

func TestDecide_EntradasDesconocidasDeniegan(t *testing.T) {
	assert.Equal(t, authz.DenyForbidden, authz.Decide(authz.Request{Actor: admin, Kind: authz.KindUnspecified, Op: authz.OpRead}))
	assert.Equal(t, authz.DenyForbidden, authz.Decide(authz.Request{Actor: admin, Kind: authz.Kind(42), Op: authz.OpRead}))
	for _, kind := range allKinds {
		assert.Equal(t, authz.DenyForbidden, authz.Decide(authz.Request{Actor: admin, Kind: kind, Op: authz.OpUnspecified}))
		assert.Equal(t, authz.DenyForbidden, authz.Decide(authz.Request{Actor: admin, Kind: kind, Op: authz.Operation(99)}))
	}

	intruso := &authz.Actor{AccountID: 5, Role: entity.Role("superuser")}
	assert.Equal(t, authz.DenyForbidden, authz.Decide(authz.Request{Actor: intruso, Kind: authz.KindContact, Op: authz.OpRead}))
}

func TestDecide_OwnerCeroNoCoincideConActor(t *testing.T) {
	sinID := &authz.Actor{AccountID: 0, Role: entity.RoleViewer}
	req := authz.Request{Actor: sinID, Kind: authz.KindContact, Op: authz.OpUpdate, OwnerID: 0}
	assert.Equal(t, authz.DenyForbidden, authz.Decide(req))
}

// ──────────────────────────────────────────────────────────────────────────────
// Errores y concurrencia
// ──────────────────────────────────────────────────────────────────────────────

func TestDecision_Err(t *testing.T) {
	assert.NoError(t, authz.Allow.Err())
	assert.ErrorIs(t, authz.DenyForbidden.Err(), domain.ErrForbidden)
	assert.ErrorIs(t, authz.DenyUnauthenticated.Err(), domain.ErrUnauthenticated)

	err := authz.Check(authz.Request{Kind: authz.KindNotice, Op: authz.OpRead})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestRequireActor(t *testing.T) {
	assert.ErrorIs(t, authz.RequireActor(nil), domain.ErrUnauthenticated)
	assert.NoError(t, authz.RequireActor(viewer))
}

func TestDecide_Concurrente(t *testing.T) {
	var wg sync.WaitGroup
	errs := make(chan error, 64)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			actor := &authz.Actor{AccountID: int64(i%3 + 1), Role: []entity.Role{entity.RoleAdmin, entity.RoleEditor, entity.RoleViewer}[i%3]}
			got := authz.Decide(authz.Request{Actor: actor, Kind: authz.KindNotice, Op: authz.OpCreate})
			want := actor.Role == entity.RoleAdmin
			if got.Allowed() != want {
				errs <- fmt.Errorf("rol %s: got %v", actor.Role, got)
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
}
