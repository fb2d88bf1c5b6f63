package entity

import (
	"time"

	"github.com/jmaldonado/hub-admin-api/internal/domain/types"
)

// BaseAdminRoleID es el rol administrativo base sembrado en la inicialización.
// Nunca puede eliminarse: representa la capacidad administrativa irrevocable.
const BaseAdminRoleID types.RoleID = 1

// AdminRoleName nombre exacto del rol que habilita las operaciones administrativas.
const AdminRoleName = "admin"

// Role describe un conjunto de permisos asignable a muchos usuarios.
type Role struct {
	ID        types.RoleID
	Name      types.RoleName
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewRole datos validados para crear un rol.
type NewRole struct {
	Name types.RoleName
}

// NewRoleFromInput valida la entrada cruda antes de construir el payload.
func NewRoleFromInput(name string) (*NewRole, error) {
	roleName, err := types.NewRoleName(name)
	if err != nil {
		return nil, err
	}
	return &NewRole{Name: roleName}, nil
}

// UserRole es la fila de la tabla puente usuario↔rol. Clave compuesta, sin
// identidad propia.
type UserRole struct {
	UserID types.UserID
	RoleID types.RoleID
}
