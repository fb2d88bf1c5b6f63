package entity

import (
	"time"

	"github.com/jmaldonado/hub-admin-api/internal/domain/types"
)

// User representa un usuario del sistema. Pertenece exactamente a un Hub y su
// HubID es inmutable después de la creación.
type User struct {
	ID           types.UserID
	Email        types.Email
	Name         *types.UserName // opcional
	HubID        types.HubID
	PasswordHash string // hash bcrypt, nunca la contraseña en claro
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DisplayName devuelve el nombre visible o cadena vacía si no está definido.
func (u *User) DisplayName() string {
	if u.Name == nil {
		return ""
	}
	return u.Name.String()
}

// UserWithRoles combina un usuario con sus roles resueltos.
type UserWithRoles struct {
	User  User
	Roles []Role
}

// RoleNames devuelve los nombres de los roles del usuario.
func (u *UserWithRoles) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, role := range u.Roles {
		names = append(names, role.Name.String())
	}
	return names
}

// NewUser datos validados para registrar un usuario.
type NewUser struct {
	Email    types.Email
	Name     *types.UserName
	HubID    types.HubID
	Password types.Password
}

// NewUserFromInput valida la entrada cruda antes de construir el payload.
// El nombre es opcional: la cadena vacía se traduce en nil.
func NewUserFromInput(email, name string, hubID int32, password string) (*NewUser, error) {
	userEmail, err := types.NewEmail(email)
	if err != nil {
		return nil, err
	}
	var userName *types.UserName
	if name != "" {
		n, err := types.NewUserName(name)
		if err != nil {
			return nil, err
		}
		userName = &n
	}
	hub, err := types.NewHubID(hubID)
	if err != nil {
		return nil, err
	}
	pw, err := types.NewPassword(password)
	if err != nil {
		return nil, err
	}
	return &NewUser{Email: userEmail, Name: userName, HubID: hub, Password: pw}, nil
}

// UpdateUser es un contrato de actualización parcial: los campos en nil se
// conservan tal cual. El hash existente se retiene cuando Password es nil.
type UpdateUser struct {
	Name     types.UserName
	Password *types.Password
}

// UpdateUserFromInput valida la entrada cruda del formulario de edición.
// La contraseña vacía significa "no cambiar".
func UpdateUserFromInput(name, password string) (*UpdateUser, error) {
	userName, err := types.NewUserName(name)
	if err != nil {
		return nil, err
	}
	upd := &UpdateUser{Name: userName}
	if password != "" {
		pw, err := types.NewPassword(password)
		if err != nil {
			return nil, err
		}
		upd.Password = &pw
	}
	return upd, nil
}
