package entity

import (
	"strconv"

	"github.com/jmaldonado/hub-admin-api/internal/domain"
	"github.com/jmaldonado/hub-admin-api/internal/domain/types"
)

// Principal es la identidad resuelta y confiable del llamador de una
// operación. Se construye a partir del token de sesión y del usuario
// persistido; las capas de aplicación la reciben siempre de forma explícita.
type Principal struct {
	Sub   string // id del usuario como string (subject del token)
	Email string
	HubID int32
	Name  string
	Roles []string
}

// NewPrincipal construye el principal a partir de un usuario persistido.
func NewPrincipal(u *UserWithRoles) *Principal {
	return &Principal{
		Sub:   strconv.FormatInt(int64(u.User.ID.Int32()), 10),
		Email: u.User.Email.String(),
		HubID: u.User.HubID.Int32(),
		Name:  u.User.DisplayName(),
		Roles: u.RoleNames(),
	}
}

// HasRole informa si el principal posee el rol (comparación exacta,
// sensible a mayúsculas).
func (p *Principal) HasRole(name string) bool {
	for _, role := range p.Roles {
		if role == name {
			return true
		}
	}
	return false
}

// UserID interpreta el subject como identificador de usuario.
func (p *Principal) UserID() (types.UserID, error) {
	v, err := strconv.ParseInt(p.Sub, 10, 32)
	if err != nil {
		return 0, domain.ErrUnauthorized
	}
	id, err := types.NewUserID(int32(v))
	if err != nil {
		return 0, domain.ErrUnauthorized
	}
	return id, nil
}

// Hub devuelve el HubID tipado del principal.
func (p *Principal) Hub() (types.HubID, error) {
	id, err := types.NewHubID(p.HubID)
	if err != nil {
		return 0, domain.ErrUnauthorized
	}
	return id, nil
}
