// Package types define los value types del dominio: identificadores positivos,
// email normalizado, nombres no vacíos, URL válida y contraseña.
//
// Una vez construido un valor de este paquete puede tratarse como confiable:
// los constructores validan o fallan, nunca producen estados parciales.
package types

import (
	"net/mail"
	"net/url"
	"strings"

	"github.com/jmaldonado/hub-admin-api/internal/domain"
)

// positive valida que un identificador sea mayor que cero.
func positive(v int32) (int32, error) {
	if v <= 0 {
		return 0, domain.ErrInvalidID
	}
	return v, nil
}

// nonEmpty recorta espacios y rechaza cadenas vacías.
func nonEmpty(s string) (string, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", domain.ErrEmptyValue
	}
	return trimmed, nil
}

// UserID identifica a un usuario. Siempre > 0.
type UserID int32

// NewUserID construye un UserID validando que sea positivo.
func NewUserID(v int32) (UserID, error) {
	n, err := positive(v)
	return UserID(n), err
}

// Int32 devuelve el valor crudo del identificador.
func (id UserID) Int32() int32 { return int32(id) }

// HubID identifica a un hub (tenant). Siempre > 0.
type HubID int32

// NewHubID construye un HubID validando que sea positivo.
func NewHubID(v int32) (HubID, error) {
	n, err := positive(v)
	return HubID(n), err
}

// Int32 devuelve el valor crudo del identificador.
func (id HubID) Int32() int32 { return int32(id) }

// RoleID identifica a un rol. Siempre > 0.
type RoleID int32

// NewRoleID construye un RoleID validando que sea positivo.
func NewRoleID(v int32) (RoleID, error) {
	n, err := positive(v)
	return RoleID(n), err
}

// Int32 devuelve el valor crudo del identificador.
func (id RoleID) Int32() int32 { return int32(id) }

// MenuID identifica a un menú. Siempre > 0.
type MenuID int32

// NewMenuID construye un MenuID validando que sea positivo.
func NewMenuID(v int32) (MenuID, error) {
	n, err := positive(v)
	return MenuID(n), err
}

// Int32 devuelve el valor crudo del identificador.
func (id MenuID) Int32() int32 { return int32(id) }

// Email es una dirección recortada, en minúsculas y con formato RFC válido.
// La normalización garantiza que la búsqueda por email sea case-insensitive.
type Email string

// NewEmail normaliza (trim + lower) y valida el formato de la dirección.
func NewEmail(raw string) (Email, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return "", domain.ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(normalized)
	if err != nil || addr.Address != normalized {
		return "", domain.ErrInvalidEmail
	}
	return Email(normalized), nil
}

// String devuelve la dirección normalizada.
func (e Email) String() string { return string(e) }

// UserName es el nombre visible de un usuario, recortado y no vacío.
type UserName string

// NewUserName valida que el nombre no quede vacío tras recortar espacios.
func NewUserName(raw string) (UserName, error) {
	s, err := nonEmpty(raw)
	return UserName(s), err
}

// String devuelve el nombre recortado.
func (n UserName) String() string { return string(n) }

// HubName es el nombre de un hub, recortado y no vacío.
type HubName string

// NewHubName valida que el nombre no quede vacío tras recortar espacios.
func NewHubName(raw string) (HubName, error) {
	s, err := nonEmpty(raw)
	return HubName(s), err
}

// String devuelve el nombre recortado.
func (n HubName) String() string { return string(n) }

// RoleName es el nombre de un rol, recortado y no vacío.
type RoleName string

// NewRoleName valida que el nombre no quede vacío tras recortar espacios.
func NewRoleName(raw string) (RoleName, error) {
	s, err := nonEmpty(raw)
	return RoleName(s), err
}

// String devuelve el nombre recortado.
func (n RoleName) String() string { return string(n) }

// MenuName es el nombre de un menú, recortado y no vacío.
type MenuName string

// NewMenuName valida que el nombre no quede vacío tras recortar espacios.
func NewMenuName(raw string) (MenuName, error) {
	s, err := nonEmpty(raw)
	return MenuName(s), err
}

// String devuelve el nombre recortado.
func (n MenuName) String() string { return string(n) }

// MenuURL es la URL de un menú, recortada y con formato válido.
type MenuURL string

// NewMenuURL recorta y valida que la cadena sea una URL bien formada
// (absoluta o path absoluto como "/reportes").
func NewMenuURL(raw string) (MenuURL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", domain.ErrInvalidURL
	}
	if _, err := url.ParseRequestURI(trimmed); err != nil {
		return "", domain.ErrInvalidURL
	}
	return MenuURL(trimmed), nil
}

// String devuelve la URL recortada.
func (u MenuURL) String() string { return string(u) }

// Password es una contraseña en claro recién recibida. El campo es privado y
// String() la enmascara para que nunca termine en un log por accidente.
type Password struct {
	value string
}

// NewPassword recorta la contraseña y rechaza valores vacíos.
func NewPassword(raw string) (Password, error) {
	s, err := nonEmpty(raw)
	if err != nil {
		return Password{}, err
	}
	return Password{value: s}, nil
}

// Reveal devuelve la contraseña en claro. Solo debe usarse para hashear o verificar.
func (p Password) Reveal() string { return p.value }

// String implementa fmt.Stringer enmascarando el valor.
func (p Password) String() string { return "********" }
