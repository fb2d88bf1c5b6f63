// Package password implementa el servicio de credenciales: hashing bcrypt de
// un solo sentido y verificación sin fuga de información.
package password

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/jmaldonado/hub-admin-api/internal/domain/types"
)

// Hasher aplica bcrypt con un factor de trabajo fijo tomado de configuración.
type Hasher struct {
	cost int
}

// NewHasher construye el hasher acotando el costo al rango válido de bcrypt.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash produce un digest salado e irreversible de la contraseña.
func (h *Hasher) Hash(pw types.Password) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(pw.Reveal()), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify compara la contraseña contra el hash almacenado. Devuelve false tanto
// para contraseña incorrecta como para hash malformado: el llamador no puede
// distinguir la causa y la función nunca entra en pánico.
func (h *Hasher) Verify(raw, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(raw)) == nil
}
