package repository

import "context"

// UserTxRunner ejecuta un callback con un UserRepository atado a una única
// transacción, de modo que reemplazo de roles y actualización parcial se
// apliquen como una sola unidad atómica.
type UserTxRunner interface {
	RunUserTx(ctx context.Context, fn func(users UserRepository) error) error
}
