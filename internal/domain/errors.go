package domain

import "errors"

// Errores de dominio (sin dependencias externas).
//
// Los cuatro primeros son errores de validación: se resuelven al construir
// los value types y nunca llegan a la capa de persistencia.
var (
	ErrInvalidID    = errors.New("el identificador debe ser mayor que cero")
	ErrInvalidEmail = errors.New("email inválido")
	ErrInvalidURL   = errors.New("url inválida")
	ErrEmptyValue   = errors.New("el valor no puede estar vacío")

	ErrNotFound     = errors.New("recurso no encontrado")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrUnauthorized = errors.New("no autorizado")
	ErrInternal     = errors.New("error interno")
)
