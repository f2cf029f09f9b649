package domain

import (
	"errors"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidParameter = errors.New("parámetro inválido")
	ErrDuplicate        = errors.New("recurso duplicado")
	ErrConflict         = errors.New("conflicto de versión: el registro fue modificado por otro escritor")
)

// ValidationError agrupa todas las violaciones estructurales de una entidad.
// Se reportan completas, no solo la primera, para que el cliente corrija todo de una vez.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "validación fallida: " + strings.Join(e.Violations, "; ")
}
