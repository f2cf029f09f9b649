package entity

import "time"

// Category representa una categoría de productos. Es la raíz de agregado para
// el borrado en cascada: eliminar una categoría elimina sus productos. La
// membresía vive en la referencia autoritativa Product.CategoryID; la lista
// de productos de la respuesta se reconstruye en cada lectura.
type Category struct {
	ID        string
	Name      string `validate:"required"`
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
