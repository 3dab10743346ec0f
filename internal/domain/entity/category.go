package entity

// Category representa una categoría de productos (árbol por puntero al padre).
type Category struct {
	ID          string
	Description string
	ParentID    *string // nil si es raíz

	Children []*Category // virtual, poblado al construir el árbol
}
