package entity

// Category representa una categoría de productos. Su Code alimenta la referencia del producto.
type Category struct {
	ID   string
	Name string
	Code string
}
