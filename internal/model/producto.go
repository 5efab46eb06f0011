package model

import "github.com/shopspring/decimal"

// Producto is a catalog product. Never deleted, only deactivated.
type Producto struct {
	ID             ID
	Nombre         string
	Tipo           string
	PrecioEstandar decimal.Decimal
	PrecioInversor decimal.Decimal
	Activo         bool
}
