package form

import (
	"reflect"
	"strings"

	"capflow/internal/apierror"
	"capflow/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// gte=0 work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// ProductoInput holds the raw form field values for a product.
type ProductoInput struct {
	Nombre         string
	Tipo           string
	PrecioEstandar string
	PrecioInversor string
}

// MaquinaInput holds the raw form field values for a machine.
type MaquinaInput struct {
	Nombre string
	Codigo string
	Notas  string
}

type productoValidado struct {
	Nombre         string          `validate:"required"`
	Tipo           string          `validate:"required"`
	PrecioEstandar decimal.Decimal `validate:"gte=0"`
}

type maquinaValidada struct {
	Nombre string `validate:"required"`
	Codigo string `validate:"required"`
}

// ValidarProducto runs the synchronous checks for a product form: required
// name and type, a non-negative numeric standard price, and name uniqueness
// against the cache excluding the entity under edit. On success it returns
// the parsed entity values.
func ValidarProducto(in ProductoInput, existentes []model.Producto, editando model.ID) (model.Producto, *apierror.ValidationError) {
	errores := make(map[string]string)

	precioEstandar := parsePrecio("precioEstandar", "El precio estándar", in.PrecioEstandar, true, errores)
	precioInversor := parsePrecio("precioInversor", "El precio inversor", in.PrecioInversor, false, errores)

	v := productoValidado{
		Nombre:         strings.TrimSpace(in.Nombre),
		Tipo:           strings.TrimSpace(in.Tipo),
		PrecioEstandar: precioEstandar,
	}
	if err := validate.Struct(v); err != nil {
		for _, fe := range err.(validator.ValidationErrors) {
			switch fe.StructField() {
			case "Nombre":
				errores["nombre"] = "El nombre es obligatorio"
			case "Tipo":
				errores["tipo"] = "El tipo es obligatorio"
			case "PrecioEstandar":
				if _, ya := errores["precioEstandar"]; !ya {
					errores["precioEstandar"] = "El precio estándar no puede ser negativo"
				}
			}
		}
	}

	if v.Nombre != "" && nombreDuplicado(v.Nombre, editando, productosComoEntidades(existentes)) {
		errores["nombre"] = "Ya existe un producto con ese nombre"
	}

	if len(errores) > 0 {
		return model.Producto{}, apierror.NewValidation(errores)
	}
	return model.Producto{
		ID:             editando,
		Nombre:         v.Nombre,
		Tipo:           v.Tipo,
		PrecioEstandar: precioEstandar,
		PrecioInversor: precioInversor,
	}, nil
}

// ValidarMaquina runs the synchronous checks for a machine form: required
// name and code, both unique against the cache excluding the entity under
// edit.
func ValidarMaquina(in MaquinaInput, existentes []model.Maquina, editando model.ID) (model.Maquina, *apierror.ValidationError) {
	errores := make(map[string]string)

	v := maquinaValidada{
		Nombre: strings.TrimSpace(in.Nombre),
		Codigo: strings.TrimSpace(in.Codigo),
	}
	if err := validate.Struct(v); err != nil {
		for _, fe := range err.(validator.ValidationErrors) {
			switch fe.StructField() {
			case "Nombre":
				errores["nombre"] = "El nombre es obligatorio"
			case "Codigo":
				errores["codigo"] = "El código es obligatorio"
			}
		}
	}

	if v.Nombre != "" && nombreDuplicado(v.Nombre, editando, maquinasComoEntidades(existentes)) {
		errores["nombre"] = "Ya existe una máquina con ese nombre"
	}
	if v.Codigo != "" {
		for _, e := range existentes {
			if e.ID != editando && strings.EqualFold(strings.TrimSpace(e.Codigo), v.Codigo) {
				errores["codigo"] = "Ya existe una máquina con ese código"
				break
			}
		}
	}

	if len(errores) > 0 {
		return model.Maquina{}, apierror.NewValidation(errores)
	}
	return model.Maquina{
		ID:     editando,
		Nombre: v.Nombre,
		Codigo: v.Codigo,
		Notas:  strings.TrimSpace(in.Notas),
	}, nil
}

// parsePrecio converts raw form text to a decimal, recording field errors.
// Optional empty prices resolve to zero.
func parsePrecio(campo, etiqueta, raw string, obligatorio bool, errores map[string]string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if obligatorio {
			errores[campo] = etiqueta + " es obligatorio"
		}
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		errores[campo] = etiqueta + " debe ser un número"
		return decimal.Zero
	}
	return d
}

type entidadNombrada struct {
	id     model.ID
	nombre string
}

func productosComoEntidades(productos []model.Producto) []entidadNombrada {
	out := make([]entidadNombrada, 0, len(productos))
	for _, p := range productos {
		out = append(out, entidadNombrada{id: p.ID, nombre: p.Nombre})
	}
	return out
}

func maquinasComoEntidades(maquinas []model.Maquina) []entidadNombrada {
	out := make([]entidadNombrada, 0, len(maquinas))
	for _, m := range maquinas {
		out = append(out, entidadNombrada{id: m.ID, nombre: m.Nombre})
	}
	return out
}

// nombreDuplicado checks case-insensitive, trimmed name uniqueness excluding
// the entity currently in EDIT state.
func nombreDuplicado(nombre string, editando model.ID, existentes []entidadNombrada) bool {
	for _, e := range existentes {
		if e.id != editando && strings.EqualFold(strings.TrimSpace(e.nombre), nombre) {
			return true
		}
	}
	return false
}
