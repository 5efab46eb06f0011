// Package module contains the two admin modules (products, machines). Each
// owns an HTTP facade, an entity cache, the filter inputs, and the form state,
// and keeps table, form and count badge consistent after every mutation
// through a full reload.
package module

import (
	"context"
	"fmt"

	"capflow/internal/api"
	"capflow/internal/apierror"
	"capflow/internal/cache"
	"capflow/internal/filter"
	"capflow/internal/form"
	"capflow/internal/model"
	"capflow/internal/ui"

	"github.com/rs/zerolog/log"
)

// ProductosAPI is the backend surface the products module consumes.
type ProductosAPI interface {
	Listar(ctx context.Context) ([]model.Producto, error)
	Crear(ctx context.Context, payload api.ProductoPayload) error
	Actualizar(ctx context.Context, id model.ID, payload api.ProductoPayload) error
	CambiarEstado(ctx context.Context, id model.ID, activo bool) error
}

var criterioProductos = filter.Criterio[model.Producto]{
	// Products search over the name only.
	Campos: func(p model.Producto) []string { return []string{p.Nombre} },
	Activo: func(p model.Producto) bool { return p.Activo },
}

// ModuloProductos is the products admin module.
type ModuloProductos struct {
	api        ProductosAPI
	cache      *cache.Cache[model.Producto]
	formulario *form.Estado[model.Producto]
	entrada    form.ProductoInput
	texto      string
	cont       *ui.Contenedor
}

func NewProductos(a ProductosAPI) *ModuloProductos {
	m := &ModuloProductos{api: a, formulario: form.NuevoEstado[model.Producto]()}
	m.cache = cache.New(a.Listar, func(p model.Producto) model.ID { return p.ID })
	return m
}

func (m *ModuloProductos) Nombre() string { return "productos" }

// Montar renders the module frame into the container and performs the first
// load. Remounting clears search text and any in-progress edit.
func (m *ModuloProductos) Montar(ctx context.Context, cont *ui.Contenedor) error {
	m.cont = cont
	m.texto = ""
	m.entrada = form.ProductoInput{}
	m.formulario.Reset()

	cont.Renderer.Titulo("Productos")
	m.recargar(ctx)
	m.renderizar()
	return nil
}

// Buscar updates the text query and re-renders. Reads only the resident
// cache — no network call.
func (m *ModuloProductos) Buscar(texto string) {
	m.texto = texto
	m.renderizar()
}

// Nuevo switches the form to CREATE with blank fields.
func (m *ModuloProductos) Nuevo() {
	m.formulario.Reset()
	m.entrada = form.ProductoInput{}
	m.renderizar()
}

// Editar transitions CREATE → EDIT against a cache entry, populating the
// fields. A vanished id is a defensive no-op, never reported.
func (m *ModuloProductos) Editar(id string) {
	p, ok := m.cache.BuscarPorID(id)
	if !ok {
		log.Debug().Str("id", id).Err(apierror.ErrNoEncontrado).Msg("edición ignorada")
		return
	}
	m.formulario.IniciarEdicion(p)
	m.entrada = form.ProductoInput{
		Nombre:         p.Nombre,
		Tipo:           p.Tipo,
		PrecioEstandar: p.PrecioEstandar.String(),
		PrecioInversor: p.PrecioInversor.String(),
	}
	m.renderizar()
}

// Campo sets one form field from raw user input.
func (m *ModuloProductos) Campo(nombre, valor string) error {
	switch nombre {
	case "nombre":
		m.entrada.Nombre = valor
	case "tipo":
		m.entrada.Tipo = valor
	case "precioEstandar":
		m.entrada.PrecioEstandar = valor
	case "precioInversor":
		m.entrada.PrecioInversor = valor
	default:
		return fmt.Errorf("campo desconocido: %q", nombre)
	}
	m.renderizar()
	return nil
}

// Cancelar drops the edit (or the draft) and returns to CREATE.
func (m *ModuloProductos) Cancelar() {
	m.formulario.Reset()
	m.entrada = form.ProductoInput{}
	m.renderizar()
}

// Guardar validates synchronously and, only if valid, issues the create or
// update followed by a full reload. On validation failure no network call is
// made; on backend failure the form keeps its unsaved state.
func (m *ModuloProductos) Guardar(ctx context.Context) {
	if m.formulario.Enviando() {
		return
	}

	editando, enEdicion := m.formulario.Editando()
	var editandoID model.ID
	if enEdicion {
		editandoID = editando.ID
	}

	validado, verr := form.ValidarProducto(m.entrada, m.cache.Todos(), editandoID)
	if verr != nil {
		m.formulario.SetErrores(verr.Fields)
		m.renderizar()
		return
	}
	m.formulario.SetErrores(nil)

	payload := api.ProductoPayload{
		Nombre:         validado.Nombre,
		Tipo:           validado.Tipo,
		PrecioEstandar: validado.PrecioEstandar,
		PrecioInversor: validado.PrecioInversor,
	}

	m.formulario.MarcarEnviando(true)
	var err error
	if enEdicion {
		err = m.api.Actualizar(ctx, editando.ID, payload)
	} else {
		err = m.api.Crear(ctx, payload)
	}
	m.formulario.MarcarEnviando(false)

	if err != nil {
		merr := &apierror.MutationError{Err: err}
		m.cont.Avisos.Error("Error al guardar: " + apierror.Mensaje(merr))
		m.renderizar()
		return
	}

	m.recargar(ctx)
	m.formulario.Reset()
	m.entrada = form.ProductoInput{}
	m.cont.Avisos.Info("Producto guardado")
	m.renderizar()
}

// CambiarEstado flips the lifecycle flag of the given product. No optimistic
// update: the call must complete before the UI reflects any change. If the
// toggled product is the one under edit, its displayed status is re-synced
// before the reload.
func (m *ModuloProductos) CambiarEstado(ctx context.Context, id string) {
	p, ok := m.cache.BuscarPorID(id)
	if !ok {
		log.Debug().Str("id", id).Err(apierror.ErrNoEncontrado).Msg("cambio de estado ignorado")
		return
	}

	if err := m.api.CambiarEstado(ctx, p.ID, !p.Activo); err != nil {
		merr := &apierror.MutationError{Err: err}
		m.cont.Avisos.Error("Error al cambiar estado: " + apierror.Mensaje(merr))
		return
	}

	if editando, enEdicion := m.formulario.Editando(); enEdicion && editando.ID == p.ID {
		editando.Activo = !p.Activo
		m.formulario.ActualizarEditando(editando)
	}

	m.recargar(ctx)
	m.sincronizarEdicion()
	m.renderizar()
}

// recargar replaces the cache wholesale; on failure the stale cache stays and
// the error is surfaced as a transient notice.
func (m *ModuloProductos) recargar(ctx context.Context) {
	if err := m.cache.Cargar(ctx); err != nil {
		m.cont.Avisos.Error(err.Error())
	}
}

// sincronizarEdicion refreshes the edited entity from the freshly loaded
// cache, keeping the EDIT form aligned with the backend state.
func (m *ModuloProductos) sincronizarEdicion() {
	editando, enEdicion := m.formulario.Editando()
	if !enEdicion {
		return
	}
	if actual, ok := m.cache.BuscarPorID(editando.ID.String()); ok {
		m.formulario.ActualizarEditando(actual)
	}
}

func (m *ModuloProductos) renderizar() {
	filtrados := filter.Aplicar(m.cache.Todos(), m.texto, filter.Todos, criterioProductos)

	filas := make([][]string, 0, len(filtrados))
	for _, p := range filtrados {
		filas = append(filas, []string{
			p.ID.String(), p.Nombre, p.Tipo,
			p.PrecioEstandar.String(), p.PrecioInversor.String(),
			siNo(p.Activo),
		})
	}
	m.cont.Renderer.Tabla([]string{"ID", "Nombre", "Tipo", "Precio estándar", "Precio inversor", "Activo"}, filas)
	m.cont.Renderer.Contador(filter.Contador(len(filtrados), m.cache.Total(), "producto", "productos"))

	campos := []ui.Campo{
		{Nombre: "nombre", Valor: m.entrada.Nombre},
		{Nombre: "tipo", Valor: m.entrada.Tipo},
		{Nombre: "precioEstandar", Valor: m.entrada.PrecioEstandar},
		{Nombre: "precioInversor", Valor: m.entrada.PrecioInversor},
	}
	titulo := "Nuevo producto"
	if editando, enEdicion := m.formulario.Editando(); enEdicion {
		titulo = "Editar producto " + editando.ID.String()
		// The status selector only exists in EDIT mode.
		campos = append(campos, ui.Campo{Nombre: "activo", Valor: siNo(editando.Activo)})
	}
	m.cont.Renderer.Formulario(titulo, campos, m.formulario.Errores())
}

func siNo(v bool) string {
	if v {
		return "sí"
	}
	return "no"
}
