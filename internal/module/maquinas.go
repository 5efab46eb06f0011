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

// MaquinasAPI is the backend surface the machines module consumes. Machines
// use dedicated activate/deactivate operations instead of a generic status
// endpoint; the asymmetry with products mirrors the backend contract.
type MaquinasAPI interface {
	Listar(ctx context.Context) ([]model.Maquina, error)
	Crear(ctx context.Context, payload api.MaquinaPayload) error
	Actualizar(ctx context.Context, id model.ID, payload api.MaquinaPayload) error
	Activar(ctx context.Context, id model.ID) error
	Desactivar(ctx context.Context, id model.ID) error
}

var criterioMaquinas = filter.Criterio[model.Maquina]{
	// Machines search over name OR code.
	Campos: func(m model.Maquina) []string { return []string{m.Nombre, m.Codigo} },
	Activo: func(m model.Maquina) bool { return m.Activo },
}

// ModuloMaquinas is the machines admin module. Unlike products it carries a
// status selector feeding the filter pipeline.
type ModuloMaquinas struct {
	api          MaquinasAPI
	cache        *cache.Cache[model.Maquina]
	formulario   *form.Estado[model.Maquina]
	entrada      form.MaquinaInput
	texto        string
	estadoFiltro filter.Estado
	cont         *ui.Contenedor
}

func NewMaquinas(a MaquinasAPI) *ModuloMaquinas {
	m := &ModuloMaquinas{
		api:          a,
		formulario:   form.NuevoEstado[model.Maquina](),
		estadoFiltro: filter.Todos,
	}
	m.cache = cache.New(a.Listar, func(e model.Maquina) model.ID { return e.ID })
	return m
}

func (m *ModuloMaquinas) Nombre() string { return "maquinas" }

// Montar renders the module frame and performs the first load. Remounting
// clears search text, the status selector, and any in-progress edit.
func (m *ModuloMaquinas) Montar(ctx context.Context, cont *ui.Contenedor) error {
	m.cont = cont
	m.texto = ""
	m.estadoFiltro = filter.Todos
	m.entrada = form.MaquinaInput{}
	m.formulario.Reset()

	cont.Renderer.Titulo("Máquinas")
	m.recargar(ctx)
	m.renderizar()
	return nil
}

// Buscar updates the text query and re-renders from the resident cache.
func (m *ModuloMaquinas) Buscar(texto string) {
	m.texto = texto
	m.renderizar()
}

// Filtrar updates the status selector and re-renders.
func (m *ModuloMaquinas) Filtrar(estado filter.Estado) {
	m.estadoFiltro = estado
	m.renderizar()
}

// Nuevo switches the form to CREATE with blank fields.
func (m *ModuloMaquinas) Nuevo() {
	m.formulario.Reset()
	m.entrada = form.MaquinaInput{}
	m.renderizar()
}

// Editar transitions CREATE → EDIT against a cache entry. A vanished id is a
// defensive no-op.
func (m *ModuloMaquinas) Editar(id string) {
	e, ok := m.cache.BuscarPorID(id)
	if !ok {
		log.Debug().Str("id", id).Err(apierror.ErrNoEncontrado).Msg("edición ignorada")
		return
	}
	m.formulario.IniciarEdicion(e)
	m.entrada = form.MaquinaInput{Nombre: e.Nombre, Codigo: e.Codigo, Notas: e.Notas}
	m.renderizar()
}

// Campo sets one form field from raw user input.
func (m *ModuloMaquinas) Campo(nombre, valor string) error {
	switch nombre {
	case "nombre":
		m.entrada.Nombre = valor
	case "codigo":
		m.entrada.Codigo = valor
	case "notas":
		m.entrada.Notas = valor
	default:
		return fmt.Errorf("campo desconocido: %q", nombre)
	}
	m.renderizar()
	return nil
}

// Cancelar drops the edit (or the draft) and returns to CREATE.
func (m *ModuloMaquinas) Cancelar() {
	m.formulario.Reset()
	m.entrada = form.MaquinaInput{}
	m.renderizar()
}

// Guardar validates synchronously and, only if valid, issues the create or
// update followed by a full reload.
func (m *ModuloMaquinas) Guardar(ctx context.Context) {
	if m.formulario.Enviando() {
		return
	}

	editando, enEdicion := m.formulario.Editando()
	var editandoID model.ID
	if enEdicion {
		editandoID = editando.ID
	}

	validada, verr := form.ValidarMaquina(m.entrada, m.cache.Todos(), editandoID)
	if verr != nil {
		m.formulario.SetErrores(verr.Fields)
		m.renderizar()
		return
	}
	m.formulario.SetErrores(nil)

	payload := api.MaquinaPayload{
		Nombre: validada.Nombre,
		Codigo: validada.Codigo,
		Notas:  validada.Notas,
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
	m.entrada = form.MaquinaInput{}
	m.cont.Avisos.Info("Máquina guardada")
	m.renderizar()
}

// CambiarEstado flips the lifecycle flag through the dedicated activate or
// deactivate call. No optimistic update; the EDIT form's status display is
// re-synced before the reload when the toggled machine is the one under edit.
func (m *ModuloMaquinas) CambiarEstado(ctx context.Context, id string) {
	e, ok := m.cache.BuscarPorID(id)
	if !ok {
		log.Debug().Str("id", id).Err(apierror.ErrNoEncontrado).Msg("cambio de estado ignorado")
		return
	}

	var err error
	if e.Activo {
		err = m.api.Desactivar(ctx, e.ID)
	} else {
		err = m.api.Activar(ctx, e.ID)
	}
	if err != nil {
		merr := &apierror.MutationError{Err: err}
		m.cont.Avisos.Error("Error al cambiar estado: " + apierror.Mensaje(merr))
		return
	}

	if editando, enEdicion := m.formulario.Editando(); enEdicion && editando.ID == e.ID {
		editando.Activo = !e.Activo
		m.formulario.ActualizarEditando(editando)
	}

	m.recargar(ctx)
	m.sincronizarEdicion()
	m.renderizar()
}

func (m *ModuloMaquinas) recargar(ctx context.Context) {
	if err := m.cache.Cargar(ctx); err != nil {
		m.cont.Avisos.Error(err.Error())
	}
}

func (m *ModuloMaquinas) sincronizarEdicion() {
	editando, enEdicion := m.formulario.Editando()
	if !enEdicion {
		return
	}
	if actual, ok := m.cache.BuscarPorID(editando.ID.String()); ok {
		m.formulario.ActualizarEditando(actual)
	}
}

func (m *ModuloMaquinas) renderizar() {
	filtradas := filter.Aplicar(m.cache.Todos(), m.texto, m.estadoFiltro, criterioMaquinas)

	filas := make([][]string, 0, len(filtradas))
	for _, e := range filtradas {
		filas = append(filas, []string{
			e.ID.String(), e.Nombre, e.Codigo, e.Notas, siNo(e.Activo),
		})
	}
	m.cont.Renderer.Tabla([]string{"ID", "Nombre", "Código", "Notas", "Activo"}, filas)
	m.cont.Renderer.Contador(filter.Contador(len(filtradas), m.cache.Total(), "máquina", "máquinas"))

	campos := []ui.Campo{
		{Nombre: "nombre", Valor: m.entrada.Nombre},
		{Nombre: "codigo", Valor: m.entrada.Codigo},
		{Nombre: "notas", Valor: m.entrada.Notas},
	}
	titulo := "Nueva máquina"
	if editando, enEdicion := m.formulario.Editando(); enEdicion {
		titulo = "Editar máquina " + editando.ID.String()
		// The status selector only exists in EDIT mode.
		campos = append(campos, ui.Campo{Nombre: "activo", Valor: siNo(editando.Activo)})
	}
	m.cont.Renderer.Formulario(titulo, campos, m.formulario.Errores())
}
