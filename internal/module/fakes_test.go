package module

import (
	"context"
	"fmt"
	"time"

	"capflow/internal/api"
	"capflow/internal/model"
	"capflow/internal/ui"
)

// ── Recording renderer ───────────────────────────────────────────────────────

type rendererPrueba struct {
	titulo      string
	columnas    []string
	filas       [][]string
	contador    string
	formTitulo  string
	formCampos  []ui.Campo
	formErrores map[string]string
	avisos      []string
}

func (r *rendererPrueba) Titulo(texto string) { r.titulo = texto }

func (r *rendererPrueba) Tabla(columnas []string, filas [][]string) {
	r.columnas = columnas
	r.filas = filas
}

func (r *rendererPrueba) Contador(texto string) { r.contador = texto }

func (r *rendererPrueba) Formulario(titulo string, campos []ui.Campo, errores map[string]string) {
	r.formTitulo = titulo
	r.formCampos = campos
	r.formErrores = errores
}

func (r *rendererPrueba) Aviso(_ ui.Nivel, texto string) { r.avisos = append(r.avisos, texto) }

func (r *rendererPrueba) campo(nombre string) (string, bool) {
	for _, c := range r.formCampos {
		if c.Nombre == nombre {
			return c.Valor, true
		}
	}
	return "", false
}

func contenedorPrueba() (*ui.Contenedor, *rendererPrueba) {
	r := &rendererPrueba{}
	return &ui.Contenedor{Renderer: r, Avisos: ui.NewAvisos(r, time.Minute)}, r
}

// ── In-memory ProductosAPI stub ──────────────────────────────────────────────

type apiProductosPrueba struct {
	productos []model.Producto
	siguiente int

	llamadasListar int
	llamadasCrear  int

	errListar     error
	errCrear      error
	errActualizar error
	errEstado     error
}

func (f *apiProductosPrueba) Listar(context.Context) ([]model.Producto, error) {
	f.llamadasListar++
	if f.errListar != nil {
		return nil, f.errListar
	}
	lista := make([]model.Producto, len(f.productos))
	copy(lista, f.productos)
	return lista, nil
}

func (f *apiProductosPrueba) Crear(_ context.Context, payload api.ProductoPayload) error {
	f.llamadasCrear++
	if f.errCrear != nil {
		return f.errCrear
	}
	f.siguiente++
	f.productos = append(f.productos, model.Producto{
		ID:             model.ID(fmt.Sprintf("n%d", f.siguiente)),
		Nombre:         payload.Nombre,
		Tipo:           payload.Tipo,
		PrecioEstandar: payload.PrecioEstandar,
		PrecioInversor: payload.PrecioInversor,
		Activo:         true,
	})
	return nil
}

func (f *apiProductosPrueba) Actualizar(_ context.Context, id model.ID, payload api.ProductoPayload) error {
	if f.errActualizar != nil {
		return f.errActualizar
	}
	for i := range f.productos {
		if f.productos[i].ID == id {
			f.productos[i].Nombre = payload.Nombre
			f.productos[i].Tipo = payload.Tipo
			f.productos[i].PrecioEstandar = payload.PrecioEstandar
			f.productos[i].PrecioInversor = payload.PrecioInversor
			return nil
		}
	}
	return fmt.Errorf("producto %s no existe", id)
}

func (f *apiProductosPrueba) CambiarEstado(_ context.Context, id model.ID, activo bool) error {
	if f.errEstado != nil {
		return f.errEstado
	}
	for i := range f.productos {
		if f.productos[i].ID == id {
			f.productos[i].Activo = activo
			return nil
		}
	}
	return fmt.Errorf("producto %s no existe", id)
}

var _ ProductosAPI = (*apiProductosPrueba)(nil)

// ── In-memory MaquinasAPI stub ───────────────────────────────────────────────

type apiMaquinasPrueba struct {
	maquinas  []model.Maquina
	siguiente int

	llamadasListar     int
	llamadasCrear      int
	llamadasActivar    int
	llamadasDesactivar int

	errCrear  error
	errEstado error
}

func (f *apiMaquinasPrueba) Listar(context.Context) ([]model.Maquina, error) {
	f.llamadasListar++
	lista := make([]model.Maquina, len(f.maquinas))
	copy(lista, f.maquinas)
	return lista, nil
}

func (f *apiMaquinasPrueba) Crear(_ context.Context, payload api.MaquinaPayload) error {
	f.llamadasCrear++
	if f.errCrear != nil {
		return f.errCrear
	}
	f.siguiente++
	f.maquinas = append(f.maquinas, model.Maquina{
		ID:     model.ID(fmt.Sprintf("n%d", f.siguiente)),
		Nombre: payload.Nombre,
		Codigo: payload.Codigo,
		Notas:  payload.Notas,
		Activo: true,
	})
	return nil
}

func (f *apiMaquinasPrueba) Actualizar(_ context.Context, id model.ID, payload api.MaquinaPayload) error {
	for i := range f.maquinas {
		if f.maquinas[i].ID == id {
			f.maquinas[i].Nombre = payload.Nombre
			f.maquinas[i].Codigo = payload.Codigo
			f.maquinas[i].Notas = payload.Notas
			return nil
		}
	}
	return fmt.Errorf("máquina %s no existe", id)
}

func (f *apiMaquinasPrueba) Activar(_ context.Context, id model.ID) error {
	f.llamadasActivar++
	return f.fijarEstado(id, true)
}

func (f *apiMaquinasPrueba) Desactivar(_ context.Context, id model.ID) error {
	f.llamadasDesactivar++
	return f.fijarEstado(id, false)
}

func (f *apiMaquinasPrueba) fijarEstado(id model.ID, activo bool) error {
	if f.errEstado != nil {
		return f.errEstado
	}
	for i := range f.maquinas {
		if f.maquinas[i].ID == id {
			f.maquinas[i].Activo = activo
			return nil
		}
	}
	return fmt.Errorf("máquina %s no existe", id)
}

var _ MaquinasAPI = (*apiMaquinasPrueba)(nil)
