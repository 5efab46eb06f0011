package module

import (
	"context"
	"testing"

	"capflow/internal/apierror"
	"capflow/internal/filter"
	"capflow/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func maquinasSembradas() []model.Maquina {
	return []model.Maquina{
		{ID: "1", Nombre: "A", Codigo: "C1", Activo: true},
		{ID: "2", Nombre: "B", Codigo: "C2", Activo: false},
	}
}

func montarMaquinas(t *testing.T, f *apiMaquinasPrueba) (*ModuloMaquinas, *rendererPrueba) {
	t.Helper()
	cont, r := contenedorPrueba()
	m := NewMaquinas(f)
	require.NoError(t, m.Montar(context.Background(), cont))
	return m, r
}

func TestFiltroDeEstadoInactivas(t *testing.T) {
	f := &apiMaquinasPrueba{maquinas: maquinasSembradas()}
	m, r := montarMaquinas(t, f)

	m.Filtrar(filter.Inactivos)

	require.Len(t, r.filas, 1)
	assert.Equal(t, "2", r.filas[0][0])
	assert.Equal(t, "1 de 2 máquinas", r.contador)
	assert.Equal(t, 1, f.llamadasListar, "filtrar no toca la red")
}

func TestBuscarPorNombreOCodigo(t *testing.T) {
	f := &apiMaquinasPrueba{maquinas: maquinasSembradas()}
	m, r := montarMaquinas(t, f)

	m.Buscar("c2")

	require.Len(t, r.filas, 1)
	assert.Equal(t, "B", r.filas[0][1])

	m.Buscar("a")
	require.Len(t, r.filas, 1)
	assert.Equal(t, "A", r.filas[0][1])
}

func TestGuardarSinCodigoNoLlamaRed(t *testing.T) {
	f := &apiMaquinasPrueba{maquinas: maquinasSembradas()}
	m, r := montarMaquinas(t, f)

	require.NoError(t, m.Campo("nombre", "Fresadora"))
	m.Guardar(context.Background())

	assert.Equal(t, 0, f.llamadasCrear)
	assert.Equal(t, "El código es obligatorio", r.formErrores["codigo"])
}

func TestGuardarCreaMaquina(t *testing.T) {
	f := &apiMaquinasPrueba{maquinas: maquinasSembradas()}
	m, r := montarMaquinas(t, f)

	require.NoError(t, m.Campo("nombre", "Fresadora"))
	require.NoError(t, m.Campo("codigo", "FRE-02"))
	m.Guardar(context.Background())

	assert.Equal(t, 1, f.llamadasCrear)
	assert.Equal(t, 2, f.llamadasListar)
	assert.Equal(t, "3 máquinas", r.contador)
	assert.Contains(t, r.avisos, "Máquina guardada")
}

func TestToggleUsaActivarODesactivar(t *testing.T) {
	f := &apiMaquinasPrueba{maquinas: maquinasSembradas()}
	m, _ := montarMaquinas(t, f)

	// id 2 está inactiva: el toggle debe ir por activate
	m.CambiarEstado(context.Background(), "2")
	assert.Equal(t, 1, f.llamadasActivar)
	assert.Equal(t, 0, f.llamadasDesactivar)

	// ahora activa: el toggle debe ir por deactivate
	m.CambiarEstado(context.Background(), "2")
	assert.Equal(t, 1, f.llamadasActivar)
	assert.Equal(t, 1, f.llamadasDesactivar)
}

func TestToggleSincronizaFormularioEnEdicion(t *testing.T) {
	f := &apiMaquinasPrueba{maquinas: maquinasSembradas()}
	m, r := montarMaquinas(t, f)

	m.Editar("2")
	valor, _ := r.campo("activo")
	require.Equal(t, "no", valor)

	m.CambiarEstado(context.Background(), "2")

	assert.Equal(t, 2, f.llamadasListar, "recarga completa tras el éxito")
	valor, ok := r.campo("activo")
	require.True(t, ok)
	assert.Equal(t, "sí", valor)
}

func TestToggleFallidoDejaTodoIgual(t *testing.T) {
	f := &apiMaquinasPrueba{
		maquinas:  maquinasSembradas(),
		errEstado: &apierror.HTTPError{Status: 500, Mensaje: "db down"},
	}
	m, r := montarMaquinas(t, f)

	m.CambiarEstado(context.Background(), "1")

	assert.Contains(t, r.avisos, "Error al cambiar estado: db down")
	assert.Equal(t, 1, f.llamadasListar)
	assert.Equal(t, "sí", r.filas[0][4])
}

func TestGuardarDuplicadoPorCodigo(t *testing.T) {
	f := &apiMaquinasPrueba{maquinas: maquinasSembradas()}
	m, r := montarMaquinas(t, f)

	require.NoError(t, m.Campo("nombre", "Nueva"))
	require.NoError(t, m.Campo("codigo", "c1"))
	m.Guardar(context.Background())

	assert.Equal(t, 0, f.llamadasCrear)
	assert.Equal(t, "Ya existe una máquina con ese código", r.formErrores["codigo"])
}

func TestRemontarRestableceElSelector(t *testing.T) {
	f := &apiMaquinasPrueba{maquinas: maquinasSembradas()}
	m, r := montarMaquinas(t, f)

	m.Filtrar(filter.Inactivos)
	require.Equal(t, "1 de 2 máquinas", r.contador)

	cont, _ := contenedorPrueba()
	cont.Renderer = r
	require.NoError(t, m.Montar(context.Background(), cont))

	assert.Equal(t, "2 máquinas", r.contador, "el selector vuelve a todos")
}
