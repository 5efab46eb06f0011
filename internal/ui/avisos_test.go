package ui

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rendererNulo struct{ avisos []string }

func (rendererNulo) Titulo(string)                                 {}
func (rendererNulo) Tabla([]string, [][]string)                    {}
func (rendererNulo) Contador(string)                               {}
func (rendererNulo) Formulario(string, []Campo, map[string]string) {}
func (r *rendererNulo) Aviso(_ Nivel, texto string)                { r.avisos = append(r.avisos, texto) }

func TestAvisosExpiranPorTTL(t *testing.T) {
	r := &rendererNulo{}
	a := NewAvisos(r, 4*time.Second)

	ahora := time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)
	a.ConReloj(func() time.Time { return ahora })

	a.Error("Error al guardar: db down")
	a.Info("Producto guardado")

	// Se renderizan de inmediato
	assert.Equal(t, []string{"Error al guardar: db down", "Producto guardado"}, r.avisos)
	assert.Len(t, a.Vigentes(), 2)

	// Pasado el TTL se descartan solos
	ahora = ahora.Add(5 * time.Second)
	assert.Empty(t, a.Vigentes())
}

type moduloNulo struct {
	nombre   string
	montajes int
}

func (m *moduloNulo) Nombre() string { return m.nombre }
func (m *moduloNulo) Montar(context.Context, *Contenedor) error {
	m.montajes++
	return nil
}

func TestRouterMontaUnoALaVez(t *testing.T) {
	cont := &Contenedor{Renderer: &rendererNulo{}, Avisos: NewAvisos(&rendererNulo{}, time.Minute)}
	router := NewRouter(cont)

	productos := &moduloNulo{nombre: "productos"}
	maquinas := &moduloNulo{nombre: "maquinas"}
	router.Registrar(productos)
	router.Registrar(maquinas)

	require.Error(t, router.Navegar(context.Background(), "ventas"))
	assert.Nil(t, router.Activo())

	require.NoError(t, router.Navegar(context.Background(), "productos"))
	assert.Same(t, productos, router.Activo())
	assert.Equal(t, 1, productos.montajes)

	require.NoError(t, router.Navegar(context.Background(), "maquinas"))
	assert.Same(t, maquinas, router.Activo())
}

func TestRendererDeTerminal(t *testing.T) {
	var buf bytes.Buffer
	r := NewTerminalRenderer(&buf)

	r.Titulo("Máquinas")
	r.Tabla([]string{"ID", "Nombre"}, [][]string{{"1", "Torno"}})
	r.Contador("1 máquina")
	r.Formulario("Nueva máquina", []Campo{{Nombre: "nombre", Valor: ""}},
		map[string]string{"nombre": "El nombre es obligatorio"})
	r.Aviso(NivelError, "Error al cargar: backend caído")

	salida := buf.String()
	assert.Contains(t, salida, "== Máquinas ==")
	assert.Contains(t, salida, "Torno")
	assert.Contains(t, salida, "[1 máquina]")
	assert.Contains(t, salida, "! El nombre es obligatorio")
	assert.Contains(t, salida, "ERROR: Error al cargar: backend caído")
}
