package ui

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Contenedor is the shared mount target: the renderer plus the notice center.
// Exactly one module draws on it at a time.
type Contenedor struct {
	Renderer Renderer
	Avisos   *Avisos
}

// Modulo is an admin module's single entry point. Montar renders the module's
// frame into the container and begins its first load.
type Modulo interface {
	Nombre() string
	Montar(ctx context.Context, cont *Contenedor) error
}

// Router selects which module is mounted. Navigation concerns beyond "one
// module at a time" live here, not in the modules.
type Router struct {
	contenedor *Contenedor
	modulos    map[string]Modulo
	activo     Modulo
}

func NewRouter(contenedor *Contenedor) *Router {
	return &Router{contenedor: contenedor, modulos: make(map[string]Modulo)}
}

func (r *Router) Registrar(m Modulo) { r.modulos[m.Nombre()] = m }

// Navegar unmounts the active module (if any) and mounts the named one.
func (r *Router) Navegar(ctx context.Context, nombre string) error {
	m, ok := r.modulos[nombre]
	if !ok {
		return fmt.Errorf("módulo desconocido: %q", nombre)
	}
	r.activo = m
	log.Info().Str("modulo", nombre).Msg("módulo montado")
	return m.Montar(ctx, r.contenedor)
}

// Activo returns the mounted module, or nil before first navigation.
func (r *Router) Activo() Modulo { return r.activo }
