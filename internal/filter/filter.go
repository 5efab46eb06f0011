// Package filter derives the displayed subset of a module's cache from the
// current text query and status selector. It is pure: same inputs, same
// output, original cache order preserved.
package filter

import (
	"fmt"
	"strings"
)

// Estado is the closed status selector enumeration.
type Estado string

const (
	Todos     Estado = "todos"
	Activos   Estado = "activos"
	Inactivos Estado = "inactivos"
)

// ParseEstado maps user input to a selector value.
func ParseEstado(s string) (Estado, error) {
	switch Estado(strings.ToLower(strings.TrimSpace(s))) {
	case Todos:
		return Todos, nil
	case Activos:
		return Activos, nil
	case Inactivos:
		return Inactivos, nil
	}
	return "", fmt.Errorf("estado desconocido: %q (use todos|activos|inactivos)", s)
}

// Criterio describes how one entity kind exposes its searchable fields and
// its lifecycle flag to the coordinator.
type Criterio[E any] struct {
	Campos func(E) []string
	Activo func(E) bool
}

// Aplicar filters items by case-insensitive substring match over the
// designated fields AND by status. The result is a subsequence of items in
// original order.
func Aplicar[E any](items []E, texto string, estado Estado, crit Criterio[E]) []E {
	texto = strings.ToLower(strings.TrimSpace(texto))

	resultado := make([]E, 0, len(items))
	for _, e := range items {
		if texto != "" && !coincideTexto(crit.Campos(e), texto) {
			continue
		}
		if !coincideEstado(crit.Activo(e), estado) {
			continue
		}
		resultado = append(resultado, e)
	}
	return resultado
}

func coincideTexto(campos []string, texto string) bool {
	for _, campo := range campos {
		if strings.Contains(strings.ToLower(campo), texto) {
			return true
		}
	}
	return false
}

func coincideEstado(activo bool, estado Estado) bool {
	switch estado {
	case Activos:
		return activo
	case Inactivos:
		return !activo
	default:
		return true
	}
}

// Contador renders the count badge: "{filtered} de {total} <unit>" when the
// filter narrows the list, else "{total} <unit>", pluralized on total.
func Contador(filtrados, total int, singular, plural string) string {
	unidad := plural
	if total == 1 {
		unidad = singular
	}
	if filtrados < total {
		return fmt.Sprintf("%d de %d %s", filtrados, total, unidad)
	}
	return fmt.Sprintf("%d %s", total, unidad)
}
