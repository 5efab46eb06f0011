// Package cache holds the last fetched entity list for one admin module. The
// cache is the sole in-memory source of truth between reloads; there are no
// partial updates — every mutation triggers a full reload, trading efficiency
// for consistency on small administrative catalogs.
package cache

import (
	"context"
	"strings"

	"capflow/internal/apierror"
	"capflow/internal/model"
)

// Cargador fetches the full entity list from the backend.
type Cargador[E any] func(ctx context.Context) ([]E, error)

// Cache is single-writer: only Cargar replaces the list. Reads always observe
// the most recent completed load.
type Cache[E any] struct {
	cargar Cargador[E]
	idDe   func(E) model.ID
	items  []E
}

func New[E any](cargar Cargador[E], idDe func(E) model.ID) *Cache[E] {
	return &Cache[E]{cargar: cargar, idDe: idDe}
}

// Cargar replaces the cache wholesale. On failure the prior list stays
// untouched (stale but available) and a LoadError is returned.
func (c *Cache[E]) Cargar(ctx context.Context) error {
	items, err := c.cargar(ctx)
	if err != nil {
		return &apierror.LoadError{Err: err}
	}
	c.items = items
	return nil
}

// Todos returns the cached list in original backend order.
func (c *Cache[E]) Todos() []E { return c.items }

// Total is the number of cached entities.
func (c *Cache[E]) Total() int { return len(c.items) }

// BuscarPorID looks up an entity by string-normalized id equality, tolerating
// numeric/string backend inconsistency. Not-found is a flag, never an error.
func (c *Cache[E]) BuscarPorID(id string) (E, bool) {
	id = strings.TrimSpace(id)
	for _, e := range c.items {
		if c.idDe(e).String() == id {
			return e, true
		}
	}
	var zero E
	return zero, false
}
