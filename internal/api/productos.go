package api

import (
	"context"
	"net/http"
	"net/url"

	"capflow/internal/model"

	"github.com/shopspring/decimal"
)

// ProductoPayload is the entity payload minus id, as sent on create/update.
type ProductoPayload struct {
	Nombre         string          `json:"name"`
	Tipo           string          `json:"type"`
	PrecioEstandar decimal.Decimal `json:"priceStandard"`
	PrecioInversor decimal.Decimal `json:"priceInvestor"`
	Activo         *bool           `json:"isActive,omitempty"`
}

// productoWire mirrors the backend representation. The lifecycle flag travels
// as a nullable bool and is normalized on decode.
type productoWire struct {
	ID             model.ID        `json:"id"`
	Nombre         string          `json:"name"`
	Tipo           string          `json:"type"`
	PrecioEstandar decimal.Decimal `json:"priceStandard"`
	PrecioInversor decimal.Decimal `json:"priceInvestor"`
	Activo         *bool           `json:"isActive"`
}

// ProductosClient covers the /products resource.
type ProductosClient struct{ c *Client }

func NewProductosClient(c *Client) *ProductosClient { return &ProductosClient{c: c} }

// Listar fetches the full product list.
func (p *ProductosClient) Listar(ctx context.Context) ([]model.Producto, error) {
	var wire []productoWire
	if err := p.c.do(ctx, http.MethodGet, "/products", nil, &wire); err != nil {
		return nil, err
	}
	productos := make([]model.Producto, 0, len(wire))
	for _, w := range wire {
		productos = append(productos, model.Producto{
			ID:             w.ID,
			Nombre:         w.Nombre,
			Tipo:           w.Tipo,
			PrecioEstandar: w.PrecioEstandar,
			PrecioInversor: w.PrecioInversor,
			Activo:         model.ActivoPorDefecto(w.Activo),
		})
	}
	return productos, nil
}

// Crear creates a product. The created entity in the response is ignored;
// callers reload the cache regardless.
func (p *ProductosClient) Crear(ctx context.Context, payload ProductoPayload) error {
	return p.c.do(ctx, http.MethodPost, "/products", payload, nil)
}

// Actualizar performs a full update of the product.
func (p *ProductosClient) Actualizar(ctx context.Context, id model.ID, payload ProductoPayload) error {
	return p.c.do(ctx, http.MethodPut, "/products/"+url.PathEscape(id.String()), payload, nil)
}

// CambiarEstado flips the lifecycle flag through the generic status endpoint.
// Machines deliberately use dedicated activate/deactivate calls instead.
func (p *ProductosClient) CambiarEstado(ctx context.Context, id model.ID, activo bool) error {
	body := map[string]bool{"active": activo}
	return p.c.do(ctx, http.MethodPut, "/products/"+url.PathEscape(id.String())+"/status", body, nil)
}
