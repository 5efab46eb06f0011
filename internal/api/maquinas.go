package api

import (
	"context"
	"net/http"
	"net/url"

	"capflow/internal/model"
)

// MaquinaPayload is the entity payload minus id, as sent on create/update.
type MaquinaPayload struct {
	Nombre string `json:"name"`
	Codigo string `json:"code"`
	Notas  string `json:"notes,omitempty"`
	Activo *bool  `json:"active,omitempty"`
}

type maquinaWire struct {
	ID     model.ID `json:"id"`
	Nombre string   `json:"name"`
	Codigo string   `json:"code"`
	Notas  string   `json:"notes"`
	Activo *bool    `json:"active"`
}

// MaquinasClient covers the /machines resource.
type MaquinasClient struct{ c *Client }

func NewMaquinasClient(c *Client) *MaquinasClient { return &MaquinasClient{c: c} }

// Listar fetches the full machine list.
func (m *MaquinasClient) Listar(ctx context.Context) ([]model.Maquina, error) {
	var wire []maquinaWire
	if err := m.c.do(ctx, http.MethodGet, "/machines", nil, &wire); err != nil {
		return nil, err
	}
	maquinas := make([]model.Maquina, 0, len(wire))
	for _, w := range wire {
		maquinas = append(maquinas, model.Maquina{
			ID:     w.ID,
			Nombre: w.Nombre,
			Codigo: w.Codigo,
			Notas:  w.Notas,
			Activo: model.ActivoPorDefecto(w.Activo),
		})
	}
	return maquinas, nil
}

// Crear creates a machine. The response body is ignored; callers reload.
func (m *MaquinasClient) Crear(ctx context.Context, payload MaquinaPayload) error {
	return m.c.do(ctx, http.MethodPost, "/machines", payload, nil)
}

// Actualizar performs a full update of the machine.
func (m *MaquinasClient) Actualizar(ctx context.Context, id model.ID, payload MaquinaPayload) error {
	return m.c.do(ctx, http.MethodPut, "/machines/"+url.PathEscape(id.String()), payload, nil)
}

// Activar reactivates a machine.
func (m *MaquinasClient) Activar(ctx context.Context, id model.ID) error {
	return m.c.do(ctx, http.MethodPost, "/machines/"+url.PathEscape(id.String())+"/activate", nil, nil)
}

// Desactivar deactivates a machine.
func (m *MaquinasClient) Desactivar(ctx context.Context, id model.ID) error {
	return m.c.do(ctx, http.MethodPost, "/machines/"+url.PathEscape(id.String())+"/deactivate", nil, nil)
}
