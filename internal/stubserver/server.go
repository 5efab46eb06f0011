// Package stubserver is an in-memory implementation of the CapFlow REST
// contract, used by cmd/capflow-stub for local development and by the
// end-to-end tests. It enforces the same uniqueness and soft-deactivation
// rules a real backend would, so the facade's error conversion is exercised
// with realistic payloads.
package stubserver

import (
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type producto struct {
	ID             string          `json:"id"`
	Nombre         string          `json:"name"`
	Tipo           string          `json:"type"`
	PrecioEstandar decimal.Decimal `json:"priceStandard"`
	PrecioInversor decimal.Decimal `json:"priceInvestor"`
	Activo         bool            `json:"isActive"`
}

type maquina struct {
	ID     string `json:"id"`
	Nombre string `json:"name"`
	Codigo string `json:"code"`
	Notas  string `json:"notes"`
	Activo bool   `json:"active"`
}

// Server holds the in-memory catalogs. Slices keep insertion order so list
// responses are stable across reloads.
type Server struct {
	mu        sync.Mutex
	productos []producto
	maquinas  []maquina
}

func New() *Server { return &Server{} }

// mensaje is the error envelope of the consumed contract.
func mensaje(texto string) gin.H { return gin.H{"message": texto} }

// Engine wires the REST routes onto a fresh gin engine.
func (s *Server) Engine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/products", s.listarProductos)
	r.POST("/products", s.crearProducto)
	r.PUT("/products/:id", s.actualizarProducto)
	r.PUT("/products/:id/status", s.estadoProducto)

	r.GET("/machines", s.listarMaquinas)
	r.POST("/machines", s.crearMaquina)
	r.PUT("/machines/:id", s.actualizarMaquina)
	r.POST("/machines/:id/activate", s.activarMaquina(true))
	r.POST("/machines/:id/deactivate", s.activarMaquina(false))

	return r
}

// ── Products ─────────────────────────────────────────────────────────────────

type productoReq struct {
	Nombre         string          `json:"name"`
	Tipo           string          `json:"type"`
	PrecioEstandar decimal.Decimal `json:"priceStandard"`
	PrecioInversor decimal.Decimal `json:"priceInvestor"`
	Activo         *bool           `json:"isActive"`
}

func (s *Server) listarProductos(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lista := make([]producto, len(s.productos))
	copy(lista, s.productos)
	c.JSON(http.StatusOK, lista)
}

func (s *Server) crearProducto(c *gin.Context) {
	var req productoReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, mensaje("JSON inválido: "+err.Error()))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.nombreProductoOcupado(req.Nombre, "") {
		c.JSON(http.StatusConflict, mensaje("Ya existe un producto con ese nombre"))
		return
	}

	p := producto{
		ID:             uuid.NewString(),
		Nombre:         req.Nombre,
		Tipo:           req.Tipo,
		PrecioEstandar: req.PrecioEstandar,
		PrecioInversor: req.PrecioInversor,
		Activo:         req.Activo == nil || *req.Activo,
	}
	s.productos = append(s.productos, p)
	c.JSON(http.StatusCreated, p)
}

func (s *Server) actualizarProducto(c *gin.Context) {
	var req productoReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, mensaje("JSON inválido: "+err.Error()))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id := c.Param("id")
	i := s.indiceProducto(id)
	if i < 0 {
		c.JSON(http.StatusNotFound, mensaje("Producto no encontrado"))
		return
	}
	if s.nombreProductoOcupado(req.Nombre, id) {
		c.JSON(http.StatusConflict, mensaje("Ya existe un producto con ese nombre"))
		return
	}

	p := &s.productos[i]
	p.Nombre = req.Nombre
	p.Tipo = req.Tipo
	p.PrecioEstandar = req.PrecioEstandar
	p.PrecioInversor = req.PrecioInversor
	if req.Activo != nil {
		p.Activo = *req.Activo
	}
	c.JSON(http.StatusOK, *p)
}

func (s *Server) estadoProducto(c *gin.Context) {
	var req struct {
		Activo *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, mensaje("JSON inválido: "+err.Error()))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indiceProducto(c.Param("id"))
	if i < 0 {
		c.JSON(http.StatusNotFound, mensaje("Producto no encontrado"))
		return
	}
	s.productos[i].Activo = *req.Activo
	c.Status(http.StatusNoContent)
}

func (s *Server) indiceProducto(id string) int {
	for i := range s.productos {
		if s.productos[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Server) nombreProductoOcupado(nombre, salvoID string) bool {
	for i := range s.productos {
		if s.productos[i].ID != salvoID &&
			strings.EqualFold(strings.TrimSpace(s.productos[i].Nombre), strings.TrimSpace(nombre)) {
			return true
		}
	}
	return false
}

// ── Machines ─────────────────────────────────────────────────────────────────

type maquinaReq struct {
	Nombre string `json:"name"`
	Codigo string `json:"code"`
	Notas  string `json:"notes"`
	Activo *bool  `json:"active"`
}

func (s *Server) listarMaquinas(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lista := make([]maquina, len(s.maquinas))
	copy(lista, s.maquinas)
	c.JSON(http.StatusOK, lista)
}

func (s *Server) crearMaquina(c *gin.Context) {
	var req maquinaReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, mensaje("JSON inválido: "+err.Error()))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.maquinaOcupada(req.Nombre, req.Codigo, "") {
		c.JSON(http.StatusConflict, mensaje("Ya existe una máquina con ese nombre o código"))
		return
	}

	m := maquina{
		ID:     uuid.NewString(),
		Nombre: req.Nombre,
		Codigo: req.Codigo,
		Notas:  req.Notas,
		Activo: req.Activo == nil || *req.Activo,
	}
	s.maquinas = append(s.maquinas, m)
	c.JSON(http.StatusCreated, m)
}

func (s *Server) actualizarMaquina(c *gin.Context) {
	var req maquinaReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, mensaje("JSON inválido: "+err.Error()))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id := c.Param("id")
	i := s.indiceMaquina(id)
	if i < 0 {
		c.JSON(http.StatusNotFound, mensaje("Máquina no encontrada"))
		return
	}
	if s.maquinaOcupada(req.Nombre, req.Codigo, id) {
		c.JSON(http.StatusConflict, mensaje("Ya existe una máquina con ese nombre o código"))
		return
	}

	m := &s.maquinas[i]
	m.Nombre = req.Nombre
	m.Codigo = req.Codigo
	m.Notas = req.Notas
	if req.Activo != nil {
		m.Activo = *req.Activo
	}
	c.JSON(http.StatusOK, *m)
}

func (s *Server) activarMaquina(activo bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		defer s.mu.Unlock()
		i := s.indiceMaquina(c.Param("id"))
		if i < 0 {
			c.JSON(http.StatusNotFound, mensaje("Máquina no encontrada"))
			return
		}
		s.maquinas[i].Activo = activo
		c.Status(http.StatusNoContent)
	}
}

func (s *Server) indiceMaquina(id string) int {
	for i := range s.maquinas {
		if s.maquinas[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Server) maquinaOcupada(nombre, codigo, salvoID string) bool {
	for i := range s.maquinas {
		m := &s.maquinas[i]
		if m.ID == salvoID {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(m.Nombre), strings.TrimSpace(nombre)) ||
			strings.EqualFold(strings.TrimSpace(m.Codigo), strings.TrimSpace(codigo)) {
			return true
		}
	}
	return false
}

// ── Seeding ──────────────────────────────────────────────────────────────────

// SembrarProducto inserts a product directly, returning its id.
func (s *Server) SembrarProducto(nombre, tipo string, precioEstandar, precioInversor decimal.Decimal, activo bool) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := producto{
		ID:             uuid.NewString(),
		Nombre:         nombre,
		Tipo:           tipo,
		PrecioEstandar: precioEstandar,
		PrecioInversor: precioInversor,
		Activo:         activo,
	}
	s.productos = append(s.productos, p)
	return p.ID
}

// SembrarMaquina inserts a machine directly, returning its id.
func (s *Server) SembrarMaquina(nombre, codigo, notas string, activo bool) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := maquina{
		ID:     uuid.NewString(),
		Nombre: nombre,
		Codigo: codigo,
		Notas:  notas,
		Activo: activo,
	}
	s.maquinas = append(s.maquinas, m)
	return m.ID
}
