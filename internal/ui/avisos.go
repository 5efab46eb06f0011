package ui

import "time"

// Avisos is the transient notice center. Notices are pushed to the renderer
// immediately and auto-dismiss after the TTL: expiry is evaluated whenever
// Vigentes is read, so no timer goroutines are involved. Errors are never
// persisted anywhere durable.
type Avisos struct {
	renderer Renderer
	ttl      time.Duration
	ahora    func() time.Time
	entradas []aviso
}

type aviso struct {
	nivel  Nivel
	texto  string
	expira time.Time
}

func NewAvisos(renderer Renderer, ttl time.Duration) *Avisos {
	return &Avisos{renderer: renderer, ttl: ttl, ahora: time.Now}
}

// ConReloj overrides the clock. Test hook.
func (a *Avisos) ConReloj(ahora func() time.Time) { a.ahora = ahora }

// Error surfaces a user-visible error notice.
func (a *Avisos) Error(texto string) { a.publicar(NivelError, texto) }

// Info surfaces an informational notice.
func (a *Avisos) Info(texto string) { a.publicar(NivelInfo, texto) }

func (a *Avisos) publicar(nivel Nivel, texto string) {
	a.entradas = append(a.entradas, aviso{
		nivel:  nivel,
		texto:  texto,
		expira: a.ahora().Add(a.ttl),
	})
	a.renderer.Aviso(nivel, texto)
}

// Vigentes returns the not-yet-expired notice texts, dropping expired ones.
func (a *Avisos) Vigentes() []string {
	ahora := a.ahora()
	vivos := a.entradas[:0]
	textos := make([]string, 0, len(a.entradas))
	for _, e := range a.entradas {
		if ahora.Before(e.expira) {
			vivos = append(vivos, e)
			textos = append(textos, e.texto)
		}
	}
	a.entradas = vivos
	return textos
}
