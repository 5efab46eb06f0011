// Package form owns the CREATE/EDIT state machine and the synchronous
// validation that runs before any network call.
package form

// Modo is the form mode: create a new entity or edit an existing one.
type Modo int

const (
	ModoCrear Modo = iota
	ModoEditar
)

func (m Modo) String() string {
	if m == ModoEditar {
		return "edición"
	}
	return "alta"
}

// Estado tracks one module's form. At most one entity reference is held (the
// record being edited); it is cleared on cancel, successful submit, or
// module remount.
type Estado[E any] struct {
	modo     Modo
	editando *E
	enviando bool
	errores  map[string]string
}

func NuevoEstado[E any]() *Estado[E] {
	return &Estado[E]{modo: ModoCrear}
}

func (f *Estado[E]) Modo() Modo { return f.modo }

// Editando returns the entity under edit, if any.
func (f *Estado[E]) Editando() (E, bool) {
	if f.editando == nil {
		var zero E
		return zero, false
	}
	return *f.editando, true
}

// IniciarEdicion transitions CREATE → EDIT against a cache entry.
func (f *Estado[E]) IniciarEdicion(e E) {
	f.modo = ModoEditar
	f.editando = &e
	f.errores = nil
}

// ActualizarEditando refreshes the held reference, keeping EDIT mode. Used
// when a status toggle lands on the entity currently being edited, so the
// form never shows stale status.
func (f *Estado[E]) ActualizarEditando(e E) {
	if f.editando != nil {
		f.editando = &e
	}
}

// Reset transitions back to CREATE, dropping the edited entity and any
// errors. Covers cancel, successful submit, and remount.
func (f *Estado[E]) Reset() {
	f.modo = ModoCrear
	f.editando = nil
	f.enviando = false
	f.errores = nil
}

// Enviando reports whether a submit is in flight (submit is disabled then).
func (f *Estado[E]) Enviando() bool { return f.enviando }

func (f *Estado[E]) MarcarEnviando(v bool) { f.enviando = v }

// Errores returns the field-scoped messages from the last failed validation.
func (f *Estado[E]) Errores() map[string]string { return f.errores }

func (f *Estado[E]) SetErrores(errores map[string]string) { f.errores = errores }
