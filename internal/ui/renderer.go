// Package ui holds the rendering surface the admin modules draw on. Modules
// depend only on the Renderer interface, so the filter/cache/validation core
// stays free of terminal concerns.
package ui

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// Nivel classifies a notice.
type Nivel int

const (
	NivelInfo Nivel = iota
	NivelError
)

// Renderer is the drawing contract for one mounted module.
type Renderer interface {
	// Titulo renders the module heading when it mounts.
	Titulo(texto string)
	// Tabla replaces the entity table.
	Tabla(columnas []string, filas [][]string)
	// Contador replaces the count badge.
	Contador(texto string)
	// Formulario shows the current form fields and any field errors.
	Formulario(titulo string, campos []Campo, errores map[string]string)
	// Aviso shows a transient notice.
	Aviso(nivel Nivel, texto string)
}

// Campo is one rendered form field.
type Campo struct {
	Nombre string
	Valor  string
}

// TerminalRenderer draws to a writer with aligned columns.
type TerminalRenderer struct {
	out io.Writer
}

func NewTerminalRenderer(out io.Writer) *TerminalRenderer {
	return &TerminalRenderer{out: out}
}

func (r *TerminalRenderer) Titulo(texto string) {
	fmt.Fprintf(r.out, "\n== %s ==\n", texto)
}

func (r *TerminalRenderer) Tabla(columnas []string, filas [][]string) {
	w := tabwriter.NewWriter(r.out, 2, 4, 2, ' ', 0)
	for i, col := range columnas {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, col)
	}
	fmt.Fprintln(w)
	for _, fila := range filas {
		for i, celda := range fila {
			if i > 0 {
				fmt.Fprint(w, "\t")
			}
			fmt.Fprint(w, celda)
		}
		fmt.Fprintln(w)
	}
	w.Flush()
}

func (r *TerminalRenderer) Contador(texto string) {
	fmt.Fprintf(r.out, "[%s]\n", texto)
}

func (r *TerminalRenderer) Formulario(titulo string, campos []Campo, errores map[string]string) {
	fmt.Fprintf(r.out, "-- %s --\n", titulo)
	for _, campo := range campos {
		fmt.Fprintf(r.out, "  %s: %s\n", campo.Nombre, campo.Valor)
		if msg, ok := errores[campo.Nombre]; ok {
			fmt.Fprintf(r.out, "    ! %s\n", msg)
		}
	}
}

func (r *TerminalRenderer) Aviso(nivel Nivel, texto string) {
	if nivel == NivelError {
		fmt.Fprintf(r.out, "ERROR: %s\n", texto)
		return
	}
	fmt.Fprintf(r.out, "AVISO: %s\n", texto)
}
