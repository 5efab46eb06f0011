package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"capflow/internal/api"
	"capflow/internal/config"
	"capflow/internal/filter"
	"capflow/internal/module"
	"capflow/internal/ui"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.Env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	breaker := api.NewBreaker(api.BreakerConfig{
		FailureThreshold: cfg.CBFailureThreshold,
		SuccessThreshold: cfg.CBSuccessThreshold,
		OpenTimeout:      time.Duration(cfg.CBOpenTimeoutSecs) * time.Second,
	})
	client := api.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout(), breaker)

	renderer := ui.NewTerminalRenderer(os.Stdout)
	contenedor := &ui.Contenedor{
		Renderer: renderer,
		Avisos:   ui.NewAvisos(renderer, cfg.AvisoTTL()),
	}

	router := ui.NewRouter(contenedor)
	router.Registrar(module.NewProductos(api.NewProductosClient(client)))
	router.Registrar(module.NewMaquinas(api.NewMaquinasClient(client)))

	log.Info().Str("backend", cfg.APIBaseURL).Msg("CapFlow admin console")
	fmt.Println("CapFlow — escriba 'ayuda' para ver los comandos")

	consola{router: router, entrada: bufio.NewScanner(os.Stdin)}.correr(context.Background())
}

type consola struct {
	router  *ui.Router
	entrada *bufio.Scanner
}

func (c consola) correr(ctx context.Context) {
	for {
		fmt.Print("> ")
		if !c.entrada.Scan() {
			return
		}
		linea := strings.TrimSpace(c.entrada.Text())
		if linea == "" {
			continue
		}
		comando, resto, _ := strings.Cut(linea, " ")
		resto = strings.TrimSpace(resto)

		switch comando {
		case "salir":
			return
		case "ayuda":
			imprimirAyuda()
		case "productos", "maquinas":
			if err := c.router.Navegar(ctx, comando); err != nil {
				fmt.Println(err)
			}
		default:
			c.despachar(ctx, comando, resto)
		}
	}
}

// despachar routes a command to the mounted module's event handlers.
func (c consola) despachar(ctx context.Context, comando, resto string) {
	activo := c.router.Activo()
	if activo == nil {
		fmt.Println("Monte un módulo primero: productos | maquinas")
		return
	}

	switch m := activo.(type) {
	case *module.ModuloProductos:
		switch comando {
		case "buscar":
			m.Buscar(resto)
		case "nuevo":
			m.Nuevo()
		case "editar":
			m.Editar(resto)
		case "campo":
			c.campo(resto, m.Campo)
		case "guardar":
			m.Guardar(ctx)
		case "cancelar":
			m.Cancelar()
		case "estado":
			if c.confirmar(resto) {
				m.CambiarEstado(ctx, resto)
			}
		default:
			fmt.Printf("Comando desconocido: %q\n", comando)
		}
	case *module.ModuloMaquinas:
		switch comando {
		case "buscar":
			m.Buscar(resto)
		case "filtro":
			estado, err := filter.ParseEstado(resto)
			if err != nil {
				fmt.Println(err)
				return
			}
			m.Filtrar(estado)
		case "nuevo":
			m.Nuevo()
		case "editar":
			m.Editar(resto)
		case "campo":
			c.campo(resto, m.Campo)
		case "guardar":
			m.Guardar(ctx)
		case "cancelar":
			m.Cancelar()
		case "estado":
			if c.confirmar(resto) {
				m.CambiarEstado(ctx, resto)
			}
		default:
			fmt.Printf("Comando desconocido: %q\n", comando)
		}
	}
}

func (c consola) campo(resto string, setter func(nombre, valor string) error) {
	nombre, valor, ok := strings.Cut(resto, " ")
	if !ok {
		fmt.Println("Uso: campo <nombre> <valor>")
		return
	}
	if err := setter(nombre, strings.TrimSpace(valor)); err != nil {
		fmt.Println(err)
	}
}

// confirmar asks before an irreversible-per-click status toggle.
func (c consola) confirmar(id string) bool {
	if id == "" {
		fmt.Println("Uso: estado <id>")
		return false
	}
	fmt.Printf("¿Confirmar cambio de estado de %s? (s/n) ", id)
	if !c.entrada.Scan() {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(c.entrada.Text()), "s")
}

func imprimirAyuda() {
	fmt.Print(`Comandos:
  productos | maquinas        montar un módulo
  buscar <texto>              filtrar por texto (nombre; máquinas también código)
  filtro <todos|activos|inactivos>   selector de estado (solo máquinas)
  nuevo                       formulario de alta
  editar <id>                 editar un registro
  campo <nombre> <valor>      fijar un campo del formulario
  guardar                     validar y enviar
  cancelar                    descartar el formulario
  estado <id>                 activar/desactivar (con confirmación)
  salir
`)
}
