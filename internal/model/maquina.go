package model

// Maquina is a plant machine. Codigo is the shop-floor code, unique alongside
// the name. Never deleted, only deactivated.
type Maquina struct {
	ID     ID
	Nombre string
	Codigo string
	Notas  string
	Activo bool
}
