// internal/platform/ui/colors.go
package ui

import "github.com/pterm/pterm"

// Paleta nocturna: tonos de plumaje sobre fondo oscuro.
var (
	// Midnight - acento principal, banner y cabeceras
	Midnight = pterm.NewRGB(94, 129, 244)

	// Feather - texto secundario, elementos apagados
	Feather = pterm.NewRGB(110, 110, 120)

	// Beak - advertencias
	Beak = pterm.NewRGB(255, 182, 39)

	// Ember - errores
	Ember = pterm.NewRGB(215, 38, 56)

	// Moss - coincidencias y operaciones exitosas
	Moss = pterm.NewRGB(80, 200, 120)
)

// Estilos preconfigurados para diferentes contextos
var (
	StylePrimary   = Midnight.ToRGBStyle()
	StyleSuccess   = Moss.ToRGBStyle()
	StyleWarning   = Beak.ToRGBStyle()
	StyleError     = Ember.ToRGBStyle()
	StyleSecondary = Feather.ToRGBStyle()
)
