// Package render turns simulation state into frames: it owns the hover
// state machine, the animated visual wrappers, and the per-frame drawing
// onto a raster or SVG surface.
package render

import "image/color"

// Theme supplies the derived colors that are not region-specific. A theme
// change requires a full re-mount so every derived color is recomputed.
type Theme struct {
	Name       string
	Background color.RGBA
	Text       color.RGBA
	Accent     color.RGBA // focal node
	Secondary  color.RGBA // visited nodes and tag nodes
	Gray       color.RGBA // unclassified nodes, also the proximity-blend base
	Edge       color.RGBA
}

// DarkTheme is the default theme.
func DarkTheme() Theme {
	return Theme{
		Name:       "dark",
		Background: color.RGBA{R: 0x16, G: 0x16, B: 0x22, A: 0xff},
		Text:       color.RGBA{R: 0xe8, G: 0xe8, B: 0xf0, A: 0xff},
		Accent:     color.RGBA{R: 0xfb, G: 0xbf, B: 0x24, A: 0xff},
		Secondary:  color.RGBA{R: 0x8f, G: 0x9f, B: 0xcf, A: 0xff},
		Gray:       color.RGBA{R: 0x6e, G: 0x6e, B: 0x7e, A: 0xff},
		Edge:       color.RGBA{R: 0x55, G: 0x55, B: 0x77, A: 0xff},
	}
}

// LightTheme mirrors DarkTheme on a light backdrop.
func LightTheme() Theme {
	return Theme{
		Name:       "light",
		Background: color.RGBA{R: 0xf8, G: 0xf9, B: 0xfc, A: 0xff},
		Text:       color.RGBA{R: 0x1a, G: 0x1a, B: 0x2e, A: 0xff},
		Accent:     color.RGBA{R: 0xd9, G: 0x77, B: 0x06, A: 0xff},
		Secondary:  color.RGBA{R: 0x5a, G: 0x6a, B: 0xa8, A: 0xff},
		Gray:       color.RGBA{R: 0x9a, G: 0x9a, B: 0xa8, A: 0xff},
		Edge:       color.RGBA{R: 0xb8, G: 0xb8, B: 0xc8, A: 0xff},
	}
}

// ThemeByName resolves a theme name, defaulting to dark.
func ThemeByName(name string) Theme {
	if name == "light" {
		return LightTheme()
	}
	return DarkTheme()
}
