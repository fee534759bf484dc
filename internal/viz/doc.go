// Package viz holds the terminal drawing pieces of the sandbox view:
//
//   - [Canvas]: Braille-based pixel canvas, 2x4 dots per cell
//   - [Viewport]: world-to-canvas projection with zoom
//   - [Theme] and [Styles]: lipgloss color schemes
//   - [EnergyGraph]: asciigraph plot of the energy history
package viz
