// Package engine runs the canvas: a Renderer holding the simulation context
// and a Loop that ticks it.
//
// Each frame selects the compositing mode for the current style, spawns
// particles from the latest volume while recording, advances the store and
// draws every survivor in array order. Clear and undo arrive as edge counters
// that the renderer reconciles immediately and again at the start of a frame.
// Stopping a recording pushes one raster snapshot onto the undo history.
package engine
