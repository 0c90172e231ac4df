// Package viz is the terminal preview of a live canvas, built on Bubble Tea.
//
// The raster is drawn with upper half blocks, two canvas rows per terminal
// row, next to a status panel and a volume graph.
//
// # Key Bindings
//
//	Space - Start/stop recording
//	S     - Next style (1-4 pick one directly)
//	C     - Clear
//	U     - Undo
//	W     - Save the canvas to the run store
//	T     - Cycle themes
//	?     - Show help overlay
//	Q     - Quit
package viz
