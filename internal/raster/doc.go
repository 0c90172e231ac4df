// Package raster provides the software drawing surface of the canvas.
//
// A [Surface] wraps a premultiplied *image.RGBA and offers the handful of
// canvas operations the renderer needs:
//
//   - filled circles and rectangles, stroked segments with butt caps
//   - an optional [Glow] (blurred shadow in a given color) under a stroke
//   - three compositing modes: [SourceOver], [Lighter], [Multiply]
//   - snapshot/put for undo, and content-preserving [Surface.Resize]
//
// Shape coverage is computed with golang.org/x/image/vector on a mask that
// covers only the shape's bounding box, so per-particle cost scales with the
// particle size rather than the surface size.
package raster

import "errors"

// ErrNotReady is returned by operations that need pixels from a surface with no area.
var ErrNotReady = errors.New("raster: surface has no area")
