// Package art provides the domain vocabulary of the voice canvas.
//
// The package defines the values shared by the simulation and its inputs:
//
//   - [Style]: user-selected rendering and compositing mode
//   - [Shape]: particle shape tag, fixed at spawn time
//   - [Analysis]: semantic analysis record delivered by an external analyzer
//   - [SimConfig]: palette, speed and shape parameters derived from an analysis
//   - [Color]: palette entry, a hex string plus its parsed RGB value
//
// # Resolving analysis records
//
// [Resolve] maps the latest analysis record into a [SimConfig]. It never
// fails: missing or malformed fields degrade to defaults.
//
//	cfg := art.Resolve(art.Analysis{Tempo: art.TempoFast, Keywords: []string{"sharp tool"}})
//	// cfg.SpeedMultiplier == 2.5, cfg.ShapeHint == art.ShapeSquare
package art
