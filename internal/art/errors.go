package art

import "errors"

// Parse errors for user-facing names (CLI flags, YAML files).
var (
	// ErrUnknownStyle indicates a style name outside Watercolor, Abstract, Impressionist, Neon.
	ErrUnknownStyle = errors.New("art: unknown style")

	// ErrUnknownTempo indicates a tempo name outside Slow, Medium, Fast.
	ErrUnknownTempo = errors.New("art: unknown tempo")

	// ErrUnknownEmotion indicates an emotion name the analyzer never emits.
	ErrUnknownEmotion = errors.New("art: unknown emotion")

	// ErrInvalidColor indicates a palette entry that is not a hex color.
	ErrInvalidColor = errors.New("art: invalid hex color")
)
