package scripting

import (
	"context"
)

// Engine represents a scripting engine (e.g., JavaScript).
type Engine interface {
	// Execute executes a script, honoring ctx cancellation. The script's
	// completion value is returned, exported to plain Go values.
	Execute(ctx context.Context, script string) (interface{}, error)

	// RegisterCalls exposes the PDF operation surface to scripts.
	RegisterCalls(caller Caller) error
}

// Caller dispatches one named operation with JSON-encoded parameters and
// returns its JSON-encoded result. The calls package provides the standard
// implementation.
type Caller interface {
	Call(ctx context.Context, name string, params []byte) ([]byte, error)
}
