package lens

import "errors"

// Domain errors for the outer surfaces (config, CLI). The numerical core itself
// never returns errors: every function is total after clamping.
var (
	// ErrUnknownModel indicates a model name outside the closed variant set.
	ErrUnknownModel = errors.New("lens: unknown model")

	// ErrUnknownParam indicates a slider name the model does not expose.
	ErrUnknownParam = errors.New("lens: unknown parameter")

	// ErrTableSize indicates a lookup table configured with no bins or steps.
	ErrTableSize = errors.New("lens: table bins and steps must be positive")
)
