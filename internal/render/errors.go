package render

import "errors"

var (
	// ErrNoSources indicates a compositor built without any layer source.
	ErrNoSources = errors.New("render: no layer sources")

	// ErrTooManyLayers indicates more than MaxLayers layers or sources.
	ErrTooManyLayers = errors.New("render: too many layers")

	// ErrLayersPinned indicates an explicit layer count while several custom
	// sources pin it.
	ErrLayersPinned = errors.New("render: layer count pinned by sources")

	// ErrInvalidSize indicates a non-positive frame or texture size.
	ErrInvalidSize = errors.New("render: invalid size")
)
