// Package ignite is the embeddable front door to the store: construct an
// Instance directly against a data directory, without going through the
// network server, for callers that want the engine in-process.
package ignite

import (
	"github.com/gokvs/kvs/internal/engine"
	"github.com/gokvs/kvs/pkg/logger"
	"github.com/gokvs/kvs/pkg/options"
)

// Instance wraps a concrete storage engine chosen at construction time by
// options.Options.Engine ("kvs" or "sled").
type Instance struct {
	engine  engine.Engine
	options *options.Options
}

// NewInstance opens the engine named by opts (or options.DefaultEngine if
// none were given) against its configured data directory.
func NewInstance(service string, opts ...options.OptionFunc) (*Instance, error) {
	log := logger.New(service)

	resolved := options.NewDefaultOptions()
	for _, opt := range opts {
		opt(&resolved)
	}

	eng, err := engine.Open(&resolved, log)
	if err != nil {
		return nil, err
	}

	return &Instance{engine: eng, options: &resolved}, nil
}

// Set stores key bound to value, overwriting any prior value.
func (i *Instance) Set(key, value string) error {
	return i.engine.Set(key, value)
}

// Get retrieves the value bound to key, or a KeyNotFoundError if unbound.
func (i *Instance) Get(key string) (string, error) {
	return i.engine.Get(key)
}

// Remove unbinds key, failing with KeyNotFoundError if it wasn't bound.
func (i *Instance) Remove(key string) error {
	return i.engine.Remove(key)
}

// Close releases the underlying engine's resources.
func (i *Instance) Close() error {
	return i.engine.Close()
}
