package filters

import (
	"freight/internal/pkg/errs"
)

// Registry resolves a Key to its Strategy.
type Registry struct {
	strategies map[Key]Strategy
}

// NewRegistry returns a registry holding one strategy per key in Keys.
func NewRegistry() Registry {
	return NewRegistryOf(FeeStrategy{}, DistanceStrategy{}, TimeStrategy{})
}

// NewRegistryOf builds a registry from the given strategies; a later strategy
// replaces an earlier one with the same key.
func NewRegistryOf(strategies ...Strategy) Registry {
	r := Registry{strategies: make(map[Key]Strategy, len(strategies))}
	for _, s := range strategies {
		r.strategies[s.Key()] = s
	}
	return r
}

// Lookup fails with *errs.UnknownFilterKeyError for a key with no strategy.
func (r Registry) Lookup(key Key) (Strategy, error) {
	s, ok := r.strategies[key]
	if !ok {
		return nil, errs.NewUnknownFilterKeyError(key.String())
	}
	return s, nil
}
