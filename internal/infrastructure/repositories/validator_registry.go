package repositories

import (
	domainRepos "github.com/rios0rios0/blockwatch/internal/domain/repositories"
)

// ValidatorRegistry is the fixed, ordered table of content validators. It is built
// once at startup and only read afterwards.
type ValidatorRegistry struct {
	validators []domainRepos.ValidatorRepository
	byName     map[string]domainRepos.ValidatorRepository
}

// NewValidatorRegistry creates a registry holding validators in the given order.
func NewValidatorRegistry(validators ...domainRepos.ValidatorRepository) *ValidatorRegistry {
	registry := &ValidatorRegistry{
		validators: make([]domainRepos.ValidatorRepository, 0, len(validators)),
		byName:     make(map[string]domainRepos.ValidatorRepository, len(validators)),
	}
	for _, v := range validators {
		if _, exists := registry.byName[v.Name()]; exists {
			continue
		}
		registry.validators = append(registry.validators, v)
		registry.byName[v.Name()] = v
	}
	return registry
}

// Get returns the validator with the given name, or nil if not registered.
func (r *ValidatorRegistry) Get(name string) domainRepos.ValidatorRepository {
	return r.byName[name]
}

// All returns every registered validator in registry order.
func (r *ValidatorRegistry) All() []domainRepos.ValidatorRepository {
	return append([]domainRepos.ValidatorRepository(nil), r.validators...)
}

// Names returns the registered validator names in registry order.
func (r *ValidatorRegistry) Names() []string {
	names := make([]string, 0, len(r.validators))
	for _, v := range r.validators {
		names = append(names, v.Name())
	}
	return names
}
