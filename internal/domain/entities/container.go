package entities

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all entity providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// defaults only: the file and the flags are merged in by the controllers
	return container.Provide(NewSettings)
}
