package internal

import (
	"github.com/rios0rios0/blockwatch/internal/domain/entities"
	"github.com/rios0rios0/blockwatch/internal/infrastructure/controllers"
)

// AppInternal exposes what the CLI entry point needs from the container.
type AppInternal struct {
	controllers     *[]entities.Controller
	checkController *controllers.CheckController
}

// NewAppInternal creates the AppInternal.
func NewAppInternal(
	subcommands *[]entities.Controller,
	checkController *controllers.CheckController,
) *AppInternal {
	return &AppInternal{controllers: subcommands, checkController: checkController}
}

// GetControllers returns the subcommand controllers.
func (it *AppInternal) GetControllers() []entities.Controller {
	return *it.controllers
}

// GetRootController returns the controller serving the root command.
func (it *AppInternal) GetRootController() entities.Controller {
	return it.checkController
}
