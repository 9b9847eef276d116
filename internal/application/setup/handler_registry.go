package setup

import (
	"reflect"

	fortCommands "github.com/gmcclure382/DragaliaAPI/internal/application/fort/commands"
	fortQueries "github.com/gmcclure382/DragaliaAPI/internal/application/fort/queries"
	"github.com/gmcclure382/DragaliaAPI/internal/application/fort/services"
	"github.com/gmcclure382/DragaliaAPI/internal/application/mediator"
	"github.com/gmcclure382/DragaliaAPI/internal/domain/fort"
	"github.com/gmcclure382/DragaliaAPI/internal/domain/shared"
)

// HandlerRegistry holds all application dependencies for handler creation
type HandlerRegistry struct {
	uow        fort.UnitOfWork
	schedulers *services.SchedulerFactory
}

// NewHandlerRegistry creates a new handler registry with required dependencies
func NewHandlerRegistry(
	uow fort.UnitOfWork,
	catalog *fort.Catalog,
	clock shared.Clock,
	opts services.SchedulerOptions,
) *HandlerRegistry {
	// Default to real clock if not provided
	if clock == nil {
		clock = shared.NewRealClock()
	}

	return &HandlerRegistry{
		uow:        uow,
		schedulers: services.NewSchedulerFactory(catalog, clock, opts),
	}
}

// RegisterFortHandlers registers all fort command and query handlers with the mediator
//
// This method registers:
//   - AddCarpenterCommand, BuildStartCommand, LevelupStartCommand, LevelupAtOnceCommand,
//     EndLevelupCommand, CancelLevelupCommand, CancelBuildCommand, MoveBuildCommand
//   - GrantCurrencyCommand and GrantMaterialCommand (admin tooling)
//   - GetBuildListQuery, GetFortDetailQuery and GetWalletQuery
func (r *HandlerRegistry) RegisterFortHandlers(m mediator.Mediator) error {
	handlers := []struct {
		request mediator.Request
		handler mediator.RequestHandler
	}{
		{&fortCommands.AddCarpenterCommand{}, fortCommands.NewAddCarpenterHandler(r.uow, r.schedulers)},
		{&fortCommands.BuildStartCommand{}, fortCommands.NewBuildStartHandler(r.uow, r.schedulers)},
		{&fortCommands.LevelupStartCommand{}, fortCommands.NewLevelupStartHandler(r.uow, r.schedulers)},
		{&fortCommands.LevelupAtOnceCommand{}, fortCommands.NewLevelupAtOnceHandler(r.uow, r.schedulers)},
		{&fortCommands.EndLevelupCommand{}, fortCommands.NewEndLevelupHandler(r.uow, r.schedulers)},
		{&fortCommands.CancelLevelupCommand{}, fortCommands.NewCancelLevelupHandler(r.uow, r.schedulers)},
		{&fortCommands.CancelBuildCommand{}, fortCommands.NewCancelBuildHandler(r.uow, r.schedulers)},
		{&fortCommands.MoveBuildCommand{}, fortCommands.NewMoveBuildHandler(r.uow, r.schedulers)},
		{&fortCommands.GrantCurrencyCommand{}, fortCommands.NewGrantCurrencyHandler(r.uow)},
		{&fortCommands.GrantMaterialCommand{}, fortCommands.NewGrantMaterialHandler(r.uow)},
		{&fortQueries.GetBuildListQuery{}, fortQueries.NewGetBuildListHandler(r.uow, r.schedulers)},
		{&fortQueries.GetFortDetailQuery{}, fortQueries.NewGetFortDetailHandler(r.uow, r.schedulers)},
		{&fortQueries.GetWalletQuery{}, fortQueries.NewGetWalletHandler(r.uow)},
	}

	for _, h := range handlers {
		if err := m.Register(reflect.TypeOf(h.request), h.handler); err != nil {
			return err
		}
	}

	return nil
}
