package commands

import (
	"context"
	"fmt"

	"github.com/gmcclure382/DragaliaAPI/internal/adapters/metrics"
	"github.com/gmcclure382/DragaliaAPI/internal/application/fort/services"
	"github.com/gmcclure382/DragaliaAPI/internal/application/fort/types"
	"github.com/gmcclure382/DragaliaAPI/internal/application/mediator"
	"github.com/gmcclure382/DragaliaAPI/internal/domain/fort"
	"github.com/gmcclure382/DragaliaAPI/internal/domain/shared"
)

// BuildStartCommand places a new facility
type BuildStartCommand struct {
	PlayerID  int
	PlantID   int
	PositionX int
	PositionZ int
}

// ScopePlayerID implements mediator.PlayerScoped
func (c *BuildStartCommand) ScopePlayerID() int { return c.PlayerID }

// BuildStartHandler handles the BuildStart command
type BuildStartHandler struct {
	uow        fort.UnitOfWork
	schedulers *services.SchedulerFactory
}

// NewBuildStartHandler creates a new BuildStartHandler
func NewBuildStartHandler(uow fort.UnitOfWork, schedulers *services.SchedulerFactory) *BuildStartHandler {
	return &BuildStartHandler{uow: uow, schedulers: schedulers}
}

// Handle executes the BuildStart command
func (h *BuildStartHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*BuildStartCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *BuildStartCommand")
	}

	playerID, err := shared.NewPlayerID(cmd.PlayerID)
	if err != nil {
		return nil, fmt.Errorf("invalid player ID: %w", err)
	}

	plantID := fort.PlantID(cmd.PlantID)

	var response *BuildResponse
	err = h.uow.Execute(ctx, playerID, func(ctx context.Context, store fort.Store) error {
		scheduler := h.schedulers.New(store)

		build, err := scheduler.BuildStart(ctx, playerID, plantID, cmd.PositionX, cmd.PositionZ)
		if err != nil {
			return err
		}

		pool, err := scheduler.FortDetail(ctx, playerID)
		if err != nil {
			return err
		}

		response = &BuildResponse{
			Build:     types.NewBuildDTO(build, scheduler.Now()),
			Carpenter: types.NewCarpenterDTO(pool),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordBuildPlaced(playerID.Value(), plantID.String())

	return response, nil
}
