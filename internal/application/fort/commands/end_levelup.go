package commands

import (
	"context"
	"fmt"

	"github.com/gmcclure382/DragaliaAPI/internal/adapters/metrics"
	"github.com/gmcclure382/DragaliaAPI/internal/application/fort/services"
	"github.com/gmcclure382/DragaliaAPI/internal/application/fort/types"
	"github.com/gmcclure382/DragaliaAPI/internal/application/mediator"
	"github.com/gmcclure382/DragaliaAPI/internal/domain/fort"
)

// EndLevelupCommand resolves a construction window whose timer has elapsed
type EndLevelupCommand struct {
	PlayerID int
	BuildID  int64
}

// ScopePlayerID implements mediator.PlayerScoped
func (c *EndLevelupCommand) ScopePlayerID() int { return c.PlayerID }

// EndLevelupHandler handles the EndLevelup command
type EndLevelupHandler struct {
	uow        fort.UnitOfWork
	schedulers *services.SchedulerFactory
}

// NewEndLevelupHandler creates a new EndLevelupHandler
func NewEndLevelupHandler(uow fort.UnitOfWork, schedulers *services.SchedulerFactory) *EndLevelupHandler {
	return &EndLevelupHandler{uow: uow, schedulers: schedulers}
}

// Handle executes the EndLevelup command
func (h *EndLevelupHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*EndLevelupCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *EndLevelupCommand")
	}

	playerID, buildID, err := parseBuildTarget(cmd.PlayerID, cmd.BuildID)
	if err != nil {
		return nil, err
	}

	var response *BuildResponse
	err = h.uow.Execute(ctx, playerID, func(ctx context.Context, store fort.Store) error {
		scheduler := h.schedulers.New(store)

		build, err := scheduler.EndLevelup(ctx, playerID, buildID)
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

	metrics.RecordLevelupCompleted(playerID.Value(), response.Build.PlantName, response.Build.Level, false)
	metrics.RecordCarpenterUsage(playerID.Value(), response.Carpenter.WorkingCarpenterNum, response.Carpenter.CarpenterNum)

	return response, nil
}
