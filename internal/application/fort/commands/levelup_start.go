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

// LevelupStartCommand opens a construction window for a build's next level
type LevelupStartCommand struct {
	PlayerID int
	BuildID  int64
}

// ScopePlayerID implements mediator.PlayerScoped
func (c *LevelupStartCommand) ScopePlayerID() int { return c.PlayerID }

// LevelupStartHandler handles the LevelupStart command
type LevelupStartHandler struct {
	uow        fort.UnitOfWork
	schedulers *services.SchedulerFactory
}

// NewLevelupStartHandler creates a new LevelupStartHandler
func NewLevelupStartHandler(uow fort.UnitOfWork, schedulers *services.SchedulerFactory) *LevelupStartHandler {
	return &LevelupStartHandler{uow: uow, schedulers: schedulers}
}

// Handle executes the LevelupStart command
func (h *LevelupStartHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*LevelupStartCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *LevelupStartCommand")
	}

	playerID, buildID, err := parseBuildTarget(cmd.PlayerID, cmd.BuildID)
	if err != nil {
		return nil, err
	}

	var response *BuildResponse
	err = h.uow.Execute(ctx, playerID, func(ctx context.Context, store fort.Store) error {
		scheduler := h.schedulers.New(store)

		build, err := scheduler.LevelupStart(ctx, playerID, buildID)
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

	metrics.RecordLevelupStarted(playerID.Value(), response.Build.PlantName, response.Build.Level+1)
	metrics.RecordCarpenterUsage(playerID.Value(), response.Carpenter.WorkingCarpenterNum, response.Carpenter.CarpenterNum)

	return response, nil
}
