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

// CancelLevelupCommand abandons an open construction window. Nothing is refunded.
type CancelLevelupCommand struct {
	PlayerID int
	BuildID  int64
}

// ScopePlayerID implements mediator.PlayerScoped
func (c *CancelLevelupCommand) ScopePlayerID() int { return c.PlayerID }

// CancelLevelupHandler handles the CancelLevelup command
type CancelLevelupHandler struct {
	uow        fort.UnitOfWork
	schedulers *services.SchedulerFactory
}

// NewCancelLevelupHandler creates a new CancelLevelupHandler
func NewCancelLevelupHandler(uow fort.UnitOfWork, schedulers *services.SchedulerFactory) *CancelLevelupHandler {
	return &CancelLevelupHandler{uow: uow, schedulers: schedulers}
}

// Handle executes the CancelLevelup command
func (h *CancelLevelupHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*CancelLevelupCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *CancelLevelupCommand")
	}

	playerID, buildID, err := parseBuildTarget(cmd.PlayerID, cmd.BuildID)
	if err != nil {
		return nil, err
	}

	var response *BuildResponse
	err = h.uow.Execute(ctx, playerID, func(ctx context.Context, store fort.Store) error {
		scheduler := h.schedulers.New(store)

		build, err := scheduler.CancelLevelup(ctx, playerID, buildID)
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

	metrics.RecordCarpenterUsage(playerID.Value(), response.Carpenter.WorkingCarpenterNum, response.Carpenter.CarpenterNum)

	return response, nil
}
