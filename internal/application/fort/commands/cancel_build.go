package commands

import (
	"context"
	"fmt"

	"github.com/gmcclure382/DragaliaAPI/internal/application/fort/services"
	"github.com/gmcclure382/DragaliaAPI/internal/application/fort/types"
	"github.com/gmcclure382/DragaliaAPI/internal/application/mediator"
	"github.com/gmcclure382/DragaliaAPI/internal/domain/fort"
)

// CancelBuildCommand removes a facility that never reached level 1
type CancelBuildCommand struct {
	PlayerID int
	BuildID  int64
}

// ScopePlayerID implements mediator.PlayerScoped
func (c *CancelBuildCommand) ScopePlayerID() int { return c.PlayerID }

// CancelBuildResponse reports the deleted build id and the resulting pool
type CancelBuildResponse struct {
	BuildID   int64
	Carpenter types.CarpenterDTO
}

// CancelBuildHandler handles the CancelBuild command
type CancelBuildHandler struct {
	uow        fort.UnitOfWork
	schedulers *services.SchedulerFactory
}

// NewCancelBuildHandler creates a new CancelBuildHandler
func NewCancelBuildHandler(uow fort.UnitOfWork, schedulers *services.SchedulerFactory) *CancelBuildHandler {
	return &CancelBuildHandler{uow: uow, schedulers: schedulers}
}

// Handle executes the CancelBuild command
func (h *CancelBuildHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*CancelBuildCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *CancelBuildCommand")
	}

	playerID, buildID, err := parseBuildTarget(cmd.PlayerID, cmd.BuildID)
	if err != nil {
		return nil, err
	}

	var response *CancelBuildResponse
	err = h.uow.Execute(ctx, playerID, func(ctx context.Context, store fort.Store) error {
		scheduler := h.schedulers.New(store)

		if err := scheduler.CancelBuild(ctx, playerID, buildID); err != nil {
			return err
		}

		pool, err := scheduler.FortDetail(ctx, playerID)
		if err != nil {
			return err
		}

		response = &CancelBuildResponse{BuildID: int64(buildID), Carpenter: types.NewCarpenterDTO(pool)}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return response, nil
}
