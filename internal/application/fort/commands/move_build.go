package commands

import (
	"context"
	"fmt"

	"github.com/gmcclure382/DragaliaAPI/internal/application/fort/services"
	"github.com/gmcclure382/DragaliaAPI/internal/application/fort/types"
	"github.com/gmcclure382/DragaliaAPI/internal/application/mediator"
	"github.com/gmcclure382/DragaliaAPI/internal/domain/fort"
)

// MoveBuildCommand relocates a facility
type MoveBuildCommand struct {
	PlayerID  int
	BuildID   int64
	PositionX int
	PositionZ int
}

// ScopePlayerID implements mediator.PlayerScoped
func (c *MoveBuildCommand) ScopePlayerID() int { return c.PlayerID }

// MoveBuildHandler handles the MoveBuild command
type MoveBuildHandler struct {
	uow        fort.UnitOfWork
	schedulers *services.SchedulerFactory
}

// NewMoveBuildHandler creates a new MoveBuildHandler
func NewMoveBuildHandler(uow fort.UnitOfWork, schedulers *services.SchedulerFactory) *MoveBuildHandler {
	return &MoveBuildHandler{uow: uow, schedulers: schedulers}
}

// Handle executes the MoveBuild command
func (h *MoveBuildHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*MoveBuildCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *MoveBuildCommand")
	}

	playerID, buildID, err := parseBuildTarget(cmd.PlayerID, cmd.BuildID)
	if err != nil {
		return nil, err
	}

	var response *BuildResponse
	err = h.uow.Execute(ctx, playerID, func(ctx context.Context, store fort.Store) error {
		scheduler := h.schedulers.New(store)

		build, err := scheduler.Move(ctx, playerID, buildID, cmd.PositionX, cmd.PositionZ)
		if err != nil {
			return err
		}

		response = &BuildResponse{Build: types.NewBuildDTO(build, scheduler.Now())}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return response, nil
}
