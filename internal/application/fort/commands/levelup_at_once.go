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

// LevelupAtOnceCommand pays to finish an open construction window immediately
type LevelupAtOnceCommand struct {
	PlayerID    int
	BuildID     int64
	PaymentType string // WYRMITE, DIAMANTIUM or HALIDOM_HUSTLE_HAMMER
}

// ScopePlayerID implements mediator.PlayerScoped
func (c *LevelupAtOnceCommand) ScopePlayerID() int { return c.PlayerID }

// LevelupAtOnceResponse reports the completed build and the amount paid
type LevelupAtOnceResponse struct {
	BuildResponse
	Cost int
}

// LevelupAtOnceHandler handles the LevelupAtOnce command
type LevelupAtOnceHandler struct {
	uow        fort.UnitOfWork
	schedulers *services.SchedulerFactory
}

// NewLevelupAtOnceHandler creates a new LevelupAtOnceHandler
func NewLevelupAtOnceHandler(uow fort.UnitOfWork, schedulers *services.SchedulerFactory) *LevelupAtOnceHandler {
	return &LevelupAtOnceHandler{uow: uow, schedulers: schedulers}
}

// Handle executes the LevelupAtOnce command
func (h *LevelupAtOnceHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*LevelupAtOnceCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *LevelupAtOnceCommand")
	}

	playerID, buildID, err := parseBuildTarget(cmd.PlayerID, cmd.BuildID)
	if err != nil {
		return nil, err
	}

	paymentType, err := fort.ParsePaymentType(cmd.PaymentType)
	if err != nil {
		return nil, err
	}

	var response *LevelupAtOnceResponse
	err = h.uow.Execute(ctx, playerID, func(ctx context.Context, store fort.Store) error {
		scheduler := h.schedulers.New(store)

		build, cost, err := scheduler.LevelupAtOnce(ctx, playerID, paymentType, buildID)
		if err != nil {
			return err
		}

		pool, err := scheduler.FortDetail(ctx, playerID)
		if err != nil {
			return err
		}

		response = &LevelupAtOnceResponse{
			BuildResponse: BuildResponse{
				Build:     types.NewBuildDTO(build, scheduler.Now()),
				Carpenter: types.NewCarpenterDTO(pool),
			},
			Cost: cost,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordTimeSkip(playerID.Value(), paymentType.String(), response.Cost)
	metrics.RecordLevelupCompleted(playerID.Value(), response.Build.PlantName, response.Build.Level, true)
	metrics.RecordCarpenterUsage(playerID.Value(), response.Carpenter.WorkingCarpenterNum, response.Carpenter.CarpenterNum)

	return response, nil
}
