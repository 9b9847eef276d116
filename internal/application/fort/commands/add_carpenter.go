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

// AddCarpenterCommand buys one more carpenter
type AddCarpenterCommand struct {
	PlayerID    int
	PaymentType string // WYRMITE or DIAMANTIUM
}

// ScopePlayerID implements mediator.PlayerScoped
func (c *AddCarpenterCommand) ScopePlayerID() int { return c.PlayerID }

// AddCarpenterResponse reports the new pool and the amount paid
type AddCarpenterResponse struct {
	Carpenter types.CarpenterDTO
	Cost      int
}

// AddCarpenterHandler handles the AddCarpenter command
type AddCarpenterHandler struct {
	uow        fort.UnitOfWork
	schedulers *services.SchedulerFactory
}

// NewAddCarpenterHandler creates a new AddCarpenterHandler
func NewAddCarpenterHandler(uow fort.UnitOfWork, schedulers *services.SchedulerFactory) *AddCarpenterHandler {
	return &AddCarpenterHandler{uow: uow, schedulers: schedulers}
}

// Handle executes the AddCarpenter command
func (h *AddCarpenterHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*AddCarpenterCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *AddCarpenterCommand")
	}

	playerID, err := shared.NewPlayerID(cmd.PlayerID)
	if err != nil {
		return nil, fmt.Errorf("invalid player ID: %w", err)
	}

	paymentType, err := fort.ParsePaymentType(cmd.PaymentType)
	if err != nil {
		return nil, err
	}

	var response *AddCarpenterResponse
	err = h.uow.Execute(ctx, playerID, func(ctx context.Context, store fort.Store) error {
		pool, cost, err := h.schedulers.New(store).AddCarpenter(ctx, playerID, paymentType)
		if err != nil {
			return err
		}
		response = &AddCarpenterResponse{Carpenter: types.NewCarpenterDTO(pool), Cost: cost}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordCarpenterHire(playerID.Value(), paymentType.String(), response.Cost)
	metrics.RecordCarpenterUsage(playerID.Value(), response.Carpenter.WorkingCarpenterNum, response.Carpenter.CarpenterNum)

	return response, nil
}
