package queries

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

// GetFortDetailQuery reads a player's carpenter pool
type GetFortDetailQuery struct {
	PlayerID int
}

// ScopePlayerID implements mediator.PlayerScoped
func (q *GetFortDetailQuery) ScopePlayerID() int { return q.PlayerID }

// GetFortDetailResponse represents the result of the query
type GetFortDetailResponse struct {
	Carpenter types.CarpenterDTO
	// NextCarpenterCost is the premium price of one more carpenter; zero at the cap
	NextCarpenterCost int
}

// GetFortDetailHandler handles the GetFortDetail query
type GetFortDetailHandler struct {
	uow        fort.UnitOfWork
	schedulers *services.SchedulerFactory
}

// NewGetFortDetailHandler creates a new GetFortDetailHandler
func NewGetFortDetailHandler(uow fort.UnitOfWork, schedulers *services.SchedulerFactory) *GetFortDetailHandler {
	return &GetFortDetailHandler{uow: uow, schedulers: schedulers}
}

// Handle executes the GetFortDetail query
func (h *GetFortDetailHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetFortDetailQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetFortDetailQuery")
	}

	playerID, err := shared.NewPlayerID(query.PlayerID)
	if err != nil {
		return nil, fmt.Errorf("invalid player ID: %w", err)
	}

	var response *GetFortDetailResponse
	err = h.uow.Execute(ctx, playerID, func(ctx context.Context, store fort.Store) error {
		pool, err := h.schedulers.New(store).FortDetail(ctx, playerID)
		if err != nil {
			return err
		}

		response = &GetFortDetailResponse{Carpenter: types.NewCarpenterDTO(pool)}
		if cost, ok := fort.CarpenterCost(pool.Capacity()); ok {
			response.NextCarpenterCost = cost
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordCarpenterUsage(playerID.Value(), response.Carpenter.WorkingCarpenterNum, response.Carpenter.CarpenterNum)

	return response, nil
}
