package queries

import (
	"context"
	"fmt"

	"github.com/gmcclure382/DragaliaAPI/internal/application/fort/services"
	"github.com/gmcclure382/DragaliaAPI/internal/application/fort/types"
	"github.com/gmcclure382/DragaliaAPI/internal/application/mediator"
	"github.com/gmcclure382/DragaliaAPI/internal/domain/fort"
	"github.com/gmcclure382/DragaliaAPI/internal/domain/shared"
)

// GetBuildListQuery lists every facility a player owns
type GetBuildListQuery struct {
	PlayerID int
}

// ScopePlayerID implements mediator.PlayerScoped
func (q *GetBuildListQuery) ScopePlayerID() int { return q.PlayerID }

// GetBuildListResponse represents the result of the query
type GetBuildListResponse struct {
	Builds    []*types.BuildDTO
	Carpenter types.CarpenterDTO
}

// GetBuildListHandler handles the GetBuildList query
type GetBuildListHandler struct {
	uow        fort.UnitOfWork
	schedulers *services.SchedulerFactory
}

// NewGetBuildListHandler creates a new GetBuildListHandler
func NewGetBuildListHandler(uow fort.UnitOfWork, schedulers *services.SchedulerFactory) *GetBuildListHandler {
	return &GetBuildListHandler{uow: uow, schedulers: schedulers}
}

// Handle executes the GetBuildList query
func (h *GetBuildListHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetBuildListQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetBuildListQuery")
	}

	playerID, err := shared.NewPlayerID(query.PlayerID)
	if err != nil {
		return nil, fmt.Errorf("invalid player ID: %w", err)
	}

	var response *GetBuildListResponse
	err = h.uow.Execute(ctx, playerID, func(ctx context.Context, store fort.Store) error {
		scheduler := h.schedulers.New(store)

		builds, now, err := scheduler.BuildList(ctx, playerID)
		if err != nil {
			return err
		}

		pool, err := scheduler.FortDetail(ctx, playerID)
		if err != nil {
			return err
		}

		response = &GetBuildListResponse{
			Builds:    make([]*types.BuildDTO, 0, len(builds)),
			Carpenter: types.NewCarpenterDTO(pool),
		}
		for _, build := range builds {
			response.Builds = append(response.Builds, types.NewBuildDTO(build, now))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return response, nil
}
