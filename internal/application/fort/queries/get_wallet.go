package queries

import (
	"context"
	"fmt"

	"github.com/gmcclure382/DragaliaAPI/internal/application/mediator"
	"github.com/gmcclure382/DragaliaAPI/internal/domain/fort"
	"github.com/gmcclure382/DragaliaAPI/internal/domain/shared"
)

// GetWalletQuery reads a player's currencies and construction materials
type GetWalletQuery struct {
	PlayerID int
}

// ScopePlayerID implements mediator.PlayerScoped
func (q *GetWalletQuery) ScopePlayerID() int { return q.PlayerID }

// GetWalletResponse represents the result of the query
type GetWalletResponse struct {
	Currencies map[string]int
	Materials  map[string]int
}

// GetWalletHandler handles the GetWallet query
type GetWalletHandler struct {
	uow fort.UnitOfWork
}

// NewGetWalletHandler creates a new GetWalletHandler
func NewGetWalletHandler(uow fort.UnitOfWork) *GetWalletHandler {
	return &GetWalletHandler{uow: uow}
}

// Handle executes the GetWallet query
func (h *GetWalletHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetWalletQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetWalletQuery")
	}

	playerID, err := shared.NewPlayerID(query.PlayerID)
	if err != nil {
		return nil, fmt.Errorf("invalid player ID: %w", err)
	}

	response := &GetWalletResponse{
		Currencies: make(map[string]int),
		Materials:  make(map[string]int),
	}
	err = h.uow.Execute(ctx, playerID, func(ctx context.Context, store fort.Store) error {
		balances, err := store.Wallet.Balances(ctx, playerID)
		if err != nil {
			return fmt.Errorf("failed to read wallet: %w", err)
		}
		for pt, amount := range balances {
			response.Currencies[pt.String()] = amount
		}

		quantities, err := store.Inventory.Quantities(ctx, playerID)
		if err != nil {
			return fmt.Errorf("failed to read inventory: %w", err)
		}
		for m, q := range quantities {
			response.Materials[m.String()] = q
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return response, nil
}
