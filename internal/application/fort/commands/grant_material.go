package commands

import (
	"context"
	"fmt"

	"github.com/gmcclure382/DragaliaAPI/internal/application/logging"
	"github.com/gmcclure382/DragaliaAPI/internal/application/mediator"
	"github.com/gmcclure382/DragaliaAPI/internal/domain/fort"
	"github.com/gmcclure382/DragaliaAPI/internal/domain/shared"
)

// GrantMaterialCommand adds construction materials to a player's inventory (admin tooling)
type GrantMaterialCommand struct {
	PlayerID int
	Material string
	Quantity int
}

// ScopePlayerID implements mediator.PlayerScoped
func (c *GrantMaterialCommand) ScopePlayerID() int { return c.PlayerID }

// GrantMaterialResponse reports the inventory after the grant
type GrantMaterialResponse struct {
	Quantities map[string]int
}

// GrantMaterialHandler handles the GrantMaterial command
type GrantMaterialHandler struct {
	uow fort.UnitOfWork
}

// NewGrantMaterialHandler creates a new GrantMaterialHandler
func NewGrantMaterialHandler(uow fort.UnitOfWork) *GrantMaterialHandler {
	return &GrantMaterialHandler{uow: uow}
}

// Handle executes the GrantMaterial command
func (h *GrantMaterialHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*GrantMaterialCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GrantMaterialCommand")
	}

	playerID, err := shared.NewPlayerID(cmd.PlayerID)
	if err != nil {
		return nil, fmt.Errorf("invalid player ID: %w", err)
	}

	material, err := fort.ParseMaterial(cmd.Material)
	if err != nil {
		return nil, err
	}

	if cmd.Quantity <= 0 {
		return nil, shared.NewValidationError("quantity", "must be positive")
	}

	var response *GrantMaterialResponse
	err = h.uow.Execute(ctx, playerID, func(ctx context.Context, store fort.Store) error {
		deltas := map[fort.Material]int{material: cmd.Quantity}
		if err := store.Inventory.UpdateQuantity(ctx, playerID, deltas); err != nil {
			return fmt.Errorf("failed to grant material: %w", err)
		}

		quantities, err := store.Inventory.Quantities(ctx, playerID)
		if err != nil {
			return fmt.Errorf("failed to read inventory: %w", err)
		}

		response = &GrantMaterialResponse{Quantities: make(map[string]int, len(quantities))}
		for m, q := range quantities {
			response.Quantities[m.String()] = q
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.LoggerFromContext(ctx).Log("INFO", "Material granted", map[string]interface{}{
		"player_id": playerID.Value(),
		"material":  material.String(),
		"quantity":  cmd.Quantity,
	})

	return response, nil
}
