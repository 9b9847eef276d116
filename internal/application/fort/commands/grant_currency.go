package commands

import (
	"context"
	"fmt"

	"github.com/gmcclure382/DragaliaAPI/internal/application/logging"
	"github.com/gmcclure382/DragaliaAPI/internal/application/mediator"
	"github.com/gmcclure382/DragaliaAPI/internal/domain/fort"
	"github.com/gmcclure382/DragaliaAPI/internal/domain/shared"
)

// GrantCurrencyCommand credits currency to a player's wallet (admin tooling)
type GrantCurrencyCommand struct {
	PlayerID    int
	PaymentType string
	Amount      int
}

// ScopePlayerID implements mediator.PlayerScoped
func (c *GrantCurrencyCommand) ScopePlayerID() int { return c.PlayerID }

// GrantCurrencyResponse reports the wallet after the grant
type GrantCurrencyResponse struct {
	Balances map[string]int
}

// GrantCurrencyHandler handles the GrantCurrency command
type GrantCurrencyHandler struct {
	uow fort.UnitOfWork
}

// NewGrantCurrencyHandler creates a new GrantCurrencyHandler
func NewGrantCurrencyHandler(uow fort.UnitOfWork) *GrantCurrencyHandler {
	return &GrantCurrencyHandler{uow: uow}
}

// Handle executes the GrantCurrency command
func (h *GrantCurrencyHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*GrantCurrencyCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GrantCurrencyCommand")
	}

	playerID, err := shared.NewPlayerID(cmd.PlayerID)
	if err != nil {
		return nil, fmt.Errorf("invalid player ID: %w", err)
	}

	paymentType, err := fort.ParsePaymentType(cmd.PaymentType)
	if err != nil {
		return nil, err
	}

	if cmd.Amount <= 0 {
		return nil, shared.NewValidationError("amount", "must be positive")
	}

	var response *GrantCurrencyResponse
	err = h.uow.Execute(ctx, playerID, func(ctx context.Context, store fort.Store) error {
		if err := store.Wallet.Grant(ctx, playerID, paymentType, cmd.Amount); err != nil {
			return fmt.Errorf("failed to grant currency: %w", err)
		}

		balances, err := store.Wallet.Balances(ctx, playerID)
		if err != nil {
			return fmt.Errorf("failed to read wallet: %w", err)
		}

		response = &GrantCurrencyResponse{Balances: make(map[string]int, len(balances))}
		for pt, amount := range balances {
			response.Balances[pt.String()] = amount
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.LoggerFromContext(ctx).Log("INFO", "Currency granted", map[string]interface{}{
		"player_id":    playerID.Value(),
		"payment_type": paymentType.String(),
		"amount":       cmd.Amount,
	})

	return response, nil
}
