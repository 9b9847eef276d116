package commands

import (
	"fmt"

	"github.com/gmcclure382/DragaliaAPI/internal/application/fort/types"
	"github.com/gmcclure382/DragaliaAPI/internal/domain/fort"
	"github.com/gmcclure382/DragaliaAPI/internal/domain/shared"
)

// BuildResponse is returned by every command that changes a single build
type BuildResponse struct {
	Build     *types.BuildDTO
	Carpenter types.CarpenterDTO
}

// parseBuildTarget validates the player and build ids shared by build commands
func parseBuildTarget(playerID int, buildID int64) (shared.PlayerID, fort.BuildID, error) {
	pid, err := shared.NewPlayerID(playerID)
	if err != nil {
		return shared.PlayerID{}, 0, fmt.Errorf("invalid player ID: %w", err)
	}
	if buildID <= 0 {
		return shared.PlayerID{}, 0, fmt.Errorf("invalid build ID: %w", shared.NewValidationError("build_id", "must be positive"))
	}
	return pid, fort.BuildID(buildID), nil
}
