package types

import (
	"time"

	"github.com/gmcclure382/DragaliaAPI/internal/domain/fort"
)

// BuildDTO is the client view of one facility
type BuildDTO struct {
	BuildID           int64
	PlantID           int
	PlantName         string
	Level             int
	FortPlantDetailID int
	PositionX         int
	PositionZ         int
	BuildStatus       string
	BuildStartDate    int64 // unix seconds; 0 when idle
	BuildEndDate      int64 // unix seconds; 0 when idle
	RemainTime        int64 // whole seconds, rounded up
	IsNew             bool
}

// NewBuildDTO renders build as observed at now
func NewBuildDTO(build *fort.Build, now time.Time) *BuildDTO {
	dto := &BuildDTO{
		BuildID:           int64(build.ID()),
		PlantID:           int(build.PlantID()),
		PlantName:         build.PlantID().String(),
		Level:             build.Level(),
		FortPlantDetailID: build.DetailID(),
		PositionX:         build.PositionX(),
		PositionZ:         build.PositionZ(),
		BuildStatus:       build.Status().String(),
		IsNew:             build.IsNew(),
	}

	if window, ok := build.Window(); ok {
		dto.BuildStartDate = window.Start.Unix()
		dto.BuildEndDate = window.End.Unix()
		remaining := build.RemainingTime(now)
		dto.RemainTime = int64(remaining / time.Second)
		if remaining%time.Second != 0 {
			dto.RemainTime++
		}
	}

	return dto
}

// CarpenterDTO is the client view of the carpenter pool
type CarpenterDTO struct {
	CarpenterNum        int
	WorkingCarpenterNum int
}

// NewCarpenterDTO renders pool
func NewCarpenterDTO(pool fort.CarpenterPool) CarpenterDTO {
	return CarpenterDTO{
		CarpenterNum:        pool.Capacity(),
		WorkingCarpenterNum: pool.Active(),
	}
}
