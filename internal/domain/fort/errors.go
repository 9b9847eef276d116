package fort

import (
	"fmt"

	"github.com/gmcclure382/DragaliaAPI/internal/domain/shared"
)

// NewCarpenterBusyError reports that every carpenter is occupied
func NewCarpenterBusyError(active, capacity int) *shared.DomainError {
	return shared.NewDomainError(
		shared.ResultCodeFortBuildCarpenterBusy,
		fmt.Sprintf("all carpenters are busy: %d of %d working", active, capacity),
	)
}

// NewCarpenterLimitError reports that the carpenter count cannot grow further
func NewCarpenterLimitError(capacity int) *shared.DomainError {
	return shared.NewDomainError(
		shared.ResultCodeFortExtendCarpenterLimit,
		fmt.Sprintf("carpenter limit reached: have %d, max %d", capacity, MaxCarpenters),
	)
}

// NewPaymentTypeInvalidError reports a currency that cannot settle the requested cost
func NewPaymentTypeInvalidError(paymentType PaymentType, operation string) *shared.DomainError {
	return shared.NewDomainError(
		shared.ResultCodeShopPaymentTypeInvalid,
		fmt.Sprintf("payment type %s is not accepted for %s", paymentType, operation),
	)
}

// NewInsufficientFundsError reports a wallet balance below the charged amount
func NewInsufficientFundsError(paymentType PaymentType, required, available int) *shared.DomainError {
	return shared.NewDomainError(
		shared.ResultCodeShopInsufficientFunds,
		fmt.Sprintf("insufficient %s: need %d, have %d", paymentType, required, available),
	)
}

// NewMaterialShortError reports a material count that would go negative
func NewMaterialShortError(material Material, required, available int) *shared.DomainError {
	return shared.NewDomainError(
		shared.ResultCodeCommonMaterialShort,
		fmt.Sprintf("insufficient %s: need %d, have %d", material, required, available),
	)
}

// NewBuildNotFoundError reports a build id the player does not own
func NewBuildNotFoundError(buildID BuildID, playerID shared.PlayerID) *shared.DomainError {
	return shared.NewDomainError(
		shared.ResultCodeCommonDataNotFound,
		fmt.Sprintf("build %d not found for player %s", buildID, playerID),
	)
}

// NewPlantDetailNotFoundError reports a plant/level pair missing from the catalog
func NewPlantDetailNotFoundError(plantID PlantID, level int) *shared.DomainError {
	return shared.NewDomainError(
		shared.ResultCodeCommonDataNotFound,
		fmt.Sprintf("no catalog entry for %s level %d", plantID, level),
	)
}

// NewLevelMaxError reports an upgrade past the plant's final level
func NewLevelMaxError(plantID PlantID, level int) *shared.DomainError {
	return shared.NewDomainError(
		shared.ResultCodeFortLevelMax,
		fmt.Sprintf("%s is already at max level %d", plantID, level),
	)
}
