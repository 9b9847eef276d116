package fort_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmcclure382/DragaliaAPI/internal/domain/fort"
	"github.com/gmcclure382/DragaliaAPI/internal/domain/shared"
)

func TestCarpenterCost_Schedule(t *testing.T) {
	tests := []struct {
		existing int
		want     int
	}{
		{2, 250},
		{3, 400},
		{4, 750},
	}

	for _, tt := range tests {
		cost, ok := fort.CarpenterCost(tt.existing)
		require.True(t, ok)
		assert.Equal(t, tt.want, cost)
	}

	_, ok := fort.CarpenterCost(fort.MaxCarpenters)
	assert.False(t, ok)
}

func TestCarpenterPool_TryAcquire(t *testing.T) {
	assert.NoError(t, fort.NewCarpenterPool(4, 1).TryAcquire())

	err := fort.NewCarpenterPool(2, 2).TryAcquire()
	assert.True(t, shared.HasCode(err, shared.ResultCodeFortBuildCarpenterBusy))
}

func TestCarpenterPool_Available(t *testing.T) {
	assert.Equal(t, 3, fort.NewCarpenterPool(4, 1).Available())
	assert.Equal(t, 0, fort.NewCarpenterPool(2, 3).Available())
}

func TestCarpenterPool_ExtensionCost(t *testing.T) {
	cost, err := fort.NewCarpenterPool(3, 0).ExtensionCost(fort.PaymentTypeWyrmite)
	require.NoError(t, err)
	assert.Equal(t, 400, cost)

	cost, err = fort.NewCarpenterPool(2, 0).ExtensionCost(fort.PaymentTypeDiamantium)
	require.NoError(t, err)
	assert.Equal(t, 250, cost)
}

func TestCarpenterPool_ExtensionCost_AtCap(t *testing.T) {
	_, err := fort.NewCarpenterPool(5, 0).ExtensionCost(fort.PaymentTypeDiamantium)

	assert.True(t, shared.HasCode(err, shared.ResultCodeFortExtendCarpenterLimit))
}

func TestCarpenterPool_ExtensionCost_InvalidPayment(t *testing.T) {
	for _, pt := range []fort.PaymentType{fort.PaymentTypeTicket, fort.PaymentTypeCoin, fort.PaymentTypeHalidomHustleHammer} {
		_, err := fort.NewCarpenterPool(4, 0).ExtensionCost(pt)
		assert.True(t, shared.HasCode(err, shared.ResultCodeShopPaymentTypeInvalid), pt.String())
	}
}

func TestCarpenterPool_ExtensionCost_CapBeforePaymentType(t *testing.T) {
	_, err := fort.NewCarpenterPool(5, 0).ExtensionCost(fort.PaymentTypeTicket)

	assert.True(t, shared.HasCode(err, shared.ResultCodeFortExtendCarpenterLimit))
}
