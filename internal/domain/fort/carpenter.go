package fort

import "github.com/gmcclure382/DragaliaAPI/internal/domain/shared"

const (
	// DefaultCarpenters is the carpenter count of a new fort
	DefaultCarpenters = 2

	// MaxCarpenters is the hard cap on purchasable carpenters
	MaxCarpenters = 5
)

// carpenterCostSchedule maps the current carpenter count to the premium-currency
// price of the next carpenter
var carpenterCostSchedule = map[int]int{
	2: 250,
	3: 400,
	4: 750,
}

// CarpenterCost returns the price of hiring one more carpenter when the fort already has existing
func CarpenterCost(existing int) (int, bool) {
	cost, ok := carpenterCostSchedule[existing]
	return cost, ok
}

// FortDetail is the per-player fort header row
type FortDetail struct {
	PlayerID     shared.PlayerID
	CarpenterNum int
}

// NewFortDetail returns the detail a player starts with
func NewFortDetail(playerID shared.PlayerID) *FortDetail {
	return &FortDetail{PlayerID: playerID, CarpenterNum: DefaultCarpenters}
}

// CarpenterPool is a snapshot of carpenter capacity and usage.
// Active is derived from open build windows, never stored.
type CarpenterPool struct {
	capacity int
	active   int
}

// NewCarpenterPool creates a pool snapshot
func NewCarpenterPool(capacity, active int) CarpenterPool {
	return CarpenterPool{capacity: capacity, active: active}
}

func (p CarpenterPool) Capacity() int {
	return p.capacity
}

func (p CarpenterPool) Active() int {
	return p.active
}

// Available returns the number of idle carpenters
func (p CarpenterPool) Available() int {
	if p.active >= p.capacity {
		return 0
	}
	return p.capacity - p.active
}

// TryAcquire checks that a carpenter is free for a new job
func (p CarpenterPool) TryAcquire() error {
	if p.active >= p.capacity {
		return NewCarpenterBusyError(p.active, p.capacity)
	}
	return nil
}

// ExtensionCost validates a carpenter purchase and returns its price.
// The cap is checked before the payment type.
func (p CarpenterPool) ExtensionCost(paymentType PaymentType) (int, error) {
	if p.capacity >= MaxCarpenters {
		return 0, NewCarpenterLimitError(p.capacity)
	}
	if !paymentType.IsPremium() {
		return 0, NewPaymentTypeInvalidError(paymentType, "carpenter extension")
	}
	cost, ok := CarpenterCost(p.capacity)
	if !ok {
		return 0, shared.NewDomainError(
			shared.ResultCodeCommonDataNotFound,
			"no carpenter price for current count",
		)
	}
	return cost, nil
}
