package helpers

import (
	"context"
	"sync"

	"github.com/gmcclure382/DragaliaAPI/internal/domain/fort"
	"github.com/gmcclure382/DragaliaAPI/internal/domain/shared"
)

// PaymentCall records one ProcessPayment invocation
type PaymentCall struct {
	PlayerID    int
	PaymentType fort.PaymentType
	Amount      int
}

// MockPaymentService is a test double for fort.PaymentService.
// Balances are only enforced for currencies given one via SetBalance.
type MockPaymentService struct {
	mu       sync.Mutex
	balances map[fort.PaymentType]int
	calls    []PaymentCall
	err      error
}

// NewMockPaymentService creates a payment service that accepts every charge
func NewMockPaymentService() *MockPaymentService {
	return &MockPaymentService{balances: make(map[fort.PaymentType]int)}
}

// SetBalance limits a currency to amount
func (m *MockPaymentService) SetBalance(paymentType fort.PaymentType, amount int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances[paymentType] = amount
}

// Balance returns the tracked balance of a currency
func (m *MockPaymentService) Balance(paymentType fort.PaymentType) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.balances[paymentType]
}

// SetError makes every payment fail with err
func (m *MockPaymentService) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls returns the successful payments in call order
func (m *MockPaymentService) Calls() []PaymentCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]PaymentCall(nil), m.calls...)
}

// Grant credits a tracked balance
func (m *MockPaymentService) Grant(ctx context.Context, playerID shared.PlayerID, paymentType fort.PaymentType, amount int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances[paymentType] += amount
	return nil
}

// Balances returns the tracked balances
func (m *MockPaymentService) Balances(ctx context.Context, playerID shared.PlayerID) (map[fort.PaymentType]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := make(map[fort.PaymentType]int, len(m.balances))
	for k, v := range m.balances {
		copied[k] = v
	}
	return copied, nil
}

// ProcessPayment records the charge
func (m *MockPaymentService) ProcessPayment(ctx context.Context, playerID shared.PlayerID, paymentType fort.PaymentType, amount int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}

	if balance, tracked := m.balances[paymentType]; tracked {
		if balance < amount {
			return fort.NewInsufficientFundsError(paymentType, amount, balance)
		}
		m.balances[paymentType] = balance - amount
	}

	m.calls = append(m.calls, PaymentCall{PlayerID: playerID.Value(), PaymentType: paymentType, Amount: amount})
	return nil
}

// MockInventoryRepository is a test double for fort.InventoryRepository.
// Quantities are only enforced for materials given one via SetQuantity.
type MockInventoryRepository struct {
	mu         sync.Mutex
	quantities map[fort.Material]int
	calls      []map[fort.Material]int
}

// NewMockInventoryRepository creates an inventory that accepts every delta
func NewMockInventoryRepository() *MockInventoryRepository {
	return &MockInventoryRepository{quantities: make(map[fort.Material]int)}
}

// SetQuantity tracks a material starting at quantity
func (m *MockInventoryRepository) SetQuantity(material fort.Material, quantity int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quantities[material] = quantity
}

// Quantity returns the tracked quantity of a material
func (m *MockInventoryRepository) Quantity(material fort.Material) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.quantities[material]
}

// Calls returns the delta maps passed to UpdateQuantity
func (m *MockInventoryRepository) Calls() []map[fort.Material]int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]map[fort.Material]int(nil), m.calls...)
}

// Quantities returns the tracked quantities
func (m *MockInventoryRepository) Quantities(ctx context.Context, playerID shared.PlayerID) (map[fort.Material]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := make(map[fort.Material]int, len(m.quantities))
	for k, v := range m.quantities {
		copied[k] = v
	}
	return copied, nil
}

// UpdateQuantity applies deltas all-or-nothing
func (m *MockInventoryRepository) UpdateQuantity(ctx context.Context, playerID shared.PlayerID, deltas map[fort.Material]int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for material, delta := range deltas {
		if current, tracked := m.quantities[material]; tracked && current+delta < 0 {
			return fort.NewMaterialShortError(material, -delta, current)
		}
	}
	for material, delta := range deltas {
		if _, tracked := m.quantities[material]; tracked {
			m.quantities[material] += delta
		}
	}

	copied := make(map[fort.Material]int, len(deltas))
	for k, v := range deltas {
		copied[k] = v
	}
	m.calls = append(m.calls, copied)
	return nil
}

// PlantUpgrade records one OnFortPlantUpgraded notification
type PlantUpgrade struct {
	PlayerID int
	PlantID  fort.PlantID
	Level    int
}

// MockMissionProgression records fort notifications
type MockMissionProgression struct {
	mu       sync.Mutex
	upgrades []PlantUpgrade
	levelups int
}

// NewMockMissionProgression creates a new mission recorder
func NewMockMissionProgression() *MockMissionProgression {
	return &MockMissionProgression{}
}

// OnFortPlantUpgraded records the upgrade
func (m *MockMissionProgression) OnFortPlantUpgraded(ctx context.Context, playerID shared.PlayerID, plantID fort.PlantID, level int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upgrades = append(m.upgrades, PlantUpgrade{PlayerID: playerID.Value(), PlantID: plantID, Level: level})
}

// OnFortLevelup counts the levelup
func (m *MockMissionProgression) OnFortLevelup(ctx context.Context, playerID shared.PlayerID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.levelups++
}

// Upgrades returns the recorded plant upgrades
func (m *MockMissionProgression) Upgrades() []PlantUpgrade {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]PlantUpgrade(nil), m.upgrades...)
}

// Levelups returns how many OnFortLevelup calls were made
func (m *MockMissionProgression) Levelups() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.levelups
}

// FortMocks groups the fort test doubles behind one Store
type FortMocks struct {
	Forts     *MockFortRepository
	Payments  *MockPaymentService
	Inventory *MockInventoryRepository
	Missions  *MockMissionProgression
}

// NewFortMocks creates a fresh set of fort test doubles
func NewFortMocks() *FortMocks {
	return &FortMocks{
		Forts:     NewMockFortRepository(),
		Payments:  NewMockPaymentService(),
		Inventory: NewMockInventoryRepository(),
		Missions:  NewMockMissionProgression(),
	}
}

// Store returns the doubles as a fort.Store
func (f *FortMocks) Store() fort.Store {
	return fort.Store{
		Forts:     f.Forts,
		Payments:  f.Payments,
		Wallet:    f.Payments,
		Inventory: f.Inventory,
		Missions:  f.Missions,
	}
}

// MockUnitOfWork runs every unit of work against the same Store without rollback
type MockUnitOfWork struct {
	mu    sync.Mutex
	store fort.Store
	runs  int
}

// NewMockUnitOfWork creates a unit of work over store
func NewMockUnitOfWork(store fort.Store) *MockUnitOfWork {
	return &MockUnitOfWork{store: store}
}

// Execute runs fn with the shared store
func (m *MockUnitOfWork) Execute(ctx context.Context, playerID shared.PlayerID, fn func(ctx context.Context, store fort.Store) error) error {
	m.mu.Lock()
	m.runs++
	m.mu.Unlock()
	return fn(ctx, m.store)
}

// Runs returns how many units of work were executed
func (m *MockUnitOfWork) Runs() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.runs
}
