package helpers

import (
	"context"
	"sort"
	"sync"

	"github.com/gmcclure382/DragaliaAPI/internal/domain/fort"
	"github.com/gmcclure382/DragaliaAPI/internal/domain/shared"
)

// MockFortRepository is an in-memory test double for fort.FortRepository.
// Builds are copied on the way in and out so callers must persist changes explicitly.
type MockFortRepository struct {
	mu      sync.RWMutex
	builds  map[fort.BuildID]*fort.Build
	details map[int]*fort.FortDetail // playerID -> detail
	nextID  fort.BuildID

	// Call tracking
	updated []fort.BuildID
	deleted []fort.BuildID

	// Error injection
	errors map[string]error // method name -> error
}

// NewMockFortRepository creates a new mock fort repository
func NewMockFortRepository() *MockFortRepository {
	return &MockFortRepository{
		builds:  make(map[fort.BuildID]*fort.Build),
		details: make(map[int]*fort.FortDetail),
		nextID:  1,
		errors:  make(map[string]error),
	}
}

// SetError makes the named method fail with err
func (m *MockFortRepository) SetError(method string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[method] = err
}

// SetCarpenters seeds the player's carpenter capacity
func (m *MockFortRepository) SetCarpenters(playerID shared.PlayerID, carpenterNum int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.details[playerID.Value()] = &fort.FortDetail{PlayerID: playerID, CarpenterNum: carpenterNum}
}

// Seed stores a build, assigning an id when it has none, and returns the id
func (m *MockFortRepository) Seed(build *fort.Build) fort.BuildID {
	m.mu.Lock()
	defer m.mu.Unlock()
	if build.ID() == 0 {
		build.AssignID(m.nextID)
	}
	if build.ID() >= m.nextID {
		m.nextID = build.ID() + 1
	}
	m.builds[build.ID()] = copyBuild(build)
	return build.ID()
}

// Stored returns a copy of the persisted build, or nil
func (m *MockFortRepository) Stored(buildID fort.BuildID) *fort.Build {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.builds[buildID]
	if !ok {
		return nil
	}
	return copyBuild(b)
}

// Updated returns the ids passed to UpdateBuild, in call order
func (m *MockFortRepository) Updated() []fort.BuildID {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]fort.BuildID(nil), m.updated...)
}

// Deleted returns the ids passed to DeleteBuild, in call order
func (m *MockFortRepository) Deleted() []fort.BuildID {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]fort.BuildID(nil), m.deleted...)
}

// GetBuilding retrieves a build by id
func (m *MockFortRepository) GetBuilding(ctx context.Context, playerID shared.PlayerID, buildID fort.BuildID) (*fort.Build, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.errors["GetBuilding"]; err != nil {
		return nil, err
	}

	b, ok := m.builds[buildID]
	if !ok || !b.PlayerID().Equals(playerID) {
		return nil, fort.NewBuildNotFoundError(buildID, playerID)
	}
	return copyBuild(b), nil
}

// ListBuilds returns the player's builds ordered by id
func (m *MockFortRepository) ListBuilds(ctx context.Context, playerID shared.PlayerID) ([]*fort.Build, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.errors["ListBuilds"]; err != nil {
		return nil, err
	}

	var builds []*fort.Build
	for _, b := range m.builds {
		if b.PlayerID().Equals(playerID) {
			builds = append(builds, copyBuild(b))
		}
	}
	sort.Slice(builds, func(i, j int) bool { return builds[i].ID() < builds[j].ID() })
	return builds, nil
}

// AddBuild stores a new build and assigns its id
func (m *MockFortRepository) AddBuild(ctx context.Context, build *fort.Build) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.errors["AddBuild"]; err != nil {
		return err
	}

	build.AssignID(m.nextID)
	m.nextID++
	m.builds[build.ID()] = copyBuild(build)
	return nil
}

// UpdateBuild persists the build
func (m *MockFortRepository) UpdateBuild(ctx context.Context, build *fort.Build) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.errors["UpdateBuild"]; err != nil {
		return err
	}

	m.builds[build.ID()] = copyBuild(build)
	m.updated = append(m.updated, build.ID())
	return nil
}

// DeleteBuild removes the build
func (m *MockFortRepository) DeleteBuild(ctx context.Context, build *fort.Build) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.errors["DeleteBuild"]; err != nil {
		return err
	}

	delete(m.builds, build.ID())
	m.deleted = append(m.deleted, build.ID())
	return nil
}

// GetFortDetail returns the player's detail, defaulting to two carpenters
func (m *MockFortRepository) GetFortDetail(ctx context.Context, playerID shared.PlayerID) (*fort.FortDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.errors["GetFortDetail"]; err != nil {
		return nil, err
	}

	d, ok := m.details[playerID.Value()]
	if !ok {
		d = fort.NewFortDetail(playerID)
		m.details[playerID.Value()] = d
	}
	copied := *d
	return &copied, nil
}

// UpdateFortMaximumCarpenter sets the carpenter capacity
func (m *MockFortRepository) UpdateFortMaximumCarpenter(ctx context.Context, playerID shared.PlayerID, carpenterNum int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.errors["UpdateFortMaximumCarpenter"]; err != nil {
		return err
	}

	m.details[playerID.Value()] = &fort.FortDetail{PlayerID: playerID, CarpenterNum: carpenterNum}
	return nil
}

// GetActiveCarpenters counts the player's builds with an open window
func (m *MockFortRepository) GetActiveCarpenters(ctx context.Context, playerID shared.PlayerID) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.errors["GetActiveCarpenters"]; err != nil {
		return 0, err
	}

	active := 0
	for _, b := range m.builds {
		if b.PlayerID().Equals(playerID) && b.OccupiesCarpenter() {
			active++
		}
	}
	return active, nil
}

func copyBuild(b *fort.Build) *fort.Build {
	var window *fort.BuildWindow
	if w, ok := b.Window(); ok {
		window = &w
	}
	return fort.ReconstructBuild(b.ID(), b.PlayerID(), b.PlantID(), b.Level(), b.PositionX(), b.PositionZ(), window, b.IsNew())
}
