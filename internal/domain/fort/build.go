package fort

import (
	"time"

	"github.com/gmcclure382/DragaliaAPI/internal/domain/shared"
)

// BuildID identifies a placed facility, unique per owner
type BuildID int64

// BuildState is the construction state of a facility at a given instant
type BuildState string

const (
	// BuildStateIdle: no construction window is open
	BuildStateIdle BuildState = "IDLE"

	// BuildStateInProgress: the window is open and has not elapsed
	BuildStateInProgress BuildState = "IN_PROGRESS"

	// BuildStateCompletable: the window has elapsed but the level-up is not resolved yet.
	// The build still holds its carpenter.
	BuildStateCompletable BuildState = "COMPLETABLE"
)

// BuildWindow is the [Start, End) interval of an open construction
type BuildWindow struct {
	Start time.Time
	End   time.Time
}

// Duration returns the full length of the window
func (w BuildWindow) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Build is the aggregate for a single placed facility and its construction window.
//
// Invariants:
//   - level >= 0; a level-0 build has never completed construction
//   - window is nil when idle; otherwise Start < End
//   - a build with an open window occupies exactly one carpenter
type Build struct {
	id       BuildID
	playerID shared.PlayerID
	plantID  PlantID
	level    int
	x        int
	z        int
	window   *BuildWindow
	isNew    bool
}

// NewBuild places a new facility at level 0 with no construction window
func NewBuild(playerID shared.PlayerID, plantID PlantID, x, z int) *Build {
	return &Build{
		playerID: playerID,
		plantID:  plantID,
		level:    0,
		x:        x,
		z:        z,
		isNew:    true,
	}
}

// ReconstructBuild rebuilds a Build from persistence.
// A nil window means the build is idle.
func ReconstructBuild(
	id BuildID,
	playerID shared.PlayerID,
	plantID PlantID,
	level int,
	x, z int,
	window *BuildWindow,
	isNew bool,
) *Build {
	var w *BuildWindow
	if window != nil {
		copied := *window
		w = &copied
	}
	return &Build{
		id:       id,
		playerID: playerID,
		plantID:  plantID,
		level:    level,
		x:        x,
		z:        z,
		window:   w,
		isNew:    isNew,
	}
}

// Getters

func (b *Build) ID() BuildID {
	return b.id
}

func (b *Build) PlayerID() shared.PlayerID {
	return b.playerID
}

func (b *Build) PlantID() PlantID {
	return b.plantID
}

func (b *Build) Level() int {
	return b.level
}

func (b *Build) PositionX() int {
	return b.x
}

func (b *Build) PositionZ() int {
	return b.z
}

func (b *Build) IsNew() bool {
	return b.isNew
}

// Window returns the open construction window, if any
func (b *Build) Window() (BuildWindow, bool) {
	if b.window == nil {
		return BuildWindow{}, false
	}
	return *b.window, true
}

// AssignID is called once by the repository after the build is first stored
func (b *Build) AssignID(id BuildID) {
	if b.id == 0 {
		b.id = id
	}
}

// State queries

// State returns the construction state at now
func (b *Build) State(now time.Time) BuildState {
	if b.window == nil {
		return BuildStateIdle
	}
	if now.Before(b.window.End) {
		return BuildStateInProgress
	}
	return BuildStateCompletable
}

// IsIdle reports whether no window is open
func (b *Build) IsIdle() bool {
	return b.window == nil
}

// OccupiesCarpenter reports whether the build counts against the carpenter pool.
// Completable builds still occupy their carpenter until resolved.
func (b *Build) OccupiesCarpenter() bool {
	return b.window != nil
}

// RemainingTime returns how long until the window elapses; zero when idle or elapsed
func (b *Build) RemainingTime(now time.Time) time.Duration {
	if b.window == nil || !now.Before(b.window.End) {
		return 0
	}
	return b.window.End.Sub(now)
}

// Status returns the client-facing build status
func (b *Build) Status() BuildStatus {
	if b.window == nil {
		return BuildStatusNeutral
	}
	if b.level == 0 {
		return BuildStatusConstruction
	}
	return BuildStatusLevelUp
}

// DetailID returns the fort_plant_detail_id shown to the client: the level being
// built while a window is open, otherwise the current level
func (b *Build) DetailID() int {
	level := b.level
	if b.window != nil {
		level++
	}
	return DetailID(b.plantID, level)
}

// State transitions

// StartLevelup opens a construction window of duration starting at now
func (b *Build) StartLevelup(now time.Time, duration time.Duration) error {
	if b.window != nil {
		return shared.NewInvalidOperationError("build %d is already under construction", b.id)
	}
	if duration <= 0 {
		return shared.NewInvalidOperationError("build %d: construction duration must be positive, got %s", b.id, duration)
	}
	b.window = &BuildWindow{Start: now, End: now.Add(duration)}
	return nil
}

// CompleteLevelup resolves an elapsed window: level goes up by one and the window closes
func (b *Build) CompleteLevelup(now time.Time) error {
	if b.window == nil {
		return shared.NewInvalidOperationError("build %d is not under construction", b.id)
	}
	if now.Before(b.window.End) {
		return shared.NewInvalidOperationError(
			"build %d construction is not complete: ends at %s",
			b.id, b.window.End.Format(time.RFC3339),
		)
	}
	b.level++
	b.window = nil
	return nil
}

// CompleteLevelupNow resolves an open window immediately, regardless of remaining time.
// Payment for the skip is the caller's responsibility.
func (b *Build) CompleteLevelupNow() error {
	if b.window == nil {
		return shared.NewInvalidOperationError("build %d is not under construction", b.id)
	}
	b.level++
	b.window = nil
	return nil
}

// CancelLevelup closes the open window without changing the level
func (b *Build) CancelLevelup() error {
	if b.window == nil {
		return shared.NewInvalidOperationError("build %d has no construction to cancel", b.id)
	}
	b.window = nil
	return nil
}

// CancelBuild abandons a placement that never completed. The caller deletes the build.
func (b *Build) CancelBuild() error {
	if b.level != 0 {
		return shared.NewInvalidOperationError("build %d is level %d; use levelup cancel", b.id, b.level)
	}
	b.window = nil
	return nil
}

// MoveTo overwrites the placement coordinates
func (b *Build) MoveTo(x, z int) {
	b.x = x
	b.z = z
}
