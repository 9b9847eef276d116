package fort

// BuildStatus is the client-facing fort_build_status
type BuildStatus int

const (
	BuildStatusNeutral      BuildStatus = 0
	BuildStatusConstruction BuildStatus = 1
	BuildStatusLevelUp      BuildStatus = 2
)

func (s BuildStatus) String() string {
	switch s {
	case BuildStatusNeutral:
		return "NEUTRAL"
	case BuildStatusConstruction:
		return "CONSTRUCTION"
	case BuildStatusLevelUp:
		return "LEVEL_UP"
	default:
		return "UNKNOWN"
	}
}
