// Package xp tracks experience points and the level derived from them.
package xp

// SingletonID is the fixed identity of the one XP row.
const SingletonID = 1

// PointsPerLevel is the width of a level band.
const PointsPerLevel = 100

// PointsPerEvent is the fixed award granted by callers when the user
// adds an event.
const PointsPerEvent = 10

// Xp is the singleton gamification record. Level is always derived
// from Points; the two are never written independently.
type Xp struct {
	ID     int64 `json:"id"`
	Points int   `json:"points"`
	Level  int   `json:"level"`
}

// Default is the state before any points have been awarded.
func Default() Xp {
	return Xp{ID: SingletonID, Points: 0, Level: 1}
}

// Level derives the level for a point total: one level gained per
// PointsPerLevel points, starting at level 1.
func Level(points int) int {
	return 1 + points/PointsPerLevel
}

// ProgressInLevel returns how far into the current level band the
// point total sits, in [0, PointsPerLevel).
func ProgressInLevel(points int) int {
	return points % PointsPerLevel
}
