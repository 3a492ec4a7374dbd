package models

import "time"

// PointsLedger is the cumulative per-user points row. Points only increase;
// level is derived, never stored independently of points.
type PointsLedger struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"not null;uniqueIndex"`
	Points    int  `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LevelForPoints derives the level from a cumulative points total:
// level = 1 + points/100, so 0..99 points is level 1, 100..199 level 2.
func LevelForPoints(points int) int {
	if points < 0 {
		return 1
	}
	return 1 + points/100
}
