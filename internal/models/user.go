package models

import "time"

const (
	WeightUnitLbs = "lbs"
	WeightUnitKg  = "kg"
)

type User struct {
	ID                 uint   `gorm:"primaryKey"`
	Email              string `gorm:"uniqueIndex;not null"`
	PasswordHash       string `gorm:"not null"`
	DisplayName        string
	StartWeight        float64 `gorm:"not null;default:0"`
	GoalWeight         float64 `gorm:"not null;default:0"`
	HeightInches       float64 `gorm:"not null;default:0"`
	StartDay           string  `gorm:"not null;default:''"`
	TargetDay          string  `gorm:"not null;default:''"`
	WeightUnit         string  `gorm:"not null;default:lbs"`
	MustChangePassword bool    `gorm:"not null;default:false"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
