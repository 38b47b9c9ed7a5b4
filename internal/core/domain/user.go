package domain

import (
	"time"

	"github.com/google/uuid"
)

const XPPerLevel = 1000

type User struct {
	ID                int
	UUID              uuid.UUID
	Name              string `validate:"required,min=2,max=100"`
	Email             string `validate:"required,email,max=255"`
	CPF               string
	EncryptedPassword string `validate:"required"`
	Avatar            *string
	XP                int
	Level             int
	Achievements      []Achievement
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeactivatedAt     *time.Time
}

func (u *User) IsActive() bool {
	return u.DeactivatedAt == nil
}

// LevelForXP is 1 for a fresh account and grows by one every XPPerLevel points.
func LevelForXP(xp int) int {
	if xp < 0 {
		xp = 0
	}

	return xp/XPPerLevel + 1
}

// UserStats feeds achievement criteria.
type UserStats struct {
	CreatedActivities   int
	ConcludedActivities int
	CheckIns            int
}
