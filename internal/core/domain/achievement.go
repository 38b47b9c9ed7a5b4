package domain

import (
	"time"

	"github.com/google/uuid"
)

type Achievement struct {
	ID         int
	UUID       uuid.UUID
	Name       string
	Criterion  string
	UnlockedAt *time.Time
}

// AchievementRule pairs a seeded achievement name with the stats that unlock it.
type AchievementRule struct {
	Name     string
	Unlocked func(stats UserStats) bool
}

var AchievementRules = []AchievementRule{
	{
		Name:     "Primeira atividade",
		Unlocked: func(s UserStats) bool { return s.CreatedActivities >= 1 },
	},
	{
		Name:     "Primeiro check-in",
		Unlocked: func(s UserStats) bool { return s.CheckIns >= 1 },
	},
	{
		Name:     "Frequentador",
		Unlocked: func(s UserStats) bool { return s.CheckIns >= 10 },
	},
	{
		Name:     "Organizador",
		Unlocked: func(s UserStats) bool { return s.ConcludedActivities >= 5 },
	},
}

// XP rewards.
const (
	XPForCreatingActivity   = 20
	XPForCheckIn            = 50
	XPForConcludingActivity = 100
)
