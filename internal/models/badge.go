package models

import "time"

// BadgeType identifies an achievement.
type BadgeType string

const (
	BadgeFirstScan     BadgeType = "first_scan"
	BadgeStepMaster    BadgeType = "step_master"
	BadgeCleanEater    BadgeType = "clean_eater"
	BadgeSleepChampion BadgeType = "sleep_champion"
	BadgeStreak7       BadgeType = "streak_7"
	BadgeStreak30      BadgeType = "streak_30"
	BadgeGoalCrusher   BadgeType = "goal_crusher"
	BadgeFoodLogger    BadgeType = "food_logger"
	BadgeHydrationHero BadgeType = "hydration_hero"
	BadgeEarlyBird     BadgeType = "early_bird"
)

// BadgeTypes lists every badge in display order.
var BadgeTypes = []BadgeType{
	BadgeFirstScan,
	BadgeStepMaster,
	BadgeCleanEater,
	BadgeSleepChampion,
	BadgeStreak7,
	BadgeStreak30,
	BadgeGoalCrusher,
	BadgeFoodLogger,
	BadgeHydrationHero,
	BadgeEarlyBird,
}

// Valid reports whether t is a known badge type.
func (t BadgeType) Valid() bool {
	for _, known := range BadgeTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Badge is awarded at most once per (profile, badge type).
type Badge struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProfileID uint      `json:"profile_id" gorm:"index;not null;uniqueIndex:idx_badges_profile_type"`
	BadgeType BadgeType `json:"badge_type" gorm:"type:varchar(32);not null;uniqueIndex:idx_badges_profile_type"`
	EarnedAt  time.Time `json:"earned_at"`
}
