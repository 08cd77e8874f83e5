package domain

import (
	"math"
	"time"
)

// XP tuning. The positive rate and the penalty rate are independent knobs:
// the penalty is deliberately not derived from the earning rate.
const (
	// XPPerPositiveMinute is earned for every minute of a focus session.
	XPPerPositiveMinute = 10
	// XPPerNegativeMinute is lost for every minute of a slip-up session.
	XPPerNegativeMinute = 5
	// MinPositiveXP is the floor for any qualifying focus session.
	MinPositiveXP = 10
	// StreakBonusPerDay is the multiplier bonus each streak day adds.
	StreakBonusPerDay = 0.05
	// MaxStreakBonus caps the streak multiplier at +50%, reached at a
	// 10-day streak.
	MaxStreakBonus = 0.5
)

// MinAwardDuration is the wall-clock floor below which a session awards no
// XP, whatever its polarity.
const MinAwardDuration = 30 * time.Second

// UserStats is the single running gamification record. XP is never clamped
// and can go negative under heavy slip-up usage; Level only ever ratchets up.
type UserStats struct {
	XP    int `json:"xp"`
	Level int `json:"level"`
}

// DefaultStats is the lazily-created initial record.
func DefaultStats() UserStats {
	return UserStats{XP: 0, Level: 1}
}

// ComputeSessionXP converts a finished session's duration and polarity into a
// signed XP delta. Positive sessions earn duration * rate scaled by the
// streak multiplier, with a floor of MinPositiveXP. Negative sessions lose a
// flat rate per minute with no streak effect. Zero-duration sessions yield 0.
func ComputeSessionXP(durationMinutes int, negative bool, streak int) int {
	if durationMinutes <= 0 {
		return 0
	}
	if negative {
		return -int(math.Ceil(float64(durationMinutes) * XPPerNegativeMinute))
	}
	multiplier := 1 + math.Min(MaxStreakBonus, float64(streak)*StreakBonusPerDay)
	earned := math.Max(MinPositiveXP, float64(durationMinutes)*XPPerPositiveMinute*multiplier)
	return int(math.Round(earned))
}

// LevelForXP derives a level from cumulative XP: level 2 at 100 XP, level 3
// at 400, level 4 at 900. Negative XP maps to level 1.
func LevelForXP(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return int(math.Floor(math.Sqrt(float64(xp)/100))) + 1
}

// XPForLevel is the cumulative XP at which the given level begins.
func XPForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	return 100 * (level - 1) * (level - 1)
}

// ApplyDelta folds an XP delta into the stats. XP moves freely in both
// directions; Level only rises, never reverts when XP later drops.
func (s UserStats) ApplyDelta(delta int) UserStats {
	s.XP += delta
	if level := LevelForXP(s.XP); level > s.Level {
		s.Level = level
	}
	if s.Level < 1 {
		s.Level = 1
	}
	return s
}

// Progress reports how far through the current level the user is, 0..1.
// Computed against the level actually held, so a ratcheted level with
// depleted XP reads as 0 rather than a negative fraction.
func (s UserStats) Progress() float64 {
	floor := XPForLevel(s.Level)
	ceil := XPForLevel(s.Level + 1)
	if ceil <= floor {
		return 0
	}
	p := float64(s.XP-floor) / float64(ceil-floor)
	return math.Min(1, math.Max(0, p))
}
