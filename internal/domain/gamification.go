package domain

import (
	"time"

	"github.com/google/uuid"
)

// Gamification level names, keyed by monthly points
const (
	LevelCloser        = "Closer"
	LevelCadenceMaster = "Cadência Master"
	LevelConsistent    = "Consistente"
	LevelPersistent    = "Persistente"
	LevelBeginner      = "Prospectador Iniciante"
)

// Point accounting constants
const (
	InactivityPenalty = 5
	AllMissionsBonus  = 20
	MinPointAward     = 1
	MaxPointAward     = 50
)

// LevelForPoints maps monthly points to a level name
func LevelForPoints(points int) string {
	switch {
	case points >= 600:
		return LevelCloser
	case points >= 301:
		return LevelCadenceMaster
	case points >= 151:
		return LevelConsistent
	case points >= 51:
		return LevelPersistent
	default:
		return LevelBeginner
	}
}

// DefaultMissions builds the mission batch created with a new profile.
// Missions are created once per profile and are never reset.
func DefaultMissions(profileID uuid.UUID) []DailyMission {
	return []DailyMission{
		{ProfileID: profileID, Description: "Falar com 5 leads", Target: 5, Points: 5},
		{ProfileID: profileID, Description: "Esquentar 2 leads", Target: 2, Points: 5},
		{ProfileID: profileID, Description: "Resolver todos atrasados", Target: 1, Points: 10},
	}
}

// IsInactive reports whether a profile qualifies for the inactivity
// penalty: no points scored today and the last activity stamp is not
// from today. The stamp doubles as a guard against double penalties.
func IsInactive(p *GamificationProfile, today time.Time) bool {
	if p.PointsToday != 0 {
		return false
	}
	return p.LastActivity == nil || !SameDay(*p.LastActivity, today)
}

// ApplyInactivityPenalty deducts the penalty from all point counters,
// never going below zero, and stamps the activity date so the penalty
// applies at most once per day. Returns true when a deduction happened.
func ApplyInactivityPenalty(p *GamificationProfile, today time.Time) bool {
	if !IsInactive(p, today) {
		return false
	}
	p.PointsToday = maxInt(0, p.PointsToday-InactivityPenalty)
	p.PointsWeek = maxInt(0, p.PointsWeek-InactivityPenalty)
	p.PointsMonth = maxInt(0, p.PointsMonth-InactivityPenalty)
	day := StartOfDay(today)
	p.LastActivity = &day
	return true
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// SameDay reports whether two instants fall on the same UTC calendar day
func SameDay(a, b time.Time) bool {
	return StartOfDay(a).Equal(StartOfDay(b))
}
