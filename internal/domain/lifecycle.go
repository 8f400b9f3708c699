package domain

import (
	"strings"
	"time"
)

// StartOfDay truncates t to midnight in UTC
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the whole number of days from a to b at day granularity
func daysBetween(a, b time.Time) int {
	return int(StartOfDay(b).Sub(StartOfDay(a)).Hours() / 24)
}

// NextContactDate computes the next scheduled contact from the last contact
// and the configured cadence. Returns nil when no contact has been made yet.
func NextContactDate(lastContact *time.Time, cadence Cadence) *time.Time {
	if lastContact == nil {
		return nil
	}
	next := lastContact.AddDate(0, 0, cadence.Days())
	return &next
}

// DeriveStatus classifies a lead by its next contact date relative to today.
// Converted leads keep their status and are never reclassified here.
func DeriveStatus(current LeadStatus, nextContact *time.Time, today time.Time) LeadStatus {
	if current.IsTerminal() {
		return current
	}
	if nextContact == nil {
		return StatusOnTrack
	}
	next := StartOfDay(*nextContact)
	now := StartOfDay(today)
	switch {
	case next.Before(now):
		return StatusOverdue
	case next.Equal(now):
		return StatusTalkToday
	default:
		return StatusOnTrack
	}
}

// DerivePriority grades the urgency of a lead. Overdue leads are always
// urgent. The Atencao branch is kept for compatibility but is shadowed by
// the zero-days check above it.
func DerivePriority(status LeadStatus, nextContact *time.Time, today time.Time) LeadPriority {
	if status == StatusOverdue {
		return PriorityUrgent
	}
	if nextContact == nil {
		return PriorityNormal
	}
	days := daysBetween(today, *nextContact)
	switch {
	case days <= 0:
		return PriorityUrgent
	case days <= 2:
		return PriorityAlert
	case days == 0:
		return PriorityAttention
	default:
		return PriorityNormal
	}
}

// Score rates a lead by urgency and fit signals
func Score(lead *Lead) int {
	score := 0
	if lead.Status == StatusOverdue {
		score += 5
	}
	if lead.Priority == PriorityAlert {
		score += 3
	}
	if lead.Temperature == TemperatureHot {
		score += 3
	}
	if lead.Origin == OriginReferral || lead.Origin == OriginEvent {
		score += 2
	}
	if strings.Contains(strings.ToLower(lead.Note), "interesse") {
		score += 2
	}
	return score
}

// Recalculate recomputes the derived scheduling fields of a lead in one
// pass: next contact, status, priority, and score. Converted leads only
// get a fresh score.
func Recalculate(lead *Lead, today time.Time) {
	lead.NextContact = NextContactDate(lead.LastContact, lead.Cadence)
	lead.Status = DeriveStatus(lead.Status, lead.NextContact, today)
	if !lead.Status.IsTerminal() {
		lead.Priority = DerivePriority(lead.Status, lead.NextContact, today)
	}
	lead.Score = Score(lead)
}
