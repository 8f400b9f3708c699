package domain_test

import (
	"testing"
	"time"

	"github.com/cadencia/cadencia-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextContactDate(t *testing.T) {
	t.Run("nil without last contact", func(t *testing.T) {
		assert.Nil(t, domain.NextContactDate(nil, domain.CadenceWeekly))
	})

	last := date(2024, time.January, 1)

	tests := []struct {
		name    string
		cadence domain.Cadence
		want    time.Time
	}{
		{"weekly", domain.CadenceWeekly, date(2024, time.January, 8)},
		{"biweekly", domain.CadenceBiweekly, date(2024, time.January, 16)},
		{"monthly", domain.CadenceMonthly, date(2024, time.January, 31)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.NextContactDate(&last, tt.cadence)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestDeriveStatus(t *testing.T) {
	today := date(2024, time.January, 10)

	t.Run("converted is terminal", func(t *testing.T) {
		past := date(2024, time.January, 1)
		got := domain.DeriveStatus(domain.StatusConverted, &past, today)
		assert.Equal(t, domain.StatusConverted, got)
	})

	t.Run("no next contact is on track", func(t *testing.T) {
		got := domain.DeriveStatus(domain.StatusOnTrack, nil, today)
		assert.Equal(t, domain.StatusOnTrack, got)
	})

	tests := []struct {
		name string
		next time.Time
		want domain.LeadStatus
	}{
		{"before today", date(2024, time.January, 8), domain.StatusOverdue},
		{"today", date(2024, time.January, 10), domain.StatusTalkToday},
		{"after today", date(2024, time.January, 12), domain.StatusOnTrack},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.DeriveStatus(domain.StatusOnTrack, &tt.next, today)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("time of day is ignored", func(t *testing.T) {
		next := time.Date(2024, time.January, 10, 23, 59, 0, 0, time.UTC)
		got := domain.DeriveStatus(domain.StatusOnTrack, &next, today)
		assert.Equal(t, domain.StatusTalkToday, got)
	})
}

func TestDerivePriority(t *testing.T) {
	today := date(2024, time.January, 10)

	t.Run("overdue is urgent regardless of date", func(t *testing.T) {
		next := date(2024, time.February, 1)
		got := domain.DerivePriority(domain.StatusOverdue, &next, today)
		assert.Equal(t, domain.PriorityUrgent, got)
	})

	t.Run("no next contact is normal", func(t *testing.T) {
		got := domain.DerivePriority(domain.StatusOnTrack, nil, today)
		assert.Equal(t, domain.PriorityNormal, got)
	})

	tests := []struct {
		name string
		next time.Time
		want domain.LeadPriority
	}{
		{"due today", date(2024, time.January, 10), domain.PriorityUrgent},
		{"due tomorrow", date(2024, time.January, 11), domain.PriorityAlert},
		{"due in two days", date(2024, time.January, 12), domain.PriorityAlert},
		{"due in three days", date(2024, time.January, 13), domain.PriorityNormal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.DerivePriority(domain.StatusOnTrack, &tt.next, today)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name string
		lead domain.Lead
		want int
	}{
		{"empty lead", domain.Lead{}, 0},
		{"overdue", domain.Lead{Status: domain.StatusOverdue}, 5},
		{"alert priority", domain.Lead{Priority: domain.PriorityAlert}, 3},
		{"hot", domain.Lead{Temperature: domain.TemperatureHot}, 3},
		{"referral origin", domain.Lead{Origin: domain.OriginReferral}, 2},
		{"event origin", domain.Lead{Origin: domain.OriginEvent}, 2},
		{"interest in note", domain.Lead{Note: "Cliente demonstrou INTERESSE no plano anual"}, 2},
		{
			"all signals",
			domain.Lead{
				Status:      domain.StatusOverdue,
				Priority:    domain.PriorityAlert,
				Temperature: domain.TemperatureHot,
				Origin:      domain.OriginReferral,
				Note:        "muito interesse",
			},
			15,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.Score(&tt.lead))
		})
	}
}

func TestRecalculate(t *testing.T) {
	today := date(2024, time.January, 10)

	t.Run("overdue weekly lead", func(t *testing.T) {
		last := date(2024, time.January, 1)
		lead := &domain.Lead{
			Cadence:     domain.CadenceWeekly,
			LastContact: &last,
			Status:      domain.StatusOnTrack,
			Temperature: domain.TemperatureCold,
		}

		domain.Recalculate(lead, today)

		require.NotNil(t, lead.NextContact)
		assert.Equal(t, date(2024, time.January, 8), *lead.NextContact)
		assert.Equal(t, domain.StatusOverdue, lead.Status)
		assert.Equal(t, domain.PriorityUrgent, lead.Priority)
		assert.Equal(t, 5, lead.Score)
	})

	t.Run("converted lead keeps status and priority", func(t *testing.T) {
		last := date(2024, time.January, 1)
		lead := &domain.Lead{
			Cadence:     domain.CadenceWeekly,
			LastContact: &last,
			Status:      domain.StatusConverted,
			Priority:    domain.PriorityNormal,
			Temperature: domain.TemperatureHot,
		}

		domain.Recalculate(lead, today)

		assert.Equal(t, domain.StatusConverted, lead.Status)
		assert.Equal(t, domain.PriorityNormal, lead.Priority)
		assert.Equal(t, 3, lead.Score)
	})

	t.Run("fresh lead without contact", func(t *testing.T) {
		lead := &domain.Lead{
			Cadence:     domain.CadenceMonthly,
			Status:      domain.StatusOnTrack,
			Temperature: domain.TemperatureCold,
		}

		domain.Recalculate(lead, today)

		assert.Nil(t, lead.NextContact)
		assert.Equal(t, domain.StatusOnTrack, lead.Status)
		assert.Equal(t, domain.PriorityNormal, lead.Priority)
	})
}
