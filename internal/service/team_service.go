package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cadencia/cadencia-api/internal/auth"
	"github.com/cadencia/cadencia-api/internal/domain"
	"github.com/cadencia/cadencia-api/internal/mapper"
	"github.com/cadencia/cadencia-api/internal/repository"
)

// TeamService serves the leader views: team roster, aggregated summary,
// and the per-seller drill-down. Leaders see their direct reports,
// admins see every seller.
type TeamService struct {
	userRepo *repository.UserRepository
	leadRepo *repository.LeadRepository
	logger   *zap.Logger
	now      func() time.Time
}

func NewTeamService(userRepo *repository.UserRepository, leadRepo *repository.LeadRepository, logger *zap.Logger) *TeamService {
	return &TeamService{
		userRepo: userRepo,
		leadRepo: leadRepo,
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock overrides the time source, used by tests
func (s *TeamService) WithClock(now func() time.Time) *TeamService {
	s.now = now
	return s
}

func (s *TeamService) teamOf(ctx context.Context, viewer *auth.UserContext) ([]domain.User, error) {
	if viewer.Role.CanManageUsers() {
		return s.userRepo.ListSellers(ctx)
	}
	return s.userRepo.ListByManager(ctx, viewer.UserID)
}

// Team lists the sellers visible to the viewer
func (s *TeamService) Team(ctx context.Context, viewer *auth.UserContext) ([]domain.TeamMemberDTO, error) {
	users, err := s.teamOf(ctx, viewer)
	if err != nil {
		return nil, fmt.Errorf("failed to list team: %w", err)
	}

	members := make([]domain.TeamMemberDTO, 0, len(users))
	for i := range users {
		members = append(members, domain.TeamMemberDTO{
			ID:    users[i].ID,
			Name:  users[i].Name,
			Email: users[i].Email,
			Role:  users[i].Role,
		})
	}
	return members, nil
}

// Summary aggregates lead counts and values across the viewer's team,
// optionally restricted to an entry date window
func (s *TeamService) Summary(ctx context.Context, viewer *auth.UserContext, start, end *time.Time) (*domain.TeamSummaryDTO, error) {
	users, err := s.teamOf(ctx, viewer)
	if err != nil {
		return nil, fmt.Errorf("failed to list team: %w", err)
	}

	summary := &domain.TeamSummaryDTO{Breakdown: []domain.SellerBreakdownDTO{}}
	if len(users) == 0 {
		return summary, nil
	}

	sellerIDs := make([]uuid.UUID, 0, len(users))
	names := make(map[uuid.UUID]string, len(users))
	for i := range users {
		sellerIDs = append(sellerIDs, users[i].ID)
		names[users[i].ID] = users[i].Name
	}

	rows, err := s.leadRepo.StatsBySellers(ctx, sellerIDs, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate team stats: %w", err)
	}

	for _, row := range rows {
		name := names[row.UserID]
		if name == "" {
			name = "Sem nome"
		}
		summary.Breakdown = append(summary.Breakdown, domain.SellerBreakdownDTO{
			SellerID:              row.UserID,
			SellerName:            name,
			LeadsCount:            row.LeadsCount,
			ConvertedCount:        row.ConvertedCount,
			TotalStatedValueCents: row.StatedValueCents,
		})
		summary.Totals.LeadsCount += row.LeadsCount
		summary.Totals.ConvertedCount += row.ConvertedCount
		summary.Totals.TotalStatedValueCents += row.StatedValueCents
		summary.Totals.TotalEstimatedValueCents += row.EstimatedValueCents
	}

	sort.Slice(summary.Breakdown, func(i, j int) bool {
		return summary.Breakdown[i].SellerName < summary.Breakdown[j].SellerName
	})

	return summary, nil
}

// SellerDetail builds the full drill-down of one seller on the viewer's
// team: aggregated metrics, formatted leads, a 30 day timeline, and the
// latest activity entries
func (s *TeamService) SellerDetail(ctx context.Context, viewer *auth.UserContext, sellerID uuid.UUID) (*domain.SellerDetailDTO, error) {
	seller, err := s.userRepo.GetByID(ctx, sellerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get seller: %w", err)
	}
	if seller.Role != domain.RoleSeller {
		return nil, ErrNotFound
	}
	if !viewer.Role.CanManageUsers() {
		if seller.ManagerID == nil || *seller.ManagerID != viewer.UserID {
			return nil, ErrNotFound
		}
	}

	leads, err := s.leadRepo.ListByUser(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list seller leads: %w", err)
	}

	detail := &domain.SellerDetailDTO{
		Seller: domain.TeamMemberDTO{
			ID:    seller.ID,
			Name:  seller.Name,
			Email: seller.Email,
			Role:  seller.Role,
		},
		Metrics:        s.sellerMetrics(leads),
		Leads:          make([]domain.LeadDTO, 0, len(leads)),
		TimelineData:   s.timeline(leads),
		RecentActivity: s.recentActivity(leads),
	}
	for i := range leads {
		detail.Leads = append(detail.Leads, mapper.ToLeadDTO(&leads[i]))
	}

	return detail, nil
}

func (s *TeamService) sellerMetrics(leads []domain.Lead) domain.SellerMetricsDTO {
	metrics := domain.SellerMetricsDTO{
		TotalLeads: len(leads),
		LeadsByStatus: map[string]int{
			"Atrasado":   0,
			"Falar Hoje": 0,
			"Em Dia":     0,
			"Convertido": 0,
		},
		LeadsByOrigin:  []domain.OriginCountDTO{},
		LeadsByCity:    []domain.CityCountDTO{},
		LeadsByCadence: []domain.CadenceCountDTO{},
	}

	origins := map[string]int{}
	cities := map[string]int{}
	cadences := map[domain.Cadence]int{}

	for i := range leads {
		lead := &leads[i]
		if lead.Status == domain.StatusConverted {
			metrics.ConvertedLeads++
		}
		if lead.StatedValueCents != nil {
			metrics.TotalStatedValueCents += *lead.StatedValueCents
		}
		if lead.EstimatedValueCents != nil {
			metrics.TotalEstimatedValueCents += *lead.EstimatedValueCents
		}

		status := mapper.StatusLabel(lead.Status)
		if _, ok := metrics.LeadsByStatus[status]; ok {
			metrics.LeadsByStatus[status]++
		}
		origins[mapper.OriginLabel(lead.Origin)]++
		cities[lead.City]++
		cadences[lead.Cadence]++
	}

	if metrics.TotalLeads > 0 {
		rate := float64(metrics.ConvertedLeads) / float64(metrics.TotalLeads) * 100
		metrics.ConversionRate = math.Round(rate*10) / 10
	}

	for origin, count := range origins {
		metrics.LeadsByOrigin = append(metrics.LeadsByOrigin, domain.OriginCountDTO{Origin: origin, Count: count})
	}
	sort.Slice(metrics.LeadsByOrigin, func(i, j int) bool {
		return metrics.LeadsByOrigin[i].Count > metrics.LeadsByOrigin[j].Count
	})

	for city, count := range cities {
		metrics.LeadsByCity = append(metrics.LeadsByCity, domain.CityCountDTO{City: city, Count: count})
	}
	sort.Slice(metrics.LeadsByCity, func(i, j int) bool {
		return metrics.LeadsByCity[i].Count > metrics.LeadsByCity[j].Count
	})
	if len(metrics.LeadsByCity) > 10 {
		metrics.LeadsByCity = metrics.LeadsByCity[:10]
	}

	for cadence, count := range cadences {
		metrics.LeadsByCadence = append(metrics.LeadsByCadence, domain.CadenceCountDTO{Cadence: cadence, Count: count})
	}
	sort.Slice(metrics.LeadsByCadence, func(i, j int) bool {
		return metrics.LeadsByCadence[i].Cadence < metrics.LeadsByCadence[j].Cadence
	})

	return metrics
}

// timeline buckets leads by entry day over the last 30 days
func (s *TeamService) timeline(leads []domain.Lead) []domain.TimelinePointDTO {
	today := domain.StartOfDay(s.now())
	start := today.AddDate(0, 0, -30)

	points := make([]domain.TimelinePointDTO, 0, 30)
	for i := 0; i < 30; i++ {
		dayStart := start.AddDate(0, 0, i)
		dayEnd := dayStart.AddDate(0, 0, 1)

		var leadsCount, convertedCount int
		for j := range leads {
			entry := leads[j].EntryDate
			if !entry.Before(dayStart) && entry.Before(dayEnd) {
				leadsCount++
				if leads[j].Status == domain.StatusConverted {
					convertedCount++
				}
			}
		}

		points = append(points, domain.TimelinePointDTO{
			Date:           dayStart.Format("2006-01-02"),
			LeadsCount:     leadsCount,
			ConvertedCount: convertedCount,
		})
	}
	return points
}

// recentActivity merges contacts, briefings, and conversions into a
// single feed capped at 20 entries
func (s *TeamService) recentActivity(leads []domain.Lead) []domain.ActivityDTO {
	type activity struct {
		dto  domain.ActivityDTO
		date time.Time
	}
	var feed []activity

	for i := range leads {
		lead := &leads[i]

		history := lead.History
		if len(history) > 5 {
			history = history[:5]
		}
		for j := range history {
			h := &history[j]
			feed = append(feed, activity{
				date: h.Date,
				dto: domain.ActivityDTO{
					Type:        "contact",
					Date:        h.Date.UTC().Format(time.RFC3339),
					LeadID:      lead.ID,
					LeadName:    lead.Name,
					Description: fmt.Sprintf("Contato: %s - %s", mapper.ContactTypeLabel(h.Type), truncate(h.Summary, 50)),
				},
			})
		}

		briefings := lead.Briefings
		if len(briefings) > 5 {
			briefings = briefings[:5]
		}
		for j := range briefings {
			b := &briefings[j]
			feed = append(feed, activity{
				date: b.Date,
				dto: domain.ActivityDTO{
					Type:        "briefing",
					Date:        b.Date.UTC().Format(time.RFC3339),
					LeadID:      lead.ID,
					LeadName:    lead.Name,
					Description: fmt.Sprintf("Briefing: %s", truncate(b.Objective, 50)),
				},
			})
		}
	}

	var conversions []*domain.Lead
	for i := range leads {
		if leads[i].Status == domain.StatusConverted && leads[i].ConversionDate != nil {
			conversions = append(conversions, &leads[i])
		}
	}
	sort.Slice(conversions, func(i, j int) bool {
		return conversions[i].ConversionDate.After(*conversions[j].ConversionDate)
	})
	if len(conversions) > 10 {
		conversions = conversions[:10]
	}
	for _, lead := range conversions {
		var stated int64
		if lead.StatedValueCents != nil {
			stated = *lead.StatedValueCents
		}
		feed = append(feed, activity{
			date: *lead.ConversionDate,
			dto: domain.ActivityDTO{
				Type:        "conversion",
				Date:        lead.ConversionDate.UTC().Format(time.RFC3339),
				LeadID:      lead.ID,
				LeadName:    lead.Name,
				Description: fmt.Sprintf("Lead convertido - Valor: R$ %.2f", float64(stated)/100),
			},
		})
	}

	sort.Slice(feed, func(i, j int) bool {
		return feed[i].date.After(feed[j].date)
	})
	if len(feed) > 20 {
		feed = feed[:20]
	}

	result := make([]domain.ActivityDTO, 0, len(feed))
	for _, entry := range feed {
		result = append(result, entry.dto)
	}
	return result
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
