package mapper

import (
	"time"

	"github.com/cadencia/cadencia-api/internal/domain"
)

const (
	timeLayout = "2006-01-02T15:04:05Z"
	dateLayout = "2006-01-02"
)

func formatDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

func centsToValue(cents *int64) *float64 {
	if cents == nil {
		return nil
	}
	v := float64(*cents) / 100
	return &v
}

// ToLeadDTO converts Lead to LeadDTO with display-form enum values
func ToLeadDTO(lead *domain.Lead) domain.LeadDTO {
	historico := make([]domain.ContactDTO, 0, len(lead.History))
	for i := range lead.History {
		historico = append(historico, ToContactDTO(&lead.History[i]))
	}
	briefings := make([]domain.BriefingDTO, 0, len(lead.Briefings))
	for i := range lead.Briefings {
		briefings = append(briefings, ToBriefingDTO(&lead.Briefings[i]))
	}

	return domain.LeadDTO{
		ID:             lead.ID,
		Nome:           lead.Name,
		Cidade:         lead.City,
		Origem:         OriginLabel(lead.Origin),
		Telefone:       lead.Phone,
		Codigo:         lead.Code,
		Cadencia:       lead.Cadence,
		UltimoContato:  formatTimePtr(lead.LastContact),
		ProximoContato: formatTimePtr(lead.NextContact),
		Status:         StatusLabel(lead.Status),
		Temperatura:    lead.Temperature,
		Prioridade:     PriorityLabel(lead.Priority),
		Observacao:     lead.Note,
		Score:          lead.Score,
		DataEntrada:    formatTime(lead.EntryDate),
		DataConversao:  formatTimePtr(lead.ConversionDate),
		ValorEstimado:  centsToValue(lead.EstimatedValueCents),
		ValorFechado:   centsToValue(lead.StatedValueCents),
		Moeda:          lead.Currency,
		Historico:      historico,
		Briefings:      briefings,
		CreatedAt:      formatTime(lead.CreatedAt),
		UpdatedAt:      formatTime(lead.UpdatedAt),
	}
}

// ToContactDTO converts ContactHistory to ContactDTO
func ToContactDTO(h *domain.ContactHistory) domain.ContactDTO {
	return domain.ContactDTO{
		ID:           h.ID,
		LeadID:       h.LeadID,
		Data:         formatTime(h.Date),
		Tipo:         ContactTypeLabel(h.Type),
		Temperatura:  h.Temperature,
		Status:       StatusLabel(h.Status),
		Resumo:       h.Summary,
		ProximoPasso: h.NextStep,
		Responsavel:  h.Responsible,
	}
}

// ToBriefingDTO converts Briefing to BriefingDTO
func ToBriefingDTO(b *domain.Briefing) domain.BriefingDTO {
	return domain.BriefingDTO{
		ID:                    b.ID,
		LeadID:                b.LeadID,
		Data:                  formatTime(b.Date),
		TipoContato:           ContactTypeLabel(b.ContactType),
		Objetivo:              b.Objective,
		Conversa:              b.Conversation,
		Resultado:             b.Result,
		InteresseDemonstrado:  b.InterestShown,
		Objecoes:              b.Objections,
		ProximoPasso:          b.NextStep,
		ProximoFollowUp:       formatTimePtr(b.NextFollowUp),
		TemperaturaAtualizada: b.UpdatedTemperature,
		CreatedAt:             formatTime(b.CreatedAt),
	}
}

// ToGamificationDTO converts GamificationProfile to GamificationDTO.
// The level is always re-derived from monthly points at read time.
func ToGamificationDTO(p *domain.GamificationProfile) domain.GamificationDTO {
	missions := make([]domain.MissionDTO, 0, len(p.Missions))
	for i := range p.Missions {
		missions = append(missions, ToMissionDTO(&p.Missions[i]))
	}
	conquistas := p.Achievements
	if conquistas == nil {
		conquistas = []string{}
	}

	return domain.GamificationDTO{
		ID:              p.ID,
		UserID:          p.UserID,
		PontosHoje:      p.PointsToday,
		PontosSemana:    p.PointsWeek,
		PontosMes:       p.PointsMonth,
		Nivel:           domain.LevelForPoints(p.PointsMonth),
		Conquistas:      conquistas,
		ProgressoDiario: p.DailyProgress,
		UltimaAtividade: formatTimePtr(p.LastActivity),
		MissoesDiarias:  missions,
	}
}

// ToMissionDTO converts DailyMission to MissionDTO
func ToMissionDTO(m *domain.DailyMission) domain.MissionDTO {
	return domain.MissionDTO{
		ID:        m.ID,
		Descricao: m.Description,
		Meta:      m.Target,
		Progresso: m.Progress,
		Concluida: m.Completed,
		Pontos:    m.Points,
	}
}

// ToMetricsDTO converts DailyMetrics to MetricsDTO
func ToMetricsDTO(m *domain.DailyMetrics) domain.MetricsDTO {
	return domain.MetricsDTO{
		ID:                      m.ID,
		UserID:                  m.UserID,
		Data:                    formatDate(m.Date),
		ContatosFeitos:          m.ContactsMade,
		AtrasosResolvidos:       m.OverdueResolved,
		NovosLeads:              m.NewLeads,
		LeadsQuentesTrabalhados: m.HotLeadsWorked,
		TaxaRitmo:               m.PaceRate,
	}
}

// ToUserDTO converts User to UserDTO
func ToUserDTO(u *domain.User) domain.UserDTO {
	return domain.UserDTO{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		ManagerID: u.ManagerID,
	}
}
