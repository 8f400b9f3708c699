package domain

import (
	"time"

	"github.com/google/uuid"
)

// DTOs for API responses. Enum values carry the accent-bearing display
// form expected by the frontend, converted at the mapper edge.

type LeadDTO struct {
	ID             uuid.UUID     `json:"id"`
	Nome           string        `json:"nome"`
	Cidade         string        `json:"cidade,omitempty"`
	Origem         string        `json:"origem"`
	Telefone       string        `json:"telefone,omitempty"`
	Codigo         string        `json:"codigo,omitempty"`
	Cadencia       Cadence       `json:"cadencia"`
	UltimoContato  *string       `json:"ultimoContato"` // ISO 8601
	ProximoContato *string       `json:"proximoContato"`
	Status         string        `json:"status"`
	Temperatura    Temperature   `json:"temperatura"`
	Prioridade     string        `json:"prioridade"`
	Observacao     string        `json:"observacao,omitempty"`
	Score          int           `json:"score"`
	DataEntrada    string        `json:"dataEntrada"`
	DataConversao  *string       `json:"dataConversao"`
	ValorEstimado  *float64      `json:"valorEstimado,omitempty"`
	ValorFechado   *float64      `json:"valorFechado,omitempty"`
	Moeda          string        `json:"moeda,omitempty"`
	Historico      []ContactDTO  `json:"historico"`
	Briefings      []BriefingDTO `json:"briefings,omitempty"`
	CreatedAt      string        `json:"createdAt"`
	UpdatedAt      string        `json:"updatedAt"`
}

type ContactDTO struct {
	ID          uuid.UUID   `json:"id"`
	LeadID      uuid.UUID   `json:"leadId"`
	Data        string      `json:"data"`
	Tipo        string      `json:"tipo"`
	Temperatura Temperature `json:"temperatura"`
	Status      string      `json:"status"`
	Resumo      string      `json:"resumo,omitempty"`
	ProximoPasso string     `json:"proximoPasso,omitempty"`
	Responsavel string      `json:"responsavel,omitempty"`
}

type BriefingDTO struct {
	ID                   uuid.UUID   `json:"id"`
	LeadID               uuid.UUID   `json:"leadId"`
	Data                 string      `json:"data"`
	TipoContato          string      `json:"tipoContato"`
	Objetivo             string      `json:"objetivo,omitempty"`
	Conversa             string      `json:"conversa,omitempty"`
	Resultado            string      `json:"resultado,omitempty"`
	InteresseDemonstrado string      `json:"interesseDemonstrado,omitempty"`
	Objecoes             string      `json:"objecoes,omitempty"`
	ProximoPasso         string      `json:"proximoPasso,omitempty"`
	ProximoFollowUp      *string     `json:"proximoFollowUp"`
	TemperaturaAtualizada Temperature `json:"temperaturaAtualizada"`
	CreatedAt            string      `json:"createdAt"`
}

type MissionDTO struct {
	ID        uuid.UUID `json:"id"`
	Descricao string    `json:"descricao"`
	Meta      int       `json:"meta"`
	Progresso int       `json:"progresso"`
	Concluida bool      `json:"concluida"`
	Pontos    int       `json:"pontos"`
}

type GamificationDTO struct {
	ID              uuid.UUID    `json:"id"`
	UserID          uuid.UUID    `json:"userId"`
	PontosHoje      int          `json:"pontosHoje"`
	PontosSemana    int          `json:"pontosSemana"`
	PontosMes       int          `json:"pontosMes"`
	Nivel           string       `json:"nivel"`
	Conquistas      []string     `json:"conquistas"`
	ProgressoDiario int          `json:"progressoDiario"`
	UltimaAtividade *string      `json:"ultimaAtividade"`
	MissoesDiarias  []MissionDTO `json:"missoesDiarias"`
}

type MetricsDTO struct {
	ID                      uuid.UUID `json:"id"`
	UserID                  uuid.UUID `json:"userId"`
	Data                    string    `json:"data"`
	ContatosFeitos          int       `json:"contatosFeitos"`
	AtrasosResolvidos       int       `json:"atrasosResolvidos"`
	NovosLeads              int       `json:"novosLeads"`
	LeadsQuentesTrabalhados int       `json:"leadsQuentesTrabalhados"`
	TaxaRitmo               float64   `json:"taxaRitmo"`
}

type UserDTO struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      UserRole   `json:"role"`
	ManagerID *uuid.UUID `json:"managerId"`
}

// TeamMemberDTO is a seller row in the leader's team listing
type TeamMemberDTO struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  UserRole  `json:"role"`
}

// TeamSummaryDTO aggregates lead totals across a leader's team
type TeamSummaryDTO struct {
	Totals    TeamTotalsDTO        `json:"totals"`
	Breakdown []SellerBreakdownDTO `json:"breakdown"`
}

type TeamTotalsDTO struct {
	LeadsCount               int   `json:"leadsCount"`
	ConvertedCount           int   `json:"convertedCount"`
	TotalEstimatedValueCents int64 `json:"totalEstimatedValueCents"`
	TotalStatedValueCents    int64 `json:"totalStatedValueCents"`
}

type SellerBreakdownDTO struct {
	SellerID              uuid.UUID `json:"sellerId"`
	SellerName            string    `json:"sellerName"`
	LeadsCount            int       `json:"leadsCount"`
	ConvertedCount        int       `json:"convertedCount"`
	TotalStatedValueCents int64     `json:"totalStatedValueCents"`
}

// SellerDetailDTO is the full drill-down of one seller for a leader
type SellerDetailDTO struct {
	Seller         TeamMemberDTO      `json:"seller"`
	Metrics        SellerMetricsDTO   `json:"metrics"`
	Leads          []LeadDTO          `json:"leads"`
	TimelineData   []TimelinePointDTO `json:"timelineData"`
	RecentActivity []ActivityDTO      `json:"recentActivity"`
}

type SellerMetricsDTO struct {
	TotalLeads               int              `json:"totalLeads"`
	ConvertedLeads           int              `json:"convertedLeads"`
	ConversionRate           float64          `json:"conversionRate"`
	TotalStatedValueCents    int64            `json:"totalStatedValueCents"`
	TotalEstimatedValueCents int64            `json:"totalEstimatedValueCents"`
	LeadsByStatus            map[string]int   `json:"leadsByStatus"`
	LeadsByOrigin            []OriginCountDTO `json:"leadsByOrigin"`
	LeadsByCity              []CityCountDTO   `json:"leadsByCity"`
	LeadsByCadence           []CadenceCountDTO `json:"leadsByCadence"`
}

type OriginCountDTO struct {
	Origin string `json:"origin"`
	Count  int    `json:"count"`
}

type CityCountDTO struct {
	City  string `json:"city"`
	Count int    `json:"count"`
}

type CadenceCountDTO struct {
	Cadence Cadence `json:"cadence"`
	Count   int     `json:"count"`
}

type TimelinePointDTO struct {
	Date           string `json:"date"` // YYYY-MM-DD
	LeadsCount     int    `json:"leadsCount"`
	ConvertedCount int    `json:"convertedCount"`
}

// ActivityDTO is one entry in a seller's recent activity feed
type ActivityDTO struct {
	Type        string    `json:"type"` // contact, briefing, conversion
	Date        string    `json:"date"`
	LeadID      uuid.UUID `json:"leadId"`
	LeadName    string    `json:"leadName"`
	Description string    `json:"description"`
}

// Request payloads

type CreateLeadRequest struct {
	Nome          string  `json:"nome" validate:"required,max=200"`
	Cidade        string  `json:"cidade" validate:"max=100"`
	Origem        string  `json:"origem" validate:"required"`
	Telefone      string  `json:"telefone" validate:"max=50"`
	Codigo        string  `json:"codigo" validate:"max=50"`
	Cadencia      Cadence `json:"cadencia" validate:"required"`
	UltimoContato *time.Time `json:"ultimoContato"`
	Status        string  `json:"status"`
	Temperatura   Temperature `json:"temperatura"`
	Observacao    string  `json:"observacao"`
	DataEntrada   *time.Time `json:"dataEntrada"`
	ValorEstimado *float64   `json:"valorEstimado" validate:"omitempty,gte=0"`
}

type UpdateLeadRequest struct {
	Nome          *string     `json:"nome" validate:"omitempty,max=200"`
	Cidade        *string     `json:"cidade" validate:"omitempty,max=100"`
	Origem        *string     `json:"origem"`
	Telefone      *string     `json:"telefone" validate:"omitempty,max=50"`
	Codigo        *string     `json:"codigo" validate:"omitempty,max=50"`
	Cadencia      *Cadence    `json:"cadencia"`
	UltimoContato *time.Time  `json:"ultimoContato"`
	Status        *string     `json:"status"`
	Temperatura   *Temperature `json:"temperatura"`
	Observacao    *string     `json:"observacao"`
	DataEntrada   *time.Time  `json:"dataEntrada"`
	DataConversao *time.Time  `json:"dataConversao"`
	ValorEstimado *float64    `json:"valorEstimado" validate:"omitempty,gte=0"`
	ValorFechado  *float64    `json:"valorFechado" validate:"omitempty,gte=0"`
}

// RegisterContactRequest carries the optional briefing attached to a
// quick contact registration
type RegisterContactRequest struct {
	Briefing *ContactBriefingPayload `json:"briefing"`
}

type ContactBriefingPayload struct {
	TipoContato  string `json:"tipoContato"`
	Conversa     string `json:"conversa"`
	ProximoPasso string `json:"proximoPasso"`
}

type CreateBriefingRequest struct {
	LeadID               uuid.UUID   `json:"leadId" validate:"required"`
	TipoContato          string      `json:"tipoContato" validate:"required"`
	Objetivo             string      `json:"objetivo"`
	Conversa             string      `json:"conversa"`
	Resultado            string      `json:"resultado"`
	InteresseDemonstrado string      `json:"interesseDemonstrado"`
	Objecoes             string      `json:"objecoes"`
	ProximoPasso         string      `json:"proximoPasso"`
	ProximoFollowUp      *time.Time  `json:"proximoFollowUp"`
	TemperaturaAtualizada Temperature `json:"temperaturaAtualizada" validate:"required"`
}

// UpdateGamificationRequest uses pointers so absent fields are left
// untouched. Unknown fields are discarded by the whitelist.
type UpdateGamificationRequest struct {
	PontosHoje      *int      `json:"pontosHoje" validate:"omitempty,gte=0"`
	PontosSemana    *int      `json:"pontosSemana" validate:"omitempty,gte=0"`
	PontosMes       *int      `json:"pontosMes" validate:"omitempty,gte=0"`
	Conquistas      *[]string `json:"conquistas"`
	ProgressoDiario *int      `json:"progressoDiario" validate:"omitempty,gte=0"`
}

type AddPointsRequest struct {
	Pontos int `json:"pontos"`
}

type UpdateMetricsRequest struct {
	ContatosFeitos          *int     `json:"contatosFeitos" validate:"omitempty,gte=0"`
	AtrasosResolvidos       *int     `json:"atrasosResolvidos" validate:"omitempty,gte=0"`
	NovosLeads              *int     `json:"novosLeads" validate:"omitempty,gte=0"`
	LeadsQuentesTrabalhados *int     `json:"leadsQuentesTrabalhados" validate:"omitempty,gte=0"`
	TaxaRitmo               *float64 `json:"taxaRitmo" validate:"omitempty,gte=0"`
}

// IncrementMetricsRequest accepts raw values so invalid entries can be
// silently skipped instead of rejected
type IncrementMetricsRequest struct {
	ContatosFeitos          *int `json:"contatosFeitos"`
	AtrasosResolvidos       *int `json:"atrasosResolvidos"`
	NovosLeads              *int `json:"novosLeads"`
	LeadsQuentesTrabalhados *int `json:"leadsQuentesTrabalhados"`
}

type RegisterRequest struct {
	Nome     string `json:"nome" validate:"required,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateRoleRequest struct {
	Role      UserRole   `json:"role" validate:"required"`
	ManagerID *uuid.UUID `json:"managerId"`
}
