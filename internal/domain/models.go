package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// BeforeCreate assigns an ID so inserts work the same on postgres and sqlite
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// UserRole represents the access level of a user
type UserRole string

const (
	RoleSeller UserRole = "SELLER"
	RoleLeader UserRole = "LEADER"
	RoleAdmin  UserRole = "ADMIN"
)

// IsValid checks if the UserRole is a valid enum value
func (r UserRole) IsValid() bool {
	switch r {
	case RoleSeller, RoleLeader, RoleAdmin:
		return true
	}
	return false
}

// CanViewTeam reports whether the role grants access to team-scoped views
func (r UserRole) CanViewTeam() bool {
	return r == RoleLeader || r == RoleAdmin
}

// CanManageUsers reports whether the role grants user administration
func (r UserRole) CanManageUsers() bool {
	return r == RoleAdmin
}

// User represents a seller, leader, or admin account
type User struct {
	BaseModel
	Name         string     `gorm:"type:varchar(200);not null"`
	Email        string     `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string     `gorm:"type:varchar(255);not null;column:password_hash"`
	Role         UserRole   `gorm:"type:varchar(20);not null;default:'SELLER';index"`
	ManagerID    *uuid.UUID `gorm:"type:uuid;column:manager_id;index"`
}

// Cadence is the configured contact frequency for a lead
type Cadence string

const (
	CadenceWeekly   Cadence = "Semanal"
	CadenceBiweekly Cadence = "Quinzenal"
	CadenceMonthly  Cadence = "Mensal"
)

// IsValid checks if the Cadence is a valid enum value
func (c Cadence) IsValid() bool {
	switch c {
	case CadenceWeekly, CadenceBiweekly, CadenceMonthly:
		return true
	}
	return false
}

// Days returns the contact interval in days
func (c Cadence) Days() int {
	switch c {
	case CadenceWeekly:
		return 7
	case CadenceBiweekly:
		return 15
	default:
		return 30
	}
}

// LeadStatus represents the scheduling state of a lead
type LeadStatus string

const (
	StatusOverdue   LeadStatus = "Atrasado"
	StatusTalkToday LeadStatus = "FalarHoje"
	StatusOnTrack   LeadStatus = "EmDia"
	StatusConverted LeadStatus = "Convertido"
)

// IsValid checks if the LeadStatus is a valid enum value
func (s LeadStatus) IsValid() bool {
	switch s {
	case StatusOverdue, StatusTalkToday, StatusOnTrack, StatusConverted:
		return true
	}
	return false
}

// IsTerminal reports whether the status is exempt from recomputation
func (s LeadStatus) IsTerminal() bool {
	return s == StatusConverted
}

// Temperature represents the engagement level of a lead
type Temperature string

const (
	TemperatureCold Temperature = "Frio"
	TemperatureWarm Temperature = "Morno"
	TemperatureHot  Temperature = "Quente"
)

// IsValid checks if the Temperature is a valid enum value
func (t Temperature) IsValid() bool {
	switch t {
	case TemperatureCold, TemperatureWarm, TemperatureHot:
		return true
	}
	return false
}

// LeadPriority represents the urgency tier of a lead
type LeadPriority string

const (
	PriorityUrgent    LeadPriority = "Urgente"
	PriorityAlert     LeadPriority = "Alerta"
	PriorityAttention LeadPriority = "Atencao"
	PriorityNormal    LeadPriority = "Normal"
)

// IsValid checks if the LeadPriority is a valid enum value
func (p LeadPriority) IsValid() bool {
	switch p {
	case PriorityUrgent, PriorityAlert, PriorityAttention, PriorityNormal:
		return true
	}
	return false
}

// LeadOrigin represents the acquisition channel of a lead
type LeadOrigin string

const (
	OriginInstagram LeadOrigin = "Instagram"
	OriginReferral  LeadOrigin = "Indicacao"
	OriginAd        LeadOrigin = "Anuncio"
	OriginEvent     LeadOrigin = "Evento"
	OriginWhatsApp  LeadOrigin = "WhatsApp"
	OriginOrganic   LeadOrigin = "Organico"
	OriginLinkedIn  LeadOrigin = "LinkedIn"
	OriginSite      LeadOrigin = "Site"
	OriginOther     LeadOrigin = "Outro"
)

// IsValid checks if the LeadOrigin is a valid enum value
func (o LeadOrigin) IsValid() bool {
	switch o {
	case OriginInstagram, OriginReferral, OriginAd, OriginEvent, OriginWhatsApp,
		OriginOrganic, OriginLinkedIn, OriginSite, OriginOther:
		return true
	}
	return false
}

// ContactType represents how a contact was made
type ContactType string

const (
	ContactCall     ContactType = "Ligacao"
	ContactWhatsApp ContactType = "WhatsApp"
	ContactEmail    ContactType = "Email"
	ContactMeeting  ContactType = "Reuniao"
	ContactVisit    ContactType = "Visita"
	ContactOther    ContactType = "Outro"
)

// IsValid checks if the ContactType is a valid enum value
func (t ContactType) IsValid() bool {
	switch t {
	case ContactCall, ContactWhatsApp, ContactEmail, ContactMeeting, ContactVisit, ContactOther:
		return true
	}
	return false
}

// Lead represents a prospect with contact scheduling and scoring state
type Lead struct {
	BaseModel
	UserID              uuid.UUID    `gorm:"type:uuid;not null;index;column:user_id"`
	Name                string       `gorm:"type:varchar(200);not null"`
	City                string       `gorm:"type:varchar(100)"`
	Origin              LeadOrigin   `gorm:"type:varchar(50);not null;index"`
	Phone               string       `gorm:"type:varchar(50)"`
	Code                string       `gorm:"type:varchar(50)"`
	Cadence             Cadence      `gorm:"type:varchar(20);not null"`
	LastContact         *time.Time   `gorm:"column:last_contact"`
	NextContact         *time.Time   `gorm:"column:next_contact;index"`
	Status              LeadStatus   `gorm:"type:varchar(20);not null;default:'EmDia';index"`
	Temperature         Temperature  `gorm:"type:varchar(20);not null;default:'Frio'"`
	Priority            LeadPriority `gorm:"type:varchar(20);not null;default:'Normal'"`
	Note                string       `gorm:"type:text"`
	Score               int          `gorm:"not null;default:0"`
	EntryDate           time.Time    `gorm:"not null;column:entry_date"`
	ConversionDate      *time.Time   `gorm:"column:conversion_date"`
	EstimatedValueCents *int64       `gorm:"column:estimated_value_cents"`
	StatedValueCents    *int64       `gorm:"column:stated_value_cents"`
	Currency            string       `gorm:"type:varchar(3);default:'BRL'"`
	History             []ContactHistory `gorm:"foreignKey:LeadID;constraint:OnDelete:CASCADE"`
	Briefings           []Briefing       `gorm:"foreignKey:LeadID;constraint:OnDelete:CASCADE"`
}

// ContactHistory is an immutable record of one contact event.
// Entries are only ever appended, never mutated or deleted.
type ContactHistory struct {
	BaseModel
	LeadID      uuid.UUID   `gorm:"type:uuid;not null;index;column:lead_id"`
	Date        time.Time   `gorm:"not null;index"`
	Type        ContactType `gorm:"type:varchar(20);not null"`
	Temperature Temperature `gorm:"type:varchar(20);not null"`
	Status      LeadStatus  `gorm:"type:varchar(20);not null"`
	Summary     string      `gorm:"type:text"`
	NextStep    string      `gorm:"type:text;column:next_step"`
	Responsible string      `gorm:"type:varchar(200)"`
}

// Briefing is a structured debrief of one contact
type Briefing struct {
	BaseModel
	LeadID             uuid.UUID   `gorm:"type:uuid;not null;index;column:lead_id"`
	Date               time.Time   `gorm:"not null"`
	ContactType        ContactType `gorm:"type:varchar(20);not null;column:contact_type"`
	Objective          string      `gorm:"type:text"`
	Conversation       string      `gorm:"type:text"`
	Result             string      `gorm:"type:text"`
	InterestShown      string      `gorm:"type:text;column:interest_shown"`
	Objections         string      `gorm:"type:text"`
	NextStep           string      `gorm:"type:text;column:next_step"`
	NextFollowUp       *time.Time  `gorm:"column:next_follow_up"`
	UpdatedTemperature Temperature `gorm:"type:varchar(20);not null;column:updated_temperature"`
}

// GamificationProfile tracks points, level, and missions for one user
type GamificationProfile struct {
	BaseModel
	UserID        uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex;column:user_id"`
	PointsToday   int            `gorm:"not null;default:0;column:points_today"`
	PointsWeek    int            `gorm:"not null;default:0;column:points_week"`
	PointsMonth   int            `gorm:"not null;default:0;column:points_month"`
	Level         string         `gorm:"type:varchar(50);not null"`
	Achievements  []string       `gorm:"serializer:json"`
	DailyProgress int            `gorm:"not null;default:0;column:daily_progress"`
	LastActivity  *time.Time     `gorm:"column:last_activity"`
	Missions      []DailyMission `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
}

// DailyMission is one mission in a profile's mission batch
type DailyMission struct {
	BaseModel
	ProfileID   uuid.UUID `gorm:"type:uuid;not null;index;column:profile_id"`
	Description string    `gorm:"type:varchar(200);not null"`
	Target      int       `gorm:"not null"`
	Progress    int       `gorm:"not null;default:0"`
	Completed   bool      `gorm:"not null;default:false"`
	Points      int       `gorm:"not null"`
}

// DailyMetrics holds per-day activity counters for one user
type DailyMetrics struct {
	BaseModel
	UserID          uuid.UUID `gorm:"type:uuid;not null;column:user_id;uniqueIndex:idx_metrics_user_date"`
	Date            time.Time `gorm:"not null;uniqueIndex:idx_metrics_user_date"`
	ContactsMade    int       `gorm:"not null;default:0;column:contacts_made"`
	OverdueResolved int       `gorm:"not null;default:0;column:overdue_resolved"`
	NewLeads        int       `gorm:"not null;default:0;column:new_leads"`
	HotLeadsWorked  int       `gorm:"not null;default:0;column:hot_leads_worked"`
	PaceRate        float64   `gorm:"not null;default:0;column:pace_rate"`
}
