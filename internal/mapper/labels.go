package mapper

import "github.com/cadencia/cadencia-api/internal/domain"

// Label tables between stored enum codes (ASCII, no spaces) and the
// accent-bearing display form the frontend uses. Conversion happens
// only here, at the serialization edge; stored values never carry
// accents or spaces.

var statusLabels = map[domain.LeadStatus]string{
	domain.StatusTalkToday: "Falar Hoje",
	domain.StatusOnTrack:   "Em Dia",
}

var statusCodes = map[string]domain.LeadStatus{
	"Falar Hoje": domain.StatusTalkToday,
	"Em Dia":     domain.StatusOnTrack,
}

var originLabels = map[domain.LeadOrigin]string{
	domain.OriginReferral: "Indicação",
	domain.OriginAd:       "Anúncio",
	domain.OriginOrganic:  "Orgânico",
}

var originCodes = map[string]domain.LeadOrigin{
	"Indicação": domain.OriginReferral,
	"Anúncio":   domain.OriginAd,
	"Orgânico":  domain.OriginOrganic,
}

var priorityLabels = map[domain.LeadPriority]string{
	domain.PriorityAttention: "Atenção",
}

var priorityCodes = map[string]domain.LeadPriority{
	"Atenção": domain.PriorityAttention,
}

var contactTypeLabels = map[domain.ContactType]string{
	domain.ContactCall:    "Ligação",
	domain.ContactMeeting: "Reunião",
}

var contactTypeCodes = map[string]domain.ContactType{
	"Ligação": domain.ContactCall,
	"Reunião": domain.ContactMeeting,
}

// StatusLabel renders a status code in display form
func StatusLabel(s domain.LeadStatus) string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// StatusCode parses a display or code form into the stored code.
// Unknown values pass through unchanged so validation can reject them.
func StatusCode(v string) domain.LeadStatus {
	if code, ok := statusCodes[v]; ok {
		return code
	}
	return domain.LeadStatus(v)
}

// OriginLabel renders an origin code in display form
func OriginLabel(o domain.LeadOrigin) string {
	if label, ok := originLabels[o]; ok {
		return label
	}
	return string(o)
}

// OriginCode parses a display or code form into the stored code
func OriginCode(v string) domain.LeadOrigin {
	if code, ok := originCodes[v]; ok {
		return code
	}
	return domain.LeadOrigin(v)
}

// PriorityLabel renders a priority code in display form
func PriorityLabel(p domain.LeadPriority) string {
	if label, ok := priorityLabels[p]; ok {
		return label
	}
	return string(p)
}

// PriorityCode parses a display or code form into the stored code
func PriorityCode(v string) domain.LeadPriority {
	if code, ok := priorityCodes[v]; ok {
		return code
	}
	return domain.LeadPriority(v)
}

// ContactTypeLabel renders a contact type code in display form
func ContactTypeLabel(t domain.ContactType) string {
	if label, ok := contactTypeLabels[t]; ok {
		return label
	}
	return string(t)
}

// ContactTypeCode parses a display or code form into the stored code
func ContactTypeCode(v string) domain.ContactType {
	if code, ok := contactTypeCodes[v]; ok {
		return code
	}
	return domain.ContactType(v)
}
