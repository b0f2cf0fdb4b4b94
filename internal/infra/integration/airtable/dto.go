package airtable

import (
	"time"

	"github.com/xavierca1/seerah-hajj/internal/entity"
)

// Record é o corpo aceito (e devolvido) por POST /v0/{base}/{table}.
type Record struct {
	ID          string         `json:"id,omitempty"`
	Fields      map[string]any `json:"fields"`
	CreatedTime string         `json:"createdTime,omitempty"`
}

// LeadFields mapeia o lead para as colunas da base no Airtable.
// Campos opcionais ausentes não entram no mapa.
func LeadFields(l *entity.Lead) map[string]any {
	f := map[string]any{
		"Full Name":           l.FullName,
		"Email":               l.Email,
		"Phone":               l.Phone,
		"City & Country":      l.CityCountry,
		"Previous Experience": l.PreviousExperience,
		"Hajj Status":         l.HajjStatus,
		"Travelling With":     l.TravellingWith,
		"Call Goals":          l.CallGoals,
		"Consent":             l.Consent,
		"Status":              "New",
		"Submitted At":        l.CreatedAt.UTC().Format(time.RFC3339),
	}
	if l.TravellerCount != nil {
		f["Traveller Count"] = *l.TravellerCount
	}
	setOptional(f, "Departure Preference", l.DepartureCity)
	setOptional(f, "Rooming Preference", l.RoomingPreference)
	setOptional(f, "Mobility Considerations", l.MobilityConsiderations)
	setOptional(f, "How Heard About Us", l.HearAboutUs)
	setOptional(f, "How Heard About Us (Other)", l.HearAboutUsOther)
	return f
}

func setOptional(f map[string]any, key string, v *string) {
	if v != nil && *v != "" {
		f[key] = *v
	}
}
