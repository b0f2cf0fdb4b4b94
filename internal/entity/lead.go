package entity

import (
	"context"
	"time"
)

type LeadStatus string

const (
	LeadNew       LeadStatus = "new"
	LeadContacted LeadStatus = "contacted"
	LeadQualified LeadStatus = "qualified"
	LeadConverted LeadStatus = "converted"
	LeadClosed    LeadStatus = "closed"
)

// LeadStatuses na ordem em que o painel exibe. Não há grafo de transição:
// qualquer status pode ir para qualquer outro.
var LeadStatuses = []LeadStatus{LeadNew, LeadContacted, LeadQualified, LeadConverted, LeadClosed}

func ParseLeadStatus(s string) (LeadStatus, bool) {
	for _, st := range LeadStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// Lead é uma linha de form_submissions.
type Lead struct {
	ID                     string     `json:"id"`
	FullName               string     `json:"full_name"`
	Email                  string     `json:"email"`
	Phone                  string     `json:"phone"`
	CityCountry            string     `json:"city_country"`
	PreviousExperience     string     `json:"previous_experience"`
	HajjStatus             string     `json:"hajj_status"`
	TravellingWith         string     `json:"travelling_with"`
	TravellerCount         *int       `json:"traveller_count"`
	DepartureCity          *string    `json:"departure_city"`
	RoomingPreference      *string    `json:"rooming_preference"`
	MobilityConsiderations *string    `json:"mobility_considerations"`
	CallGoals              string     `json:"call_goals"`
	HearAboutUs            *string    `json:"hear_about_us"`
	HearAboutUsOther       *string    `json:"hear_about_us_other"`
	Consent                bool       `json:"consent"`
	Status                 LeadStatus `json:"status"`
	Notes                  *string    `json:"notes"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

func (*Lead) Kind() ItemKind { return KindLead }
func (*Lead) isItem()        {}

type LeadFilter struct {
	Status *LeadStatus
	Limit  int
	Offset int
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *Lead) error
	FindByID(ctx context.Context, id string) (*Lead, error)
	List(ctx context.Context, filter LeadFilter) ([]*Lead, error)
	Count(ctx context.Context, status *LeadStatus) (int, error)
	UpdateStatus(ctx context.Context, id string, status LeadStatus, notes *string, updatedAt time.Time) (*Lead, error)
	CountCities(ctx context.Context) (int, error)
}
