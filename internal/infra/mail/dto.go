package mail

import (
	"strconv"
	"time"

	"github.com/xavierca1/seerah-hajj/internal/entity"
)

// LeadEmailData é a visão achatada do lead usada pelo template.
type LeadEmailData struct {
	ID                     string
	FullName               string
	Email                  string
	Phone                  string
	CityCountry            string
	PreviousExperience     string
	HajjStatus             string
	TravellingWith         string
	TravellerCount         string
	DepartureCity          string
	RoomingPreference      string
	MobilityConsiderations string
	HearAboutUs            string
	HearAboutUsOther       string
	CallGoals              string
	SubmittedAt            string
}

func newLeadEmailData(l *entity.Lead) LeadEmailData {
	d := LeadEmailData{
		ID:                     l.ID,
		FullName:               l.FullName,
		Email:                  l.Email,
		Phone:                  l.Phone,
		CityCountry:            l.CityCountry,
		PreviousExperience:     l.PreviousExperience,
		HajjStatus:             l.HajjStatus,
		TravellingWith:         l.TravellingWith,
		DepartureCity:          deref(l.DepartureCity),
		RoomingPreference:      deref(l.RoomingPreference),
		MobilityConsiderations: deref(l.MobilityConsiderations),
		HearAboutUs:            deref(l.HearAboutUs),
		HearAboutUsOther:       deref(l.HearAboutUsOther),
		CallGoals:              l.CallGoals,
		SubmittedAt:            l.CreatedAt.UTC().Format(time.RFC1123),
	}
	if l.TravellerCount != nil {
		d.TravellerCount = strconv.Itoa(*l.TravellerCount)
	}
	return d
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
