package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/xavierca1/seerah-hajj/internal/entity"
)

const (
	travellingSolo   = "Solo"
	hearAboutUsOther = "Other"
)

// SubmitIntakeUseCase grava o formulário e dispara espelhamento no CRM e
// aviso por e-mail em segundo plano.
type SubmitIntakeUseCase struct {
	Repo      entity.LeadRepositoryInterface
	Validator *Validator
	Mirror    LeadMirror
	Notifier  LeadNotifier
	Tasks     *BestEffort
	Now       func() time.Time
	Log       logrus.FieldLogger
}

func NewSubmitIntakeUseCase(repo entity.LeadRepositoryInterface, v *Validator, mirror LeadMirror, notifier LeadNotifier, tasks *BestEffort, log logrus.FieldLogger) *SubmitIntakeUseCase {
	return &SubmitIntakeUseCase{
		Repo:      repo,
		Validator: v,
		Mirror:    mirror,
		Notifier:  notifier,
		Tasks:     tasks,
		Now:       time.Now,
		Log:       log,
	}
}

func (uc *SubmitIntakeUseCase) Execute(ctx context.Context, in IntakeInput) (*IntakeOutput, error) {
	trimIntake(&in)

	if errs := uc.Validator.Struct(in); len(errs) > 0 {
		return nil, validationFailure(errs)
	}
	if !*in.Consent {
		return nil, domainErr(CodeValidation, "%s", fieldMessages["consent"])
	}

	lead := NewLead(in, uc.Now())
	if err := uc.Repo.Create(ctx, lead); err != nil {
		uc.Log.WithError(err).Error("intake insert failed")
		return nil, storageErr("Failed to save submission", err)
	}

	uc.Log.WithFields(logrus.Fields{"lead_id": lead.ID, "hajj_status": lead.HajjStatus}).Info("intake received")

	// Cópia: as tarefas rodam depois da resposta.
	snapshot := *lead
	if uc.Mirror != nil {
		uc.Tasks.Go("crm_mirror", func(ctx context.Context) error {
			return uc.Mirror.MirrorLead(ctx, &snapshot)
		})
	}
	if uc.Notifier != nil {
		uc.Tasks.Go("lead_notification", func(ctx context.Context) error {
			return uc.Notifier.NotifyNewLead(ctx, &snapshot)
		})
	}

	return &IntakeOutput{SubmissionID: lead.ID, Lead: lead, Name: lead.FullName, Email: lead.Email}, nil
}

// NewLead monta o lead a partir de um input já validado. Status sempre "new",
// notas sempre vazias.
func NewLead(in IntakeInput, now time.Time) *entity.Lead {
	lead := &entity.Lead{
		ID:                     uuid.New().String(),
		FullName:               in.FullName,
		Email:                  in.Email,
		Phone:                  in.Phone,
		CityCountry:            in.CityCountry,
		PreviousExperience:     in.PreviousExperience,
		HajjStatus:             in.HajjStatus,
		TravellingWith:         in.TravellingWith,
		DepartureCity:          nonBlank(in.DeparturePreference),
		RoomingPreference:      nonBlank(in.RoomingPreference),
		MobilityConsiderations: nonBlank(in.MobilityConsiderations),
		CallGoals:              in.CallGoals,
		HearAboutUs:            nonBlank(in.HearAboutUs),
		Consent:                in.Consent != nil && *in.Consent,
		Status:                 entity.LeadNew,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	if in.TravellingWith != travellingSolo {
		lead.TravellerCount = in.TravellerCount
	}
	if lead.HearAboutUs != nil && *lead.HearAboutUs == hearAboutUsOther {
		lead.HearAboutUsOther = nonBlank(in.HearAboutUsOther)
	}
	return lead
}

func trimIntake(in *IntakeInput) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	in.CityCountry = strings.TrimSpace(in.CityCountry)
	in.CallGoals = strings.TrimSpace(in.CallGoals)
	// Solo não informa quantidade: sobra do formulário não é validada.
	if in.TravellingWith == travellingSolo {
		in.TravellerCount = nil
	}
}

func nonBlank(s *string) *string {
	if s == nil {
		return nil
	}
	return optional(strings.TrimSpace(*s))
}
