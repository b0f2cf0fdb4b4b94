package usecase

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/xavierca1/seerah-hajj/internal/entity"
)

const (
	DefaultBaseMembers    = 110
	DefaultMembershipGoal = 500
	weeklyWindow          = 7 * 24 * time.Hour
)

type StatsUseCase struct {
	Subscribers entity.SubscriberRepositoryInterface
	Leads       entity.LeadRepositoryInterface
	BaseMembers int
	Goal        int
	Now         func() time.Time
	Log         logrus.FieldLogger
}

func NewStatsUseCase(subs entity.SubscriberRepositoryInterface, leads entity.LeadRepositoryInterface, log logrus.FieldLogger) *StatsUseCase {
	return &StatsUseCase{
		Subscribers: subs,
		Leads:       leads,
		BaseMembers: DefaultBaseMembers,
		Goal:        DefaultMembershipGoal,
		Now:         time.Now,
		Log:         log,
	}
}

func (uc *StatsUseCase) Execute(ctx context.Context) (*StatsOutput, error) {
	active, err := uc.Subscribers.CountActive(ctx)
	if err != nil {
		return nil, uc.fail(err)
	}
	weekly, err := uc.Subscribers.CountSince(ctx, uc.Now().Add(-weeklyWindow))
	if err != nil {
		return nil, uc.fail(err)
	}
	cities, err := uc.Leads.CountCities(ctx)
	if err != nil {
		return nil, uc.fail(err)
	}

	return &StatsOutput{
		CurrentMembers: uc.BaseMembers + active,
		TotalGoal:      uc.Goal,
		WeeklyJoins:    weekly,
		Cities:         cities,
	}, nil
}

func (uc *StatsUseCase) fail(err error) error {
	uc.Log.WithError(err).Error("stats query failed")
	return storageErr("Failed to fetch stats", err)
}
