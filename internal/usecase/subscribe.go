package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/xavierca1/seerah-hajj/internal/entity"
)

const (
	DefaultWhatsAppLink = "https://chat.whatsapp.com/LxkH8gMkUlDBvJSYpl5FBm?mode=ac_t"
	SubscriberSource    = "website_signup"
)

type SubscribeUseCase struct {
	Repo         entity.SubscriberRepositoryInterface
	Validator    *Validator
	WhatsAppLink string
	Now          func() time.Time
	Log          logrus.FieldLogger
}

func NewSubscribeUseCase(repo entity.SubscriberRepositoryInterface, v *Validator, whatsAppLink string, log logrus.FieldLogger) *SubscribeUseCase {
	if whatsAppLink == "" {
		whatsAppLink = DefaultWhatsAppLink
	}
	return &SubscribeUseCase{Repo: repo, Validator: v, WhatsAppLink: whatsAppLink, Now: time.Now, Log: log}
}

func (uc *SubscribeUseCase) Execute(ctx context.Context, in SubscribeInput) (*SubscribeOutput, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if errs := uc.Validator.Struct(in); len(errs) > 0 {
		return nil, validationFailure(errs)
	}

	sub := entity.NewSubscriber(in.Email, SubscriberSource, uc.Now())
	if err := uc.Repo.Create(ctx, sub); err != nil {
		if errors.Is(err, entity.ErrEmailAlreadyExists) {
			return nil, domainErr(CodeAlreadySubscribed, "This email is already subscribed")
		}
		uc.Log.WithError(err).Error("subscribe insert failed")
		return nil, storageErr("Failed to subscribe", err)
	}

	uc.Log.WithField("subscriber_id", sub.ID).Info("new subscriber")
	return &SubscribeOutput{
		SubscriberID: sub.ID,
		WhatsAppLink: uc.WhatsAppLink,
		Message:      "Successfully subscribed! Redirecting to WhatsApp...",
	}, nil
}
