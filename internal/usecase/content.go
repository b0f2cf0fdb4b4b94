package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/xavierca1/seerah-hajj/internal/entity"
)

// ContentUseCase é o CRUD genérico de um tipo de conteúdo.
// T é o conteúdo, C o input de criação, U o de edição e P o patch do repositório.
type ContentUseCase[T entity.Content, C any, U any, P any] struct {
	Repo entity.ContentRepository[T, P]
	Now  func() time.Time
	Log  logrus.FieldLogger

	label string
	build func(C) (T, error)
	patch func(U) (string, P, error)
}

func (uc *ContentUseCase[T, C, U, P]) List(ctx context.Context, activeOnly bool) ([]T, error) {
	items, err := uc.Repo.List(ctx, activeOnly)
	if err != nil {
		uc.Log.WithError(err).WithField("resource", uc.label).Error("list failed")
		return []T{}, storageErr("failed to fetch "+uc.label+"s", err)
	}
	return items, nil
}

// Create força is_active=true e created_at=updated_at=agora, ignorando o que
// o chamador mandou para esses campos.
func (uc *ContentUseCase[T, C, U, P]) Create(ctx context.Context, in C) (T, error) {
	var zero T

	item, err := uc.build(in)
	if err != nil {
		return zero, err
	}

	now := uc.Now()
	m := item.Meta()
	m.IsActive = true
	m.CreatedAt = now
	m.UpdatedAt = now
	if m.Tags == nil {
		m.Tags = []string{}
	}

	created, err := uc.Repo.Create(ctx, item)
	if err != nil {
		if errors.Is(err, entity.ErrMissingField) {
			return zero, domainErr(CodeMissingField, "%s", err.Error())
		}
		uc.Log.WithError(err).WithField("resource", uc.label).Error("create failed")
		return zero, storageErr("failed to create "+uc.label, err)
	}

	uc.Log.WithFields(logrus.Fields{"resource": uc.label, "id": created.Meta().ID}).Info("content created")
	return created, nil
}

func (uc *ContentUseCase[T, C, U, P]) Update(ctx context.Context, in U) (T, error) {
	var zero T

	id, p, err := uc.patch(in)
	if err != nil {
		return zero, err
	}
	if strings.TrimSpace(id) == "" {
		return zero, domainErr(CodeMissingField, "Missing %s ID", uc.label)
	}

	updated, err := uc.Repo.Update(ctx, id, p, uc.Now())
	if err != nil {
		return zero, uc.writeErr("update", id, err)
	}
	return updated, nil
}

// Delete é soft delete. Repetir em um registro já inativo não é erro.
func (uc *ContentUseCase[T, C, U, P]) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return domainErr(CodeMissingField, "Missing %s ID", uc.label)
	}

	if err := uc.Repo.SoftDelete(ctx, id, uc.Now()); err != nil {
		return uc.writeErr("delete", id, err)
	}

	uc.Log.WithFields(logrus.Fields{"resource": uc.label, "id": id}).Info("content deactivated")
	return nil
}

func (uc *ContentUseCase[T, C, U, P]) writeErr(op, id string, err error) error {
	switch {
	case errors.Is(err, entity.ErrNotFound):
		return domainErr(CodeNotFound, "%s %s not found", uc.label, id)
	case errors.Is(err, entity.ErrMissingField):
		return domainErr(CodeMissingField, "%s", err.Error())
	}
	uc.Log.WithError(err).WithFields(logrus.Fields{"resource": uc.label, "id": id}).Errorf("%s failed", op)
	return storageErr("failed to "+op+" "+uc.label, err)
}

type (
	DailyTipUseCase = ContentUseCase[*entity.DailyTip, DailyTipInput, DailyTipUpdateInput, entity.DailyTipPatch]
	WebinarUseCase  = ContentUseCase[*entity.Webinar, WebinarInput, WebinarUpdateInput, entity.WebinarPatch]
	PDFGuideUseCase = ContentUseCase[*entity.PDFGuide, PDFGuideInput, PDFGuideUpdateInput, entity.PDFGuidePatch]
)

func NewDailyTipUseCase(repo entity.ContentRepository[*entity.DailyTip, entity.DailyTipPatch], log logrus.FieldLogger) *DailyTipUseCase {
	return &DailyTipUseCase{Repo: repo, Now: time.Now, Log: log, label: "daily tip", build: buildDailyTip, patch: patchDailyTip}
}

func NewWebinarUseCase(repo entity.ContentRepository[*entity.Webinar, entity.WebinarPatch], log logrus.FieldLogger) *WebinarUseCase {
	return &WebinarUseCase{Repo: repo, Now: time.Now, Log: log, label: "webinar", build: buildWebinar, patch: patchWebinar}
}

func NewPDFGuideUseCase(repo entity.ContentRepository[*entity.PDFGuide, entity.PDFGuidePatch], log logrus.FieldLogger) *PDFGuideUseCase {
	return &PDFGuideUseCase{Repo: repo, Now: time.Now, Log: log, label: "PDF guide", build: buildPDFGuide, patch: patchPDFGuide}
}

func buildDailyTip(in DailyTipInput) (*entity.DailyTip, error) {
	if blank(in.Title) || blank(in.Description) || blank(in.ImageURL) {
		return nil, domainErr(CodeMissingField, "Missing required fields: title, description, or imageUrl")
	}
	category := in.Category
	if blank(category) {
		category = entity.DefaultTipCategory
	}
	return &entity.DailyTip{
		ContentMeta: entity.ContentMeta{Tags: in.Tags},
		Title:       in.Title,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		Category:    category,
	}, nil
}

func patchDailyTip(in DailyTipUpdateInput) (string, entity.DailyTipPatch, error) {
	p := entity.DailyTipPatch{
		Title:       in.Title,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		Category:    in.Category,
		Tags:        in.Tags,
		IsActive:    in.IsActive,
	}
	if blankPtr(in.Title) || blankPtr(in.Description) || blankPtr(in.ImageURL) {
		return in.ID, p, domainErr(CodeMissingField, "title, description and imageUrl cannot be empty")
	}
	return in.ID, p, nil
}

// buildWebinar nunca confia em id/thumbnail vindos do cliente: ambos saem da URL.
func buildWebinar(in WebinarInput) (*entity.Webinar, error) {
	if blank(in.Title) || blank(in.Description) || blank(in.YoutubeURL) {
		return nil, domainErr(CodeMissingField, "Missing required fields: title, description, or youtubeUrl")
	}
	w := &entity.Webinar{
		ContentMeta: entity.ContentMeta{Tags: in.Tags},
		Title:       in.Title,
		Description: in.Description,
		Duration:    optional(in.Duration),
	}
	if err := w.SetVideo(in.YoutubeURL); err != nil {
		return nil, invalidVideo()
	}
	return w, nil
}

func patchWebinar(in WebinarUpdateInput) (string, entity.WebinarPatch, error) {
	p := entity.WebinarPatch{
		Title:       in.Title,
		Description: in.Description,
		Duration:    in.Duration,
		Tags:        in.Tags,
		IsActive:    in.IsActive,
	}
	if blankPtr(in.Title) || blankPtr(in.Description) {
		return in.ID, p, domainErr(CodeMissingField, "title and description cannot be empty")
	}
	// URL vazia conta como "não enviada": id e thumbnail atuais ficam.
	if in.YoutubeURL != nil && !blank(*in.YoutubeURL) {
		if err := p.SetVideo(*in.YoutubeURL); err != nil {
			return in.ID, p, invalidVideo()
		}
	}
	return in.ID, p, nil
}

func buildPDFGuide(in PDFGuideInput) (*entity.PDFGuide, error) {
	if blank(in.Title) || blank(in.Description) || blank(in.PDFURL) {
		return nil, domainErr(CodeMissingField, "Missing required fields: title, description, or pdfUrl")
	}
	return &entity.PDFGuide{
		ContentMeta:  entity.ContentMeta{Tags: in.Tags},
		Title:        in.Title,
		Description:  in.Description,
		PDFURL:       in.PDFURL,
		ThumbnailURL: optional(in.ThumbnailURL),
		FileSize:     optional(in.FileSize),
	}, nil
}

func patchPDFGuide(in PDFGuideUpdateInput) (string, entity.PDFGuidePatch, error) {
	p := entity.PDFGuidePatch{
		Title:        in.Title,
		Description:  in.Description,
		PDFURL:       in.PDFURL,
		ThumbnailURL: in.ThumbnailURL,
		FileSize:     in.FileSize,
		Tags:         in.Tags,
		IsActive:     in.IsActive,
	}
	if blankPtr(in.Title) || blankPtr(in.Description) || blankPtr(in.PDFURL) {
		return in.ID, p, domainErr(CodeMissingField, "title, description and pdfUrl cannot be empty")
	}
	return in.ID, p, nil
}

func invalidVideo() *DomainError {
	return domainErr(CodeInvalidVideoURL, "Invalid YouTube URL. Please provide a valid YouTube video URL.")
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func blankPtr(s *string) bool { return s != nil && blank(*s) }

func optional(s string) *string {
	if blank(s) {
		return nil
	}
	return &s
}
