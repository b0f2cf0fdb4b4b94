package usecase

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
)

// ResourcesUseCase monta a página pública de recursos: só conteúdo ativo,
// filtrado por busca e tags.
type ResourcesUseCase struct {
	Tips     *DailyTipUseCase
	Webinars *WebinarUseCase
	Guides   *PDFGuideUseCase
	Log      logrus.FieldLogger
}

func NewResourcesUseCase(tips *DailyTipUseCase, webinars *WebinarUseCase, guides *PDFGuideUseCase, log logrus.FieldLogger) *ResourcesUseCase {
	return &ResourcesUseCase{Tips: tips, Webinars: webinars, Guides: guides, Log: log}
}

// Browse devolve sempre as três seções. Seção que falhou vem vazia e o erro
// volta junto com o resultado parcial.
func (uc *ResourcesUseCase) Browse(ctx context.Context, in ResourcesInput) (*ResourcesOutput, error) {
	var errs []error

	tips, err := uc.Tips.List(ctx, true)
	errs = append(errs, err)
	webinars, err := uc.Webinars.List(ctx, true)
	errs = append(errs, err)
	guides, err := uc.Guides.List(ctx, true)
	errs = append(errs, err)

	tags := map[string]struct{}{}
	collectTags(tags, tips)
	collectTags(tags, webinars)
	collectTags(tags, guides)

	out := &ResourcesOutput{
		Tips:     FilterContent(tips, in.Query, in.Tags),
		Webinars: FilterContent(webinars, in.Query, in.Tags),
		Guides:   FilterContent(guides, in.Query, in.Tags),
		AllTags:  sortedKeys(tags),
	}

	if err := errors.Join(errs...); err != nil {
		uc.Log.WithError(err).Warn("resources partially loaded")
		return out, &TechnicalError{Code: CodeStorageUnavailable, Message: "failed to load some resources", Err: err}
	}
	return out, nil
}
