package usecase

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/xavierca1/seerah-hajj/internal/entity"
)

// SetupUseCase responde às rotas de diagnóstico do painel.
type SetupUseCase struct {
	Tables TableInspector
	Upload *UploadFileUseCase
	Log    logrus.FieldLogger
}

func NewSetupUseCase(tables TableInspector, upload *UploadFileUseCase, log logrus.FieldLogger) *SetupUseCase {
	return &SetupUseCase{Tables: tables, Upload: upload, Log: log}
}

func (uc *SetupUseCase) Database(ctx context.Context) ([]entity.TableStatus, error) {
	tables, err := uc.Tables.Inspect(ctx)
	if err != nil {
		uc.Log.WithError(err).Error("table inspection failed")
		return nil, storageErr("Failed to inspect database", err)
	}
	return tables, nil
}

func (uc *SetupUseCase) Storage(ctx context.Context) []entity.BucketStatus {
	return uc.Upload.EnsureBuckets(ctx)
}
