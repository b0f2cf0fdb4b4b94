package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/xavierca1/seerah-hajj/internal/entity"
)

const (
	DefaultMaxUploadSize  = 50 << 20
	DefaultImageBucket    = "images"
	DefaultDocumentBucket = "pdf-guides"
)

var uploadTypes = map[string]entity.AssetKind{
	"image/png":       entity.AssetImage,
	"image/jpeg":      entity.AssetImage,
	"image/jpg":       entity.AssetImage,
	"image/webp":      entity.AssetImage,
	"image/gif":       entity.AssetImage,
	"application/pdf": entity.AssetDocument,
}

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

type UploadFileUseCase struct {
	Store          ObjectStore
	ImageBucket    string
	DocumentBucket string
	MaxSize        int64
	Now            func() time.Time
	Log            logrus.FieldLogger
}

func NewUploadFileUseCase(store ObjectStore, imageBucket, documentBucket string, maxSize int64, log logrus.FieldLogger) *UploadFileUseCase {
	if imageBucket == "" {
		imageBucket = DefaultImageBucket
	}
	if documentBucket == "" {
		documentBucket = DefaultDocumentBucket
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxUploadSize
	}
	return &UploadFileUseCase{
		Store:          store,
		ImageBucket:    imageBucket,
		DocumentBucket: documentBucket,
		MaxSize:        maxSize,
		Now:            time.Now,
		Log:            log,
	}
}

// Validate checa presença, tipo e tamanho. Nada aqui toca no storage.
func (uc *UploadFileUseCase) Validate(in UploadInput) error {
	_, err := uc.validate(in)
	return err
}

func (uc *UploadFileUseCase) validate(in UploadInput) (entity.AssetKind, error) {
	if in.FileName == "" || (len(in.Data) == 0 && in.Size == 0) {
		return "", domainErr(CodeBadRequest, "No file uploaded")
	}

	kind, ok := uploadTypes[in.ContentType]
	if !ok {
		return "", domainErr(CodeUnsupportedMediaType, "Invalid file type. Only images and PDFs are allowed.")
	}

	if uploadSize(in) > uc.MaxSize {
		return "", domainErr(CodePayloadTooLarge, "File too large. Maximum size is %dMB", uc.MaxSize>>20)
	}
	return kind, nil
}

func (uc *UploadFileUseCase) Execute(ctx context.Context, in UploadInput) (*entity.UploadedAsset, error) {
	kind, err := uc.validate(in)
	if err != nil {
		return nil, err
	}
	size := uploadSize(in)

	bucket := uc.bucketFor(kind)
	key := ObjectName(in.FileName, uc.Now())
	log := uc.Log.WithFields(logrus.Fields{"bucket": bucket, "key": key, "content_type": in.ContentType})

	err = uc.Store.Put(ctx, bucket, key, in.ContentType, in.Data)
	if errors.Is(err, entity.ErrBucketNotFound) {
		log.Warn("bucket missing, creating")
		if cerr := uc.Store.CreatePublicBucket(ctx, bucket); cerr != nil && !errors.Is(cerr, entity.ErrBucketExists) {
			log.WithError(cerr).Error("bucket creation failed")
		}
		err = uc.Store.Put(ctx, bucket, key, in.ContentType, in.Data)
	}
	if err != nil {
		log.WithError(err).Error("upload failed")
		return nil, &TechnicalError{Code: CodeStorageWriteFailed, Message: "Failed to upload file", Err: err}
	}

	log.WithField("size", size).Info("file uploaded")
	return &entity.UploadedAsset{
		FileURL:  uc.Store.PublicURL(bucket, key),
		FileName: key,
		FileSize: FormatFileSize(size),
		FileType: in.ContentType,
		Kind:     kind,
	}, nil
}

// EnsureBuckets cria os dois buckets públicos e informa o resultado de cada um.
func (uc *UploadFileUseCase) EnsureBuckets(ctx context.Context) []entity.BucketStatus {
	buckets := []string{uc.ImageBucket, uc.DocumentBucket}
	out := make([]entity.BucketStatus, 0, len(buckets))
	for _, b := range buckets {
		err := uc.Store.CreatePublicBucket(ctx, b)
		switch {
		case err == nil:
			out = append(out, entity.BucketStatus{Bucket: b, Status: entity.BucketCreated})
		case errors.Is(err, entity.ErrBucketExists):
			out = append(out, entity.BucketStatus{Bucket: b, Status: entity.BucketAlreadyExists})
		default:
			uc.Log.WithError(err).WithField("bucket", b).Error("bucket setup failed")
			out = append(out, entity.BucketStatus{Bucket: b, Status: entity.BucketError, Error: err.Error()})
		}
	}
	return out
}

func (uc *UploadFileUseCase) bucketFor(kind entity.AssetKind) string {
	if kind == entity.AssetDocument {
		return uc.DocumentBucket
	}
	return uc.ImageBucket
}

func uploadSize(in UploadInput) int64 {
	if in.Size > 0 {
		return in.Size
	}
	return int64(len(in.Data))
}

// ObjectName gera "{unixMillis}-{nome}" com caracteres fora de [A-Za-z0-9.-] trocados por "_".
func ObjectName(original string, now time.Time) string {
	return fmt.Sprintf("%d-%s", now.UnixMilli(), unsafeNameChars.ReplaceAllString(original, "_"))
}

func FormatFileSize(bytes int64) string {
	return fmt.Sprintf("%.2f MB", float64(bytes)/(1024*1024))
}
