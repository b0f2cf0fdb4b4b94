package usecase

import (
	"context"

	"github.com/xavierca1/seerah-hajj/internal/entity"
)

// ObjectStore é o bucket de arquivos públicos (Supabase Storage via S3).
type ObjectStore interface {
	Put(ctx context.Context, bucket, key, contentType string, body []byte) error
	CreatePublicBucket(ctx context.Context, bucket string) error
	PublicURL(bucket, key string) string
}

// LeadMirror espelha o lead no CRM. Implementado pelo cliente Airtable
// (direto) e pelo producer RabbitMQ (assíncrono).
type LeadMirror interface {
	MirrorLead(ctx context.Context, lead *entity.Lead) error
}

type LeadNotifier interface {
	NotifyNewLead(ctx context.Context, lead *entity.Lead) error
}

type TableInspector interface {
	Inspect(ctx context.Context) ([]entity.TableStatus, error)
}
