package entity

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrMissingField       = errors.New("missing required field")
	ErrInvalidVideoURL    = errors.New("invalid youtube url")
	ErrEmailAlreadyExists = errors.New("email already subscribed")
)

// ItemKind identifica a variante concreta de um Item.
type ItemKind string

const (
	KindDailyTip ItemKind = "daily_tip"
	KindWebinar  ItemKind = "webinar"
	KindPDFGuide ItemKind = "pdf_guide"
	KindLead     ItemKind = "lead"
)

// Item é a união fechada {DailyTip, Webinar, PDFGuide, Lead}.
// Só os tipos deste pacote implementam isItem.
type Item interface {
	Kind() ItemKind
	isItem()
}

// ContentMeta é o cabeçalho comum dos conteúdos publicáveis.
type ContentMeta struct {
	ID        string    `json:"id"`
	Tags      []string  `json:"tags"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (m *ContentMeta) Meta() *ContentMeta { return m }

// HasAnyTag reporta se o conteúdo carrega pelo menos uma das tags.
// Lista vazia casa com tudo.
func (m *ContentMeta) HasAnyTag(tags []string) bool {
	if len(tags) == 0 {
		return true
	}
	for _, want := range tags {
		for _, have := range m.Tags {
			if have == want {
				return true
			}
		}
	}
	return false
}

// Content é implementado por *DailyTip, *Webinar e *PDFGuide.
type Content interface {
	Item
	Meta() *ContentMeta
	Heading() (title, description string)
}

// ContentRepository é o contrato da tabela de cada tipo de conteúdo.
// P é o patch parcial aceito por Update.
type ContentRepository[T Content, P any] interface {
	List(ctx context.Context, activeOnly bool) ([]T, error)
	Create(ctx context.Context, item T) (T, error)
	Update(ctx context.Context, id string, patch P, updatedAt time.Time) (T, error)
	SoftDelete(ctx context.Context, id string, updatedAt time.Time) error
}
