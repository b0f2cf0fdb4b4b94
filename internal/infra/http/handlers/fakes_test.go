package handlers

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/xavierca1/seerah-hajj/internal/entity"
)

// ============ FAKES EM MEMÓRIA ============

// memContent ignora o patch no Update; a aplicação do patch é testada no repositório SQL.
type memContent[T entity.Content, P any] struct {
	mu      sync.Mutex
	items   []T
	listErr error
}

func (m *memContent[T, P]) List(_ context.Context, activeOnly bool) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := []T{}
	for _, it := range m.items {
		if !activeOnly || it.Meta().IsActive {
			out = append(out, it)
		}
	}
	return out, nil
}

func (m *memContent[T, P]) Create(_ context.Context, item T) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if item.Meta().ID == "" {
		item.Meta().ID = fmt.Sprintf("id-%d", len(m.items)+1)
	}
	m.items = append(m.items, item)
	return item, nil
}

func (m *memContent[T, P]) Update(_ context.Context, id string, _ P, updatedAt time.Time) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, it := range m.items {
		if it.Meta().ID == id {
			it.Meta().UpdatedAt = updatedAt
			return it, nil
		}
	}
	var zero T
	return zero, entity.ErrNotFound
}

func (m *memContent[T, P]) SoftDelete(_ context.Context, id string, updatedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, it := range m.items {
		if it.Meta().ID == id {
			it.Meta().IsActive = false
			it.Meta().UpdatedAt = updatedAt
			return nil
		}
	}
	return entity.ErrNotFound
}

type memLeads struct {
	mu    sync.Mutex
	leads []*entity.Lead
}

func (m *memLeads) Create(_ context.Context, lead *entity.Lead) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leads = append(m.leads, lead)
	return nil
}

func (m *memLeads) FindByID(_ context.Context, id string) (*entity.Lead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.leads {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, entity.ErrNotFound
}

func (m *memLeads) List(_ context.Context, f entity.LeadFilter) ([]*entity.Lead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*entity.Lead{}
	for _, l := range m.leads {
		if f.Status == nil || l.Status == *f.Status {
			out = append(out, l)
		}
	}
	if f.Offset >= len(out) {
		return []*entity.Lead{}, nil
	}
	out = out[f.Offset:]
	if f.Limit > 0 && f.Limit < len(out) {
		out = out[:f.Limit]
	}
	return out, nil
}

func (m *memLeads) Count(ctx context.Context, status *entity.LeadStatus) (int, error) {
	all, _ := m.List(ctx, entity.LeadFilter{Status: status})
	return len(all), nil
}

func (m *memLeads) UpdateStatus(_ context.Context, id string, status entity.LeadStatus, notes *string, updatedAt time.Time) (*entity.Lead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.leads {
		if l.ID == id {
			l.Status = status
			if notes != nil {
				l.Notes = notes
			}
			l.UpdatedAt = updatedAt
			return l, nil
		}
	}
	return nil, entity.ErrNotFound
}

func (m *memLeads) CountCities(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := map[string]bool{}
	for _, l := range m.leads {
		seen[strings.ToLower(strings.TrimSpace(l.CityCountry))] = true
	}
	return len(seen), nil
}

type memSubscribers struct {
	mu   sync.Mutex
	subs map[string]*entity.Subscriber
}

func (m *memSubscribers) Create(_ context.Context, s *entity.Subscriber) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.subs == nil {
		m.subs = map[string]*entity.Subscriber{}
	}
	if _, dup := m.subs[s.Email]; dup {
		return entity.ErrEmailAlreadyExists
	}
	m.subs[s.Email] = s
	return nil
}

func (m *memSubscribers) CountActive(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.subs), nil
}

func (m *memSubscribers) CountSince(_ context.Context, since time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, s := range m.subs {
		if !s.SubscribedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

type memStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	buckets map[string]bool
}

func (m *memStore) Put(_ context.Context, bucket, key, _ string, body []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.objects == nil {
		m.objects = map[string][]byte{}
	}
	m.objects[bucket+"/"+key] = body
	return nil
}

func (m *memStore) CreatePublicBucket(_ context.Context, bucket string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.buckets == nil {
		m.buckets = map[string]bool{}
	}
	if m.buckets[bucket] {
		return entity.ErrBucketExists
	}
	m.buckets[bucket] = true
	return nil
}

func (m *memStore) PublicURL(bucket, key string) string {
	return "https://proj.supabase.co/storage/v1/object/public/" + bucket + "/" + key
}

func (m *memStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}

type memInspector struct {
	tables  []entity.TableStatus
	pingErr error
}

func (m *memInspector) Inspect(context.Context) ([]entity.TableStatus, error) {
	return m.tables, nil
}

func (m *memInspector) Ping(context.Context) error { return m.pingErr }
