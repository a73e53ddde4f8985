package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"resume-builder/internal/domain"

	"github.com/google/uuid"
)

// MemoryResumes keeps resumes in process. It is used when no database is
// configured and in tests.
type MemoryResumes struct {
	mu   sync.RWMutex
	rows map[uuid.UUID]domain.SavedResume
}

func NewMemoryResumes() *MemoryResumes {
	return &MemoryResumes{rows: map[uuid.UUID]domain.SavedResume{}}
}

func (m *MemoryResumes) Create(_ context.Context, r *domain.SavedResume) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[r.ID]; ok {
		return ErrAlreadyExists
	}
	m.rows[r.ID] = copyResume(*r)
	return nil
}

func (m *MemoryResumes) Get(_ context.Context, id uuid.UUID) (*domain.SavedResume, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := copyResume(r)
	return &out, nil
}

func (m *MemoryResumes) ListByUser(_ context.Context, userID uuid.UUID) ([]domain.SavedResume, error) {
	return m.filter(func(r domain.SavedResume) bool { return r.UserID == userID }, 0), nil
}

func (m *MemoryResumes) Update(_ context.Context, id uuid.UUID, p domain.ResumePatch) (*domain.SavedResume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	p.Apply(&r)
	r.UpdatedAt = time.Now().UTC()
	m.rows[id] = r
	out := copyResume(r)
	return &out, nil
}

func (m *MemoryResumes) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *MemoryResumes) SearchPublic(_ context.Context, query string) ([]domain.SavedResume, error) {
	q := strings.ToLower(query)
	return m.filter(func(r domain.SavedResume) bool {
		return r.IsPublic && strings.Contains(strings.ToLower(r.Title), q)
	}, PublicSearchLimit), nil
}

func (m *MemoryResumes) filter(keep func(domain.SavedResume) bool, limit int) []domain.SavedResume {
	m.mu.RLock()
	out := []domain.SavedResume{}
	for _, r := range m.rows {
		if keep(r) {
			out = append(out, copyResume(r))
		}
	}
	m.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func copyResume(r domain.SavedResume) domain.SavedResume {
	r.ResumeData = r.ResumeData.Clone()
	return r
}

type MemoryUsers struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]domain.User
	byEmail map[string]uuid.UUID
}

func NewMemoryUsers() *MemoryUsers {
	return &MemoryUsers{byID: map[uuid.UUID]domain.User{}, byEmail: map[string]uuid.UUID{}}
}

func (m *MemoryUsers) Create(_ context.Context, u *domain.User) error {
	email := strings.ToLower(u.Email)
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEmail[email]; ok {
		return ErrAlreadyExists
	}
	stored := *u
	stored.Email = email
	m.byID[u.ID] = stored
	m.byEmail[email] = u.ID
	return nil
}

func (m *MemoryUsers) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.RLock()
	id, ok := m.byEmail[strings.ToLower(email)]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return m.GetByID(ctx, id)
}

func (m *MemoryUsers) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

type MemoryEvents struct {
	mu     sync.Mutex
	events []domain.AnalyticsEvent
}

func NewMemoryEvents() *MemoryEvents { return &MemoryEvents{} }

func (m *MemoryEvents) Insert(_ context.Context, e domain.AnalyticsEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, e)
	return nil
}

func (m *MemoryEvents) ListByUser(_ context.Context, userID uuid.UUID) ([]domain.AnalyticsEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.AnalyticsEvent{}
	for i := len(m.events) - 1; i >= 0 && len(out) < UserEventsLimit; i-- {
		if e := m.events[i]; e.UserID != nil && *e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

// All returns every recorded event in insertion order.
func (m *MemoryEvents) All() []domain.AnalyticsEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.AnalyticsEvent(nil), m.events...)
}
