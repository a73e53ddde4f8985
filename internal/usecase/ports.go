package usecase

import (
	"context"

	"resume-builder/internal/domain"

	"github.com/google/uuid"
)

type ResumeStore interface {
	Create(ctx context.Context, r *domain.SavedResume) error
	Get(ctx context.Context, id uuid.UUID) (*domain.SavedResume, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.SavedResume, error)
	Update(ctx context.Context, id uuid.UUID, p domain.ResumePatch) (*domain.SavedResume, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SearchPublic(ctx context.Context, query string) ([]domain.SavedResume, error)
}

// Tracker records analytics events. Implementations must not block on
// storage and failures are never surfaced to the user.
type Tracker interface {
	Track(ctx context.Context, eventType string, data map[string]any) error
}

// PreviewCache stores rendered preview pages by content key.
type PreviewCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, page []byte)
}
