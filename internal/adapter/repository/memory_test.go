package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"resume-builder/internal/domain"
	"resume-builder/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResume(user uuid.UUID, title string, public bool, updated time.Time) *domain.SavedResume {
	return &domain.SavedResume{
		ID:             uuid.New(),
		UserID:         user,
		Title:          title,
		ResumeData:     model.ResumeData{Skills: []model.Skill{model.NewSkill("Go")}},
		TemplateConfig: model.DefaultTemplate(),
		IsPublic:       public,
		CreatedAt:      updated,
		UpdatedAt:      updated,
	}
}

func TestMemoryResumesCRUD(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryResumes()
	user := uuid.New()
	r := newResume(user, "Backend", false, time.Now())

	require.NoError(t, store.Create(ctx, r))
	assert.ErrorIs(t, store.Create(ctx, r), ErrAlreadyExists)

	got, err := store.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Backend", got.Title)

	got.ResumeData.Skills[0].Name = "mutated"
	again, _ := store.Get(ctx, r.ID)
	assert.Equal(t, "Go", again.ResumeData.Skills[0].Name)

	public := true
	updated, err := store.Update(ctx, r.ID, domain.ResumePatch{IsPublic: &public})
	require.NoError(t, err)
	assert.True(t, updated.IsPublic)
	assert.Equal(t, "Backend", updated.Title)

	require.NoError(t, store.Delete(ctx, r.ID))
	_, err = store.Get(ctx, r.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.Delete(ctx, r.ID), ErrNotFound)
	_, err = store.Update(ctx, r.ID, domain.ResumePatch{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryResumesListOrder(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryResumes()
	user := uuid.New()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.Create(ctx, newResume(user, "old", false, base)))
	require.NoError(t, store.Create(ctx, newResume(user, "new", false, base.Add(time.Hour))))
	require.NoError(t, store.Create(ctx, newResume(uuid.New(), "other", false, base)))

	list, err := store.ListByUser(ctx, user)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "new", list[0].Title)
	assert.Equal(t, "old", list[1].Title)
}

func TestMemorySearchPublic(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryResumes()
	base := time.Now()
	for i := 0; i < 12; i++ {
		require.NoError(t, store.Create(ctx, newResume(uuid.New(), fmt.Sprintf("Go Engineer %d", i), true, base.Add(time.Duration(i)*time.Minute))))
	}
	require.NoError(t, store.Create(ctx, newResume(uuid.New(), "Go Engineer private", false, base)))

	hits, err := store.SearchPublic(ctx, "engineer")
	require.NoError(t, err)
	assert.Len(t, hits, PublicSearchLimit)
	assert.Equal(t, "Go Engineer 11", hits[0].Title)
	for _, h := range hits {
		assert.True(t, h.IsPublic)
	}
}

func TestMemoryUsers(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryUsers()
	u := &domain.User{ID: uuid.New(), Email: "Jane@Example.com", Name: "Jane"}

	require.NoError(t, store.Create(ctx, u))
	err := store.Create(ctx, &domain.User{ID: uuid.New(), Email: "jane@example.com"})
	assert.True(t, errors.Is(err, ErrAlreadyExists))

	got, err := store.GetByEmail(ctx, "JANE@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "jane@example.com", got.Email)

	_, err = store.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryEventsListByUser(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryEvents()
	user := uuid.New()
	require.NoError(t, store.Insert(ctx, domain.AnalyticsEvent{EventType: domain.EventResumeCreated, UserID: &user}))
	require.NoError(t, store.Insert(ctx, domain.AnalyticsEvent{EventType: domain.EventPDFDownloaded}))
	require.NoError(t, store.Insert(ctx, domain.AnalyticsEvent{EventType: domain.EventResumeUpdated, UserID: &user}))

	events, err := store.ListByUser(ctx, user)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, domain.EventResumeUpdated, events[0].EventType)
	assert.Len(t, store.All(), 3)
}

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil))
	other := errors.New("boom")
	assert.Equal(t, other, translate(other))
}
