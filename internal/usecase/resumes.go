package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"resume-builder/internal/adapter/repository"
	"resume-builder/internal/domain"
	"resume-builder/internal/model"
	"resume-builder/pkg/apperr"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultResumeTitle is used when a resume is saved without a title.
const DefaultResumeTitle = "Untitled Resume"

// ResumeService manages saved resumes for signed-in users.
type ResumeService struct {
	store   ResumeStore
	tracker Tracker
	baseURL string
	log     zerolog.Logger
	now     func() time.Time
}

func NewResumeService(store ResumeStore, tracker Tracker, publicBaseURL string, log zerolog.Logger) *ResumeService {
	return &ResumeService{store: store, tracker: tracker, baseURL: publicBaseURL, log: log, now: time.Now}
}

type CreateResumeInput struct {
	Title          string               `json:"title"`
	ResumeData     model.ResumeData     `json:"resumeData"`
	TemplateConfig model.TemplateConfig `json:"templateConfig"`
	TemplateID     string               `json:"templateId"`
	IsPublic       bool                 `json:"isPublic"`
}

func (s *ResumeService) Create(ctx context.Context, user *domain.User, in CreateResumeInput) (*domain.SavedResume, error) {
	if user == nil {
		return nil, apperr.Unauthorized("")
	}
	if err := validateData(in.ResumeData); err != nil {
		return nil, err
	}
	tpl, err := resolveTemplate(in.TemplateConfig, in.TemplateID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	r := &domain.SavedResume{
		ID:             uuid.New(),
		UserID:         user.ID,
		Title:          strings.TrimSpace(in.Title),
		ResumeData:     in.ResumeData.Clone(),
		TemplateConfig: tpl,
		IsPublic:       in.IsPublic,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if r.Title == "" {
		r.Title = DefaultResumeTitle
	}
	if r.IsPublic {
		r.ShareURL = domain.ShareURL(s.baseURL, r.ID)
	}
	if err := s.store.Create(ctx, r); err != nil {
		return nil, storeError("create resume", err)
	}

	s.track(ctx, domain.EventResumeCreated, map[string]any{"resumeId": r.ID.String(), "templateId": tpl.ID})
	return r, nil
}

func (s *ResumeService) List(ctx context.Context, user *domain.User) ([]domain.SavedResume, error) {
	if user == nil {
		return nil, apperr.Unauthorized("")
	}
	out, err := s.store.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, storeError("list resumes", err)
	}
	return out, nil
}

// Get returns a resume owned by user.
func (s *ResumeService) Get(ctx context.Context, user *domain.User, id uuid.UUID) (*domain.SavedResume, error) {
	if user == nil {
		return nil, apperr.Unauthorized("")
	}
	r, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, storeError("get resume", err)
	}
	if r.UserID != user.ID {
		return nil, apperr.NotFound("resume")
	}
	return r, nil
}

// Update applies a partial update. Making a resume public assigns its share
// URL and making it private clears it.
func (s *ResumeService) Update(ctx context.Context, user *domain.User, id uuid.UUID, p domain.ResumePatch) (*domain.SavedResume, error) {
	cur, err := s.Get(ctx, user, id)
	if err != nil {
		return nil, err
	}
	if p.ResumeData != nil {
		if err := validateData(*p.ResumeData); err != nil {
			return nil, err
		}
	}
	if p.TemplateConfig != nil {
		tpl, err := resolveTemplate(*p.TemplateConfig, "")
		if err != nil {
			return nil, err
		}
		p.TemplateConfig = &tpl
	}
	if p.IsPublic != nil {
		share := ""
		if *p.IsPublic {
			share = domain.ShareURL(s.baseURL, cur.ID)
		}
		p.ShareURL = &share
	}

	updated, err := s.store.Update(ctx, id, p)
	if err != nil {
		return nil, storeError("update resume", err)
	}
	s.track(ctx, domain.EventResumeUpdated, map[string]any{"resumeId": id.String()})
	return updated, nil
}

func (s *ResumeService) Delete(ctx context.Context, user *domain.User, id uuid.UUID) error {
	if _, err := s.Get(ctx, user, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return storeError("delete resume", err)
	}
	s.track(ctx, domain.EventResumeDeleted, map[string]any{"resumeId": id.String()})
	return nil
}

// Duplicate copies a resume into a new private one. An empty title becomes
// the original title with " (Copy)".
func (s *ResumeService) Duplicate(ctx context.Context, user *domain.User, id uuid.UUID, title string) (*domain.SavedResume, error) {
	orig, err := s.Get(ctx, user, id)
	if err != nil {
		return nil, err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = domain.CopyTitle(orig.Title)
	}
	cp, err := s.Create(ctx, user, CreateResumeInput{
		Title:          title,
		ResumeData:     orig.ResumeData,
		TemplateConfig: orig.TemplateConfig,
	})
	if err != nil {
		return nil, err
	}
	s.track(ctx, domain.EventResumeDuplicated, map[string]any{"resumeId": cp.ID.String(), "sourceId": orig.ID.String()})
	return cp, nil
}

// Share makes the resume public and returns its share URL.
func (s *ResumeService) Share(ctx context.Context, user *domain.User, id uuid.UUID) (string, error) {
	public := true
	r, err := s.Update(ctx, user, id, domain.ResumePatch{IsPublic: &public})
	if err != nil {
		return "", err
	}
	return r.ShareURL, nil
}

// GetPublic returns a resume anyone may view.
func (s *ResumeService) GetPublic(ctx context.Context, id uuid.UUID) (*domain.SavedResume, error) {
	r, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, storeError("get resume", err)
	}
	if !r.IsPublic {
		return nil, apperr.NotFound("resume")
	}
	return r, nil
}

func (s *ResumeService) SearchPublic(ctx context.Context, query string) ([]domain.SavedResume, error) {
	out, err := s.store.SearchPublic(ctx, strings.TrimSpace(query))
	if err != nil {
		return nil, storeError("search resumes", err)
	}
	return out, nil
}

func (s *ResumeService) track(ctx context.Context, eventType string, data map[string]any) {
	if s.tracker == nil {
		return
	}
	if err := s.tracker.Track(ctx, eventType, data); err != nil {
		s.log.Warn().Err(err).Str("event_type", eventType).Msg("analytics event dropped")
	}
}

func validateData(d model.ResumeData) error {
	err := model.Validate(d)
	if err == nil {
		return nil
	}
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		return apperr.Validation("invalid resume data", verr.Problems)
	}
	return apperr.BadRequest(err.Error())
}

// resolveTemplate prefers a catalog id, then the id inside cfg, and keeps a
// custom config only when it has no catalog match.
func resolveTemplate(cfg model.TemplateConfig, id string) (model.TemplateConfig, error) {
	if id != "" {
		tpl, ok := model.Template(id)
		if !ok {
			return model.TemplateConfig{}, apperr.BadRequest(fmt.Sprintf("unknown template %q", id))
		}
		return tpl, nil
	}
	if cfg.ID == "" {
		return model.DefaultTemplate(), nil
	}
	if tpl, ok := model.Template(cfg.ID); ok {
		return tpl, nil
	}
	return cfg, nil
}

func storeError(op string, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperr.NotFound("resume")
	case errors.Is(err, repository.ErrAlreadyExists):
		return apperr.AlreadyExists("resume")
	}
	return apperr.DatabaseError(op, err)
}
