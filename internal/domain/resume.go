package domain

import (
	"time"

	"resume-builder/internal/model"

	"github.com/google/uuid"
)

// SavedResume is a resume persisted for a signed-in user.
type SavedResume struct {
	ID             uuid.UUID            `json:"id"`
	UserID         uuid.UUID            `json:"userId"`
	Title          string               `json:"title"`
	ResumeData     model.ResumeData     `json:"resumeData"`
	TemplateConfig model.TemplateConfig `json:"templateConfig"`
	IsPublic       bool                 `json:"isPublic"`
	ShareURL       string               `json:"shareUrl,omitempty"`
	CreatedAt      time.Time            `json:"createdAt"`
	UpdatedAt      time.Time            `json:"updatedAt"`
}

// ResumePatch is a partial update. Nil fields are left unchanged.
type ResumePatch struct {
	Title          *string               `json:"title,omitempty"`
	ResumeData     *model.ResumeData     `json:"resumeData,omitempty"`
	TemplateConfig *model.TemplateConfig `json:"templateConfig,omitempty"`
	IsPublic       *bool                 `json:"isPublic,omitempty"`
	ShareURL       *string               `json:"-"`
}

func (p ResumePatch) Empty() bool {
	return p.Title == nil && p.ResumeData == nil && p.TemplateConfig == nil && p.IsPublic == nil && p.ShareURL == nil
}

// Apply writes the set fields onto r. An empty title is ignored.
func (p ResumePatch) Apply(r *SavedResume) {
	if p.Title != nil && *p.Title != "" {
		r.Title = *p.Title
	}
	if p.ResumeData != nil {
		r.ResumeData = p.ResumeData.Clone()
	}
	if p.TemplateConfig != nil {
		r.TemplateConfig = *p.TemplateConfig
	}
	if p.IsPublic != nil {
		r.IsPublic = *p.IsPublic
	}
	if p.ShareURL != nil {
		r.ShareURL = *p.ShareURL
	}
}

// CopyTitle is the title given to a duplicate when none is supplied.
func CopyTitle(title string) string {
	return title + " (Copy)"
}

// ShareURL is the public address of a resume.
func ShareURL(base string, id uuid.UUID) string {
	for len(base) > 0 && base[len(base)-1] == '/' {
		base = base[:len(base)-1]
	}
	return base + "/resume/" + id.String()
}
