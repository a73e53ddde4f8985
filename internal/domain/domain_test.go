package domain

import (
	"testing"

	"resume-builder/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestPatchApply(t *testing.T) {
	r := SavedResume{Title: "Original", IsPublic: true}
	title := ""
	public := false
	data := model.ResumeData{PersonalInfo: model.PersonalInfo{FullName: "Jane"}}

	ResumePatch{Title: &title, IsPublic: &public, ResumeData: &data}.Apply(&r)

	assert.Equal(t, "Original", r.Title)
	assert.False(t, r.IsPublic)
	assert.Equal(t, "Jane", r.ResumeData.PersonalInfo.FullName)
	assert.True(t, ResumePatch{}.Empty())
}

func TestShareURL(t *testing.T) {
	id := uuid.MustParse("6f1b1c1e-1111-4222-8333-444455556666")
	assert.Equal(t, "https://cv.example.com/resume/6f1b1c1e-1111-4222-8333-444455556666", ShareURL("https://cv.example.com/", id))
}

func TestDefaults(t *testing.T) {
	assert.Equal(t, "Report (Copy)", CopyTitle("Report"))
	assert.Equal(t, "jane", DefaultName("jane@example.com"))
}
