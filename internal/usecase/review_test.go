package usecase

import (
	"strings"
	"testing"

	"resume-builder/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestReviewEmptyResume(t *testing.T) {
	res := Review(model.ResumeData{})
	assert.Equal(t, 0, res.Score)
	assert.Equal(t, VerdictNeedsImprovement, res.Verdict)
	assert.Len(t, res.Feedback, 6)
	assert.Empty(t, res.Strengths)
	assert.Contains(t, res.Improvements, "Add work experience section")
}

func TestReviewCompleteResume(t *testing.T) {
	d := model.ResumeData{
		PersonalInfo: model.PersonalInfo{
			FullName: "Jane Doe",
			Title:    "Engineer",
			Summary:  strings.Repeat("Built reliable systems. ", 4),
		},
		Experiences: []model.Experience{
			{ID: "1", Description: "Led the migration of billing to Go services."},
			{ID: "2", Description: "Owned the on-call rotation and incident reviews."},
		},
		Education: []model.Education{{ID: "1"}},
		Projects:  []model.Project{{ID: "1"}},
	}
	for _, n := range []string{"Go", "SQL", "Kafka", "Redis", "Docker"} {
		d.Skills = append(d.Skills, model.NewSkill(n))
	}

	res := Review(d)
	assert.Equal(t, 100, res.Score)
	assert.Equal(t, VerdictExcellent, res.Verdict)
	assert.Contains(t, res.Strengths, "Multiple work experiences listed")
	assert.Empty(t, res.Improvements)
}

func TestReviewPartialScores(t *testing.T) {
	d := model.ResumeData{
		PersonalInfo: model.PersonalInfo{FullName: "Jane Doe", Summary: "Short."},
		Experiences:  []model.Experience{{ID: "1", Description: "Coding."}},
		Skills:       []model.Skill{model.NewSkill("Go")},
	}
	// summary 8 + experience 15 + skills 10 = 33 of 90
	res := Review(d)
	assert.Equal(t, 37, res.Score)
	assert.Equal(t, VerdictNeedsImprovement, res.Verdict)
	assert.Contains(t, res.Improvements, "Complete personal information section")
	assert.Contains(t, res.Improvements, "Consider adding more work experience")
}

func TestVerdictBands(t *testing.T) {
	cases := map[int]string{
		100: VerdictExcellent, 80: VerdictExcellent, 79: VerdictGood,
		60: VerdictGood, 59: VerdictFair, 40: VerdictFair, 39: VerdictNeedsImprovement,
	}
	for score, want := range cases {
		got, summary := verdict(score)
		assert.Equal(t, want, got, "score %d", score)
		assert.NotEmpty(t, summary)
	}
}
