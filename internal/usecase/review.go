package usecase

import (
	"math"
	"strings"
	"unicode/utf8"

	"resume-builder/internal/model"
)

// Feedback severities.
const (
	FeedbackSuccess = "success"
	FeedbackWarning = "warning"
	FeedbackInfo    = "info"
	FeedbackError   = "error"
)

// Review verdicts by score band.
const (
	VerdictExcellent        = "Excellent"
	VerdictGood             = "Good"
	VerdictFair             = "Fair"
	VerdictNeedsImprovement = "Needs Improvement"
)

const reviewMaxScore = 90

type Feedback struct {
	Category   string `json:"category"`
	Type       string `json:"type"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
	Score      int    `json:"score,omitempty"`
}

type ReviewResult struct {
	Score        int        `json:"overallScore"`
	Verdict      string     `json:"verdict"`
	Summary      string     `json:"summary"`
	Feedback     []Feedback `json:"feedback"`
	Strengths    []string   `json:"strengths"`
	Improvements []string   `json:"improvements"`
}

type reviewer struct {
	points int
	res    ReviewResult
}

func (r *reviewer) pass(category, message, strength string, points int) {
	r.points += points
	r.res.Feedback = append(r.res.Feedback, Feedback{Category: category, Type: FeedbackSuccess, Message: message, Score: points})
	r.res.Strengths = append(r.res.Strengths, strength)
}

func (r *reviewer) fail(category, kind, message, suggestion, improvement string, points int) {
	r.points += points
	r.res.Feedback = append(r.res.Feedback, Feedback{Category: category, Type: kind, Message: message, Suggestion: suggestion})
	r.res.Improvements = append(r.res.Improvements, improvement)
}

// Review scores a resume for completeness. The score is a percentage of
// the points available across personal info, summary, experience,
// education, skills and projects.
func Review(d model.ResumeData) ReviewResult {
	r := &reviewer{res: ReviewResult{Feedback: []Feedback{}, Strengths: []string{}, Improvements: []string{}}}
	p := d.PersonalInfo

	if strings.TrimSpace(p.FullName) != "" && strings.TrimSpace(p.Title) != "" {
		r.pass("Personal Information", "Name and job title are properly filled", "Clear personal information", 10)
	} else {
		r.fail("Personal Information", FeedbackError, "Missing name or job title",
			"Add your full name and current/desired job title", "Complete personal information section", 0)
	}

	summaryLen := utf8.RuneCountInString(strings.TrimSpace(p.Summary))
	switch {
	case summaryLen > 50:
		r.pass("Professional Summary", "Good professional summary length", "Comprehensive professional summary", 15)
	case summaryLen > 0:
		r.fail("Professional Summary", FeedbackWarning, "Summary is too brief",
			"Expand your summary to 2-3 sentences highlighting key achievements", "Expand professional summary", 8)
	default:
		r.fail("Professional Summary", FeedbackError, "No professional summary found",
			"Add a compelling 2-3 sentence summary of your professional background", "Add professional summary", 0)
	}

	if len(d.Experiences) > 0 {
		detailed := true
		for _, e := range d.Experiences {
			if utf8.RuneCountInString(strings.TrimSpace(e.Description)) <= 20 {
				detailed = false
				break
			}
		}
		if detailed {
			r.pass("Work Experience", "All experience entries have detailed descriptions", "Detailed work experience descriptions", 25)
		} else {
			r.fail("Work Experience", FeedbackWarning, "Some experience entries lack detailed descriptions",
				"Add specific achievements and responsibilities for each role", "Add more details to work experience", 15)
		}
		if len(d.Experiences) >= 2 {
			r.res.Strengths = append(r.res.Strengths, "Multiple work experiences listed")
		} else {
			r.res.Improvements = append(r.res.Improvements, "Consider adding more work experience")
		}
	} else {
		r.fail("Work Experience", FeedbackError, "No work experience listed",
			"Add your relevant work experience with dates and descriptions", "Add work experience section", 0)
	}

	if len(d.Education) > 0 {
		r.pass("Education", "Education information is included", "Education section completed", 15)
	} else {
		r.fail("Education", FeedbackWarning, "No education information found",
			"Add your educational background and qualifications", "Add education information", 0)
	}

	switch n := len(d.Skills); {
	case n >= 5:
		r.pass("Skills", "Good variety of skills listed", "Comprehensive skill set", 15)
	case n > 0:
		r.fail("Skills", FeedbackInfo, "Consider adding more skills",
			"Add 5-10 relevant skills to showcase your abilities", "Add more relevant skills", 10)
	default:
		r.fail("Skills", FeedbackError, "No skills listed",
			"Add relevant skills for your target role", "Add skills section", 0)
	}

	if len(d.Projects) > 0 {
		r.pass("Projects", "Projects section enhances your profile", "Projects showcase practical experience", 10)
	} else {
		r.fail("Projects", FeedbackInfo, "Consider adding projects to showcase your work",
			"Add personal or professional projects that demonstrate your skills", "Add projects section", 0)
	}

	r.res.Score = int(math.Round(float64(r.points) / reviewMaxScore * 100))
	r.res.Verdict, r.res.Summary = verdict(r.res.Score)
	return r.res
}

func verdict(score int) (string, string) {
	switch {
	case score >= 80:
		return VerdictExcellent, "Excellent resume! Your resume is well-structured and comprehensive."
	case score >= 60:
		return VerdictGood, "Good resume with room for improvement. Focus on the suggested areas to make it stronger."
	case score >= 40:
		return VerdictFair, "Your resume needs significant improvements. Consider adding more details and completing missing sections."
	}
	return VerdictNeedsImprovement, "Your resume requires substantial work. Start by completing the essential sections like personal info, experience, and education."
}
