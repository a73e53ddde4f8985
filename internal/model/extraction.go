package model

import "strings"

// Extraction is the best-effort result of scraping free text, such as an
// uploaded resume. Every field is optional and nothing in it has been
// validated. It only becomes ResumeData through ToResumeData.
type Extraction struct {
	FullName *string  `json:"fullName,omitempty"`
	Title    *string  `json:"title,omitempty"`
	Email    *string  `json:"email,omitempty"`
	Phone    *string  `json:"phone,omitempty"`
	Location *string  `json:"location,omitempty"`
	Summary  *string  `json:"summary,omitempty"`
	Skills   []string `json:"skills,omitempty"`
}

// ExtractedSkillCategory is assigned to skills found by extraction, which
// carries no category information.
const ExtractedSkillCategory = "Other"

// Empty reports whether nothing at all was found.
func (e Extraction) Empty() bool {
	return e.FullName == nil && e.Title == nil && e.Email == nil && e.Phone == nil &&
		e.Location == nil && e.Summary == nil && len(e.Skills) == 0
}

// ToResumeData maps every extracted field onto a fresh ResumeData. The
// mapping is total: missing fields become zero values and blank or
// duplicate skills are dropped. The result is validated before returning.
func (e Extraction) ToResumeData() (ResumeData, error) {
	var d ResumeData
	d.PersonalInfo.FullName = deref(e.FullName)
	d.PersonalInfo.Title = deref(e.Title)
	d.PersonalInfo.Email = deref(e.Email)
	d.PersonalInfo.Phone = deref(e.Phone)
	d.PersonalInfo.Location = deref(e.Location)
	d.PersonalInfo.Summary = deref(e.Summary)

	seen := map[string]bool{}
	for _, s := range e.Skills {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		skill := NewSkill(s)
		skill.Category = ExtractedSkillCategory
		d.Skills = append(d.Skills, skill)
	}

	if err := Validate(d); err != nil {
		return ResumeData{}, err
	}
	return d, nil
}

// MergeInto fills only the empty personal fields of dst and appends skills
// it does not already have.
func (e Extraction) MergeInto(dst ResumeData) (ResumeData, error) {
	src, err := e.ToResumeData()
	if err != nil {
		return dst, err
	}
	out := dst.Clone()
	p := &out.PersonalInfo
	fill(&p.FullName, src.PersonalInfo.FullName)
	fill(&p.Title, src.PersonalInfo.Title)
	fill(&p.Email, src.PersonalInfo.Email)
	fill(&p.Phone, src.PersonalInfo.Phone)
	fill(&p.Location, src.PersonalInfo.Location)
	fill(&p.Summary, src.PersonalInfo.Summary)

	have := map[string]bool{}
	for _, s := range out.Skills {
		have[strings.ToLower(s.Name)] = true
	}
	for _, s := range src.Skills {
		if !have[strings.ToLower(s.Name)] {
			out.Skills = append(out.Skills, s)
		}
	}
	return out, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func fill(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}
