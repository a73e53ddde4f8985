package ai

import (
	"fmt"
	"strings"

	"resume-builder/internal/model"
)

const summaryClosing = "Passionate about delivering high-quality results and driving innovation in every project undertaken"

// GenerateSummary writes a summary paragraph from the resume alone. It is
// deterministic and used whenever the remote service is unavailable.
func GenerateSummary(d model.ResumeData) string {
	p := d.PersonalInfo
	name := orDefault(p.FullName, "A professional")
	title := orDefault(p.Title, "experienced professional")

	first := fmt.Sprintf("%s is a dedicated %s", name, title)
	if n := len(d.Experiences); n > 0 {
		first += fmt.Sprintf(" with %d+ years of experience", max(1, n*2))
	}
	parts := []string{first}

	if len(d.Experiences) > 0 {
		e := d.Experiences[0]
		if e.Position != "" && e.Company != "" {
			parts = append(parts, fmt.Sprintf("Most recently served as %s at %s", e.Position, e.Company))
		}
	}

	var top []string
	for _, s := range d.Skills {
		if len(top) == 4 {
			break
		}
		if s.Name != "" {
			top = append(top, s.Name)
		}
	}
	if len(top) > 0 {
		parts = append(parts, "Key expertise includes "+strings.Join(top, ", "))
	}

	if len(d.Education) > 0 {
		e := d.Education[0]
		if e.Degree != "" && e.Field != "" && e.Institution != "" {
			parts = append(parts, fmt.Sprintf("Holds a %s in %s from %s", e.Degree, e.Field, e.Institution))
		}
	}

	parts = append(parts, summaryClosing)
	return strings.Join(parts, ". ") + "."
}

var experienceBullets = map[string][]string{
	"default": {
		"Led key initiatives and contributed to team success at %s.",
		"Collaborated with cross-functional teams to deliver impactful solutions.",
		"Drove continuous improvement and innovation in daily responsibilities.",
	},
	"developer": {
		"Developed and maintained scalable applications at %s.",
		"Implemented best practices for code quality and performance optimization.",
		"Collaborated with designers and product managers to deliver user-centric solutions.",
	},
	"manager": {
		"Led and mentored a team of professionals at %s.",
		"Drove strategic initiatives resulting in measurable business outcomes.",
		"Established processes and workflows to improve team productivity.",
	},
	"designer": {
		"Created compelling visual designs and user experiences at %s.",
		"Conducted user research to inform design decisions and improve usability.",
		"Maintained design systems and ensured brand consistency across products.",
	},
}

// RoleBucket picks the description family for a position title.
func RoleBucket(position string) string {
	pos := strings.ToLower(position)
	switch {
	case containsAny(pos, "develop", "engineer", "program"):
		return "developer"
	case containsAny(pos, "manag", "lead", "director"):
		return "manager"
	case containsAny(pos, "design", "ux", "ui"):
		return "designer"
	}
	return "default"
}

// GenerateExperienceDescription drafts three sentences for a role.
func GenerateExperienceDescription(position, company string) string {
	lines := experienceBullets[RoleBucket(position)]
	out := make([]string, len(lines))
	for i, l := range lines {
		if strings.Contains(l, "%s") {
			l = fmt.Sprintf(l, company)
		}
		out[i] = l
	}
	return strings.Join(out, " ")
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
