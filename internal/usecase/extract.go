package usecase

import (
	"regexp"
	"strings"

	"resume-builder/internal/model"
)

var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern = regexp.MustCompile(`\d{3}[-.\s]?\d{3}[-.\s]?\d{4}`)
	digitPattern = regexp.MustCompile(`\d`)
	skillsSplit  = regexp.MustCompile(`[,;|]`)
)

var titleKeywords = []string{"engineer", "developer", "manager", "designer", "analyst", "consultant"}

// Extract scrapes contact details, a job title and skills out of plain
// resume text. It never fails; fields that cannot be found stay nil.
func Extract(text string) model.Extraction {
	var ex model.Extraction
	if m := emailPattern.FindString(text); m != "" {
		ex.Email = &m
	}
	if m := phonePattern.FindString(text); m != "" {
		ex.Phone = &m
	}

	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if ex.FullName == nil && looksLikeName(line) {
			name := line
			ex.FullName = &name
			continue
		}
		if ex.Title == nil && looksLikeTitle(line) {
			title := line
			ex.Title = &title
		}
		if len(ex.Skills) == 0 && strings.HasPrefix(strings.ToLower(line), "skills:") {
			ex.Skills = splitSkills(line[len("skills:"):])
		}
	}
	return ex
}

func looksLikeName(line string) bool {
	if strings.Contains(line, "@") || digitPattern.MatchString(line) || strings.Contains(line, ":") {
		return false
	}
	n := len(strings.Fields(line))
	return n >= 2 && n <= 4
}

func looksLikeTitle(line string) bool {
	if len(line) > 80 || strings.Contains(line, "@") {
		return false
	}
	lower := strings.ToLower(line)
	for _, k := range titleKeywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

func splitSkills(s string) []string {
	var out []string
	for _, part := range skillsSplit.Split(s, -1) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
