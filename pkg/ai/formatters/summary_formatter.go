package formatters

import (
	"context"
	"errors"
	"strings"

	"resume-builder/internal/model"
)

// Bounds for an accepted summary, in characters.
const (
	SummaryMinLen = 80
	SummaryMaxLen = 600
)

type SummaryFormatter struct {
	chat Chatter
}

func NewSummaryFormatter(chat Chatter) *SummaryFormatter {
	return &SummaryFormatter{chat: chat}
}

func (sf *SummaryFormatter) Format(ctx context.Context, d model.ResumeData) (string, error) {
	// The photo is a data URI and only bloats the prompt.
	d = d.Clone()
	d.PersonalInfo.Photo = ""
	d.Attachments = nil

	instr := "Return ONLY a single JSON object with the key 'summary': a professional resume summary of 2-4 sentences in the third person, between 80 and 600 characters, built only from facts in the resume. Do NOT include any extra text."
	userCtx := map[string]interface{}{"resume": d, "instructions": instr}

	output, err := sf.chat.Chat(ctx, "Write resume summary:\n"+mustMarshal(userCtx))
	if err != nil {
		return "", err
	}

	var out struct {
		Summary string `json:"summary"`
	}
	if err := decodeObject(output, &out); err != nil {
		return "", err
	}
	return sanitizeSummary(out.Summary)
}

// sanitizeSummary collapses whitespace and enforces the length bounds,
// cutting an overlong summary at a word boundary.
func sanitizeSummary(s string) (string, error) {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) < SummaryMinLen {
		return "", errors.New("ai-service summary too short")
	}
	if len(s) > SummaryMaxLen {
		truncated := s[:SummaryMaxLen]
		if last := strings.LastIndexByte(truncated, ' '); last > 0 {
			truncated = truncated[:last]
		}
		s = strings.TrimRight(truncated, ",;:") + "."
	}
	return s, nil
}
