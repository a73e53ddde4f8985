package formatters

import (
	"context"
	"errors"
	"strings"
)

type ExperienceFormatter struct {
	chat Chatter
}

func NewExperienceFormatter(chat Chatter) *ExperienceFormatter {
	return &ExperienceFormatter{chat: chat}
}

// Format returns the bullets joined as one description paragraph.
func (ef *ExperienceFormatter) Format(ctx context.Context, position, company string) (string, error) {
	instr := "Return ONLY a single JSON object with the key 'bullets': an array of 3 strings, each a single sentence between 40 and 210 characters describing typical responsibilities and impact for the role. Do NOT include any extra text."
	userCtx := map[string]interface{}{
		"payload":      map[string]string{"position": position, "company": company},
		"instructions": instr,
	}

	output, err := ef.chat.Chat(ctx, "Describe experience entry:\n"+mustMarshal(userCtx))
	if err != nil {
		return "", err
	}

	var out struct {
		Bullets []string `json:"bullets"`
	}
	if err := decodeObject(output, &out); err != nil {
		return "", err
	}

	var kept []string
	for _, b := range out.Bullets {
		b = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(b), "-•*"))
		if b == "" {
			continue
		}
		if !strings.HasSuffix(b, ".") {
			b += "."
		}
		kept = append(kept, b)
	}
	if len(kept) == 0 {
		return "", errors.New("ai-service returned no bullets")
	}
	return strings.Join(kept, " "), nil
}
