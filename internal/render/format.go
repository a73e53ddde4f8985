package render

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// DateRange formats an entry period as "start – end". A current entry always
// ends in "Present", whatever its end date says. When one side is missing
// only the other is shown, and an entry with neither has no date line.
func DateRange(start, end string, current bool) string {
	start = strings.TrimSpace(start)
	end = strings.TrimSpace(end)
	if current {
		end = presentLabel
	}
	switch {
	case start == "" && end == "":
		return ""
	case start == "":
		return end
	case end == "":
		return start
	}
	return start + " – " + end
}

// DegreeLine renders "degree in field", tolerating either half missing.
func DegreeLine(degree, field string) string {
	degree = strings.TrimSpace(degree)
	field = strings.TrimSpace(field)
	switch {
	case degree == "":
		return field
	case field == "":
		return degree
	}
	return degree + " in " + field
}

// ClampLevel forces a skill level into 1..5. Out of range levels are
// rejected by validation, so clamping only matters for unvalidated input.
func ClampLevel(level int) int {
	if level < 1 {
		return 1
	}
	if level > 5 {
		return 5
	}
	return level
}

// Indicator returns the five segments of a skill bar for a level.
func Indicator(level int, color string) []Segment {
	level = ClampLevel(level)
	out := make([]Segment, 5)
	for i := range out {
		if i < level {
			out[i] = Segment{Filled: true, Style: Style{Background: color}}
		} else {
			out[i] = Segment{Style: Style{Background: NeutralColor}}
		}
	}
	return out
}

// URLLink labels a URL by its registrable domain plus path, so
// "https://www.linkedin.com/in/jane/" reads "linkedin.com/in/jane". Values
// that do not look like URLs, such as bare handles, are shown as given.
func URLLink(raw string) Link {
	v := strings.TrimSpace(raw)
	full := v
	if !strings.Contains(v, "://") {
		full = "https://" + v
	}
	u, err := url.Parse(full)
	if err != nil || u.Hostname() == "" || !strings.Contains(u.Hostname(), ".") {
		return Link{Label: v}
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	label := host
	if etld1, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		label = etld1
	}
	if p := strings.Trim(u.Path, "/"); p != "" {
		label += "/" + p
	}
	return Link{Label: label, Href: u.String()}
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v == "" {
		return def
	}
	return v
}

func joinNonEmpty(sep string, parts ...string) string {
	var keep []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			keep = append(keep, p)
		}
	}
	return strings.Join(keep, sep)
}

// withAlpha appends a two digit alpha to a #rrggbb color. Anything else is
// returned unchanged.
func withAlpha(color, alpha string) string {
	if len(color) == 7 && color[0] == '#' {
		return color + alpha
	}
	return color
}
