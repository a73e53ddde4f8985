package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mazznoer/csscolorparser"
)

// ColorStop is one stop of a parsed gradient. Offset is in [0,1] when the
// expression gave one or it was spread evenly.
type ColorStop struct {
	Color  string
	Offset float64
}

// LinearGradient is the parsed form of a CSS linear-gradient expression.
type LinearGradient struct {
	AngleDeg float64
	Stops    []ColorStop
}

// FirstColorStop returns the first valid color in a gradient expression of
// any shape (linear, radial, conic).
func FirstColorStop(expr string) (string, bool) {
	s := strings.TrimSpace(expr)
	open := strings.Index(s, "(")
	if open < 0 || !strings.HasSuffix(s, ")") {
		return "", false
	}
	for _, a := range splitTopLevel(s[open+1 : len(s)-1]) {
		color, _ := splitStop(a)
		if _, err := csscolorparser.Parse(color); err == nil {
			return color, true
		}
	}
	return "", false
}

// splitStop separates "color [offset]" into its parts. The color may itself
// contain spaces inside parentheses, as in "rgb(0 0 0 / 50%)".
func splitStop(arg string) (color, offset string) {
	fields := splitTopLevelSpace(strings.TrimSpace(arg))
	if len(fields) < 2 {
		return strings.TrimSpace(arg), ""
	}
	last := fields[len(fields)-1]
	return strings.Join(fields[:len(fields)-1], " "), last
}

// ParseLinearGradient parses "linear-gradient(135deg, #a, #b 40%, #c)".
// Offsets are kept as written, including NaN or infinite values, so that
// drawing code can decide whether it can honour them.
func ParseLinearGradient(expr string) (LinearGradient, error) {
	s := strings.TrimSpace(expr)
	open := strings.Index(s, "(")
	if open < 0 || !strings.HasSuffix(s, ")") || !strings.Contains(strings.ToLower(s[:open]), "linear-gradient") {
		return LinearGradient{}, fmt.Errorf("not a linear gradient: %q", expr)
	}
	args := splitTopLevel(s[open+1 : len(s)-1])

	g := LinearGradient{AngleDeg: 180}
	if len(args) > 0 {
		if a, ok := parseDirection(args[0]); ok {
			g.AngleDeg = a
			args = args[1:]
		}
	}

	for _, a := range args {
		color, rest := splitStop(a)
		if _, err := csscolorparser.Parse(color); err != nil {
			return LinearGradient{}, fmt.Errorf("gradient stop color %q: %w", color, err)
		}
		stop := ColorStop{Color: color, Offset: -1}
		if rest != "" {
			v, err := strconv.ParseFloat(strings.TrimSuffix(rest, "%"), 64)
			if err != nil {
				return LinearGradient{}, fmt.Errorf("gradient stop offset %q: %w", rest, err)
			}
			stop.Offset = v / 100
		}
		g.Stops = append(g.Stops, stop)
	}
	if len(g.Stops) == 0 {
		return LinearGradient{}, fmt.Errorf("gradient without stops: %q", expr)
	}
	n := len(g.Stops)
	for i := range g.Stops {
		if g.Stops[i].Offset != -1 {
			continue
		}
		if n == 1 {
			g.Stops[i].Offset = 0
		} else {
			g.Stops[i].Offset = float64(i) / float64(n-1)
		}
	}
	return g, nil
}

// Finite reports whether the angle and every offset are finite numbers.
func (g LinearGradient) Finite() bool {
	if math.IsNaN(g.AngleDeg) || math.IsInf(g.AngleDeg, 0) {
		return false
	}
	for _, s := range g.Stops {
		if math.IsNaN(s.Offset) || math.IsInf(s.Offset, 0) {
			return false
		}
	}
	return true
}

func parseDirection(arg string) (float64, bool) {
	a := strings.TrimSpace(strings.ToLower(arg))
	if strings.HasSuffix(a, "deg") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(a, "deg"), 64)
		return v, err == nil
	}
	switch a {
	case "to top":
		return 0, true
	case "to right":
		return 90, true
	case "to bottom":
		return 180, true
	case "to left":
		return 270, true
	case "to top right", "to right top":
		return 45, true
	case "to bottom right", "to right bottom":
		return 135, true
	case "to bottom left", "to left bottom":
		return 225, true
	case "to top left", "to left top":
		return 315, true
	}
	return 0, false
}

func splitTopLevel(s string) []string {
	var out []string
	depth, start := 0, 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	if tail := strings.TrimSpace(s[start:]); tail != "" {
		out = append(out, tail)
	}
	return out
}

func splitTopLevelSpace(s string) []string {
	var out []string
	depth, start := 0, -1
	for i, r := range s {
		switch {
		case r == '(':
			depth++
		case r == ')':
			depth--
		case r == ' ' || r == '\t':
			if depth == 0 {
				if start >= 0 {
					out = append(out, s[start:i])
				}
				start = -1
				continue
			}
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		out = append(out, s[start:])
	}
	return out
}
