package model

import "strings"

type Layout string

const (
	LayoutSingle  Layout = "single"
	LayoutDouble  Layout = "double"
	LayoutSidebar Layout = "sidebar"
)

type HeaderStyle string

const (
	HeaderBanner   HeaderStyle = "banner"
	HeaderMinimal  HeaderStyle = "minimal"
	HeaderCentered HeaderStyle = "centered"
	HeaderSplit    HeaderStyle = "split"
	HeaderGradient HeaderStyle = "gradient"
)

const (
	CategoryClassic      = "Classic"
	CategoryModern       = "Modern"
	CategoryCreative     = "Creative"
	CategoryMinimalist   = "Minimalist"
	CategoryProfessional = "Professional"
	CategoryBold         = "Bold"
)

// TemplateConfig is a named bundle of colors, layout and typography. It is
// selected wholesale from the catalog and never edited field by field.
type TemplateConfig struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Category       string      `json:"category"`
	PrimaryColor   string      `json:"primaryColor"`
	SecondaryColor string      `json:"secondaryColor"`
	AccentColor    string      `json:"accentColor"`
	BgColor        string      `json:"bgColor"`
	TextColor      string      `json:"textColor"`
	HeaderBg       string      `json:"headerBg"`
	Layout         Layout      `json:"layout"`
	FontFamily     string      `json:"fontFamily"`
	HeaderStyle    HeaderStyle `json:"headerStyle"`
}

// HasGradientHeader reports whether the header background is a gradient
// expression rather than a flat color.
func (t TemplateConfig) HasGradientHeader() bool {
	return IsGradient(t.HeaderBg)
}

// IsGradient reports whether a CSS background value is a gradient.
func IsGradient(v string) bool {
	return strings.Contains(strings.ToLower(v), "gradient")
}

// DefaultTemplateID is used for new sessions and unknown template ids.
const DefaultTemplateID = "modern-1"

var categories = []string{CategoryClassic, CategoryModern, CategoryCreative, CategoryMinimalist, CategoryProfessional, CategoryBold}

var catalog = []TemplateConfig{
	// Classic
	{ID: "classic-1", Name: "Classic Blue", Category: CategoryClassic, PrimaryColor: "#2563eb", SecondaryColor: "#1e40af", AccentColor: "#3b82f6", BgColor: "#ffffff", TextColor: "#1e293b", HeaderBg: "#2563eb", Layout: LayoutSingle, FontFamily: `'Georgia', serif`, HeaderStyle: HeaderBanner},
	{ID: "classic-2", Name: "Classic Navy", Category: CategoryClassic, PrimaryColor: "#1e3a5f", SecondaryColor: "#0f2744", AccentColor: "#2563eb", BgColor: "#ffffff", TextColor: "#1e293b", HeaderBg: "#1e3a5f", Layout: LayoutSingle, FontFamily: `'Georgia', serif`, HeaderStyle: HeaderBanner},
	{ID: "classic-3", Name: "Classic Green", Category: CategoryClassic, PrimaryColor: "#166534", SecondaryColor: "#14532d", AccentColor: "#22c55e", BgColor: "#ffffff", TextColor: "#1e293b", HeaderBg: "#166534", Layout: LayoutSingle, FontFamily: `'Times New Roman', serif`, HeaderStyle: HeaderBanner},
	{ID: "classic-4", Name: "Classic Burgundy", Category: CategoryClassic, PrimaryColor: "#881337", SecondaryColor: "#701a33", AccentColor: "#e11d48", BgColor: "#ffffff", TextColor: "#1e293b", HeaderBg: "#881337", Layout: LayoutSingle, FontFamily: `'Georgia', serif`, HeaderStyle: HeaderBanner},
	{ID: "classic-5", Name: "Classic Charcoal", Category: CategoryClassic, PrimaryColor: "#374151", SecondaryColor: "#1f2937", AccentColor: "#6b7280", BgColor: "#ffffff", TextColor: "#1e293b", HeaderBg: "#374151", Layout: LayoutSingle, FontFamily: `'Georgia', serif`, HeaderStyle: HeaderMinimal},

	// Modern
	{ID: "modern-1", Name: "Modern Indigo", Category: CategoryModern, PrimaryColor: "#6366f1", SecondaryColor: "#4f46e5", AccentColor: "#818cf8", BgColor: "#ffffff", TextColor: "#1e293b", HeaderBg: "linear-gradient(135deg, #6366f1, #8b5cf6)", Layout: LayoutDouble, FontFamily: `'Inter', sans-serif`, HeaderStyle: HeaderGradient},
	{ID: "modern-2", Name: "Modern Coral", Category: CategoryModern, PrimaryColor: "#f43f5e", SecondaryColor: "#e11d48", AccentColor: "#fb7185", BgColor: "#ffffff", TextColor: "#1e293b", HeaderBg: "linear-gradient(135deg, #f43f5e, #f97316)", Layout: LayoutDouble, FontFamily: `'Inter', sans-serif`, HeaderStyle: HeaderGradient},
	{ID: "modern-3", Name: "Modern Teal", Category: CategoryModern, PrimaryColor: "#14b8a6", SecondaryColor: "#0d9488", AccentColor: "#2dd4bf", BgColor: "#ffffff", TextColor: "#1e293b", HeaderBg: "linear-gradient(135deg, #14b8a6, #06b6d4)", Layout: LayoutDouble, FontFamily: `'Inter', sans-serif`, HeaderStyle: HeaderGradient},
	{ID: "modern-4", Name: "Modern Amber", Category: CategoryModern, PrimaryColor: "#f59e0b", SecondaryColor: "#d97706", AccentColor: "#fbbf24", BgColor: "#ffffff", TextColor: "#1e293b", HeaderBg: "linear-gradient(135deg, #f59e0b, #ef4444)", Layout: LayoutDouble, FontFamily: `'Inter', sans-serif`, HeaderStyle: HeaderGradient},
	{ID: "modern-5", Name: "Modern Violet", Category: CategoryModern, PrimaryColor: "#8b5cf6", SecondaryColor: "#7c3aed", AccentColor: "#a78bfa", BgColor: "#ffffff", TextColor: "#1e293b", HeaderBg: "linear-gradient(135deg, #8b5cf6, #ec4899)", Layout: LayoutDouble, FontFamily: `'Inter', sans-serif`, HeaderStyle: HeaderGradient},

	// Creative
	{ID: "creative-1", Name: "Creative Sunset", Category: CategoryCreative, PrimaryColor: "#f97316", SecondaryColor: "#ea580c", AccentColor: "#fb923c", BgColor: "#fffbf5", TextColor: "#1e293b", HeaderBg: "linear-gradient(135deg, #f97316, #ec4899, #8b5cf6)", Layout: LayoutSidebar, FontFamily: `'Space Grotesk', sans-serif`, HeaderStyle: HeaderSplit},
	{ID: "creative-2", Name: "Creative Ocean", Category: CategoryCreative, PrimaryColor: "#0ea5e9", SecondaryColor: "#0284c7", AccentColor: "#38bdf8", BgColor: "#f0f9ff", TextColor: "#1e293b", HeaderBg: "linear-gradient(135deg, #0ea5e9, #6366f1)", Layout: LayoutSidebar, FontFamily: `'Space Grotesk', sans-serif`, HeaderStyle: HeaderSplit},
	{ID: "creative-3", Name: "Creative Forest", Category: CategoryCreative, PrimaryColor: "#22c55e", SecondaryColor: "#16a34a", AccentColor: "#4ade80", BgColor: "#f0fdf4", TextColor: "#1e293b", HeaderBg: "linear-gradient(135deg, #22c55e, #14b8a6)", Layout: LayoutSidebar, FontFamily: `'Space Grotesk', sans-serif`, HeaderStyle: HeaderSplit},
	{ID: "creative-4", Name: "Creative Berry", Category: CategoryCreative, PrimaryColor: "#d946ef", SecondaryColor: "#c026d3", AccentColor: "#e879f9", BgColor: "#fdf4ff", TextColor: "#1e293b", HeaderBg: "linear-gradient(135deg, #d946ef, #f43f5e)", Layout: LayoutSidebar, FontFamily: `'Space Grotesk', sans-serif`, HeaderStyle: HeaderSplit},
	{ID: "creative-5", Name: "Creative Neon", Category: CategoryCreative, PrimaryColor: "#a3e635", SecondaryColor: "#84cc16", AccentColor: "#bef264", BgColor: "#1a1a2e", TextColor: "#e2e8f0", HeaderBg: "linear-gradient(135deg, #a3e635, #22d3ee)", Layout: LayoutSidebar, FontFamily: `'Space Grotesk', sans-serif`, HeaderStyle: HeaderSplit},

	// Minimalist
	{ID: "minimal-1", Name: "Minimal Clean", Category: CategoryMinimalist, PrimaryColor: "#0f172a", SecondaryColor: "#1e293b", AccentColor: "#475569", BgColor: "#ffffff", TextColor: "#334155", HeaderBg: "#ffffff", Layout: LayoutSingle, FontFamily: `'Inter', sans-serif`, HeaderStyle: HeaderMinimal},
	{ID: "minimal-2", Name: "Minimal Warm", Category: CategoryMinimalist, PrimaryColor: "#78350f", SecondaryColor: "#92400e", AccentColor: "#b45309", BgColor: "#fffbeb", TextColor: "#451a03", HeaderBg: "#fffbeb", Layout: LayoutSingle, FontFamily: `'Inter', sans-serif`, HeaderStyle: HeaderMinimal},
	{ID: "minimal-3", Name: "Minimal Cool", Category: CategoryMinimalist, PrimaryColor: "#164e63", SecondaryColor: "#155e75", AccentColor: "#0891b2", BgColor: "#f8fafc", TextColor: "#1e293b", HeaderBg: "#f8fafc", Layout: LayoutSingle, FontFamily: `'Inter', sans-serif`, HeaderStyle: HeaderMinimal},
	{ID: "minimal-4", Name: "Minimal Rose", Category: CategoryMinimalist, PrimaryColor: "#9f1239", SecondaryColor: "#be123c", AccentColor: "#f43f5e", BgColor: "#fff1f2", TextColor: "#1e293b", HeaderBg: "#fff1f2", Layout: LayoutSingle, FontFamily: `'Inter', sans-serif`, HeaderStyle: HeaderMinimal},
	{ID: "minimal-5", Name: "Minimal Slate", Category: CategoryMinimalist, PrimaryColor: "#334155", SecondaryColor: "#475569", AccentColor: "#64748b", BgColor: "#f1f5f9", TextColor: "#0f172a", HeaderBg: "#f1f5f9", Layout: LayoutSingle, FontFamily: `'Inter', sans-serif`, HeaderStyle: HeaderMinimal},

	// Professional
	{ID: "pro-1", Name: "Executive Blue", Category: CategoryProfessional, PrimaryColor: "#1e40af", SecondaryColor: "#1e3a8a", AccentColor: "#3b82f6", BgColor: "#ffffff", TextColor: "#1e293b", HeaderBg: "#1e40af", Layout: LayoutDouble, FontFamily: `'Georgia', serif`, HeaderStyle: HeaderBanner},
	{ID: "pro-2", Name: "Executive Gray", Category: CategoryProfessional, PrimaryColor: "#374151", SecondaryColor: "#1f2937", AccentColor: "#4b5563", BgColor: "#ffffff", TextColor: "#1e293b", HeaderBg: "#374151", Layout: LayoutDouble, FontFamily: `'Georgia', serif`, HeaderStyle: HeaderBanner},
	{ID: "pro-3", Name: "Executive Teal", Category: CategoryProfessional, PrimaryColor: "#115e59", SecondaryColor: "#134e4a", AccentColor: "#14b8a6", BgColor: "#ffffff", TextColor: "#1e293b", HeaderBg: "#115e59", Layout: LayoutDouble, FontFamily: `'Georgia', serif`, HeaderStyle: HeaderBanner},
	{ID: "pro-4", Name: "Executive Plum", Category: CategoryProfessional, PrimaryColor: "#581c87", SecondaryColor: "#4c1d95", AccentColor: "#9333ea", BgColor: "#ffffff", TextColor: "#1e293b", HeaderBg: "#581c87", Layout: LayoutDouble, FontFamily: `'Georgia', serif`, HeaderStyle: HeaderBanner},
	{ID: "pro-5", Name: "Executive Olive", Category: CategoryProfessional, PrimaryColor: "#3f6212", SecondaryColor: "#365314", AccentColor: "#65a30d", BgColor: "#ffffff", TextColor: "#1e293b", HeaderBg: "#3f6212", Layout: LayoutDouble, FontFamily: `'Georgia', serif`, HeaderStyle: HeaderBanner},

	// Bold
	{ID: "bold-1", Name: "Bold Fire", Category: CategoryBold, PrimaryColor: "#dc2626", SecondaryColor: "#b91c1c", AccentColor: "#f87171", BgColor: "#0f0f0f", TextColor: "#f1f5f9", HeaderBg: "linear-gradient(135deg, #dc2626, #f97316)", Layout: LayoutSidebar, FontFamily: `'Space Grotesk', sans-serif`, HeaderStyle: HeaderGradient},
	{ID: "bold-2", Name: "Bold Electric", Category: CategoryBold, PrimaryColor: "#2563eb", SecondaryColor: "#1d4ed8", AccentColor: "#60a5fa", BgColor: "#0a0a1a", TextColor: "#e2e8f0", HeaderBg: "linear-gradient(135deg, #2563eb, #7c3aed)", Layout: LayoutSidebar, FontFamily: `'Space Grotesk', sans-serif`, HeaderStyle: HeaderGradient},
	{ID: "bold-3", Name: "Bold Toxic", Category: CategoryBold, PrimaryColor: "#84cc16", SecondaryColor: "#65a30d", AccentColor: "#a3e635", BgColor: "#0a0f0a", TextColor: "#e2e8f0", HeaderBg: "linear-gradient(135deg, #84cc16, #22d3ee)", Layout: LayoutSidebar, FontFamily: `'Space Grotesk', sans-serif`, HeaderStyle: HeaderGradient},
	{ID: "bold-4", Name: "Bold Magenta", Category: CategoryBold, PrimaryColor: "#ec4899", SecondaryColor: "#db2777", AccentColor: "#f472b6", BgColor: "#0f0a12", TextColor: "#e2e8f0", HeaderBg: "linear-gradient(135deg, #ec4899, #8b5cf6)", Layout: LayoutSidebar, FontFamily: `'Space Grotesk', sans-serif`, HeaderStyle: HeaderGradient},
	{ID: "bold-5", Name: "Bold Gold", Category: CategoryBold, PrimaryColor: "#eab308", SecondaryColor: "#ca8a04", AccentColor: "#facc15", BgColor: "#0f0d08", TextColor: "#e2e8f0", HeaderBg: "linear-gradient(135deg, #eab308, #f97316)", Layout: LayoutSidebar, FontFamily: `'Space Grotesk', sans-serif`, HeaderStyle: HeaderGradient},
}

// Templates returns a copy of the full catalog in display order.
func Templates() []TemplateConfig {
	return append([]TemplateConfig(nil), catalog...)
}

func Categories() []string {
	return append([]string(nil), categories...)
}

// TemplatesByCategory filters the catalog, matching the category name
// case-insensitively. An empty category returns everything.
func TemplatesByCategory(category string) []TemplateConfig {
	if category == "" {
		return Templates()
	}
	var out []TemplateConfig
	for _, t := range catalog {
		if strings.EqualFold(t.Category, category) {
			out = append(out, t)
		}
	}
	return out
}

// Template looks up a catalog entry by id.
func Template(id string) (TemplateConfig, bool) {
	for _, t := range catalog {
		if t.ID == id {
			return t, true
		}
	}
	return TemplateConfig{}, false
}

// DefaultTemplate returns the template new sessions start with.
func DefaultTemplate() TemplateConfig {
	t, _ := Template(DefaultTemplateID)
	return t
}
