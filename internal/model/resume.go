package model

// Go models for the resume payload exchanged with clients. JSON names match
// resume.schema.json.

type PersonalInfo struct {
	FullName string `json:"fullName"`
	Title    string `json:"title"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Website  string `json:"website" validate:"omitempty,weblink"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
	Photo    string `json:"photo,omitempty" validate:"omitempty,datauri_image"`
	Summary  string `json:"summary"`
}

// Experience is a single job entry. When Current is set EndDate is ignored.
type Experience struct {
	ID          string `json:"id" validate:"required"`
	Position    string `json:"position"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

type Education struct {
	ID          string `json:"id" validate:"required"`
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	GPA         string `json:"gpa"`
	Description string `json:"description"`
}

type Skill struct {
	ID       string `json:"id" validate:"required"`
	Name     string `json:"name"`
	Level    int    `json:"level" validate:"min=1,max=5"`
	Category string `json:"category"`
}

type Project struct {
	ID           string `json:"id" validate:"required"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	URL          string `json:"url" validate:"omitempty,weblink"`
	Technologies string `json:"technologies"`
}

type Certification struct {
	ID     string `json:"id" validate:"required"`
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Date   string `json:"date"`
	URL    string `json:"url" validate:"omitempty,weblink"`
}

// Proficiency levels accepted for a spoken language.
const (
	ProficiencyNative       = "Native"
	ProficiencyFluent       = "Fluent"
	ProficiencyAdvanced     = "Advanced"
	ProficiencyIntermediate = "Intermediate"
	ProficiencyBasic        = "Basic"
)

type Language struct {
	ID          string `json:"id" validate:"required"`
	Name        string `json:"name"`
	Proficiency string `json:"proficiency" validate:"oneof=Native Fluent Advanced Intermediate Basic"`
}

// Attachment points at a blob owned by the editing session. Handle is only
// meaningful while that session is alive.
type Attachment struct {
	ID     string `json:"id" validate:"required"`
	Name   string `json:"name"`
	Handle string `json:"handle"`
	URL    string `json:"url"`
}

type ResumeData struct {
	PersonalInfo   PersonalInfo    `json:"personalInfo"`
	Experiences    []Experience    `json:"experiences" validate:"dive"`
	Education      []Education     `json:"education" validate:"dive"`
	Skills         []Skill         `json:"skills" validate:"dive"`
	Projects       []Project       `json:"projects" validate:"dive"`
	Certifications []Certification `json:"certifications" validate:"dive"`
	Languages      []Language      `json:"languages" validate:"dive"`
	Attachments    []Attachment    `json:"attachments" validate:"dive"`
	Hobbies        string          `json:"hobbies"`
	References     string          `json:"references"`
}

// Clone returns a deep copy so callers can hold a snapshot while the
// original keeps changing.
func (d ResumeData) Clone() ResumeData {
	out := d
	out.Experiences = append([]Experience(nil), d.Experiences...)
	out.Education = append([]Education(nil), d.Education...)
	out.Skills = append([]Skill(nil), d.Skills...)
	out.Projects = append([]Project(nil), d.Projects...)
	out.Certifications = append([]Certification(nil), d.Certifications...)
	out.Languages = append([]Language(nil), d.Languages...)
	out.Attachments = append([]Attachment(nil), d.Attachments...)
	return out
}
