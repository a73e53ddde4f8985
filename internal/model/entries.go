package model

import "github.com/google/uuid"

// NewID returns a fresh entry identifier. Identifiers only reconcile list
// entries and are never reused after an entry is removed.
func NewID() string {
	return uuid.New().String()
}

// Defaults for blank entries, matching what the editing form pre-fills.
const (
	DefaultSkillLevel    = 3
	DefaultSkillCategory = "Technical"
)

func NewExperience() Experience       { return Experience{ID: NewID()} }
func NewEducation() Education         { return Education{ID: NewID()} }
func NewProject() Project             { return Project{ID: NewID()} }
func NewCertification() Certification { return Certification{ID: NewID()} }

func NewSkill(name string) Skill {
	return Skill{ID: NewID(), Name: name, Level: DefaultSkillLevel, Category: DefaultSkillCategory}
}

func NewLanguage(name string) Language {
	return Language{ID: NewID(), Name: name, Proficiency: ProficiencyIntermediate}
}
