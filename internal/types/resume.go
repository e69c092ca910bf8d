// Package types provides type definitions for structured data used throughout the resume-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// PersonalInfo is the singleton header block of a resume.
// LinkedIn and Website are optional; an empty string means absent.
type PersonalInfo struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	LinkedIn string `json:"linkedin,omitempty"`
	Website  string `json:"website,omitempty"`
	Summary  string `json:"summary"`
}

// EducationItem represents a single school entry
type EducationItem struct {
	ID           string `json:"id"`
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"field_of_study"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Location     string `json:"location"`
	Description  string `json:"description,omitempty"`
}

// ExperienceItem represents a single position with its bullet points
type ExperienceItem struct {
	ID          string   `json:"id"`
	Company     string   `json:"company"`
	Position    string   `json:"position"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	Location    string   `json:"location"`
	Description []string `json:"description"`
}

// ProjectItem represents a project with bullets, a free-text technology list and an optional link
type ProjectItem struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Company      string   `json:"company"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	Description  []string `json:"description"`
	Technologies string   `json:"technologies,omitempty"` // comma-separated
	Link         string   `json:"link,omitempty"`
}

// SkillItem is a named skill with an optional 1-5 level. A nil Level means unrated.
type SkillItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Level *int   `json:"level,omitempty"`
}

// SkillCategory groups skills under a heading. Skill ids are unique only within their category.
type SkillCategory struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Skills []SkillItem `json:"skills"`
}

// ResumeDocument is the aggregate root holding the full resume state
type ResumeDocument struct {
	PersonalInfo    PersonalInfo     `json:"personal_info"`
	Education       []EducationItem  `json:"education"`
	Experience      []ExperienceItem `json:"experience"`
	Projects        []ProjectItem    `json:"projects"`
	SkillCategories []SkillCategory  `json:"skill_categories"`
	Template        TemplateName     `json:"template"`
}

// MinLevel and MaxLevel bound SkillItem.Level.
const (
	MinLevel = 1
	MaxLevel = 5
)

// NewDocument returns an empty, structurally total document using the default template.
func NewDocument() *ResumeDocument {
	return &ResumeDocument{
		Education:       []EducationItem{},
		Experience:      []ExperienceItem{},
		Projects:        []ProjectItem{},
		SkillCategories: []SkillCategory{},
		Template:        DefaultTemplate,
	}
}

// Normalize replaces nil collections with empty ones so that every document is structurally total.
// It mutates the receiver and is meant for freshly decoded documents that are not shared yet.
func (d *ResumeDocument) Normalize() *ResumeDocument {
	if d.Education == nil {
		d.Education = []EducationItem{}
	}
	if d.Experience == nil {
		d.Experience = []ExperienceItem{}
	}
	for i := range d.Experience {
		if d.Experience[i].Description == nil {
			d.Experience[i].Description = []string{}
		}
	}
	if d.Projects == nil {
		d.Projects = []ProjectItem{}
	}
	for i := range d.Projects {
		if d.Projects[i].Description == nil {
			d.Projects[i].Description = []string{}
		}
	}
	if d.SkillCategories == nil {
		d.SkillCategories = []SkillCategory{}
	}
	for i := range d.SkillCategories {
		if d.SkillCategories[i].Skills == nil {
			d.SkillCategories[i].Skills = []SkillItem{}
		}
	}
	if d.Template == "" {
		d.Template = DefaultTemplate
	}
	return d
}

// Clone returns a deep copy of the document.
func (d *ResumeDocument) Clone() *ResumeDocument {
	if d == nil {
		return nil
	}
	out := *d
	out.Education = append([]EducationItem{}, d.Education...)
	out.Experience = make([]ExperienceItem, len(d.Experience))
	for i, exp := range d.Experience {
		exp.Description = append([]string{}, exp.Description...)
		out.Experience[i] = exp
	}
	out.Projects = make([]ProjectItem, len(d.Projects))
	for i, proj := range d.Projects {
		proj.Description = append([]string{}, proj.Description...)
		out.Projects[i] = proj
	}
	out.SkillCategories = make([]SkillCategory, len(d.SkillCategories))
	for i, cat := range d.SkillCategories {
		cat.Skills = cloneSkills(cat.Skills)
		out.SkillCategories[i] = cat
	}
	return &out
}

func cloneSkills(skills []SkillItem) []SkillItem {
	out := make([]SkillItem, len(skills))
	for i, s := range skills {
		if s.Level != nil {
			lvl := *s.Level
			s.Level = &lvl
		}
		out[i] = s
	}
	return out
}

// SkillCount returns the number of skills across all categories.
func (d *ResumeDocument) SkillCount() int {
	n := 0
	for _, cat := range d.SkillCategories {
		n += len(cat.Skills)
	}
	return n
}

// IntPtr is a small helper for building optional levels.
func IntPtr(v int) *int {
	return &v
}
