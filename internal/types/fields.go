package types

// EducationFields holds every EducationItem field except the id.
type EducationFields struct {
	School       string `json:"school" validate:"max=200"`
	Degree       string `json:"degree" validate:"max=200"`
	FieldOfStudy string `json:"field_of_study" validate:"max=200"`
	StartDate    string `json:"start_date" validate:"max=50"`
	EndDate      string `json:"end_date" validate:"max=50"`
	Location     string `json:"location" validate:"max=200"`
	Description  string `json:"description,omitempty" validate:"max=2000"`
}

// WithID builds the entity for the given id.
func (f EducationFields) WithID(id string) EducationItem {
	return EducationItem{
		ID:           id,
		School:       f.School,
		Degree:       f.Degree,
		FieldOfStudy: f.FieldOfStudy,
		StartDate:    f.StartDate,
		EndDate:      f.EndDate,
		Location:     f.Location,
		Description:  f.Description,
	}
}

// EducationPatch names the fields to replace; nil fields are left untouched.
type EducationPatch struct {
	School       *string `json:"school,omitempty" validate:"omitempty,max=200"`
	Degree       *string `json:"degree,omitempty" validate:"omitempty,max=200"`
	FieldOfStudy *string `json:"field_of_study,omitempty" validate:"omitempty,max=200"`
	StartDate    *string `json:"start_date,omitempty" validate:"omitempty,max=50"`
	EndDate      *string `json:"end_date,omitempty" validate:"omitempty,max=50"`
	Location     *string `json:"location,omitempty" validate:"omitempty,max=200"`
	Description  *string `json:"description,omitempty" validate:"omitempty,max=2000"`
}

// Apply returns a copy of item with the named fields replaced.
func (p EducationPatch) Apply(item EducationItem) EducationItem {
	setString(&item.School, p.School)
	setString(&item.Degree, p.Degree)
	setString(&item.FieldOfStudy, p.FieldOfStudy)
	setString(&item.StartDate, p.StartDate)
	setString(&item.EndDate, p.EndDate)
	setString(&item.Location, p.Location)
	setString(&item.Description, p.Description)
	return item
}

// ExperienceFields holds every ExperienceItem field except the id.
type ExperienceFields struct {
	Company     string   `json:"company" validate:"max=200"`
	Position    string   `json:"position" validate:"max=200"`
	StartDate   string   `json:"start_date" validate:"max=50"`
	EndDate     string   `json:"end_date" validate:"max=50"`
	Location    string   `json:"location" validate:"max=200"`
	Description []string `json:"description" validate:"max=50,dive,max=1000"`
}

// WithID builds the entity for the given id.
func (f ExperienceFields) WithID(id string) ExperienceItem {
	return ExperienceItem{
		ID:          id,
		Company:     f.Company,
		Position:    f.Position,
		StartDate:   f.StartDate,
		EndDate:     f.EndDate,
		Location:    f.Location,
		Description: cloneStrings(f.Description),
	}
}

// ExperiencePatch names the fields to replace; nil fields are left untouched.
type ExperiencePatch struct {
	Company     *string   `json:"company,omitempty" validate:"omitempty,max=200"`
	Position    *string   `json:"position,omitempty" validate:"omitempty,max=200"`
	StartDate   *string   `json:"start_date,omitempty" validate:"omitempty,max=50"`
	EndDate     *string   `json:"end_date,omitempty" validate:"omitempty,max=50"`
	Location    *string   `json:"location,omitempty" validate:"omitempty,max=200"`
	Description *[]string `json:"description,omitempty" validate:"omitempty,max=50,dive,max=1000"`
}

// Apply returns a copy of item with the named fields replaced.
func (p ExperiencePatch) Apply(item ExperienceItem) ExperienceItem {
	setString(&item.Company, p.Company)
	setString(&item.Position, p.Position)
	setString(&item.StartDate, p.StartDate)
	setString(&item.EndDate, p.EndDate)
	setString(&item.Location, p.Location)
	if p.Description != nil {
		item.Description = cloneStrings(*p.Description)
	}
	return item
}

// ProjectFields holds every ProjectItem field except the id.
type ProjectFields struct {
	Name         string   `json:"name" validate:"max=200"`
	Company      string   `json:"company" validate:"max=200"`
	StartDate    string   `json:"start_date" validate:"max=50"`
	EndDate      string   `json:"end_date" validate:"max=50"`
	Description  []string `json:"description" validate:"max=50,dive,max=1000"`
	Technologies string   `json:"technologies,omitempty" validate:"max=500"`
	Link         string   `json:"link,omitempty" validate:"max=500"`
}

// WithID builds the entity for the given id.
func (f ProjectFields) WithID(id string) ProjectItem {
	return ProjectItem{
		ID:           id,
		Name:         f.Name,
		Company:      f.Company,
		StartDate:    f.StartDate,
		EndDate:      f.EndDate,
		Description:  cloneStrings(f.Description),
		Technologies: f.Technologies,
		Link:         f.Link,
	}
}

// ProjectPatch names the fields to replace; nil fields are left untouched.
type ProjectPatch struct {
	Name         *string   `json:"name,omitempty" validate:"omitempty,max=200"`
	Company      *string   `json:"company,omitempty" validate:"omitempty,max=200"`
	StartDate    *string   `json:"start_date,omitempty" validate:"omitempty,max=50"`
	EndDate      *string   `json:"end_date,omitempty" validate:"omitempty,max=50"`
	Description  *[]string `json:"description,omitempty" validate:"omitempty,max=50,dive,max=1000"`
	Technologies *string   `json:"technologies,omitempty" validate:"omitempty,max=500"`
	Link         *string   `json:"link,omitempty" validate:"omitempty,max=500"`
}

// Apply returns a copy of item with the named fields replaced.
func (p ProjectPatch) Apply(item ProjectItem) ProjectItem {
	setString(&item.Name, p.Name)
	setString(&item.Company, p.Company)
	setString(&item.StartDate, p.StartDate)
	setString(&item.EndDate, p.EndDate)
	if p.Description != nil {
		item.Description = cloneStrings(*p.Description)
	}
	setString(&item.Technologies, p.Technologies)
	setString(&item.Link, p.Link)
	return item
}

// SkillFields holds the input for a new skill. Level is raw user input and
// is normalized into [MinLevel, MaxLevel] before it is stored.
type SkillFields struct {
	Name  string   `json:"name" validate:"max=100"`
	Level *float64 `json:"level,omitempty"`
}

// SkillPatch names the skill fields to replace. ClearLevel removes the rating.
type SkillPatch struct {
	Name       *string  `json:"name,omitempty" validate:"omitempty,max=100"`
	Level      *float64 `json:"level,omitempty"`
	ClearLevel bool     `json:"clear_level,omitempty"`
}

// PersonalInfoPatch names the header fields to replace.
type PersonalInfoPatch struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,max=200"`
	Title    *string `json:"title,omitempty" validate:"omitempty,max=200"`
	Email    *string `json:"email,omitempty" validate:"omitempty,max=200"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Location *string `json:"location,omitempty" validate:"omitempty,max=200"`
	LinkedIn *string `json:"linkedin,omitempty" validate:"omitempty,max=300"`
	Website  *string `json:"website,omitempty" validate:"omitempty,max=300"`
	Summary  *string `json:"summary,omitempty" validate:"omitempty,max=4000"`
}

// Apply returns a copy of info with the named fields replaced.
func (p PersonalInfoPatch) Apply(info PersonalInfo) PersonalInfo {
	setString(&info.Name, p.Name)
	setString(&info.Title, p.Title)
	setString(&info.Email, p.Email)
	setString(&info.Phone, p.Phone)
	setString(&info.Location, p.Location)
	setString(&info.LinkedIn, p.LinkedIn)
	setString(&info.Website, p.Website)
	setString(&info.Summary, p.Summary)
	return info
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func cloneStrings(in []string) []string {
	return append([]string{}, in...)
}

// StringPtr is a small helper for building patches.
func StringPtr(v string) *string {
	return &v
}
