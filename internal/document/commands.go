// Package document implements the mutation service: a pure reducer over resume
// commands and a store that publishes immutable snapshots.
package document

import "github.com/jonathan/resume-builder/internal/types"

// Command is one mutation of a resume document. The set of commands is closed.
type Command interface {
	// Kind is a short name used for logging.
	Kind() string
	isCommand()
}

// UpdatePersonalInfo replaces the named header fields.
type UpdatePersonalInfo struct {
	Patch types.PersonalInfoPatch
}

// AddEducation appends a new education entry with a pre-allocated id.
type AddEducation struct {
	ID     string
	Fields types.EducationFields
}

// UpdateEducation replaces the named fields of an education entry.
type UpdateEducation struct {
	ID    string
	Patch types.EducationPatch
}

// RemoveEducation deletes an education entry.
type RemoveEducation struct {
	ID string
}

// AddExperience appends a new experience entry with a pre-allocated id.
type AddExperience struct {
	ID     string
	Fields types.ExperienceFields
}

// UpdateExperience replaces the named fields of an experience entry.
type UpdateExperience struct {
	ID    string
	Patch types.ExperiencePatch
}

// RemoveExperience deletes an experience entry.
type RemoveExperience struct {
	ID string
}

// AddProject appends a new project with a pre-allocated id.
type AddProject struct {
	ID     string
	Fields types.ProjectFields
}

// UpdateProject replaces the named fields of a project.
type UpdateProject struct {
	ID    string
	Patch types.ProjectPatch
}

// RemoveProject deletes a project.
type RemoveProject struct {
	ID string
}

// AddSkillCategory appends an empty skill category.
type AddSkillCategory struct {
	ID   string
	Name string
}

// RenameSkillCategory replaces a category name.
type RenameSkillCategory struct {
	ID   string
	Name string
}

// RemoveSkillCategory deletes a category together with its skills.
type RemoveSkillCategory struct {
	ID string
}

// AddSkill appends a skill to a category.
type AddSkill struct {
	CategoryID string
	ID         string
	Fields     types.SkillFields
}

// UpdateSkill replaces the named fields of a skill within a category.
type UpdateSkill struct {
	CategoryID string
	ID         string
	Patch      types.SkillPatch
}

// RemoveSkill deletes a skill from a category.
type RemoveSkill struct {
	CategoryID string
	ID         string
}

// SetTemplate replaces the template selector unconditionally.
type SetTemplate struct {
	Name types.TemplateName
}

func (UpdatePersonalInfo) Kind() string  { return "update_personal_info" }
func (AddEducation) Kind() string        { return "add_education" }
func (UpdateEducation) Kind() string     { return "update_education" }
func (RemoveEducation) Kind() string     { return "remove_education" }
func (AddExperience) Kind() string       { return "add_experience" }
func (UpdateExperience) Kind() string    { return "update_experience" }
func (RemoveExperience) Kind() string    { return "remove_experience" }
func (AddProject) Kind() string          { return "add_project" }
func (UpdateProject) Kind() string       { return "update_project" }
func (RemoveProject) Kind() string       { return "remove_project" }
func (AddSkillCategory) Kind() string    { return "add_skill_category" }
func (RenameSkillCategory) Kind() string { return "rename_skill_category" }
func (RemoveSkillCategory) Kind() string { return "remove_skill_category" }
func (AddSkill) Kind() string            { return "add_skill" }
func (UpdateSkill) Kind() string         { return "update_skill" }
func (RemoveSkill) Kind() string         { return "remove_skill" }
func (SetTemplate) Kind() string         { return "set_template" }

func (UpdatePersonalInfo) isCommand()  {}
func (AddEducation) isCommand()        {}
func (UpdateEducation) isCommand()     {}
func (RemoveEducation) isCommand()     {}
func (AddExperience) isCommand()       {}
func (UpdateExperience) isCommand()    {}
func (RemoveExperience) isCommand()    {}
func (AddProject) isCommand()          {}
func (UpdateProject) isCommand()       {}
func (RemoveProject) isCommand()       {}
func (AddSkillCategory) isCommand()    {}
func (RenameSkillCategory) isCommand() {}
func (RemoveSkillCategory) isCommand() {}
func (AddSkill) isCommand()            {}
func (UpdateSkill) isCommand()         {}
func (RemoveSkill) isCommand()         {}
func (SetTemplate) isCommand()         {}
