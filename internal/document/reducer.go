package document

import (
	"math"

	"github.com/jonathan/resume-builder/internal/types"
)

// Reduce applies cmd to doc and returns the resulting snapshot. doc is never
// modified: touched collections are copied, untouched ones are shared with the
// previous snapshot. When the command does not change anything (lookup miss,
// duplicate id) doc itself is returned.
func Reduce(doc *types.ResumeDocument, cmd Command) *types.ResumeDocument {
	if doc == nil {
		doc = types.NewDocument()
	}

	switch c := cmd.(type) {
	case UpdatePersonalInfo:
		next := *doc
		next.PersonalInfo = c.Patch.Apply(doc.PersonalInfo)
		return &next

	case AddEducation:
		items, ok := appendUnique(doc.Education, c.Fields.WithID(c.ID), educationID)
		return withEducation(doc, items, ok)
	case UpdateEducation:
		items, ok := updateByID(doc.Education, c.ID, educationID, c.Patch.Apply)
		return withEducation(doc, items, ok)
	case RemoveEducation:
		items, ok := removeByID(doc.Education, c.ID, educationID)
		return withEducation(doc, items, ok)

	case AddExperience:
		items, ok := appendUnique(doc.Experience, c.Fields.WithID(c.ID), experienceID)
		return withExperience(doc, items, ok)
	case UpdateExperience:
		items, ok := updateByID(doc.Experience, c.ID, experienceID, c.Patch.Apply)
		return withExperience(doc, items, ok)
	case RemoveExperience:
		items, ok := removeByID(doc.Experience, c.ID, experienceID)
		return withExperience(doc, items, ok)

	case AddProject:
		items, ok := appendUnique(doc.Projects, c.Fields.WithID(c.ID), projectID)
		return withProjects(doc, items, ok)
	case UpdateProject:
		items, ok := updateByID(doc.Projects, c.ID, projectID, c.Patch.Apply)
		return withProjects(doc, items, ok)
	case RemoveProject:
		items, ok := removeByID(doc.Projects, c.ID, projectID)
		return withProjects(doc, items, ok)

	case AddSkillCategory:
		cat := types.SkillCategory{ID: c.ID, Name: c.Name, Skills: []types.SkillItem{}}
		items, ok := appendUnique(doc.SkillCategories, cat, categoryID)
		return withCategories(doc, items, ok)
	case RenameSkillCategory:
		items, ok := updateByID(doc.SkillCategories, c.ID, categoryID, func(cat types.SkillCategory) types.SkillCategory {
			cat.Name = c.Name
			return cat
		})
		return withCategories(doc, items, ok)
	case RemoveSkillCategory:
		items, ok := removeByID(doc.SkillCategories, c.ID, categoryID)
		return withCategories(doc, items, ok)

	case AddSkill:
		skill := types.SkillItem{ID: c.ID, Name: c.Fields.Name, Level: NormalizeLevel(c.Fields.Level)}
		return withSkills(doc, c.CategoryID, func(skills []types.SkillItem) ([]types.SkillItem, bool) {
			return appendUnique(skills, skill, skillID)
		})
	case UpdateSkill:
		return withSkills(doc, c.CategoryID, func(skills []types.SkillItem) ([]types.SkillItem, bool) {
			return updateByID(skills, c.ID, skillID, func(s types.SkillItem) types.SkillItem {
				return applySkillPatch(s, c.Patch)
			})
		})
	case RemoveSkill:
		return withSkills(doc, c.CategoryID, func(skills []types.SkillItem) ([]types.SkillItem, bool) {
			return removeByID(skills, c.ID, skillID)
		})

	case SetTemplate:
		next := *doc
		next.Template = c.Name
		return &next
	}

	return doc
}

// NormalizeLevel converts raw level input into a stored level: nil and NaN
// mean unrated, anything else is rounded and clamped to [MinLevel, MaxLevel].
func NormalizeLevel(level *float64) *int {
	if level == nil || math.IsNaN(*level) {
		return nil
	}
	v := math.Round(*level)
	v = math.Max(types.MinLevel, math.Min(types.MaxLevel, v))
	out := int(v)
	return &out
}

func applySkillPatch(s types.SkillItem, p types.SkillPatch) types.SkillItem {
	if p.Name != nil {
		s.Name = *p.Name
	}
	switch {
	case p.ClearLevel:
		s.Level = nil
	case p.Level != nil:
		s.Level = NormalizeLevel(p.Level)
	}
	return s
}

func educationID(e types.EducationItem) string   { return e.ID }
func experienceID(e types.ExperienceItem) string { return e.ID }
func projectID(p types.ProjectItem) string       { return p.ID }
func categoryID(c types.SkillCategory) string    { return c.ID }
func skillID(s types.SkillItem) string           { return s.ID }

// appendUnique appends item unless its id is empty or already taken.
func appendUnique[T any](items []T, item T, id func(T) string) ([]T, bool) {
	newID := id(item)
	if newID == "" {
		return items, false
	}
	for _, existing := range items {
		if id(existing) == newID {
			return items, false
		}
	}
	out := make([]T, 0, len(items)+1)
	out = append(out, items...)
	return append(out, item), true
}

func updateByID[T any](items []T, target string, id func(T) string, update func(T) T) ([]T, bool) {
	for i, existing := range items {
		if id(existing) != target {
			continue
		}
		out := make([]T, len(items))
		copy(out, items)
		out[i] = update(existing)
		return out, true
	}
	return items, false
}

func removeByID[T any](items []T, target string, id func(T) string) ([]T, bool) {
	out := make([]T, 0, len(items))
	for _, existing := range items {
		if id(existing) != target {
			out = append(out, existing)
		}
	}
	if len(out) == len(items) {
		return items, false
	}
	return out, true
}

func withEducation(doc *types.ResumeDocument, items []types.EducationItem, changed bool) *types.ResumeDocument {
	if !changed {
		return doc
	}
	next := *doc
	next.Education = items
	return &next
}

func withExperience(doc *types.ResumeDocument, items []types.ExperienceItem, changed bool) *types.ResumeDocument {
	if !changed {
		return doc
	}
	next := *doc
	next.Experience = items
	return &next
}

func withProjects(doc *types.ResumeDocument, items []types.ProjectItem, changed bool) *types.ResumeDocument {
	if !changed {
		return doc
	}
	next := *doc
	next.Projects = items
	return &next
}

func withCategories(doc *types.ResumeDocument, items []types.SkillCategory, changed bool) *types.ResumeDocument {
	if !changed {
		return doc
	}
	next := *doc
	next.SkillCategories = items
	return &next
}

// withSkills rewrites the skills of one category; a missing category is a no-op.
func withSkills(doc *types.ResumeDocument, catID string, edit func([]types.SkillItem) ([]types.SkillItem, bool)) *types.ResumeDocument {
	var changed bool
	items, found := updateByID(doc.SkillCategories, catID, categoryID, func(cat types.SkillCategory) types.SkillCategory {
		cat.Skills, changed = edit(cat.Skills)
		return cat
	})
	return withCategories(doc, items, found && changed)
}
