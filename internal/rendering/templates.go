// Package rendering projects resume documents into visual trees, one layout per
// template, and serializes those trees into printable HTML.
package rendering

import (
	"github.com/jonathan/resume-builder/internal/types"
)

// Template maps a document to a visual tree. Implementations are pure.
type Template interface {
	Name() types.TemplateName
	Render(doc *types.ResumeDocument) *Node
}

type headings struct {
	contact    string
	summary    string
	experience string
	projects   string
	education  string
	skills     string
}

type column struct {
	role     Role
	sections []Role
}

// layout is the single strategy behind every template. Variants differ only
// in arrangement, wording and indicator style; the section builders are shared.
type layout struct {
	name     types.TemplateName
	headings headings

	// top sections render full width, in order, before any columns.
	top     []Role
	columns []column

	contactSection bool // contact rendered as its own section instead of inside the header
	companyFirst   bool
	schoolFirst    bool
	techTags       bool
	levelLabel     bool
	indicator      IndicatorStyle
}

func (l *layout) Name() types.TemplateName { return l.name }

// Render builds the visual tree. A nil document renders as an empty one.
func (l *layout) Render(doc *types.ResumeDocument) *Node {
	if doc == nil {
		doc = types.NewDocument()
	}
	root := &Node{Kind: KindDocument, Role: Role(l.name)}
	root.Children = l.build(doc, l.top)
	if len(l.columns) > 0 {
		cols := &Node{Kind: KindColumns}
		for _, c := range l.columns {
			cols.Children = append(cols.Children, &Node{Kind: KindColumn, Role: c.role, Children: l.build(doc, c.sections)})
		}
		root.Children = append(root.Children, cols)
	}
	return root
}

func (l *layout) build(doc *types.ResumeDocument, roles []Role) []*Node {
	var out []*Node
	for _, role := range roles {
		var n *Node
		switch role {
		case RoleHeader:
			n = l.header(doc.PersonalInfo)
		case RoleContact:
			n = l.contact(doc.PersonalInfo)
		case RoleSummary:
			n = l.summary(doc.PersonalInfo)
		case RoleExperience:
			n = l.experience(doc.Experience)
		case RoleProjects:
			n = l.projects(doc.Projects)
		case RoleEducation:
			n = l.education(doc.Education)
		case RoleSkills:
			n = l.skills(doc.SkillCategories)
		}
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

var singleColumn = []Role{RoleHeader, RoleSummary, RoleExperience, RoleProjects, RoleEducation, RoleSkills}

var layouts = []*layout{
	{
		name: types.TemplateProfessional,
		headings: headings{
			summary:    "PROFESSIONAL SUMMARY",
			experience: "EXPERIENCE",
			projects:   "PROJECTS",
			education:  "EDUCATION",
			skills:     "SKILLS",
		},
		top:       singleColumn,
		indicator: IndicatorDots,
	},
	{
		name: types.TemplateMinimal,
		headings: headings{
			summary:    "Summary",
			experience: "Experience",
			projects:   "Projects",
			education:  "Education",
			skills:     "Skills",
		},
		top:       singleColumn,
		indicator: IndicatorDots,
	},
	{
		name: types.TemplateCreative,
		headings: headings{
			contact:    "Contact",
			summary:    "About Me",
			experience: "Work Experience",
			projects:   "Projects",
			education:  "Education",
			skills:     "Skills",
		},
		columns: []column{
			{role: RoleSidebar, sections: []Role{RoleHeader, RoleContact, RoleSkills}},
			{role: RoleMain, sections: []Role{RoleSummary, RoleExperience, RoleProjects, RoleEducation}},
		},
		contactSection: true,
		levelLabel:     true,
		indicator:      IndicatorBar,
	},
	{
		name: types.TemplateExecutive,
		headings: headings{
			summary:    "Executive Summary",
			experience: "Professional Experience",
			projects:   "Key Projects",
			education:  "Education",
			skills:     "Areas of Expertise",
		},
		top:          singleColumn,
		companyFirst: true,
		schoolFirst:  true,
		indicator:    IndicatorBar,
	},
	{
		name: types.TemplateModern,
		headings: headings{
			summary:    "SUMMARY",
			experience: "EXPERIENCE",
			projects:   "PROJECTS",
			education:  "EDUCATION",
			skills:     "SKILLS",
		},
		top: []Role{RoleHeader, RoleSummary},
		columns: []column{
			{role: RoleMain, sections: []Role{RoleExperience, RoleProjects, RoleEducation}},
			{role: RoleSidebar, sections: []Role{RoleSkills}},
		},
		techTags:  true,
		indicator: IndicatorBar,
	},
	{
		name: types.TemplateClassic,
		headings: headings{
			summary:    "Professional Summary",
			experience: "Experience",
			projects:   "Projects",
			education:  "Education",
			skills:     "Skills",
		},
		top: []Role{RoleHeader, RoleSummary},
		columns: []column{
			{role: RoleSidebar, sections: []Role{RoleSkills}},
			{role: RoleMain, sections: []Role{RoleExperience, RoleEducation, RoleProjects}},
		},
		indicator: IndicatorBar,
	},
}

var registry = func() map[types.TemplateName]Template {
	m := make(map[types.TemplateName]Template, len(layouts))
	for _, l := range layouts {
		m[l.name] = l
	}
	return m
}()

// Lookup returns the template for name, falling back to the default template
// for unknown names.
func Lookup(name types.TemplateName) Template {
	return registry[types.ResolveTemplate(name)]
}

// Templates returns every template in selector order.
func Templates() []Template {
	out := make([]Template, 0, len(layouts))
	for _, name := range types.KnownTemplates() {
		out = append(out, registry[name])
	}
	return out
}

// Render projects doc through its selected template.
func Render(doc *types.ResumeDocument) *Node {
	if doc == nil {
		return Lookup(types.DefaultTemplate).Render(nil)
	}
	return Lookup(doc.Template).Render(doc)
}

// RenderAs projects doc through the named template without consulting doc.Template.
func RenderAs(doc *types.ResumeDocument, name types.TemplateName) *Node {
	return Lookup(name).Render(doc)
}
