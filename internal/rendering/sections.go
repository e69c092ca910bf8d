package rendering

import (
	"strconv"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// Capacity of each indicator style.
const (
	dotsCapacity = 5
	barCapacity  = 100
)

func text(role Role, s string) *Node {
	return &Node{Kind: KindText, Role: role, Text: s}
}

func heading(s string) *Node {
	return &Node{Kind: KindHeading, Text: s}
}

func section(role Role, title string, children ...*Node) *Node {
	return &Node{Kind: KindSection, Role: role, Children: append([]*Node{heading(title)}, children...)}
}

// dateRange joins start and end; either side may be empty.
func dateRange(start, end string) string {
	switch {
	case start != "" && end != "":
		return start + " - " + end
	case start != "":
		return start
	default:
		return end
	}
}

// withScheme turns a bare host path into an absolute URL.
func withScheme(link string) string {
	if strings.Contains(link, "://") || strings.HasPrefix(link, "mailto:") {
		return link
	}
	return "https://" + link
}

func bullets(lines []string) *Node {
	list := &Node{Kind: KindList, Role: RoleBullets}
	for _, line := range lines {
		list.Children = append(list.Children, &Node{Kind: KindItem, Text: line})
	}
	return list
}

// splitTechnologies splits a comma-separated technology list, dropping blanks.
func splitTechnologies(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// indicator converts a stored level into an indicator of the given style.
// A nil level has no indicator.
func indicator(level *int, style IndicatorStyle) *Indicator {
	if level == nil {
		return nil
	}
	capacity := dotsCapacity
	if style == IndicatorBar {
		capacity = barCapacity
	}
	l := min(max(*level, types.MinLevel), types.MaxLevel)
	return &Indicator{Style: style, Filled: l * capacity / types.MaxLevel, Capacity: capacity}
}

// contactNodes lists the contact fields; linkedin and website only when set.
func contactNodes(info types.PersonalInfo) []*Node {
	nodes := []*Node{
		{Kind: KindLink, Role: RoleEmail, Text: info.Email, Href: "mailto:" + info.Email},
		text(RolePhone, info.Phone),
		text(RoleLocation, info.Location),
	}
	if info.LinkedIn != "" {
		nodes = append(nodes, &Node{Kind: KindLink, Role: RoleLinkedIn, Text: info.LinkedIn, Href: withScheme(info.LinkedIn)})
	}
	if info.Website != "" {
		nodes = append(nodes, &Node{Kind: KindLink, Role: RoleWebsite, Text: info.Website, Href: withScheme(info.Website)})
	}
	return nodes
}

func (l *layout) header(info types.PersonalInfo) *Node {
	n := &Node{Kind: KindHeader, Role: RoleHeader, Children: []*Node{
		text(RoleName, info.Name),
		text(RoleTitle, info.Title),
	}}
	if !l.contactSection {
		n.Children = append(n.Children, &Node{Kind: KindGroup, Role: RoleContact, Children: contactNodes(info)})
	}
	return n
}

func (l *layout) contact(info types.PersonalInfo) *Node {
	return section(RoleContact, l.headings.contact, contactNodes(info)...)
}

func (l *layout) summary(info types.PersonalInfo) *Node {
	return section(RoleSummary, l.headings.summary, text(RoleDescription, info.Summary))
}

func (l *layout) experience(items []types.ExperienceItem) *Node {
	s := section(RoleExperience, l.headings.experience)
	for _, exp := range items {
		position := text(RolePosition, exp.Position)
		company := text(RoleCompany, exp.Company)
		first, second := position, company
		if l.companyFirst {
			first, second = company, position
		}
		entry := &Node{Kind: KindEntry, Role: RoleExperience, Children: []*Node{
			first,
			second,
			text(RoleDates, dateRange(exp.StartDate, exp.EndDate)),
			text(RoleLocation, exp.Location),
			bullets(exp.Description),
		}}
		s.Children = append(s.Children, entry)
	}
	return s
}

// projects returns nil for an empty collection so the section is omitted entirely.
func (l *layout) projects(items []types.ProjectItem) *Node {
	if len(items) == 0 {
		return nil
	}
	s := section(RoleProjects, l.headings.projects)
	for _, p := range items {
		entry := &Node{Kind: KindEntry, Role: RoleProjects, Children: []*Node{
			text(RoleProjectName, p.Name),
			text(RoleCompany, p.Company),
			text(RoleDates, dateRange(p.StartDate, p.EndDate)),
			bullets(p.Description),
		}}
		if p.Technologies != "" {
			entry.Children = append(entry.Children, l.technologies(p.Technologies))
		}
		if p.Link != "" {
			entry.Children = append(entry.Children, &Node{Kind: KindLink, Role: RoleLink, Text: "View Project", Href: withScheme(p.Link)})
		}
		s.Children = append(s.Children, entry)
	}
	return s
}

func (l *layout) technologies(raw string) *Node {
	if !l.techTags {
		return text(RoleTechnologies, "Technologies: "+raw)
	}
	tags := &Node{Kind: KindList, Role: RoleTechnologies}
	for _, tech := range splitTechnologies(raw) {
		tags.Children = append(tags.Children, &Node{Kind: KindItem, Text: tech})
	}
	return tags
}

func (l *layout) education(items []types.EducationItem) *Node {
	s := section(RoleEducation, l.headings.education)
	for _, edu := range items {
		degree := edu.Degree
		if edu.FieldOfStudy != "" {
			degree += " in " + edu.FieldOfStudy
		}
		first, second := text(RoleDegree, degree), text(RoleSchool, edu.School)
		if l.schoolFirst {
			first, second = second, first
		}
		entry := &Node{Kind: KindEntry, Role: RoleEducation, Children: []*Node{
			first,
			second,
			text(RoleDates, dateRange(edu.StartDate, edu.EndDate)),
			text(RoleLocation, edu.Location),
		}}
		if edu.Description != "" {
			entry.Children = append(entry.Children, text(RoleDescription, edu.Description))
		}
		s.Children = append(s.Children, entry)
	}
	return s
}

func (l *layout) skills(categories []types.SkillCategory) *Node {
	s := section(RoleSkills, l.headings.skills)
	for _, cat := range categories {
		group := &Node{Kind: KindGroup, Role: RoleCategory, Children: []*Node{text(RoleCategory, cat.Name)}}
		for _, skill := range cat.Skills {
			group.Children = append(group.Children, l.skill(skill))
		}
		s.Children = append(s.Children, group)
	}
	return s
}

func (l *layout) skill(skill types.SkillItem) *Node {
	n := &Node{Kind: KindSkill, Children: []*Node{text(RoleSkillName, skill.Name)}}
	ind := indicator(skill.Level, l.indicator)
	if ind == nil {
		return n
	}
	if l.levelLabel {
		label := strconv.Itoa(ind.Filled*types.MaxLevel/ind.Capacity) + "/" + strconv.Itoa(types.MaxLevel)
		n.Children = append(n.Children, text(RoleLevelLabel, label))
	}
	n.Children = append(n.Children, &Node{Kind: KindIndicator, Indicator: ind})
	return n
}
