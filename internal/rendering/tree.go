package rendering

import "strings"

// Kind classifies a node of the visual tree.
type Kind string

// Node kinds.
const (
	KindDocument  Kind = "document"
	KindHeader    Kind = "header"
	KindSection   Kind = "section"
	KindColumns   Kind = "columns"
	KindColumn    Kind = "column"
	KindHeading   Kind = "heading"
	KindEntry     Kind = "entry"
	KindText      Kind = "text"
	KindList      Kind = "list"
	KindItem      Kind = "item"
	KindLink      Kind = "link"
	KindGroup     Kind = "group"
	KindSkill     Kind = "skill"
	KindIndicator Kind = "indicator"
)

// Role names what a node represents in resume terms, independent of how a
// template lays it out.
type Role string

// Section roles.
const (
	RoleHeader     Role = "header"
	RoleContact    Role = "contact"
	RoleSummary    Role = "summary"
	RoleExperience Role = "experience"
	RoleProjects   Role = "projects"
	RoleEducation  Role = "education"
	RoleSkills     Role = "skills"
)

// Field roles.
const (
	RoleName         Role = "name"
	RoleTitle        Role = "title"
	RoleEmail        Role = "email"
	RolePhone        Role = "phone"
	RoleLocation     Role = "location"
	RoleLinkedIn     Role = "linkedin"
	RoleWebsite      Role = "website"
	RoleCompany      Role = "company"
	RolePosition     Role = "position"
	RoleDates        Role = "dates"
	RoleBullets      Role = "bullets"
	RoleProjectName  Role = "project-name"
	RoleTechnologies Role = "technologies"
	RoleLink         Role = "link"
	RoleSchool       Role = "school"
	RoleDegree       Role = "degree"
	RoleDescription  Role = "description"
	RoleCategory     Role = "category"
	RoleSkillName    Role = "skill-name"
	RoleLevelLabel   Role = "level-label"
	RoleMain         Role = "main"
	RoleSidebar      Role = "sidebar"
)

// IndicatorStyle selects how a skill level is drawn.
type IndicatorStyle string

// Indicator styles. Capacities are multiples of five so every level fills exactly.
const (
	IndicatorDots IndicatorStyle = "dots"
	IndicatorBar  IndicatorStyle = "bar"
)

// Indicator is a proportional skill level marker: Filled out of Capacity units.
type Indicator struct {
	Style    IndicatorStyle `json:"style"`
	Filled   int            `json:"filled"`
	Capacity int            `json:"capacity"`
}

// Fraction returns Filled/Capacity.
func (i Indicator) Fraction() float64 {
	if i.Capacity == 0 {
		return 0
	}
	return float64(i.Filled) / float64(i.Capacity)
}

// Node is one element of the visual tree produced by a template.
type Node struct {
	Kind      Kind       `json:"kind"`
	Role      Role       `json:"role,omitempty"`
	Text      string     `json:"text,omitempty"`
	Href      string     `json:"href,omitempty"`
	Indicator *Indicator `json:"indicator,omitempty"`
	Children  []*Node    `json:"children,omitempty"`
}

// Walk visits n and its descendants depth first, in document order.
// Returning false from fn skips the node's children.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, fn)
	}
}

// FindAll returns every node under root (inclusive) matching pred, in document order.
func FindAll(root *Node, pred func(*Node) bool) []*Node {
	var out []*Node
	Walk(root, func(n *Node) bool {
		if pred(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Find returns the first node matching pred, or nil.
func Find(root *Node, pred func(*Node) bool) *Node {
	var found *Node
	Walk(root, func(n *Node) bool {
		if found != nil {
			return false
		}
		if pred(n) {
			found = n
			return false
		}
		return true
	})
	return found
}

// Section returns the section node with the given role, or nil when the
// template omitted it.
func (n *Node) Section(role Role) *Node {
	return Find(n, func(c *Node) bool { return c.Kind == KindSection && c.Role == role })
}

// TextContent concatenates the text of n and its descendants, separated by newlines.
func (n *Node) TextContent() string {
	var parts []string
	Walk(n, func(c *Node) bool {
		if c.Text != "" {
			parts = append(parts, c.Text)
		}
		return true
	})
	return strings.Join(parts, "\n")
}
