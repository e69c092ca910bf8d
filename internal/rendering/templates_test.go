package rendering

import (
	"testing"

	"github.com/jonathan/resume-builder/internal/document"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func byRole(role Role) func(*Node) bool {
	return func(n *Node) bool { return n.Role == role }
}

func byText(s string) func(*Node) bool {
	return func(n *Node) bool { return n.Text == s }
}

func itemTexts(list *Node) []string {
	var out []string
	for _, c := range list.Children {
		out = append(out, c.Text)
	}
	return out
}

func entries(section *Node) []*Node {
	var out []*Node
	for _, c := range section.Children {
		if c.Kind == KindEntry {
			out = append(out, c)
		}
	}
	return out
}

func indicators(root *Node) []*Node {
	return FindAll(root, func(n *Node) bool { return n.Kind == KindIndicator })
}

// canonicalDocument exercises every optional field: one project without link or
// technologies, one education entry without description, one unrated skill.
func canonicalDocument() *types.ResumeDocument {
	doc := types.SampleDocument()
	doc.Projects[1].Link = ""
	doc.Projects[1].Technologies = ""
	doc.Education = append(doc.Education, types.EducationItem{
		ID: "2", School: "Community College", Degree: "Associate", StartDate: "2012", EndDate: "2014",
	})
	doc.SkillCategories[0].Skills = append(doc.SkillCategories[0].Skills, types.SkillItem{ID: "5", Name: "Bash"})
	return doc
}

func TestTemplates_CoverCatalog(t *testing.T) {
	all := Templates()
	require.Len(t, all, len(types.KnownTemplates()))
	for i, name := range types.KnownTemplates() {
		assert.Equal(t, name, all[i].Name())
	}
}

func TestTemplates_Conformance(t *testing.T) {
	doc := canonicalDocument()

	for _, tmpl := range Templates() {
		tmpl := tmpl
		t.Run(string(tmpl.Name()), func(t *testing.T) {
			tree := tmpl.Render(doc)
			require.NotNil(t, tree)
			assert.Equal(t, KindDocument, tree.Kind)
			assert.Equal(t, Role(tmpl.Name()), tree.Role)

			t.Run("personal info", func(t *testing.T) {
				info := doc.PersonalInfo
				for _, want := range []string{info.Name, info.Title, info.Email, info.Phone, info.Location, info.LinkedIn, info.Website} {
					assert.NotNil(t, Find(tree, byText(want)), "missing %q", want)
				}
				summary := tree.Section(RoleSummary)
				require.NotNil(t, summary)
				assert.Contains(t, summary.TextContent(), info.Summary)
			})

			t.Run("experience order and bullets", func(t *testing.T) {
				section := tree.Section(RoleExperience)
				require.NotNil(t, section)
				got := entries(section)
				require.Len(t, got, len(doc.Experience))
				for i, exp := range doc.Experience {
					assert.NotNil(t, Find(got[i], byText(exp.Company)))
					assert.NotNil(t, Find(got[i], byText(exp.Position)))
					list := Find(got[i], byRole(RoleBullets))
					require.NotNil(t, list)
					assert.Equal(t, exp.Description, itemTexts(list))
				}
			})

			t.Run("projects", func(t *testing.T) {
				section := tree.Section(RoleProjects)
				require.NotNil(t, section)
				got := entries(section)
				require.Len(t, got, len(doc.Projects))
				assert.NotNil(t, Find(got[0], byRole(RoleLink)))
				assert.NotNil(t, Find(got[0], byRole(RoleTechnologies)))
				assert.Nil(t, Find(got[1], byRole(RoleLink)), "link rendered without a value")
				assert.Nil(t, Find(got[1], byRole(RoleTechnologies)), "technologies rendered without a value")
			})

			t.Run("education", func(t *testing.T) {
				section := tree.Section(RoleEducation)
				require.NotNil(t, section)
				got := entries(section)
				require.Len(t, got, 2)
				assert.NotNil(t, Find(got[0], byText(doc.Education[0].Description)))
				assert.Nil(t, Find(got[1], byRole(RoleDescription)))
				assert.NotNil(t, Find(got[0], byText(doc.Education[0].School)))
				assert.NotNil(t, Find(got[1], byText(doc.Education[1].School)))
			})

			t.Run("skills", func(t *testing.T) {
				section := tree.Section(RoleSkills)
				require.NotNil(t, section)
				skills := FindAll(section, func(n *Node) bool { return n.Kind == KindSkill })
				require.Len(t, skills, doc.SkillCount())

				i := 0
				for _, cat := range doc.SkillCategories {
					assert.NotNil(t, Find(section, byText(cat.Name)))
					for _, want := range cat.Skills {
						n := skills[i]
						i++
						name := Find(n, byRole(RoleSkillName))
						require.NotNil(t, name)
						assert.Equal(t, want.Name, name.Text)

						ind := indicators(n)
						if want.Level == nil {
							assert.Empty(t, ind, "unrated skill %s has an indicator", want.Name)
							assert.Nil(t, Find(n, byRole(RoleLevelLabel)))
							continue
						}
						require.Len(t, ind, 1)
						assert.InDelta(t, float64(*want.Level)/5, ind[0].Indicator.Fraction(), 1e-9)
						assert.Positive(t, ind[0].Indicator.Filled)
					}
				}
			})
		})
	}
}

func TestTemplates_EmptyProjectsOmitted(t *testing.T) {
	doc := types.SampleDocument()
	doc.Projects = []types.ProjectItem{}

	for _, tmpl := range Templates() {
		tree := tmpl.Render(doc)
		assert.Nil(t, tree.Section(RoleProjects), string(tmpl.Name()))
		assert.Nil(t, Find(tree, byText("Projects")), string(tmpl.Name()))
		assert.Nil(t, Find(tree, byText("PROJECTS")), string(tmpl.Name()))
		assert.Nil(t, Find(tree, byText("Key Projects")), string(tmpl.Name()))
	}
}

func TestTemplates_OptionalContactOmitted(t *testing.T) {
	doc := types.SampleDocument()
	doc.PersonalInfo.LinkedIn = ""
	doc.PersonalInfo.Website = ""

	for _, tmpl := range Templates() {
		tree := tmpl.Render(doc)
		assert.Nil(t, Find(tree, byRole(RoleLinkedIn)), string(tmpl.Name()))
		assert.Nil(t, Find(tree, byRole(RoleWebsite)), string(tmpl.Name()))
		assert.NotNil(t, Find(tree, byRole(RoleEmail)), string(tmpl.Name()))
	}
}

func TestRender_UnknownTemplateFallsBack(t *testing.T) {
	unknown := types.SampleDocument()
	unknown.Template = "unknown-value"
	professional := types.SampleDocument()
	professional.Template = types.TemplateProfessional

	assert.Equal(t, Render(professional), Render(unknown))

	unknown.Template = ""
	assert.Equal(t, Render(professional), Render(unknown))
}

func TestRender_Deterministic(t *testing.T) {
	doc := types.SampleDocument()
	before := doc.Clone()

	for _, name := range types.KnownTemplates() {
		doc.Template = name
		before.Template = name
		assert.Equal(t, Render(doc), Render(doc), string(name))
		assert.Equal(t, before, doc, "render mutated the document")
	}
}

func TestRender_NilDocument(t *testing.T) {
	tree := Render(nil)
	require.NotNil(t, tree)
	assert.Equal(t, Role(types.DefaultTemplate), tree.Role)
	assert.Nil(t, tree.Section(RoleProjects))
}

func TestRender_MinimalAcmeScenario(t *testing.T) {
	store := document.NewStore(types.SampleDocument(), document.WithIDGenerator(&document.SequenceGenerator{Prefix: "exp-"}))
	store.AddExperience(types.ExperienceFields{
		Company:     "Acme",
		Position:    "Engineer",
		Description: []string{"Did things"},
	})
	store.SetTemplate("minimal")

	tree := Render(store.Snapshot())
	assert.Equal(t, Role(types.TemplateMinimal), tree.Role)

	section := tree.Section(RoleExperience)
	require.NotNil(t, section)
	got := entries(section)
	require.Len(t, got, 3)

	// Seed entries come first.
	assert.NotNil(t, Find(got[0], byText("Tech Innovations Inc.")))
	last := got[2]
	acme := Find(last, byText("Acme"))
	require.NotNil(t, acme)
	assert.NotNil(t, Find(last, byText("Did things")))

	var order []string
	Walk(section, func(n *Node) bool {
		if n.Text == "Acme" || n.Text == "Did things" || n.Text == "Tech Innovations Inc." {
			order = append(order, n.Text)
		}
		return true
	})
	assert.Equal(t, []string{"Tech Innovations Inc.", "Acme", "Did things"}, order[len(order)-3:])
}

func TestRender_CreativeToolsGitScenario(t *testing.T) {
	store := document.NewStore(types.SampleDocument())
	cat := store.AddSkillCategory("Tools")
	level := 3.0
	store.AddSkill(cat, types.SkillFields{Name: "Git", Level: &level})
	store.SetTemplate("creative")

	tree := Render(store.Snapshot())

	skill := Find(tree, func(n *Node) bool {
		return n.Kind == KindSkill && Find(n, byText("Git")) != nil
	})
	require.NotNil(t, skill)
	ind := indicators(skill)
	require.Len(t, ind, 1)
	assert.Equal(t, 3*ind[0].Indicator.Capacity, 5*ind[0].Indicator.Filled)
	assert.Equal(t, 0.6, ind[0].Indicator.Fraction())

	label := Find(skill, byRole(RoleLevelLabel))
	require.NotNil(t, label)
	assert.Equal(t, "3/5", label.Text)

	tools := Find(tree, byText("Tools"))
	assert.NotNil(t, tools)
}

func TestRender_ModernTechnologyTags(t *testing.T) {
	doc := types.SampleDocument()
	doc.Projects[0].Technologies = "Go, ,Postgres ,  Redis"

	tree := RenderAs(doc, types.TemplateModern)
	tags := Find(tree, byRole(RoleTechnologies))
	require.NotNil(t, tags)
	assert.Equal(t, KindList, tags.Kind)
	assert.Equal(t, []string{"Go", "Postgres", "Redis"}, itemTexts(tags))

	tree = RenderAs(doc, types.TemplateProfessional)
	tags = Find(tree, byRole(RoleTechnologies))
	require.NotNil(t, tags)
	assert.Equal(t, "Technologies: Go, ,Postgres ,  Redis", tags.Text)
}

func TestRender_ExecutiveOrdersCompanyFirst(t *testing.T) {
	tree := RenderAs(types.SampleDocument(), types.TemplateExecutive)
	entry := entries(tree.Section(RoleExperience))[0]
	assert.Equal(t, RoleCompany, entry.Children[0].Role)
	assert.Equal(t, RolePosition, entry.Children[1].Role)

	tree = RenderAs(types.SampleDocument(), types.TemplateProfessional)
	entry = entries(tree.Section(RoleExperience))[0]
	assert.Equal(t, RolePosition, entry.Children[0].Role)
}

func TestRender_ColumnLayouts(t *testing.T) {
	tests := []struct {
		name    types.TemplateName
		sidebar []Role
	}{
		{name: types.TemplateCreative, sidebar: []Role{RoleHeader, RoleContact, RoleSkills}},
		{name: types.TemplateModern, sidebar: []Role{RoleSkills}},
		{name: types.TemplateClassic, sidebar: []Role{RoleSkills}},
	}

	for _, tt := range tests {
		t.Run(string(tt.name), func(t *testing.T) {
			tree := RenderAs(types.SampleDocument(), tt.name)
			sidebar := Find(tree, func(n *Node) bool { return n.Kind == KindColumn && n.Role == RoleSidebar })
			require.NotNil(t, sidebar)
			var roles []Role
			for _, c := range sidebar.Children {
				roles = append(roles, c.Role)
			}
			assert.Equal(t, tt.sidebar, roles)
		})
	}
}

func TestRender_EmptyDocument(t *testing.T) {
	doc := types.NewDocument()
	doc.PersonalInfo = types.PersonalInfo{Name: "Sam", Summary: "Builds things."}

	for _, tmpl := range Templates() {
		tree := tmpl.Render(doc)
		assert.Empty(t, entries(tree.Section(RoleExperience)), string(tmpl.Name()))
		assert.Empty(t, entries(tree.Section(RoleEducation)), string(tmpl.Name()))
		assert.Empty(t, indicators(tree), string(tmpl.Name()))
		assert.NotNil(t, Find(tree, byText("Sam")))
		assert.NotNil(t, Find(tree, byText("Builds things.")))
	}
}

func TestIndicator_Capacities(t *testing.T) {
	for level := types.MinLevel; level <= types.MaxLevel; level++ {
		dots := indicator(types.IntPtr(level), IndicatorDots)
		assert.Equal(t, level, dots.Filled)
		assert.Equal(t, 5, dots.Capacity)

		bar := indicator(types.IntPtr(level), IndicatorBar)
		assert.Equal(t, level*20, bar.Filled)
		assert.Equal(t, 100, bar.Capacity)
	}
	assert.Nil(t, indicator(nil, IndicatorDots))
	assert.Equal(t, 5, indicator(types.IntPtr(9), IndicatorDots).Filled)
}

func TestDateRange(t *testing.T) {
	assert.Equal(t, "2014 - 2018", dateRange("2014", "2018"))
	assert.Equal(t, "2014", dateRange("2014", ""))
	assert.Equal(t, "2018", dateRange("", "2018"))
	assert.Equal(t, "", dateRange("", ""))
}
