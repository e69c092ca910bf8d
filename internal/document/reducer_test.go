package document

import (
	"math"
	"testing"

	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func TestReduce_DoesNotMutateInput(t *testing.T) {
	doc := types.SampleDocument()
	before := doc.Clone()

	cmds := []Command{
		UpdatePersonalInfo{Patch: types.PersonalInfoPatch{Name: types.StringPtr("Sam")}},
		AddExperience{ID: "x", Fields: types.ExperienceFields{Company: "Acme"}},
		UpdateExperience{ID: "1", Patch: types.ExperiencePatch{Company: types.StringPtr("Changed")}},
		RemoveEducation{ID: "1"},
		RemoveSkillCategory{ID: "2"},
		UpdateSkill{CategoryID: "1", ID: "1", Patch: types.SkillPatch{ClearLevel: true}},
		SetTemplate{Name: types.TemplateCreative},
	}
	for _, cmd := range cmds {
		next := Reduce(doc, cmd)
		assert.NotSame(t, doc, next, cmd.Kind())
		assert.Equal(t, before, doc, "input changed by %s", cmd.Kind())
	}
}

func TestReduce_AddThenRemoveRestoresCollection(t *testing.T) {
	base := types.SampleDocument()

	t.Run("education", func(t *testing.T) {
		doc := Reduce(base, AddEducation{ID: "new", Fields: types.EducationFields{School: "MIT"}})
		require.Len(t, doc.Education, 2)
		doc = Reduce(doc, RemoveEducation{ID: "new"})
		assert.Equal(t, base.Education, doc.Education)
	})

	t.Run("experience", func(t *testing.T) {
		doc := Reduce(base, AddExperience{ID: "new", Fields: types.ExperienceFields{Company: "Acme"}})
		require.Len(t, doc.Experience, 3)
		doc = Reduce(doc, RemoveExperience{ID: "new"})
		assert.Equal(t, base.Experience, doc.Experience)
	})

	t.Run("projects", func(t *testing.T) {
		doc := Reduce(base, AddProject{ID: "new", Fields: types.ProjectFields{Name: "CLI"}})
		require.Len(t, doc.Projects, 3)
		doc = Reduce(doc, RemoveProject{ID: "new"})
		assert.Equal(t, base.Projects, doc.Projects)
	})

	t.Run("skill categories", func(t *testing.T) {
		doc := Reduce(base, AddSkillCategory{ID: "new", Name: "Tools"})
		require.Len(t, doc.SkillCategories, 3)
		doc = Reduce(doc, RemoveSkillCategory{ID: "new"})
		assert.Equal(t, base.SkillCategories, doc.SkillCategories)
	})

	t.Run("skills", func(t *testing.T) {
		doc := Reduce(base, AddSkill{CategoryID: "1", ID: "new", Fields: types.SkillFields{Name: "Go"}})
		require.Len(t, doc.SkillCategories[0].Skills, 5)
		doc = Reduce(doc, RemoveSkill{CategoryID: "1", ID: "new"})
		assert.Equal(t, base.SkillCategories, doc.SkillCategories)
	})

	t.Run("empty collection", func(t *testing.T) {
		empty := types.NewDocument()
		doc := Reduce(empty, AddProject{ID: "p", Fields: types.ProjectFields{Name: "CLI"}})
		doc = Reduce(doc, RemoveProject{ID: "p"})
		assert.Equal(t, empty.Projects, doc.Projects)
	})
}

func TestReduce_AddAppendsAtEnd(t *testing.T) {
	doc := Reduce(types.SampleDocument(), AddExperience{ID: "acme", Fields: types.ExperienceFields{
		Company:     "Acme",
		Position:    "Engineer",
		Description: []string{"Did things"},
	}})

	require.Len(t, doc.Experience, 3)
	last := doc.Experience[2]
	assert.Equal(t, "acme", last.ID)
	assert.Equal(t, "Acme", last.Company)
	assert.Equal(t, []string{"Did things"}, last.Description)
	assert.Equal(t, "1", doc.Experience[0].ID)
	assert.Equal(t, "2", doc.Experience[1].ID)
}

func TestReduce_AddRejectsDuplicateOrEmptyID(t *testing.T) {
	base := types.SampleDocument()

	dup := Reduce(base, AddEducation{ID: "1", Fields: types.EducationFields{School: "Dup"}})
	assert.Same(t, base, dup)

	empty := Reduce(base, AddProject{ID: "", Fields: types.ProjectFields{Name: "No id"}})
	assert.Same(t, base, empty)
}

func TestReduce_UpdateChangesOnlyNamedFields(t *testing.T) {
	base := types.SampleDocument()

	doc := Reduce(base, UpdateEducation{ID: "1", Patch: types.EducationPatch{Degree: types.StringPtr("Master of Science")}})
	want := base.Education[0]
	want.Degree = "Master of Science"
	assert.Equal(t, want, doc.Education[0])

	doc = Reduce(base, UpdateProject{ID: "2", Patch: types.ProjectPatch{Link: types.StringPtr("")}})
	wantProj := base.Projects[1]
	wantProj.Link = ""
	assert.Equal(t, wantProj, doc.Projects[1])
	assert.Equal(t, base.Projects[0], doc.Projects[0])

	doc = Reduce(base, RenameSkillCategory{ID: "2", Name: "Frameworks"})
	assert.Equal(t, "Frameworks", doc.SkillCategories[1].Name)
	assert.Equal(t, base.SkillCategories[1].Skills, doc.SkillCategories[1].Skills)
}

func TestReduce_LookupMissIsNoOp(t *testing.T) {
	base := types.SampleDocument()

	cmds := []Command{
		UpdateEducation{ID: "missing", Patch: types.EducationPatch{School: types.StringPtr("x")}},
		RemoveEducation{ID: "missing"},
		UpdateExperience{ID: "missing", Patch: types.ExperiencePatch{Company: types.StringPtr("x")}},
		RemoveExperience{ID: "missing"},
		UpdateProject{ID: "missing", Patch: types.ProjectPatch{Name: types.StringPtr("x")}},
		RemoveProject{ID: "missing"},
		RenameSkillCategory{ID: "missing", Name: "x"},
		RemoveSkillCategory{ID: "missing"},
		AddSkill{CategoryID: "missing", ID: "s", Fields: types.SkillFields{Name: "x"}},
		UpdateSkill{CategoryID: "1", ID: "missing", Patch: types.SkillPatch{Name: types.StringPtr("x")}},
		UpdateSkill{CategoryID: "missing", ID: "1", Patch: types.SkillPatch{Name: types.StringPtr("x")}},
		RemoveSkill{CategoryID: "1", ID: "missing"},
		RemoveSkill{CategoryID: "missing", ID: "1"},
	}
	for _, cmd := range cmds {
		assert.Same(t, base, Reduce(base, cmd), cmd.Kind())
	}
}

func TestReduce_SkillIDsScopedToCategory(t *testing.T) {
	base := types.SampleDocument()

	doc := Reduce(base, UpdateSkill{CategoryID: "2", ID: "1", Patch: types.SkillPatch{Name: types.StringPtr("Preact")}})

	assert.Equal(t, "Preact", doc.SkillCategories[1].Skills[0].Name)
	assert.Equal(t, "JavaScript", doc.SkillCategories[0].Skills[0].Name)

	doc = Reduce(base, RemoveSkill{CategoryID: "1", ID: "1"})
	assert.Len(t, doc.SkillCategories[0].Skills, 3)
	assert.Len(t, doc.SkillCategories[1].Skills, 4)
}

func TestReduce_RemoveCategoryCascades(t *testing.T) {
	base := types.SampleDocument()
	doc := Reduce(base, RemoveSkillCategory{ID: "1"})

	require.Len(t, doc.SkillCategories, 1)
	assert.Equal(t, base.SkillCategories[1], doc.SkillCategories[0])
	assert.Equal(t, base.SkillCount()-len(base.SkillCategories[0].Skills), doc.SkillCount())
}

func TestReduce_SetTemplateAcceptsAnyString(t *testing.T) {
	doc := Reduce(types.SampleDocument(), SetTemplate{Name: "unknown-value"})
	assert.Equal(t, types.TemplateName("unknown-value"), doc.Template)
}

func TestReduce_NilDocument(t *testing.T) {
	doc := Reduce(nil, AddSkillCategory{ID: "c", Name: "Tools"})
	require.Len(t, doc.SkillCategories, 1)
	assert.Equal(t, types.DefaultTemplate, doc.Template)
}

func TestNormalizeLevel(t *testing.T) {
	tests := []struct {
		name string
		in   *float64
		want *int
	}{
		{name: "absent", in: nil, want: nil},
		{name: "NaN", in: floatPtr(math.NaN()), want: nil},
		{name: "in range", in: floatPtr(3), want: types.IntPtr(3)},
		{name: "lower bound", in: floatPtr(1), want: types.IntPtr(1)},
		{name: "upper bound", in: floatPtr(5), want: types.IntPtr(5)},
		{name: "zero", in: floatPtr(0), want: types.IntPtr(1)},
		{name: "negative", in: floatPtr(-7), want: types.IntPtr(1)},
		{name: "too high", in: floatPtr(42), want: types.IntPtr(5)},
		{name: "fraction rounds down", in: floatPtr(2.4), want: types.IntPtr(2)},
		{name: "fraction rounds up", in: floatPtr(2.5), want: types.IntPtr(3)},
		{name: "small fraction", in: floatPtr(0.2), want: types.IntPtr(1)},
		{name: "positive infinity", in: floatPtr(math.Inf(1)), want: types.IntPtr(5)},
		{name: "negative infinity", in: floatPtr(math.Inf(-1)), want: types.IntPtr(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeLevel(tt.in))
		})
	}
}

func TestReduce_SkillLevelAlwaysInRange(t *testing.T) {
	inputs := []float64{-100, -1, 0, 0.49, 0.5, 1, 1.5, 2.999, 4.5, 5, 5.01, 6, 1e9, math.NaN(), math.Inf(1)}
	doc := types.SampleDocument()

	for i, in := range inputs {
		v := in
		id := "s" + string(rune('a'+i))
		doc = Reduce(doc, AddSkill{CategoryID: "1", ID: id, Fields: types.SkillFields{Name: id, Level: &v}})
		doc = Reduce(doc, UpdateSkill{CategoryID: "2", ID: "1", Patch: types.SkillPatch{Level: &v}})
	}

	for _, cat := range doc.SkillCategories {
		for _, s := range cat.Skills {
			if s.Level == nil {
				continue
			}
			assert.GreaterOrEqual(t, *s.Level, types.MinLevel, s.Name)
			assert.LessOrEqual(t, *s.Level, types.MaxLevel, s.Name)
		}
	}
}

func TestReduce_UpdateSkillClearLevel(t *testing.T) {
	doc := Reduce(types.SampleDocument(), UpdateSkill{CategoryID: "1", ID: "2", Patch: types.SkillPatch{ClearLevel: true, Level: floatPtr(4)}})
	assert.Nil(t, doc.SkillCategories[0].Skills[1].Level)
	assert.Equal(t, "TypeScript", doc.SkillCategories[0].Skills[1].Name)
}
