package document

import (
	"sync"
	"sync/atomic"

	"github.com/jonathan/resume-builder/internal/types"
	"go.uber.org/zap"
)

// maxIDAttempts bounds id re-allocation when a generator collides with an existing id.
const maxIDAttempts = 16

// Store is the only writer of document state. It holds the current snapshot
// and replaces it wholesale on every mutation, so readers never observe a
// half-updated document. Snapshots returned by Snapshot must be treated as
// read-only.
type Store struct {
	mu      sync.Mutex // serializes writers
	current atomic.Pointer[types.ResumeDocument]
	ids     IDGenerator
	logger  *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator overrides the default UUID generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(s *Store) { s.ids = g }
}

// WithLogger sets the logger used for mutation debug logs.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// NewStore creates a store seeded with a copy of seed. A nil seed starts from an empty document.
func NewStore(seed *types.ResumeDocument, opts ...Option) *Store {
	s := &Store{ids: UUIDGenerator{}, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	if seed == nil {
		seed = types.NewDocument()
	} else {
		seed = seed.Clone().Normalize()
	}
	s.current.Store(seed)
	return s
}

// Snapshot returns the current document. Any mutation applied before the call is visible.
func (s *Store) Snapshot() *types.ResumeDocument {
	return s.current.Load()
}

// Dispatch applies a command through the reducer and publishes the result.
// It reports whether the document changed.
func (s *Store) Dispatch(cmd Command) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dispatchLocked(cmd)
}

func (s *Store) dispatchLocked(cmd Command) bool {
	prev := s.current.Load()
	next := Reduce(prev, cmd)
	changed := next != prev
	if changed {
		s.current.Store(next)
	}
	s.logger.Debug("applied document command",
		zap.String("command", cmd.Kind()),
		zap.Bool("changed", changed),
	)
	return changed
}

// allocate returns a fresh id that taken does not report as used.
func (s *Store) allocate(taken func(string) bool) string {
	for i := 0; i < maxIDAttempts; i++ {
		id := s.ids.NewID()
		if id != "" && !taken(id) {
			return id
		}
	}
	// Fall back to a random id; the generator is clearly exhausted.
	return UUIDGenerator{}.NewID()
}

// UpdatePersonalInfo replaces the named header fields.
func (s *Store) UpdatePersonalInfo(patch types.PersonalInfoPatch) {
	s.Dispatch(UpdatePersonalInfo{Patch: patch})
}

// AddEducation appends an education entry and returns its id.
func (s *Store) AddEducation(fields types.EducationFields) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.current.Load()
	id := s.allocate(func(id string) bool { return containsID(doc.Education, id, educationID) })
	s.dispatchLocked(AddEducation{ID: id, Fields: fields})
	return id
}

// UpdateEducation replaces the named fields of an education entry. Unknown ids are ignored.
func (s *Store) UpdateEducation(id string, patch types.EducationPatch) {
	s.Dispatch(UpdateEducation{ID: id, Patch: patch})
}

// RemoveEducation deletes an education entry. Unknown ids are ignored.
func (s *Store) RemoveEducation(id string) {
	s.Dispatch(RemoveEducation{ID: id})
}

// AddExperience appends an experience entry and returns its id.
func (s *Store) AddExperience(fields types.ExperienceFields) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.current.Load()
	id := s.allocate(func(id string) bool { return containsID(doc.Experience, id, experienceID) })
	s.dispatchLocked(AddExperience{ID: id, Fields: fields})
	return id
}

// UpdateExperience replaces the named fields of an experience entry. Unknown ids are ignored.
func (s *Store) UpdateExperience(id string, patch types.ExperiencePatch) {
	s.Dispatch(UpdateExperience{ID: id, Patch: patch})
}

// RemoveExperience deletes an experience entry. Unknown ids are ignored.
func (s *Store) RemoveExperience(id string) {
	s.Dispatch(RemoveExperience{ID: id})
}

// AddProject appends a project and returns its id.
func (s *Store) AddProject(fields types.ProjectFields) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.current.Load()
	id := s.allocate(func(id string) bool { return containsID(doc.Projects, id, projectID) })
	s.dispatchLocked(AddProject{ID: id, Fields: fields})
	return id
}

// UpdateProject replaces the named fields of a project. Unknown ids are ignored.
func (s *Store) UpdateProject(id string, patch types.ProjectPatch) {
	s.Dispatch(UpdateProject{ID: id, Patch: patch})
}

// RemoveProject deletes a project. Unknown ids are ignored.
func (s *Store) RemoveProject(id string) {
	s.Dispatch(RemoveProject{ID: id})
}

// AddSkillCategory appends an empty category and returns its id.
func (s *Store) AddSkillCategory(name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.current.Load()
	id := s.allocate(func(id string) bool { return containsID(doc.SkillCategories, id, categoryID) })
	s.dispatchLocked(AddSkillCategory{ID: id, Name: name})
	return id
}

// RenameSkillCategory replaces a category name. Unknown ids are ignored.
func (s *Store) RenameSkillCategory(id, name string) {
	s.Dispatch(RenameSkillCategory{ID: id, Name: name})
}

// RemoveSkillCategory deletes a category and every skill in it. Unknown ids are ignored.
func (s *Store) RemoveSkillCategory(id string) {
	s.Dispatch(RemoveSkillCategory{ID: id})
}

// AddSkill appends a skill to a category and returns its id.
// It returns an empty id when the category does not exist.
func (s *Store) AddSkill(categoryID string, fields types.SkillFields) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	cat := findCategory(s.current.Load(), categoryID)
	if cat == nil {
		s.logger.Debug("skipping skill for missing category", zap.String("category_id", categoryID))
		return ""
	}
	id := s.allocate(func(id string) bool { return containsID(cat.Skills, id, skillID) })
	s.dispatchLocked(AddSkill{CategoryID: categoryID, ID: id, Fields: fields})
	return id
}

// UpdateSkill replaces the named fields of a skill. Unknown ids are ignored.
func (s *Store) UpdateSkill(categoryID, id string, patch types.SkillPatch) {
	s.Dispatch(UpdateSkill{CategoryID: categoryID, ID: id, Patch: patch})
}

// RemoveSkill deletes a skill from a category. Unknown ids are ignored.
func (s *Store) RemoveSkill(categoryID, id string) {
	s.Dispatch(RemoveSkill{CategoryID: categoryID, ID: id})
}

// SetTemplate replaces the template selector. Unknown names are stored as is
// and fall back to the default template at render time.
func (s *Store) SetTemplate(name string) {
	s.Dispatch(SetTemplate{Name: types.TemplateName(name)})
}

// Reset replaces the whole document, e.g. when a session is re-seeded.
func (s *Store) Reset(doc *types.ResumeDocument) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if doc == nil {
		doc = types.NewDocument()
	} else {
		doc = doc.Clone().Normalize()
	}
	s.current.Store(doc)
	s.logger.Debug("document reset")
}

func containsID[T any](items []T, target string, id func(T) string) bool {
	for _, item := range items {
		if id(item) == target {
			return true
		}
	}
	return false
}

func findCategory(doc *types.ResumeDocument, id string) *types.SkillCategory {
	for i := range doc.SkillCategories {
		if doc.SkillCategories[i].ID == id {
			return &doc.SkillCategories[i]
		}
	}
	return nil
}
