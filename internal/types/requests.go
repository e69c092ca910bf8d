package types

import (
	"github.com/go-playground/validator/v10"
)

// validate is safe for concurrent use and caches struct metadata.
var validate = validator.New()

// AddSkillCategoryRequest represents the request to add a skill category.
type AddSkillCategoryRequest struct {
	Name string `json:"name" validate:"max=100"`
}

// RenameSkillCategoryRequest represents the request to rename a skill category.
type RenameSkillCategoryRequest struct {
	Name string `json:"name" validate:"max=100"`
}

// SetTemplateRequest represents the request to switch the active template.
// Any name is accepted; unknown names render with the default template.
type SetTemplateRequest struct {
	Template string `json:"template" validate:"required,max=64"`
}

// SuggestionRequest represents a request for canned writing suggestions.
type SuggestionRequest struct {
	Prompt  string `json:"prompt" validate:"required,max=500"`
	Context string `json:"context,omitempty" validate:"max=4000"`
}

// CreatedResponse is returned by add operations.
type CreatedResponse struct {
	ID string `json:"id"`
}

// Validate validates any request payload using the shared validator.
func Validate(req any) error {
	return validate.Struct(req)
}

// Validate validates the SetTemplateRequest using the validator.
func (r *SetTemplateRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the SuggestionRequest using the validator.
func (r *SuggestionRequest) Validate() error {
	return validate.Struct(r)
}
