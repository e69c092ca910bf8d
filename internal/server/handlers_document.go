package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
)

// decode reads a JSON body into dst and validates it. On failure it writes the
// error response and returns false.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		s.writeError(w, decodeError(err))
		return false
	}
	if err := types.Validate(dst); err != nil {
		s.writeError(w, validationError(err))
		return false
	}
	return true
}

func decodeError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return &ErrPayloadTooLarge{Limit: tooLarge.Limit}
	}
	if errors.Is(err, io.EOF) {
		return &ErrValidation{Field: "body", Message: "request body is empty"}
	}
	return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
		s.errorResponse(w, status, http.StatusText(status))
		return
	}
	s.errorResponse(w, status, err.Error())
}

// created answers an add operation. An empty id means the add was a no-op.
func (s *Server) created(w http.ResponseWriter, id string) {
	if id == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	s.jsonResponse(w, http.StatusCreated, types.CreatedResponse{ID: id})
}

// Mutations on ids that do not exist are silent no-ops and answer 204 like successes.
func noContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetDocument(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.store.Snapshot())
}

// handleReplaceDocument replaces the whole document after schema validation.
func (s *Server) handleReplaceDocument(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, decodeError(err))
		return
	}
	doc, err := schemas.DecodeDocument(data)
	if err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			s.jsonResponse(w, http.StatusBadRequest, map[string]any{
				"error":  "document failed validation",
				"fields": validationErr.Errors,
			})
			return
		}
		s.writeError(w, &ErrValidation{Field: "body", Message: err.Error()})
		return
	}
	s.store.Reset(doc)
	s.jsonResponse(w, http.StatusOK, s.store.Snapshot())
}

func (s *Server) handleUpdatePersonalInfo(w http.ResponseWriter, r *http.Request) {
	var patch types.PersonalInfoPatch
	if !s.decode(w, r, &patch) {
		return
	}
	s.store.UpdatePersonalInfo(patch)
	noContent(w)
}

func (s *Server) handleSetTemplate(w http.ResponseWriter, r *http.Request) {
	var req types.SetTemplateRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.store.SetTemplate(req.Template)
	noContent(w)
}

func (s *Server) handleAddEducation(w http.ResponseWriter, r *http.Request) {
	var fields types.EducationFields
	if !s.decode(w, r, &fields) {
		return
	}
	s.created(w, s.store.AddEducation(fields))
}

func (s *Server) handleUpdateEducation(w http.ResponseWriter, r *http.Request) {
	var patch types.EducationPatch
	if !s.decode(w, r, &patch) {
		return
	}
	s.store.UpdateEducation(r.PathValue("id"), patch)
	noContent(w)
}

func (s *Server) handleRemoveEducation(w http.ResponseWriter, r *http.Request) {
	s.store.RemoveEducation(r.PathValue("id"))
	noContent(w)
}

func (s *Server) handleAddExperience(w http.ResponseWriter, r *http.Request) {
	var fields types.ExperienceFields
	if !s.decode(w, r, &fields) {
		return
	}
	s.created(w, s.store.AddExperience(fields))
}

func (s *Server) handleUpdateExperience(w http.ResponseWriter, r *http.Request) {
	var patch types.ExperiencePatch
	if !s.decode(w, r, &patch) {
		return
	}
	s.store.UpdateExperience(r.PathValue("id"), patch)
	noContent(w)
}

func (s *Server) handleRemoveExperience(w http.ResponseWriter, r *http.Request) {
	s.store.RemoveExperience(r.PathValue("id"))
	noContent(w)
}

func (s *Server) handleAddProject(w http.ResponseWriter, r *http.Request) {
	var fields types.ProjectFields
	if !s.decode(w, r, &fields) {
		return
	}
	s.created(w, s.store.AddProject(fields))
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	var patch types.ProjectPatch
	if !s.decode(w, r, &patch) {
		return
	}
	s.store.UpdateProject(r.PathValue("id"), patch)
	noContent(w)
}

func (s *Server) handleRemoveProject(w http.ResponseWriter, r *http.Request) {
	s.store.RemoveProject(r.PathValue("id"))
	noContent(w)
}

func (s *Server) handleAddSkillCategory(w http.ResponseWriter, r *http.Request) {
	var req types.AddSkillCategoryRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.created(w, s.store.AddSkillCategory(req.Name))
}

func (s *Server) handleRenameSkillCategory(w http.ResponseWriter, r *http.Request) {
	var req types.RenameSkillCategoryRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.store.RenameSkillCategory(r.PathValue("id"), req.Name)
	noContent(w)
}

func (s *Server) handleRemoveSkillCategory(w http.ResponseWriter, r *http.Request) {
	s.store.RemoveSkillCategory(r.PathValue("id"))
	noContent(w)
}

func (s *Server) handleAddSkill(w http.ResponseWriter, r *http.Request) {
	var fields types.SkillFields
	if !s.decode(w, r, &fields) {
		return
	}
	s.created(w, s.store.AddSkill(r.PathValue("id"), fields))
}

func (s *Server) handleUpdateSkill(w http.ResponseWriter, r *http.Request) {
	var patch types.SkillPatch
	if !s.decode(w, r, &patch) {
		return
	}
	s.store.UpdateSkill(r.PathValue("id"), r.PathValue("skill_id"), patch)
	noContent(w)
}

func (s *Server) handleRemoveSkill(w http.ResponseWriter, r *http.Request) {
	s.store.RemoveSkill(r.PathValue("id"), r.PathValue("skill_id"))
	noContent(w)
}
