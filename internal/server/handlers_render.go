package server

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/suggestions"
	"github.com/jonathan/resume-builder/internal/types"
)

// TemplatesResponse lists the catalog with the document's selection.
type TemplatesResponse struct {
	Selected  types.TemplateName   `json:"selected"`
	Active    types.TemplateName   `json:"active"`
	Templates []types.TemplateInfo `json:"templates"`
}

// SuggestionsResponse carries canned writing suggestions.
type SuggestionsResponse struct {
	Kind        suggestions.Kind `json:"kind"`
	Suggestions []string         `json:"suggestions"`
}

func (s *Server) handleListTemplates(w http.ResponseWriter, _ *http.Request) {
	doc := s.store.Snapshot()
	s.jsonResponse(w, http.StatusOK, TemplatesResponse{
		Selected:  doc.Template,
		Active:    types.ResolveTemplate(doc.Template),
		Templates: types.TemplateCatalog(),
	})
}

// previewTree renders the current snapshot, optionally through the template
// named by ?template= without touching the stored selection.
func (s *Server) previewTree(r *http.Request) (*types.ResumeDocument, *rendering.Node) {
	doc := s.store.Snapshot()
	name := doc.Template
	if q := r.URL.Query().Get("template"); q != "" {
		name = types.TemplateName(q)
	}
	tree := rendering.RenderAs(doc, name)
	s.metrics.ObserveRender(string(tree.Role))
	return doc, tree
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	doc, tree := s.previewTree(r)

	title := "Resume"
	if doc.PersonalInfo.Name != "" {
		title = doc.PersonalInfo.Name + " - Resume"
	}
	var buf bytes.Buffer
	if err := rendering.WriteHTML(&buf, tree, rendering.HTMLOptions{Title: title}); err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes()) //nolint:errcheck
}

func (s *Server) handlePreviewTree(w http.ResponseWriter, r *http.Request) {
	_, tree := s.previewTree(r)
	s.jsonResponse(w, http.StatusOK, tree)
}

// handleDownload streams the exported PDF. Failures answer with the generic notice only.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	if _, err := s.pipeline.DownloadTo(r.Context(), export.ResponseSink{W: w}); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, export.MessageFailure)
	}
}

// handleNotices streams download notices as server-sent events until the client leaves.
func (s *Server) handleNotices(w http.ResponseWriter, r *http.Request) {
	// Subscribe before the headers go out so a client that saw the response misses nothing.
	notices, unsubscribe := s.broker.Subscribe()
	defer unsubscribe()

	stream, err := newNoticeStream(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case n, ok := <-notices:
			if !ok {
				return
			}
			if err := stream.WriteNotice(n); err != nil {
				s.logger.Debug("notice stream closed", zap.Error(err))
				return
			}
		case <-ticker.C:
			if err := stream.Ping(); err != nil {
				return
			}
		}
	}
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	var req types.SuggestionRequest
	if !s.decode(w, r, &req) {
		return
	}

	out, err := s.suggester.Suggest(r.Context(), req.Prompt)
	if err != nil {
		// Only cancellation can fail here; the client is gone.
		s.logger.Debug("suggestion request abandoned", zap.Error(err))
		return
	}
	s.jsonResponse(w, http.StatusOK, SuggestionsResponse{
		Kind:        suggestions.Classify(req.Prompt),
		Suggestions: out,
	})
}
