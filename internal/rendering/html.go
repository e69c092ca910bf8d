package rendering

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"sync"

	"github.com/jonathan/resume-builder/internal/types"
)

// AnchorID is the id of the element wrapping the rendered resume. Export
// captures exactly this element.
const AnchorID = "resume-print"

//go:embed styles/*.css
var styleFiles embed.FS

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>{{.Style}}</style>
</head>
<body>
<div id="{{.Anchor}}" class="resume template-{{.Template}}">{{template "node" .Root}}</div>
</body>
</html>
{{define "node"}}
{{- if eq .Kind "heading"}}<h2 class="{{classes .}}">{{.Text}}</h2>
{{- else if eq .Kind "link"}}<a class="{{classes .}}" href="{{.Href}}">{{.Text}}</a>
{{- else if eq .Kind "list"}}<ul class="{{classes .}}">{{range .Children}}{{template "node" .}}{{end}}</ul>
{{- else if eq .Kind "item"}}<li class="{{classes .}}">{{.Text}}</li>
{{- else if eq .Kind "indicator"}}{{template "indicator" .Indicator}}
{{- else}}<div class="{{classes .}}">{{.Text}}{{range .Children}}{{template "node" .}}{{end}}</div>
{{- end}}
{{- end}}
{{define "indicator"}}
{{- if eq .Style "dots"}}<span class="dots">{{range dots .}}<span class="dot{{if .}} filled{{end}}"></span>{{end}}</span>
{{- else}}<div class="bar"><div class="bar-fill" style="width: {{percent .}}%"></div></div>
{{- end}}
{{- end}}`

var (
	pageOnce sync.Once
	page     *template.Template
	pageErr  error

	styleCache   = make(map[Role]template.CSS)
	styleCacheMu sync.RWMutex
)

// HTMLOptions tunes the standalone page produced by WriteHTML.
type HTMLOptions struct {
	Title string
}

type pageData struct {
	Title    string
	Style    template.CSS
	Anchor   string
	Template Role
	Root     *Node
}

// WriteHTML serializes tree into a standalone printable HTML page. The
// stylesheet is chosen from the tree's root role (the template name).
func WriteHTML(w io.Writer, tree *Node, opts HTMLOptions) error {
	if tree == nil {
		return &RenderError{Cause: ErrNilTree}
	}
	tmpl, err := parsePage()
	if err != nil {
		return err
	}
	style, err := stylesheet(tree.Role)
	if err != nil {
		return err
	}
	if opts.Title == "" {
		opts.Title = "Resume"
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, pageData{
		Title:    opts.Title,
		Style:    style,
		Anchor:   AnchorID,
		Template: tree.Role,
		Root:     tree,
	})
	name := types.TemplateName(tree.Role)
	if err != nil {
		return &TemplateError{Template: name, Message: "failed to execute page template", Cause: err}
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return &RenderError{Template: name, Cause: fmt.Errorf("failed to write html: %w", err)}
	}
	return nil
}

// RenderHTML renders doc through its selected template and returns the page.
func RenderHTML(doc *types.ResumeDocument) ([]byte, error) {
	var buf bytes.Buffer
	title := "Resume"
	if doc != nil && doc.PersonalInfo.Name != "" {
		title = doc.PersonalInfo.Name + " - Resume"
	}
	if err := WriteHTML(&buf, Render(doc), HTMLOptions{Title: title}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func parsePage() (*template.Template, error) {
	pageOnce.Do(func() {
		page, pageErr = template.New("page").Funcs(template.FuncMap{
			"classes": classes,
			"dots":    dots,
			"percent": percent,
		}).Parse(pageTemplate)
		if pageErr != nil {
			pageErr = &TemplateError{Message: "failed to parse page template", Cause: pageErr}
		}
	})
	return page, pageErr
}

// stylesheet returns the base stylesheet followed by the template's own rules.
func stylesheet(name Role) (template.CSS, error) {
	resolved := Role(types.ResolveTemplate(types.TemplateName(name)))

	styleCacheMu.RLock()
	css, ok := styleCache[resolved]
	styleCacheMu.RUnlock()
	if ok {
		return css, nil
	}

	base, err := styleFiles.ReadFile("styles/base.css")
	if err != nil {
		return "", &TemplateError{Template: types.TemplateName(resolved), Message: "failed to read base stylesheet", Cause: err}
	}
	extra, err := styleFiles.ReadFile(fmt.Sprintf("styles/%s.css", resolved))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", &TemplateError{Template: types.TemplateName(resolved), Message: "failed to read stylesheet", Cause: err}
	}

	// Embedded at build time, never user supplied.
	css = template.CSS(string(base) + "\n" + string(extra))

	styleCacheMu.Lock()
	styleCache[resolved] = css
	styleCacheMu.Unlock()
	return css, nil
}

func classes(n *Node) string {
	c := "kind-" + string(n.Kind)
	if n.Role != "" {
		c += " role-" + string(n.Role)
	}
	return c
}

func dots(ind *Indicator) []bool {
	out := make([]bool, ind.Capacity)
	for i := range out {
		out[i] = i < ind.Filled
	}
	return out
}

func percent(ind *Indicator) int {
	if ind.Capacity == 0 {
		return 0
	}
	return ind.Filled * 100 / ind.Capacity
}
