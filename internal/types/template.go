package types

// TemplateName names one of the visual templates a document can be rendered with.
type TemplateName string

// Known templates, in selector order.
const (
	TemplateProfessional TemplateName = "professional"
	TemplateMinimal      TemplateName = "minimal"
	TemplateCreative     TemplateName = "creative"
	TemplateExecutive    TemplateName = "executive"
	TemplateModern       TemplateName = "modern"
	TemplateClassic      TemplateName = "classic"
)

// DefaultTemplate is used whenever the selector names an unknown template.
const DefaultTemplate = TemplateProfessional

// TemplateInfo describes a template for pickers.
type TemplateInfo struct {
	ID          TemplateName `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
}

var templateCatalog = []TemplateInfo{
	{ID: TemplateProfessional, Name: "Professional", Description: "Clean and modern design with a professional look"},
	{ID: TemplateMinimal, Name: "Minimal", Description: "Simple and elegant design with minimal elements"},
	{ID: TemplateCreative, Name: "Creative", Description: "Unique layout with creative elements to stand out"},
	{ID: TemplateExecutive, Name: "Executive", Description: "Traditional design for senior-level positions"},
	{ID: TemplateModern, Name: "Modern", Description: "Contemporary design with clean aesthetics"},
	{ID: TemplateClassic, Name: "Classic", Description: "Timeless layout with traditional formatting"},
}

// TemplateCatalog returns the known templates in selector order.
func TemplateCatalog() []TemplateInfo {
	return append([]TemplateInfo(nil), templateCatalog...)
}

// KnownTemplates returns the known template names in selector order.
func KnownTemplates() []TemplateName {
	names := make([]TemplateName, len(templateCatalog))
	for i, info := range templateCatalog {
		names[i] = info.ID
	}
	return names
}

// IsKnown reports whether the name is one of the known templates.
func (n TemplateName) IsKnown() bool {
	for _, info := range templateCatalog {
		if info.ID == n {
			return true
		}
	}
	return false
}

// ResolveTemplate returns name if it is known, otherwise DefaultTemplate.
func ResolveTemplate(name TemplateName) TemplateName {
	if name.IsKnown() {
		return name
	}
	return DefaultTemplate
}
