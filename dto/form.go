package dto

// FieldType is the input type a form field expects.
type FieldType string

const (
	FieldTypeText   FieldType = "text"
	FieldTypeDate   FieldType = "date"
	FieldTypeSelect FieldType = "select"
	FieldTypeNumber FieldType = "number"
)

// FormField is one field of a government form template. When MappedFrom is
// set it names the canonical identity attribute that fills this field
// directly, bypassing fuzzy label matching.
type FormField struct {
	ID         string         `json:"id"`
	Label      string         `json:"label"`
	Type       FieldType      `json:"type"`
	Required   bool           `json:"required"`
	Options    []string       `json:"options,omitempty"`
	MappedFrom CanonicalField `json:"mapped_from,omitempty"`
}

// FormTemplate describes one fillable government form.
type FormTemplate struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Fields      []FormField `json:"fields"`
}

// FieldMapping records how an auto-filled field got its value.
type FieldMapping struct {
	Confidence float64 `json:"confidence"`
	Source     string  `json:"source"` // "explicit" or "fuzzy"
}

// AutofillRequest carries the identity record to seed a form with.
type AutofillRequest struct {
	Record IdentityRecord `json:"record" binding:"required"`
}

// AutofillResponse holds the pre-filled values for one template, keyed by
// field ID, along with the mapping decision behind each value.
type AutofillResponse struct {
	TemplateID string                  `json:"template_id"`
	Values     map[string]string       `json:"values"`
	Mappings   map[string]FieldMapping `json:"mappings"`
}

// MatchRequest carries a single free-text field label to match.
type MatchRequest struct {
	Label string `json:"label" binding:"required"`
}
