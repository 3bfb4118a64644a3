package service

import (
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/janseva-labs/aadhaar-form-assist/dto"
	"github.com/janseva-labs/aadhaar-form-assist/utils/fieldmatch"
)

// ErrTemplateNotFound is returned for an unknown form template ID.
var ErrTemplateNotFound = errors.New("form template not found")

// FormService serves form templates and pre-fills them from identity
// records. A field is auto-filled when its template declares an explicit
// canonical mapping, or when fuzzy label matching clears the autofill
// threshold.
type FormService struct {
	matcher   *fieldmatch.Matcher
	templates []dto.FormTemplate
}

func NewFormService(matcher *fieldmatch.Matcher) *FormService {
	return &FormService{
		matcher:   matcher,
		templates: formTemplates,
	}
}

// Templates returns all known form templates.
func (s *FormService) Templates() []dto.FormTemplate {
	return s.templates
}

// Template returns the template with the given ID.
func (s *FormService) Template(id string) (dto.FormTemplate, error) {
	for _, t := range s.templates {
		if t.ID == id {
			return t, nil
		}
	}
	return dto.FormTemplate{}, ErrTemplateNotFound
}

// Autofill seeds a template's fields from an identity record. Explicit
// mappings always win with confidence 1.0; otherwise the field label is
// fuzzy-matched and filled only above the matcher's autofill threshold.
// Fields that cannot be filled are left out; the client asks the user.
func (s *FormService) Autofill(templateID string, rec dto.IdentityRecord) (*dto.AutofillResponse, error) {
	template, err := s.Template(templateID)
	if err != nil {
		return nil, err
	}

	resp := &dto.AutofillResponse{
		TemplateID: templateID,
		Values:     make(map[string]string),
		Mappings:   make(map[string]dto.FieldMapping),
	}

	for _, field := range template.Fields {
		if field.MappedFrom != "" {
			if value := rec.Value(field.MappedFrom); value != "" {
				resp.Values[field.ID] = value
				resp.Mappings[field.ID] = dto.FieldMapping{Confidence: 1.0, Source: "explicit"}
			}
			continue
		}

		match := s.matcher.Match(field.Label)
		if match.Field == "" || match.Confidence <= fieldmatch.AutofillThreshold {
			continue
		}
		if value := rec.Value(match.Field); value != "" {
			resp.Values[field.ID] = value
			resp.Mappings[field.ID] = dto.FieldMapping{Confidence: match.Confidence, Source: "fuzzy"}
		}
	}

	log.Debug().
		Str("template", templateID).
		Int("filled", len(resp.Values)).
		Int("fields", len(template.Fields)).
		Msg("form autofill computed")
	return resp, nil
}
