package dto

// CanonicalField names one of the six identity attributes a form field can be
// mapped to.
type CanonicalField string

const (
	FieldName       CanonicalField = "name"
	FieldFatherName CanonicalField = "fatherName"
	FieldDOB        CanonicalField = "dob"
	FieldGender     CanonicalField = "gender"
	FieldIDNumber   CanonicalField = "idNumber"
	FieldAddress    CanonicalField = "address"
)

// CanonicalFields lists every valid canonical field.
var CanonicalFields = []CanonicalField{
	FieldName, FieldFatherName, FieldDOB, FieldGender, FieldIDNumber, FieldAddress,
}

// Valid reports whether f is one of the six canonical fields.
func (f CanonicalField) Valid() bool {
	for _, c := range CanonicalFields {
		if f == c {
			return true
		}
	}
	return false
}

// BoundingBox is the pixel rectangle of a recognized word.
type BoundingBox struct {
	X0 int `json:"x0"`
	Y0 int `json:"y0"`
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
}

// Word is a single recognized word with its OCR confidence in [0,1].
type Word struct {
	Text       string      `json:"text"`
	Confidence float64     `json:"confidence"`
	BBox       BoundingBox `json:"bbox"`
}

// RecognizedDocument is the raw output of an OCR pass (or several passes
// concatenated) over one identity card. It is never mutated after creation.
type RecognizedDocument struct {
	FullText string   `json:"full_text"`
	Words    []Word   `json:"words"`
	Lines    []string `json:"lines"`
}

// IdentityRecord is the structured result of extracting identity attributes
// from a recognized document. Every attribute except Name may be empty.
type IdentityRecord struct {
	Name       string `json:"name"`
	FatherName string `json:"father_name"`
	DOB        string `json:"dob"` // DD/MM/YYYY
	Gender     string `json:"gender"`
	IDNumber   string `json:"id_number"`
	Address    string `json:"address"`
	Source     string `json:"source,omitempty"` // "qr", "ocr" or "pdf-text"
}

// Value returns the attribute value for a canonical field.
func (r IdentityRecord) Value(f CanonicalField) string {
	switch f {
	case FieldName:
		return r.Name
	case FieldFatherName:
		return r.FatherName
	case FieldDOB:
		return r.DOB
	case FieldGender:
		return r.Gender
	case FieldIDNumber:
		return r.IDNumber
	case FieldAddress:
		return r.Address
	}
	return ""
}

// FieldMatch is the result of matching one form-field label against the
// canonical alias table. Field is empty when nothing matched.
type FieldMatch struct {
	Field        CanonicalField `json:"field"`
	Confidence   float64        `json:"confidence"`
	MatchedAlias string         `json:"matched_alias"`
}
