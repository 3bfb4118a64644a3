// Package fieldmatch maps free-text form-field labels onto canonical
// identity attributes using fuzzy string matching over a static alias table.
package fieldmatch

import (
	"regexp"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/janseva-labs/aadhaar-form-assist/dto"
)

// entry maps one canonical field to its alias phrases and an intrinsic
// confidence weight.
type entry struct {
	field   dto.CanonicalField
	weight  float64
	aliases []string
}

// similarityThreshold is the minimum label/alias similarity for a fuzzy
// candidate: loose enough to tolerate OCR and spelling noise, strict enough
// that unrelated labels score zero.
const similarityThreshold = 0.6

// AutofillThreshold is the matcher confidence a caller should require before
// pre-filling a field from an identity record. Explicit template mappings
// bypass it.
const AutofillThreshold = 0.6

// Matcher performs fuzzy label matching. It is read-only after construction
// and safe to share between goroutines.
type Matcher struct {
	entries []entry
}

// New builds a Matcher over the canonical alias table.
func New() *Matcher {
	m := &Matcher{entries: []entry{
		{dto.FieldName, 0.90, []string{
			"name", "applicant name", "full name", "candidate name",
			"person name", "नाम", "आवेदक का नाम",
		}},
		{dto.FieldFatherName, 0.85, []string{
			"father", "father name", "fathers name", "guardian name",
			"parent name", "पिता का नाम", "अभिभावक का नाम", "s/o", "son of",
		}},
		{dto.FieldDOB, 0.90, []string{
			"dob", "date of birth", "birth date", "जन्म तिथि", "जन्मदिन",
		}},
		{dto.FieldGender, 0.90, []string{
			"gender", "sex", "लिंग", "male/female",
		}},
		{dto.FieldIDNumber, 0.95, []string{
			"aadhaar", "aadhaar number", "aadhar number", "uid", "unique id",
			"आधार संख्या", "आधार नंबर",
		}},
		{dto.FieldAddress, 0.80, []string{
			"address", "permanent address", "residential address",
			"पता", "स्थायी पता",
		}},
	}}
	// Normalize alias phrases once so per-label matching only normalizes
	// the label.
	for i := range m.entries {
		for j, a := range m.entries[i].aliases {
			m.entries[i].aliases[j] = normalizeLabel(a)
		}
	}
	return m
}

// Match returns the best canonical-field match for a form-field label. It
// never fails: an unmatchable label yields a zero-confidence result with an
// empty field.
func (m *Matcher) Match(label string) dto.FieldMatch {
	clean := normalizeLabel(label)
	if clean == "" {
		return dto.FieldMatch{}
	}

	best := dto.FieldMatch{}
	for _, e := range m.entries {
		if match, ok := m.matchEntry(clean, e); ok && match.Confidence > best.Confidence {
			best = match
		}
	}
	if best.Field != "" {
		return best
	}

	if match, ok := keywordFallback(clean); ok {
		return match
	}
	return dto.FieldMatch{}
}

// AllMatches returns every candidate at or above the similarity threshold,
// sorted by confidence descending.
func (m *Matcher) AllMatches(label string) []dto.FieldMatch {
	clean := normalizeLabel(label)
	if clean == "" {
		return nil
	}

	var matches []dto.FieldMatch
	for _, e := range m.entries {
		if match, ok := m.matchEntry(clean, e); ok {
			matches = append(matches, match)
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Confidence > matches[j].Confidence
	})
	return matches
}

// matchEntry scores a normalized label against one table entry, keeping the
// best-scoring alias.
func (m *Matcher) matchEntry(label string, e entry) (dto.FieldMatch, bool) {
	bestSim := 0.0
	bestAlias := ""
	for _, alias := range e.aliases {
		if sim := similarity(label, alias); sim > bestSim {
			bestSim = sim
			bestAlias = alias
		}
	}
	if bestSim < similarityThreshold {
		return dto.FieldMatch{}, false
	}
	return dto.FieldMatch{
		Field:        e.field,
		Confidence:   bestSim * e.weight,
		MatchedAlias: bestAlias,
	}, true
}

// similarity scores two normalized phrases in [0,1]. Whole-phrase containment
// ranks above a plain edit-distance score so that "applicant full name"
// strongly matches the "full name" alias.
func similarity(label, alias string) float64 {
	if label == alias {
		return 1
	}
	if containsPhrase(label, alias) || containsPhrase(alias, label) {
		short, long := len(alias), len(label)
		if short > long {
			short, long = long, short
		}
		return 0.75 + 0.25*float64(short)/float64(long)
	}
	dist := fuzzy.LevenshteinDistance(label, alias)
	maxLen := len([]rune(label))
	if n := len([]rune(alias)); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 0
	}
	return 1 - float64(dist)/float64(maxLen)
}

// containsPhrase reports whether phrase occurs in s on word boundaries.
func containsPhrase(s, phrase string) bool {
	return strings.Contains(" "+s+" ", " "+phrase+" ")
}

var labelPunctRe = regexp.MustCompile(`[^\w\s]`)
var labelSpaceRe = regexp.MustCompile(`\s+`)

func normalizeLabel(label string) string {
	label = strings.ToLower(label)
	label = labelPunctRe.ReplaceAllString(label, " ")
	label = labelSpaceRe.ReplaceAllString(label, " ")
	return strings.TrimSpace(label)
}

// keywordFallback is the deterministic containment check used when fuzzy
// search yields nothing.
func keywordFallback(clean string) (dto.FieldMatch, bool) {
	has := func(subs ...string) bool {
		for _, s := range subs {
			if strings.Contains(clean, s) {
				return true
			}
		}
		return false
	}

	switch {
	case has("name") && !has("father", "guardian"):
		return dto.FieldMatch{Field: dto.FieldName, Confidence: 0.8, MatchedAlias: "name"}, true
	case has("father", "guardian", "parent"):
		return dto.FieldMatch{Field: dto.FieldFatherName, Confidence: 0.8, MatchedAlias: "father"}, true
	case has("date") && has("birth"):
		return dto.FieldMatch{Field: dto.FieldDOB, Confidence: 0.8, MatchedAlias: "dob"}, true
	case has("gender", "sex"):
		return dto.FieldMatch{Field: dto.FieldGender, Confidence: 0.8, MatchedAlias: "gender"}, true
	case has("aadhaar", "aadhar", "uid"):
		return dto.FieldMatch{Field: dto.FieldIDNumber, Confidence: 0.9, MatchedAlias: "aadhaar"}, true
	case has("address", "residence"):
		return dto.FieldMatch{Field: dto.FieldAddress, Confidence: 0.7, MatchedAlias: "address"}, true
	}
	return dto.FieldMatch{}, false
}
