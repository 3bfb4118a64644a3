package fieldmatch

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/janseva-labs/aadhaar-form-assist/dto"
)

func TestMatchApplicantFullName(t *testing.T) {
	m := New()

	match := m.Match("Applicant Full Name")

	assert.Equal(t, dto.FieldName, match.Field)
	assert.GreaterOrEqual(t, match.Confidence, 0.6)
}

func TestMatchRelationMarker(t *testing.T) {
	m := New()

	match := m.Match("S/O")

	assert.Equal(t, dto.FieldFatherName, match.Field)
	assert.Greater(t, match.Confidence, 0.0)
}

func TestMatchGibberishReturnsNoMatch(t *testing.T) {
	m := New()

	match := m.Match("xyz123")

	assert.Empty(t, match.Field)
	assert.Zero(t, match.Confidence)
	assert.Empty(t, match.MatchedAlias)
}

func TestMatchExactAlias(t *testing.T) {
	m := New()

	match := m.Match("Date of Birth")

	assert.Equal(t, dto.FieldDOB, match.Field)
	assert.InDelta(t, 0.9, match.Confidence, 0.001)
}

func TestMatchHindiAlias(t *testing.T) {
	m := New()

	match := m.Match("पिता का नाम")

	assert.Equal(t, dto.FieldFatherName, match.Field)
	assert.InDelta(t, 0.85, match.Confidence, 0.001)
}

func TestMatchKeywordFallback(t *testing.T) {
	m := New()

	// Far from every alias, but contains "residence".
	match := m.Match("Current Residence")

	assert.Equal(t, dto.FieldAddress, match.Field)
	assert.InDelta(t, 0.7, match.Confidence, 0.001)
}

func TestMatchToleratesSpellingNoise(t *testing.T) {
	m := New()

	match := m.Match("Aadhar Numbr")

	assert.Equal(t, dto.FieldIDNumber, match.Field)
	assert.GreaterOrEqual(t, match.Confidence, 0.6)
}

func TestMatchUnrelatedBankingLabels(t *testing.T) {
	m := New()

	assert.Empty(t, m.Match("IFSC Code").Field)
	assert.Empty(t, m.Match("Monthly Income").Field)
}

func TestMatchEmptyLabel(t *testing.T) {
	m := New()

	match := m.Match("   ")

	assert.Empty(t, match.Field)
	assert.Zero(t, match.Confidence)
}

func TestAllMatchesSortedByConfidence(t *testing.T) {
	m := New()

	matches := m.AllMatches("name")

	assert.GreaterOrEqual(t, len(matches), 2)
	assert.Equal(t, dto.FieldName, matches[0].Field)
	for i := 1; i < len(matches); i++ {
		assert.LessOrEqual(t, matches[i].Confidence, matches[i-1].Confidence)
	}
}

func TestAllMatchesEmptyForGibberish(t *testing.T) {
	m := New()

	assert.Empty(t, m.AllMatches("xyz123"))
}
