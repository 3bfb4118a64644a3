package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/janseva-labs/aadhaar-form-assist/dto"
)

func TestParseIdentityEndToEnd(t *testing.T) {
	doc := dto.RecognizedDocument{
		FullText: "Government of India\nRavi Kumar\nDOB: 15/08/1990\nMale\n234512345678",
	}

	rec, err := ParseIdentity(doc)

	assert.NoError(t, err)
	assert.Equal(t, "Ravi Kumar", rec.Name)
	assert.Equal(t, "15/08/1990", rec.DOB)
	assert.Equal(t, "Male", rec.Gender)
	assert.Equal(t, "234512345678", rec.IDNumber)
	assert.Empty(t, rec.FatherName)
	assert.Empty(t, rec.Address)
}

func TestParseIdentityIsIdempotent(t *testing.T) {
	doc := dto.RecognizedDocument{
		FullText: "Government of India\nSunita Devi\nपिता: Mohan Lal\nDOB: 02/01/1985\nFemale\n4321 8765 2109",
	}

	first, err1 := ParseIdentity(doc)
	second, err2 := ParseIdentity(doc)

	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.Equal(t, first, second)
}

func TestParseIdentityFailsWithoutName(t *testing.T) {
	doc := dto.RecognizedDocument{
		FullText: "1234 5678\n!!!\nDOB: 15/08/1990",
	}

	_, err := ParseIdentity(doc)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrNameNotFound))
}

func TestCleanAndValidateName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{" john   DOE ", "John Doe"},
		{"123", ""},
		{"A", ""},
		{"Ravi-Kumar!", "Ravi Kumar"},
		{"R4vi Kumar", "Kumar"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanAndValidateName(tt.input), "input: %q", tt.input)
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"5/8/1990", "05/08/1990"},
		{"15-08-1990", "15/08/1990"},
		{"15.08.1990", "15/08/1990"},
		{"1/1/49", "01/01/2049"},
		{"01/01/50", "01/01/1950"},
		{"31/12/99", "31/12/1999"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeDate(tt.input), "input: %q", tt.input)
	}
}

func TestExpandTwoDigitYear(t *testing.T) {
	assert.Equal(t, 2049, ExpandTwoDigitYear(49))
	assert.Equal(t, 1950, ExpandTwoDigitYear(50))
	assert.Equal(t, 1999, ExpandTwoDigitYear(99))
	assert.Equal(t, 2000, ExpandTwoDigitYear(0))
}

func TestExtractDOBPrefersLabelledDate(t *testing.T) {
	text := "Issued: 01/01/2010\nDOB: 15/08/1990"
	assert.Equal(t, "15/08/1990", extractDOB(text))
}

func TestExtractDOBRejectsImpossibleDates(t *testing.T) {
	assert.Empty(t, extractDOB("DOB: 32/08/1990"))
	assert.Empty(t, extractDOB("DOB: 15/13/1990"))
	assert.Empty(t, extractDOB("DOB: 15/08/1899"))
}

func TestExtractIDNumber(t *testing.T) {
	assert.Equal(t, "234512345678", extractIDNumber("2345 1234 5678"))
	assert.Equal(t, "234512345678", extractIDNumber("234512345678"))

	// Degenerate placeholders are never accepted.
	assert.Empty(t, extractIDNumber("0000 0000 0000"))
	assert.Empty(t, extractIDNumber("111111111111"))
	assert.Empty(t, extractIDNumber("2222 2222 2222"))
	assert.Empty(t, extractIDNumber("1234 5678 9012"))
}

func TestExtractGender(t *testing.T) {
	female := dto.RecognizedDocument{FullText: "Sunita Devi\nFemale\n"}
	assert.Equal(t, "Female", extractGender(female))

	hindi := dto.RecognizedDocument{FullText: "रवि कुमार\nपुरुष\n"}
	assert.Equal(t, "Male", extractGender(hindi))

	// Word-level fallback when the full text has no gender marker.
	words := dto.RecognizedDocument{
		FullText: "Ravi Kumar",
		Words:    []dto.Word{{Text: "F", Confidence: 0.9}},
	}
	assert.Equal(t, "Female", extractGender(words))

	none := dto.RecognizedDocument{FullText: "Ravi Kumar"}
	assert.Empty(t, extractGender(none))
}

func TestGenderTokenLettersAreCaseSensitive(t *testing.T) {
	// A stray lowercase letter in OCR noise is not a gender marker.
	lower := dto.RecognizedDocument{
		FullText: "Ravi Kumar",
		Words:    []dto.Word{{Text: "f", Confidence: 0.9}, {Text: "m", Confidence: 0.9}},
	}
	assert.Empty(t, extractGender(lower))

	upper := dto.RecognizedDocument{
		FullText: "Ravi Kumar",
		Words:    []dto.Word{{Text: "M", Confidence: 0.9}},
	}
	assert.Equal(t, "Male", extractGender(upper))

	// Full words still match regardless of case.
	word := dto.RecognizedDocument{
		FullText: "Ravi Kumar",
		Words:    []dto.Word{{Text: "FEMALE", Confidence: 0.9}},
	}
	assert.Equal(t, "Female", extractGender(word))
}

func TestExtractFatherName(t *testing.T) {
	assert.Equal(t, "Mohan Lal", extractFatherName("Father's Name: Mohan Lal\nDOB: 01/01/1990"))
	assert.Equal(t, "Ramesh Singh", extractFatherName("S/O: Ramesh Singh Male"))
	assert.Empty(t, extractFatherName("Government of India\nRavi Kumar"))
}

func TestExtractAddress(t *testing.T) {
	labelled := "Address: 123 MG Road\nIndiranagar\nBengaluru\n560038"
	assert.Equal(t, "123 MG Road Indiranagar Bengaluru", extractAddress(labelled))

	// No label: last lines of the block before a PIN code.
	unlabelled := "S/O Ramesh Singh\nHouse 42 Gandhi Nagar\nLucknow 226001"
	addr := extractAddress(unlabelled)
	assert.Contains(t, addr, "Gandhi Nagar")
	assert.NotContains(t, addr, "\n")

	assert.Empty(t, extractAddress("Ravi Kumar\nDOB: 15/08/1990"))
}

func TestNameFromWords(t *testing.T) {
	doc := dto.RecognizedDocument{
		Words: []dto.Word{
			{Text: "Government", Confidence: 0.9, BBox: dto.BoundingBox{X0: 10, Y0: 10, X1: 120, Y1: 30}},
			{Text: "Ravi", Confidence: 0.8, BBox: dto.BoundingBox{X0: 10, Y0: 50, X1: 60, Y1: 70}},
			{Text: "Kumar", Confidence: 0.7, BBox: dto.BoundingBox{X0: 70, Y0: 52, X1: 140, Y1: 72}},
			{Text: "Xq", Confidence: 0.2, BBox: dto.BoundingBox{X0: 10, Y0: 100, X1: 40, Y1: 120}},
		},
	}

	name, ok := nameFromWords(doc)

	assert.True(t, ok)
	assert.Equal(t, "Ravi Kumar", name)
}

func TestNameFromWordsIgnoresDistantWords(t *testing.T) {
	// Same visual line but separated by a large horizontal gap: two
	// sequences, the longer one wins.
	doc := dto.RecognizedDocument{
		Words: []dto.Word{
			{Text: "Ravi", Confidence: 0.8, BBox: dto.BoundingBox{X0: 10, Y0: 50, X1: 60, Y1: 70}},
			{Text: "Kumar", Confidence: 0.8, BBox: dto.BoundingBox{X0: 70, Y0: 50, X1: 140, Y1: 70}},
			{Text: "Sharma", Confidence: 0.8, BBox: dto.BoundingBox{X0: 600, Y0: 50, X1: 680, Y1: 70}},
		},
	}

	name, ok := nameFromWords(doc)

	assert.True(t, ok)
	assert.Equal(t, "Ravi Kumar", name)
}

func TestNameFromLayoutPatterns(t *testing.T) {
	doc := dto.RecognizedDocument{
		FullText: "Anil Sharma S/O Mohan Sharma",
	}

	name, ok := nameFromLayoutPatterns(doc)

	assert.True(t, ok)
	assert.Equal(t, "Anil Sharma", name)
}
