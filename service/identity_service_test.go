package service

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/janseva-labs/aadhaar-form-assist/dto"
)

type stubPDFProcessor struct {
	text    string
	textErr error
	images  []image.Image
	imgErr  error
}

func (s *stubPDFProcessor) ExtractText(pdfData []byte, password string) (string, error) {
	return s.text, s.textErr
}

func (s *stubPDFProcessor) ExtractPageImages(pdfData []byte, password string) ([]image.Image, error) {
	return s.images, s.imgErr
}

func TestExtractFromFileUsesPDFTextLayer(t *testing.T) {
	pdfProc := &stubPDFProcessor{
		text:   "Government of India\nRavi Kumar\nDOB: 15/08/1990\nMale\n2345 1234 5678",
		imgErr: errors.New("page images must not be requested"),
	}
	svc := NewIdentityService(nil, pdfProc)

	rec, err := svc.ExtractFromFile(context.Background(), []byte("%PDF-1.7"), "application/pdf", "")

	assert.NoError(t, err)
	assert.Equal(t, "Ravi Kumar", rec.Name)
	assert.Equal(t, "15/08/1990", rec.DOB)
	assert.Equal(t, "234512345678", rec.IDNumber)
	assert.Equal(t, "pdf-text", rec.Source)
}

func TestExtractFromFileFallsBackToPageImages(t *testing.T) {
	pdfProc := &stubPDFProcessor{
		text:   "",
		imgErr: errors.New("scanned PDF has no extractable images"),
	}
	svc := NewIdentityService(nil, pdfProc)

	_, err := svc.ExtractFromFile(context.Background(), []byte("%PDF-1.7"), "application/pdf", "")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to extract images from PDF")
}

func TestRecordFromQRPayloadNormalizesDOB(t *testing.T) {
	rec, err := recordFromQRPayload(`<PrintLetterBarcodeData uid="234567890123" name="Ravi Kumar" gender="M" dob="15-08-1990"/>`)

	assert.NoError(t, err)
	assert.Equal(t, "15/08/1990", rec.DOB)
	assert.Equal(t, "qr", rec.Source)
}

func TestRecordFromQRPayloadKeepsBareYearOfBirth(t *testing.T) {
	rec, err := recordFromQRPayload(`<PrintLetterBarcodeData uid="234567890123" name="Ravi Kumar" gender="M" yob="1990"/>`)

	assert.NoError(t, err)
	assert.Equal(t, "1990", rec.DOB)
}

func TestRecordFromQRPayloadRejectsMissingName(t *testing.T) {
	_, err := recordFromQRPayload(`<PrintLetterBarcodeData uid="234567890123" gender="M" dob="15/08/1990"/>`)

	assert.Error(t, err)
}

func TestFillGenderKeepsExtractedValue(t *testing.T) {
	rec := dto.IdentityRecord{Gender: "Female"}

	fillGender(&rec, "some text mentioning male")

	assert.Equal(t, "Female", rec.Gender)
}

func TestFillGenderSubstringFallback(t *testing.T) {
	rec := dto.IdentityRecord{}
	fillGender(&rec, "noisy ocr output FEMALE somewhere")
	assert.Equal(t, "Female", rec.Gender)

	rec = dto.IdentityRecord{}
	fillGender(&rec, "noisy ocr output male somewhere")
	assert.Equal(t, "Male", rec.Gender)
}

func TestFillGenderDefaultsToNotSpecified(t *testing.T) {
	rec := dto.IdentityRecord{}

	fillGender(&rec, "no gender markers here")

	assert.Equal(t, "Not Specified", rec.Gender)
}
