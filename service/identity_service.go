package service

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"strings"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
	"github.com/rs/zerolog/log"

	"github.com/janseva-labs/aadhaar-form-assist/client"
	"github.com/janseva-labs/aadhaar-form-assist/dto"
	"github.com/janseva-labs/aadhaar-form-assist/utils"
)

// genderFallback is what a record carries when neither extraction pass found
// a gender marker.
const genderFallback = "Not Specified"

// IdentityService turns an uploaded card photo or e-Aadhaar PDF into an
// IdentityRecord. The secure QR code is tried first; when absent or
// unreadable it falls back to dual-pass OCR plus heuristic extraction.
type IdentityService struct {
	ocrClient    *client.TesseractClient
	pdfProcessor PDFProcessor
}

func NewIdentityService(ocrClient *client.TesseractClient, pdfProcessor PDFProcessor) *IdentityService {
	return &IdentityService{
		ocrClient:    ocrClient,
		pdfProcessor: pdfProcessor,
	}
}

// ExtractFromFile extracts an identity record from a single file (PDF or image).
func (s *IdentityService) ExtractFromFile(ctx context.Context, fileData []byte, mimeType, password string) (*dto.IdentityRecord, error) {
	var images []image.Image

	if strings.Contains(mimeType, "pdf") {
		log.Info().Msg("processing PDF for identity extraction")

		// Born-digital e-Aadhaar letters carry a selectable text layer;
		// parsing it directly skips the OCR round trip entirely.
		if text, err := s.pdfProcessor.ExtractText(fileData, password); err == nil {
			if rec, perr := s.extractFromTextLayer(text); perr == nil {
				return rec, nil
			}
		} else {
			log.Debug().Err(err).Msg("PDF text extraction failed, falling back to page images")
		}

		pages, err := s.pdfProcessor.ExtractPageImages(fileData, password)
		if err != nil {
			return nil, fmt.Errorf("failed to extract images from PDF: %w", err)
		}
		if len(pages) == 0 {
			return nil, fmt.Errorf("no card images found in PDF")
		}
		images = pages
	} else {
		img, err := decodeImage(fileData, mimeType)
		if err != nil {
			return nil, fmt.Errorf("failed to decode image: %w", err)
		}
		images = []image.Image{img}
	}

	return s.extract(ctx, images)
}

// ExtractFromImages extracts an identity record from two or more card images
// (front and back side).
func (s *IdentityService) ExtractFromImages(ctx context.Context, imagesData [][]byte, mimeTypes []string) (*dto.IdentityRecord, error) {
	var images []image.Image
	for i := range imagesData {
		img, err := decodeImage(imagesData[i], mimeTypes[i])
		if err != nil {
			log.Warn().Err(err).Int("index", i).Msg("failed to decode uploaded image")
			continue
		}
		images = append(images, img)
	}
	if len(images) == 0 {
		return nil, fmt.Errorf("failed to decode any card image")
	}
	return s.extract(ctx, images)
}

func (s *IdentityService) extract(ctx context.Context, images []image.Image) (*dto.IdentityRecord, error) {
	// QR first: the secure QR carries the exact attributes, no heuristics
	// needed. It is often on the back side, so try every image.
	for i, img := range images {
		rec, err := s.extractFromQR(img)
		if err != nil {
			log.Debug().Err(err).Int("image", i+1).Msg("no readable QR code")
			continue
		}
		log.Info().Msg("identity extracted from QR code")
		fillGender(rec, "")
		return rec, nil
	}

	doc, err := s.recognizeAll(ctx, images)
	if err != nil {
		return nil, err
	}

	rec, err := utils.ParseIdentity(doc)
	if err != nil {
		return nil, fmt.Errorf("identity extraction failed: %w", err)
	}

	fillGender(&rec, doc.FullText)
	log.Info().
		Str("name", rec.Name).
		Bool("has_dob", rec.DOB != "").
		Bool("has_id", rec.IDNumber != "").
		Msg("identity extracted from OCR text")
	return &rec, nil
}

// extractFromTextLayer parses the embedded text of a born-digital PDF. No
// word geometry is available, so only the text-based heuristics apply.
func (s *IdentityService) extractFromTextLayer(text string) (*dto.IdentityRecord, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("PDF has no text layer")
	}

	rec, err := utils.ParseIdentity(dto.RecognizedDocument{FullText: text})
	if err != nil {
		return nil, fmt.Errorf("identity extraction failed: %w", err)
	}

	fillGender(&rec, text)
	rec.Source = "pdf-text"
	log.Info().Str("name", rec.Name).Msg("identity extracted from PDF text layer")
	return &rec, nil
}

// recognizeAll OCRs every image and concatenates the recognized documents.
func (s *IdentityService) recognizeAll(ctx context.Context, images []image.Image) (dto.RecognizedDocument, error) {
	var combined dto.RecognizedDocument
	var texts []string

	for i, img := range images {
		if err := ctx.Err(); err != nil {
			return dto.RecognizedDocument{}, err
		}
		doc, err := s.ocrClient.RecognizeImage(img)
		if err != nil {
			log.Warn().Err(err).Int("image", i+1).Msg("OCR failed for image")
			continue
		}
		texts = append(texts, doc.FullText)
		combined.Words = append(combined.Words, doc.Words...)
		combined.Lines = append(combined.Lines, doc.Lines...)
	}

	if len(texts) == 0 {
		return dto.RecognizedDocument{}, fmt.Errorf("OCR produced no text for any image")
	}
	combined.FullText = strings.Join(texts, "\n")
	return combined, nil
}

// extractFromQR decodes the Aadhaar secure QR and maps its XML payload to a
// record.
func (s *IdentityService) extractFromQR(img image.Image) (*dto.IdentityRecord, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return nil, fmt.Errorf("failed to create binary bitmap: %w", err)
	}

	result, err := qrcode.NewQRCodeReader().Decode(bmp, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decode QR code: %w", err)
	}

	return recordFromQRPayload(result.GetText())
}

// recordFromQRPayload maps a decoded QR payload to a record. The dob
// attribute arrives with either / or - separators, so it is normalized to
// the canonical DD/MM/YYYY form here.
func recordFromQRPayload(payload string) (*dto.IdentityRecord, error) {
	var qrData dto.AadhaarQRData
	if err := xml.Unmarshal([]byte(payload), &qrData); err != nil {
		return nil, fmt.Errorf("failed to parse QR XML data: %w", err)
	}

	rec := qrData.ToRecord()
	if len(rec.Name) < 2 {
		return nil, fmt.Errorf("QR payload has no usable name")
	}
	rec.DOB = utils.NormalizeDate(rec.DOB)
	return &rec, nil
}

// fillGender applies the caller-level gender fallback: a plain substring
// search over the raw text, then an explicit "Not Specified" rather than an
// empty field.
func fillGender(rec *dto.IdentityRecord, rawText string) {
	if rec.Gender != "" {
		return
	}
	lower := strings.ToLower(rawText)
	switch {
	case strings.Contains(lower, "female"):
		rec.Gender = "Female"
	case strings.Contains(lower, "male"):
		rec.Gender = "Male"
	default:
		rec.Gender = genderFallback
	}
}

// decodeImage decodes an image from bytes based on MIME type
func decodeImage(data []byte, mimeType string) (image.Image, error) {
	reader := bytes.NewReader(data)

	if strings.Contains(mimeType, "png") {
		return png.Decode(reader)
	} else if strings.Contains(mimeType, "jpeg") || strings.Contains(mimeType, "jpg") {
		return jpeg.Decode(reader)
	}

	img, _, err := image.Decode(reader)
	return img, err
}
