package client

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"

	"github.com/otiai10/gosseract/v2"
	"github.com/rs/zerolog/log"

	"github.com/janseva-labs/aadhaar-form-assist/dto"
)

// TesseractClient runs Tesseract OCR over card images. Recognition is
// dual-pass: one pass per configured language, with the pass outputs
// concatenated into a single RecognizedDocument.
type TesseractClient struct {
	dataPath  string
	languages []string
}

func NewTesseractClient(dataPath string, languages []string) *TesseractClient {
	if len(languages) == 0 {
		languages = []string{"eng", "hin"}
	}
	return &TesseractClient{
		dataPath:  dataPath,
		languages: languages,
	}
}

// Recognize OCRs the image file at path once per configured language and
// merges the passes: full texts joined with a newline, word lists appended.
func (tc *TesseractClient) Recognize(filePath string) (dto.RecognizedDocument, error) {
	var doc dto.RecognizedDocument
	var texts []string

	for _, lang := range tc.languages {
		text, words, err := tc.recognizePass(filePath, lang)
		if err != nil {
			return dto.RecognizedDocument{}, fmt.Errorf("ocr pass %q: %w", lang, err)
		}
		log.Debug().Str("lang", lang).Int("chars", len(text)).Int("words", len(words)).Msg("ocr pass complete")
		texts = append(texts, text)
		doc.Words = append(doc.Words, words...)
	}

	doc.FullText = strings.Join(texts, "\n")
	for _, line := range strings.Split(doc.FullText, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			doc.Lines = append(doc.Lines, line)
		}
	}
	return doc, nil
}

// RecognizeImage encodes an in-memory image to a temporary PNG and runs
// Recognize on it.
func (tc *TesseractClient) RecognizeImage(img image.Image) (dto.RecognizedDocument, error) {
	tempFile, err := os.CreateTemp("", "card-ocr-*.png")
	if err != nil {
		return dto.RecognizedDocument{}, fmt.Errorf("failed to create temp image file: %w", err)
	}
	defer os.Remove(tempFile.Name())

	if err := png.Encode(tempFile, img); err != nil {
		tempFile.Close()
		return dto.RecognizedDocument{}, fmt.Errorf("failed to encode image to PNG: %w", err)
	}
	tempFile.Close()

	return tc.Recognize(tempFile.Name())
}

func (tc *TesseractClient) recognizePass(filePath, language string) (string, []dto.Word, error) {
	client := gosseract.NewClient()
	defer client.Close()

	client.SetTessdataPrefix(tc.dataPath)

	if err := client.SetLanguage(language); err != nil {
		return "", nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImage(filePath); err != nil {
		return "", nil, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", nil, fmt.Errorf("failed to extract text: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		// Word boxes are an enhancement; line-level extraction still
		// works from the full text alone.
		log.Warn().Err(err).Str("lang", language).Msg("word bounding boxes unavailable")
		return text, nil, nil
	}

	words := make([]dto.Word, 0, len(boxes))
	for _, box := range boxes {
		word := strings.TrimSpace(box.Word)
		if word == "" {
			continue
		}
		words = append(words, dto.Word{
			Text:       word,
			Confidence: box.Confidence / 100, // tesseract reports 0-100
			BBox: dto.BoundingBox{
				X0: box.Box.Min.X,
				Y0: box.Box.Min.Y,
				X1: box.Box.Max.X,
				Y1: box.Box.Max.Y,
			},
		})
	}

	return text, words, nil
}

// Close performs cleanup
func (tc *TesseractClient) Close() {
	log.Debug().Msg("tesseract client closed")
}
