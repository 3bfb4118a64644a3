package service

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PDFProcessor handles e-Aadhaar PDF letters: embedded-text extraction for
// born-digital PDFs and page-image extraction for scanned ones.
type PDFProcessor interface {
	ExtractText(pdfData []byte, password string) (string, error)
	ExtractPageImages(pdfData []byte, password string) ([]image.Image, error)
}

type pdfProcessor struct{}

func NewPDFProcessor() PDFProcessor {
	return &pdfProcessor{}
}

// ExtractText pulls the embedded text layer out of the PDF, one output line
// per text row.
func (p *pdfProcessor) ExtractText(pdfData []byte, password string) (string, error) {
	data := pdfData
	if password != "" {
		decrypted, err := decryptPDF(pdfData, password)
		if err != nil {
			return "", fmt.Errorf("failed to decrypt PDF: %w", err)
		}
		data = decrypted
	}

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var text bytes.Buffer
	for pageIndex := 1; pageIndex <= r.NumPage(); pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}
		rows, _ := page.GetTextByRow()
		for _, row := range rows {
			for _, word := range row.Content {
				text.WriteString(word.S)
			}
			text.WriteString("\n")
		}
	}
	return text.String(), nil
}

// ExtractPageImages extracts every embedded page image from the PDF, in page
// order. e-Aadhaar letters carry the card face as a page image, so these are
// what get OCRed.
func (p *pdfProcessor) ExtractPageImages(pdfData []byte, password string) ([]image.Image, error) {
	tempDir, err := os.MkdirTemp("", "card_pdf_images")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	tempFile, err := os.CreateTemp("", "card-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tempFile.Name())

	if _, err := tempFile.Write(pdfData); err != nil {
		tempFile.Close()
		return nil, fmt.Errorf("failed to write pdf data: %w", err)
	}
	tempFile.Close()

	conf := model.NewDefaultConfiguration()
	if password != "" {
		conf.UserPW = password
	}

	if err := api.ExtractImagesFile(tempFile.Name(), tempDir, nil, conf); err != nil {
		return nil, fmt.Errorf("failed to extract images: %w", err)
	}

	entries, err := os.ReadDir(tempDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read temp dir: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	// pdfcpu names extracted files by page number; sort to restore order.
	sort.Strings(names)

	var images []image.Image
	for _, name := range names {
		img, err := decodeImageFile(filepath.Join(tempDir, name))
		if err != nil {
			continue
		}
		images = append(images, img)
	}
	return images, nil
}

func decodeImageFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	return img, err
}

// decryptPDF writes an unencrypted copy of the PDF using pdfcpu.
func decryptPDF(pdfData []byte, password string) ([]byte, error) {
	conf := model.NewDefaultConfiguration()
	conf.UserPW = password

	var out bytes.Buffer
	if err := api.Decrypt(bytes.NewReader(pdfData), &out, conf); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
