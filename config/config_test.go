package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigMaxFileSize(t *testing.T) {
	t.Setenv("MAX_FILE_SIZE", "2097152")
	assert.Equal(t, int64(2*1024*1024), LoadConfig().MaxFileSize)
}

func TestLoadConfigMaxFileSizeFallsBackOnBadValue(t *testing.T) {
	t.Setenv("MAX_FILE_SIZE", "not-a-number")
	assert.Equal(t, int64(defaultMaxFileSize), LoadConfig().MaxFileSize)

	t.Setenv("MAX_FILE_SIZE", "-1")
	assert.Equal(t, int64(defaultMaxFileSize), LoadConfig().MaxFileSize)
}

func TestLoadConfigOCRLanguages(t *testing.T) {
	t.Setenv("OCR_LANGUAGES", "eng, hin ,")
	assert.Equal(t, []string{"eng", "hin"}, LoadConfig().OCRLanguages)
}
