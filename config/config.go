package config

import (
	"os"
	"strconv"
	"strings"
)

// defaultMaxFileSize caps uploaded card files at 10 MB.
const defaultMaxFileSize = 10 * 1024 * 1024

type Config struct {
	ServerPort        string
	TesseractDataPath string
	OCRLanguages      []string
	MaxFileSize       int64
	LogLevel          string
	LogFormat         string
}

func LoadConfig() *Config {
	return &Config{
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		TesseractDataPath: getEnv("TESSDATA_PREFIX", "/usr/share/tesseract-ocr/5/tessdata/"),
		OCRLanguages:      splitList(getEnv("OCR_LANGUAGES", "eng,hin")),
		MaxFileSize:       getEnvInt64("MAX_FILE_SIZE", defaultMaxFileSize),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "console"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
