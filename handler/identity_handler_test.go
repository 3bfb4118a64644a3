package handler

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newExtractRouter(maxFileSize int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewIdentityHandler(nil, maxFileSize)
	router.POST("/api/v1/identity/extract", h.Extract)
	return router
}

func cardUploadBody(t *testing.T, filename, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	assert.NoError(t, err)

	_, err = part.Write(content)
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func postExtract(router *gin.Engine, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/identity/extract", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestExtractRejectsOversizedFile(t *testing.T) {
	router := newExtractRouter(8)
	body, contentType := cardUploadBody(t, "card.png", "image/png", bytes.Repeat([]byte{0x1}, 64))

	w := postExtract(router, body, contentType)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), "maximum allowed size")
}

func TestExtractRejectsUnsupportedFileType(t *testing.T) {
	router := newExtractRouter(1024)
	body, contentType := cardUploadBody(t, "card.gif", "image/gif", []byte("GIF89a"))

	w := postExtract(router, body, contentType)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExtractRequiresFile(t *testing.T) {
	router := newExtractRouter(1024)

	w := postExtract(router, &bytes.Buffer{}, "multipart/form-data; boundary=empty")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
