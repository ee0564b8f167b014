package handlers

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	url string
	key string
	err error

	gotFilename    string
	gotContentType string
	calls          int
}

func (f *fakeUploader) Upload(ctx context.Context, data []byte, filename, contentType string) (string, string, error) {
	f.calls++
	f.gotFilename = filename
	f.gotContentType = contentType
	if f.err != nil {
		return "", "", f.err
	}
	return f.url, f.key, nil
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))))
	return buf.Bytes()
}

func multipartUpload(t *testing.T, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadHandler_Success(t *testing.T) {
	blobs := &fakeUploader{url: "https://media.example.com/abc.png", key: "abc.png"}
	h := &UploadHandler{Blobs: blobs}

	rec := httptest.NewRecorder()
	h.Upload(rec, multipartUpload(t, "avatar.png", pngBytes(t, 32, 32)))
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.Contains(t, string(env.Data), "https://media.example.com/abc.png")
	assert.Equal(t, 1, blobs.calls)
	assert.Equal(t, "avatar.png", blobs.gotFilename)
	assert.Equal(t, "image/png", blobs.gotContentType)
}

func TestUploadHandler_NoFile(t *testing.T) {
	h := &UploadHandler{Blobs: &fakeUploader{}}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.Upload(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadHandler_RejectsNonImage(t *testing.T) {
	blobs := &fakeUploader{}
	h := &UploadHandler{Blobs: blobs}

	rec := httptest.NewRecorder()
	h.Upload(rec, multipartUpload(t, "notes.txt", []byte("plain text, not an image")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, blobs.calls)
}

func TestUploadHandler_RejectsOversizedDimensions(t *testing.T) {
	blobs := &fakeUploader{}
	h := &UploadHandler{Blobs: blobs}

	rec := httptest.NewRecorder()
	h.Upload(rec, multipartUpload(t, "wide.png", pngBytes(t, maxImageSide+1, 1)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, blobs.calls)
}

func TestUploadHandler_UpstreamFailure(t *testing.T) {
	h := &UploadHandler{Blobs: &fakeUploader{err: errors.New("bucket unreachable")}}

	rec := httptest.NewRecorder()
	h.Upload(rec, multipartUpload(t, "avatar.png", pngBytes(t, 32, 32)))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, decodeEnvelope(t, rec).Success)
}

func TestUploadHandler_NotConfigured(t *testing.T) {
	h := &UploadHandler{}

	rec := httptest.NewRecorder()
	h.Upload(rec, multipartUpload(t, "avatar.png", pngBytes(t, 32, 32)))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
