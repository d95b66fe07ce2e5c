package handler

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
)

type stubUploadService struct {
	calls    int
	filename string
	content  []byte
	err      error
}

func (s *stubUploadService) Upload(_ context.Context, filename string, body io.Reader) (string, error) {
	s.calls++
	s.filename = filename
	s.content, _ = io.ReadAll(body)
	if s.err != nil {
		return "", s.err
	}
	return "https://res.cloudinary.com/demo/raw/upload/" + filename, nil
}

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	if field != "" {
		part, err := w.CreateFormFile(field, filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		_, _ = part.Write(content)
	} else {
		_ = w.WriteField("note", "no file here")
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return buf, w.FormDataContentType()
}

func TestUploadHandler_Upload(t *testing.T) {
	svc := &stubUploadService{}
	body, ct := multipartBody(t, "file", "avatar.png", []byte("png-bytes"))
	c, rec := newTestContext(http.MethodPost, "/upload", body, ct)

	if err := NewUploadHandler(svc, zerolog.Nop()).Upload(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.filename != "avatar.png" || string(svc.content) != "png-bytes" {
		t.Fatalf("unexpected forward: %q %q", svc.filename, svc.content)
	}
	if resp := decodeBody(t, rec); resp["url"] != "https://res.cloudinary.com/demo/raw/upload/avatar.png" {
		t.Fatalf("unexpected body: %v", resp)
	}
}

func TestUploadHandler_MissingFile(t *testing.T) {
	tests := map[string]func(t *testing.T) (io.Reader, string){
		"multipart without file": func(t *testing.T) (io.Reader, string) {
			return multipartBody(t, "", "", nil)
		},
		"wrong field name": func(t *testing.T) (io.Reader, string) {
			return multipartBody(t, "image", "a.png", []byte("x"))
		},
		"not multipart": func(t *testing.T) (io.Reader, string) {
			return bytes.NewBufferString(`{"file":"x"}`), "application/json"
		},
	}
	for name, build := range tests {
		t.Run(name, func(t *testing.T) {
			svc := &stubUploadService{}
			body, ct := build(t)
			c, rec := newTestContext(http.MethodPost, "/upload", body, ct)

			if err := NewUploadHandler(svc, zerolog.Nop()).Upload(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			if resp := decodeBody(t, rec); resp["error"] != msgNoFile {
				t.Fatalf("unexpected body: %v", resp)
			}
			if svc.calls != 0 {
				t.Fatalf("blob store must not be called")
			}
		})
	}
}

func TestUploadHandler_StoreFailure(t *testing.T) {
	svc := &stubUploadService{err: errors.New("cloudinary upload: invalid signature")}
	body, ct := multipartBody(t, "file", "a.pdf", []byte("%PDF"))
	c, rec := newTestContext(http.MethodPost, "/upload", body, ct)

	if err := NewUploadHandler(svc, zerolog.Nop()).Upload(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
