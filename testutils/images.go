package testutils

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"sync"
	"testing"
)

// FakeImageStore records saved and removed references instead of storing bytes.
type FakeImageStore struct {
	mu      sync.Mutex
	Saved   []string
	Removed []string
	Err     error
}

func (f *FakeImageStore) Save(_ context.Context, file *multipart.FileHeader) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return "", f.Err
	}
	ref := "/uploads/" + file.Filename
	f.Saved = append(f.Saved, ref)
	return ref, nil
}

func (f *FakeImageStore) Remove(_ context.Context, ref string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ref == "" {
		return errors.New("empty reference")
	}
	f.Removed = append(f.Removed, ref)
	return nil
}

// MultipartBody builds a multipart form with the given fields and, when filename is
// not empty, a file under fileField.
func MultipartBody(t *testing.T, fields map[string]string, fileField, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("writing field %s: %v", k, err)
		}
	}
	if filename != "" {
		part, err := w.CreateFormFile(fileField, filename)
		if err != nil {
			t.Fatalf("creating form file: %v", err)
		}
		if _, err := io.Copy(part, bytes.NewReader(content)); err != nil {
			t.Fatalf("writing form file: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("closing multipart writer: %v", err)
	}
	return body, w.FormDataContentType()
}

// FileHeader parses a single uploaded file the way a server would receive it.
func FileHeader(t *testing.T, field, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	body, contentType := MultipartBody(t, nil, field, filename, content)
	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", contentType)
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		t.Fatalf("parsing multipart form: %v", err)
	}
	return req.MultipartForm.File[field][0]
}
