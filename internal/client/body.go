// ABOUTME: Request body encoding and error response decoding helpers
// ABOUTME: JSON bodies for auth, multipart bodies for book uploads

package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
)

// requestBody pairs a body reader with its content type
type requestBody struct {
	reader      io.Reader
	contentType string
}

var noBody = requestBody{}

func jsonBody(v interface{}) (requestBody, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return noBody, fmt.Errorf("failed to marshal request: %w", err)
	}
	return requestBody{reader: bytes.NewReader(data), contentType: "application/json"}, nil
}

// Upload is a named binary payload for a multipart field
type Upload struct {
	Name   string
	Reader io.Reader
}

// UploadFromFile opens a file for use as a multipart payload.
// The returned closer must be closed after the request completes.
func UploadFromFile(path string) (*Upload, io.Closer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open %s: %w", path, err)
	}
	return &Upload{Name: filepath.Base(path), Reader: f}, f, nil
}

// BookInput carries the writable book fields. Text fields are appended
// when non-empty; nil uploads are omitted, which on update means the
// server keeps the existing file.
type BookInput struct {
	Title       string
	Genre       string
	Description string
	CoverImage  *Upload
	File        *Upload
}

// multipartBody encodes a BookInput as multipart/form-data. The whole
// body is buffered; book files are small enough that streaming is not
// worth the extra plumbing.
func multipartBody(input BookInput) (requestBody, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"title":       input.Title,
		"genre":       input.Genre,
		"description": input.Description,
	}
	for _, name := range []string{"title", "genre", "description"} {
		if fields[name] == "" {
			continue
		}
		if err := w.WriteField(name, fields[name]); err != nil {
			return noBody, fmt.Errorf("failed to encode %s field: %w", name, err)
		}
	}

	if err := writeUpload(w, "coverImage", input.CoverImage); err != nil {
		return noBody, err
	}
	if err := writeUpload(w, "file", input.File); err != nil {
		return noBody, err
	}

	if err := w.Close(); err != nil {
		return noBody, fmt.Errorf("failed to finalize multipart body: %w", err)
	}
	return requestBody{reader: &buf, contentType: w.FormDataContentType()}, nil
}

func writeUpload(w *multipart.Writer, field string, u *Upload) error {
	if u == nil {
		return nil
	}
	part, err := w.CreateFormFile(field, u.Name)
	if err != nil {
		return fmt.Errorf("failed to create %s part: %w", field, err)
	}
	if _, err := io.Copy(part, u.Reader); err != nil {
		return fmt.Errorf("failed to write %s payload: %w", field, err)
	}
	return nil
}

// errorResponse is the backend's error body shape
type errorResponse struct {
	Message string `json:"message"`
}

// decodeError turns a non-2xx response into an *APIError. The server's
// message field wins when present; fallback fills in when the body is
// missing or not decodable.
func decodeError(resp *http.Response, fallback string) error {
	apiErr := &APIError{Status: resp.StatusCode, Message: fallback}
	var errResp errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Message != "" {
		apiErr.Message = errResp.Message
	}
	return apiErr
}
