// ABOUTME: Book catalog operations against /api/books
// ABOUTME: One HTTP round trip per call, multipart encoding for uploads

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jdalton/bookshelf-cli/internal/debuglog"
)

const deleteFallbackMessage = "failed to delete book"

// ListBooks calls GET /api/books
func (c *Client) ListBooks(ctx context.Context) ([]Book, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/books", noBody)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := decodeError(resp, "")
		debuglog.Error("list books", err)
		return nil, err
	}

	var books []Book
	if err := json.NewDecoder(resp.Body).Decode(&books); err != nil {
		return nil, fmt.Errorf("invalid response from backend: %w", err)
	}

	return books, nil
}

// GetBook calls GET /api/books/{id}
func (c *Client) GetBook(ctx context.Context, id string) (*Book, error) {
	if id == "" {
		return nil, fmt.Errorf("book id is required")
	}

	req, err := c.newRequest(ctx, http.MethodGet, "/api/books/"+id, noBody)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := decodeError(resp, "")
		debuglog.Error("get book", err)
		return nil, err
	}

	var book Book
	if err := json.NewDecoder(resp.Body).Decode(&book); err != nil {
		return nil, fmt.Errorf("invalid response from backend: %w", err)
	}

	return &book, nil
}

// CreateBook calls POST /api/books with a multipart body carrying the
// text fields plus the cover image and book file payloads.
func (c *Client) CreateBook(ctx context.Context, input BookInput) (*Book, error) {
	body, err := multipartBody(input)
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/books", body)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		err := decodeError(resp, "")
		debuglog.Error("create book", err)
		return nil, err
	}

	var book Book
	if err := json.NewDecoder(resp.Body).Decode(&book); err != nil {
		return nil, fmt.Errorf("invalid response from backend: %w", err)
	}

	return &book, nil
}

// UpdateBook calls PATCH /api/books/{id} with a multipart body holding
// only the fields being changed. Omitted uploads keep the server's
// existing files.
func (c *Client) UpdateBook(ctx context.Context, id string, input BookInput) (*Book, error) {
	if id == "" {
		return nil, fmt.Errorf("book id is required")
	}

	body, err := multipartBody(input)
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPatch, "/api/books/"+id, body)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := decodeError(resp, "")
		debuglog.Error("update book", err)
		return nil, err
	}

	var book Book
	if err := json.NewDecoder(resp.Body).Decode(&book); err != nil {
		return nil, fmt.Errorf("invalid response from backend: %w", err)
	}

	return &book, nil
}

// DeleteBook calls DELETE /api/books/{id}. Unlike the other operations
// the error carries a fixed fallback message when the server sends no
// body, since delete failures are shown to the user verbatim.
func (c *Client) DeleteBook(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("book id is required")
	}

	req, err := c.newRequest(ctx, http.MethodDelete, "/api/books/"+id, noBody)
	if err != nil {
		return err
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		err := decodeError(resp, deleteFallbackMessage)
		debuglog.Error("delete book", err)
		return err
	}

	return nil
}
