// Package api implements the broker API leaf client: authenticated JSON
// requests to register uploads, list and delete owned files, and fetch the
// public metadata projection for a share link.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/shareling/internal/client/models"
	"github.com/dmitrijs2005/shareling/internal/common"
	"github.com/dmitrijs2005/shareling/internal/netx"
)

// RegisterUploadRequest is the body of POST /api/files.
type RegisterUploadRequest struct {
	OriginalFileName string `json:"originalFileName"`
	ContentType      string `json:"contentType"`
	SizeBytes        int64  `json:"sizeBytes"`
	ExpiresInDays    int    `json:"expiresInDays,omitempty"`
}

// RegisterUploadResponse carries the new record's id and the single-use
// upload credential for the direct-to-storage transfer.
type RegisterUploadResponse struct {
	FileID string          `json:"fileId"`
	Upload netx.Credential `json:"upload"`
}

type listFilesResponse struct {
	Items []models.FileRecord `json:"items"`
}

type tokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// Client issues JSON requests against the broker. The access token is held
// as an opaque string; the client never inspects or refreshes it.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	accessToken string
}

// New constructs a Client for the broker at baseURL (scheme://host[:port]).
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// SetAccessToken installs the bearer credential used on authenticated calls.
func (c *Client) SetAccessToken(token string) {
	c.accessToken = token
}

// do issues one JSON request. A non-2xx response is returned as *Error with
// the body's message/code fields when the body parses as JSON, otherwise
// with just the HTTP status.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.accessToken != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+c.accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{StatusCode: resp.StatusCode}
		var envelope struct {
			Message string `json:"message"`
			Code    string `json:"code"`
		}
		if json.Unmarshal(data, &envelope) == nil {
			apiErr.Message = envelope.Message
			apiErr.Code = envelope.Code
		}
		return apiErr
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

// RegisterAccount creates a broker account.
func (c *Client) RegisterAccount(ctx context.Context, username, password string) error {
	in := map[string]string{"username": username, "password": password}
	return c.do(ctx, http.MethodPost, "/api/auth/register", in, nil)
}

// Login exchanges credentials for an access token and installs it on the
// client. The token itself is also returned so callers can persist it.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	in := map[string]string{"username": username, "password": password}
	var out tokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", in, &out); err != nil {
		return "", err
	}
	c.accessToken = out.AccessToken
	return out.AccessToken, nil
}

// RegisterUpload registers an upload intent with the broker and returns the
// new fileId plus the single-use storage credential.
func (c *Client) RegisterUpload(ctx context.Context, req RegisterUploadRequest) (*RegisterUploadResponse, error) {
	var out RegisterUploadResponse
	if err := c.do(ctx, http.MethodPost, "/api/files", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListFiles returns the caller's file records.
func (c *Client) ListFiles(ctx context.Context) ([]models.FileRecord, error) {
	var out listFilesResponse
	if err := c.do(ctx, http.MethodGet, "/api/files", nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// DeleteFile soft-deletes one owned file. The response body is ignored
// beyond the success status.
func (c *Client) DeleteFile(ctx context.Context, fileID string) error {
	return c.do(ctx, http.MethodDelete, "/api/files/"+url.PathEscape(fileID), nil, nil)
}

// PublicMetadata fetches the anonymous read-only projection for a link.
func (c *Client) PublicMetadata(ctx context.Context, fileID string) (*models.FileRecord, error) {
	var out models.FileRecord
	if err := c.do(ctx, http.MethodGet, "/api/public/"+url.PathEscape(fileID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DownloadURL returns the retrieval endpoint for a ready file. Retrieval is
// a browser-style navigation target, not a programmatic fetch.
func (c *Client) DownloadURL(fileID string) string {
	return c.baseURL + "/api/files/" + url.PathEscape(fileID) + "/download"
}
